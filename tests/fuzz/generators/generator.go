package generators

import (
	"math/rand"

	"github.com/funvibe/funshape/internal/typesystem"
)

// RandomSource abstracts the source of randomness.
type RandomSource interface {
	Intn(n int) int
	Float64() float64
}

// RandSource wraps math/rand.
type RandSource struct {
	*rand.Rand
}

// ByteSource uses a byte slice as a source of randomness. Exhausted data
// yields zeros, so every fuzz input maps to a finite value.
type ByteSource struct {
	data []byte
	pos  int
}

func (s *ByteSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if s.pos >= len(s.data) {
		return 0
	}
	v := int(s.data[s.pos])
	s.pos++
	return v % n
}

func (s *ByteSource) Float64() float64 {
	if s.pos >= len(s.data) {
		return 0.0
	}
	v := int(s.data[s.pos])
	s.pos++
	return float64(v) / 255.0
}

// Generator produces random types, shapes, patterns and signatures for
// the fuzz targets.
type Generator struct {
	src   RandomSource
	depth int
}

const (
	MaxDepth = 4
	MaxElems = 5
)

func New(seed int64) *Generator {
	return &Generator{src: &RandSource{rand.New(rand.NewSource(seed))}}
}

func NewFromData(data []byte) *Generator {
	return &Generator{src: &ByteSource{data: data}}
}

// Intn exposes the random source's Intn method for embedded structs.
func (g *Generator) Intn(n int) int {
	return g.src.Intn(n)
}

// Src returns the random source of the generator.
func (g *Generator) Src() RandomSource {
	return g.src
}

var scalarNames = []string{"int", "str", "bool", "float", "bytes"}

// Scalar picks one of the concrete element types.
func (g *Generator) Scalar() typesystem.Type {
	return typesystem.TCon{Name: scalarNames[g.src.Intn(len(scalarNames))]}
}

// Type generates a random element type. Depth is bounded so nested
// shapes, sequences and unions always terminate.
func (g *Generator) Type() typesystem.Type {
	if g.depth >= MaxDepth {
		return g.Scalar()
	}
	g.depth++
	defer func() { g.depth-- }()

	switch g.src.Intn(10) {
	case 0:
		return typesystem.TUnknown{}
	case 1:
		return typesystem.TNever{}
	case 2:
		return typesystem.TSeq{Elem: g.Type()}
	case 3, 4:
		alts := make([]typesystem.Type, g.src.Intn(3)+2)
		for i := range alts {
			alts[i] = g.Type()
		}
		return typesystem.NormalizeUnion(alts)
	case 5:
		return g.Shape()
	default:
		return g.Scalar()
	}
}

// ExactShape generates a fixed-arity shape of up to MaxElems elements.
func (g *Generator) ExactShape() typesystem.TupleShape {
	elems := make([]typesystem.Type, g.src.Intn(MaxElems+1))
	for i := range elems {
		elems[i] = g.Type()
	}
	return typesystem.NewExactShape(elems...)
}

// OpenShape generates a shape with an open middle segment and random
// fixed flanks.
func (g *Generator) OpenShape() typesystem.TupleShape {
	prefix := make([]typesystem.Type, g.src.Intn(3))
	for i := range prefix {
		prefix[i] = g.Type()
	}
	suffix := make([]typesystem.Type, g.src.Intn(3))
	for i := range suffix {
		suffix[i] = g.Type()
	}
	return typesystem.NewOpenShape(prefix, g.Type(), suffix)
}

// Shape generates an exact shape two times out of three, an open one
// otherwise, roughly matching the mix real annotations show.
func (g *Generator) Shape() typesystem.TupleShape {
	if g.src.Intn(3) < 2 {
		return g.ExactShape()
	}
	return g.OpenShape()
}

var targetNames = []string{"a", "b", "c", "d", "e", "f"}

// Pattern generates a destructuring pattern of n targets. withRest turns
// one random target into the collect-rest slot; the pattern stays
// well-formed either way.
func (g *Generator) Pattern(n int, withRest bool) []typesystem.BindTarget {
	if n <= 0 {
		n = 1
	}
	targets := make([]typesystem.BindTarget, n)
	for i := range targets {
		targets[i] = typesystem.BindTarget{Name: targetNames[i%len(targetNames)]}
	}
	if withRest {
		targets[g.src.Intn(n)].CollectRest = true
	}
	return targets
}

// Signature generates a generic signature whose parameter shape mentions
// every declared type parameter, so a clean specialization must bind all
// of them.
func (g *Generator) Signature() typesystem.Signature {
	var sig typesystem.Signature
	var prefix, suffix []typesystem.Type

	scalars := g.src.Intn(3)
	for i := 0; i < scalars; i++ {
		name := string(rune('T' + i))
		sig.TypeParams = append(sig.TypeParams, typesystem.TypeParam{
			Name: name,
			Kind: typesystem.ScalarParam,
		})
		prefix = append(prefix, typesystem.TVar{Name: name})
	}
	if g.src.Intn(2) == 0 {
		sig.TypeParams = append(sig.TypeParams, typesystem.TypeParam{
			Name: "Rest",
			Kind: typesystem.VariadicTupleParam,
		})
		if g.src.Intn(3) == 0 {
			suffix = append(suffix, g.Scalar())
		}
		sig.Params = typesystem.NewOpenShape(prefix, typesystem.TVariadic{Name: "Rest"}, suffix)
	} else {
		if g.src.Intn(3) == 0 {
			prefix = append(prefix, g.Scalar())
		}
		sig.Params = typesystem.NewExactShape(prefix...)
	}

	if g.src.Intn(3) != 0 {
		sig.Result = sig.Params
	}
	return sig
}

// ArgsFor generates an exact argument shape long enough to satisfy sig's
// parameter shape, with pad extra positions when the parameters are open.
func (g *Generator) ArgsFor(sig typesystem.Signature) typesystem.TupleShape {
	n := sig.Params.MinLen()
	if !sig.Params.IsExact() {
		n += g.src.Intn(3)
	}
	elems := make([]typesystem.Type, n)
	for i := range elems {
		elems[i] = g.Scalar()
	}
	return typesystem.NewExactShape(elems...)
}
