package targets

import (
	"testing"

	"github.com/funvibe/funshape/pkg/shape"
	"github.com/funvibe/funshape/tests/fuzz/generators"
)

var exprNames = []string{"int", "str", "bool", "float", "Alias", "Nope"}

// fuzzExpr builds a random annotation through the public constructors,
// malformed combinations included.
func fuzzExpr(src generators.RandomSource, depth int) shape.Expr {
	if depth <= 0 {
		return shape.Named(exprNames[src.Intn(len(exprNames))])
	}
	switch src.Intn(10) {
	case 0:
		return shape.Seq(fuzzExpr(src, depth-1))
	case 1:
		alts := make([]shape.Expr, src.Intn(3)+1)
		for i := range alts {
			alts[i] = fuzzExpr(src, depth-1)
		}
		return shape.Union(alts...)
	case 2:
		return shape.Homogeneous(fuzzExpr(src, depth-1))
	case 3:
		return shape.Var("T")
	case 4:
		return shape.Variadic("Ts")
	case 5, 6:
		elems := make([]shape.Expr, src.Intn(4))
		for i := range elems {
			elems[i] = fuzzExpr(src, depth-1)
			if src.Intn(4) == 0 {
				elems[i] = shape.Unpack(elems[i])
			}
		}
		return shape.Tuple(elems...)
	default:
		return shape.Named(exprNames[src.Intn(len(exprNames))])
	}
}

// FuzzEngine drives every public operation with arbitrary annotations.
// Nothing here may panic, malformed input has to come back as
// diagnostics, and an operation's diagnostics must not leak into the
// next call.
func FuzzEngine(f *testing.F) {
	f.Add([]byte{0}, 0)
	f.Add([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, -1)
	f.Add([]byte{50, 100, 150, 200, 250}, 3)

	f.Fuzz(func(t *testing.T, data []byte, index int) {
		gen := generators.NewFromData(data)
		src := gen.Src()

		eng := shape.New()
		eng.RegisterAlias("Alias", fuzzExpr(src, 2))

		if built, _ := eng.Build(fuzzExpr(src, 3)); built == nil {
			t.Fatal("Build returned nil type")
		}

		if elem, _ := eng.Index(fuzzExpr(src, 3), index%8); elem == nil {
			t.Fatal("Index returned nil type")
		}

		eng.Assignable(fuzzExpr(src, 3), fuzzExpr(src, 3))

		targets := []shape.Target{{Name: "a"}, {Name: "b", Rest: src.Intn(2) == 0}}
		bindings, _ := eng.Destructure(targets, fuzzExpr(src, 3))
		if len(bindings) != len(targets) {
			t.Fatalf("%d targets got %d bindings", len(targets), len(bindings))
		}

		sig := shape.Signature{
			TypeParams: []shape.Param{{Name: "T"}, {Name: "Ts", Variadic: true}},
			Params:     shape.Tuple(shape.Var("T"), shape.Unpack(shape.Variadic("Ts"))),
			Result:     fuzzExpr(src, 2),
		}
		result, _, _ := eng.Specialize(sig, fuzzExpr(src, 3))
		if result == nil {
			t.Fatal("Specialize with a declared result returned nil")
		}

		// A fresh clean call on the same engine must not inherit earlier
		// diagnostics.
		eng.RegisterAlias("Clean", shape.Tuple(shape.Named("int")))
		if _, diags := eng.Build(shape.Named("Clean")); len(diags) != 0 {
			t.Fatalf("clean Build inherited diagnostics: %v", diags)
		}
	})
}
