package typesystem

import "strings"

// TupleShape is the central entity of the algebra. It represents an ordered
// tuple type as three parts: a fixed prefix, an optional open segment that
// repeats zero or more times, and a fixed suffix after the open segment.
//
//	(int, str)        Prefix=[int, str]                      exact
//	(*int)            Variadic=int                           homogeneous
//	(int, *str, bool) Prefix=[int] Variadic=str Suffix=[bool] mixed
//
// Invariants: at most one open segment; if Variadic is nil the shape is
// exact and Suffix is empty; () is the unique shape with all three parts
// empty. Shapes are immutable value objects: constructed once, then only
// read, and compared by structure (String doubles as the structural key).
type TupleShape struct {
	Prefix   []Type
	Variadic Type // element type or TVariadic reference; nil for exact shapes
	Suffix   []Type
}

// NewExactShape builds a fixed-arity shape from its element types.
func NewExactShape(elems ...Type) TupleShape {
	return TupleShape{Prefix: elems}
}

// NewHomogeneousShape builds an unbounded shape whose every element is elem.
func NewHomogeneousShape(elem Type) TupleShape {
	return TupleShape{Variadic: elem}
}

// NewOpenShape builds a mixed shape. With a nil variadic the parts collapse
// into a single exact prefix.
func NewOpenShape(prefix []Type, variadic Type, suffix []Type) TupleShape {
	if variadic == nil {
		return TupleShape{Prefix: append(append([]Type{}, prefix...), suffix...)}
	}
	return TupleShape{Prefix: prefix, Variadic: variadic, Suffix: suffix}
}

// IsExact reports whether the shape has a statically known length.
func (t TupleShape) IsExact() bool {
	return t.Variadic == nil
}

// MinLen is the number of elements every inhabitant has at least:
// len(prefix) + len(suffix). For exact shapes it is the exact length.
func (t TupleShape) MinLen() int {
	return len(t.Prefix) + len(t.Suffix)
}

// Arity returns the element count and whether it is exact. For open shapes
// the count is a minimum.
func (t TupleShape) Arity() (int, bool) {
	return t.MinLen(), t.IsExact()
}

// Segments returns the three-part decomposition.
func (t TupleShape) Segments() (prefix []Type, variadic Type, suffix []Type) {
	return t.Prefix, t.Variadic, t.Suffix
}

// MemberTypes returns every type that can occur somewhere in the shape:
// prefix elements, the open segment's type (or unresolved reference), and
// suffix elements, in order.
func (t TupleShape) MemberTypes() []Type {
	members := make([]Type, 0, len(t.Prefix)+len(t.Suffix)+1)
	members = append(members, t.Prefix...)
	if t.Variadic != nil {
		members = append(members, t.Variadic)
	}
	members = append(members, t.Suffix...)
	return members
}

func (t TupleShape) String() string {
	parts := []string{}
	for _, el := range t.Prefix {
		parts = append(parts, el.String())
	}
	if t.Variadic != nil {
		if _, ok := t.Variadic.(TVariadic); ok {
			parts = append(parts, t.Variadic.String())
		} else {
			parts = append(parts, "*"+t.Variadic.String())
		}
	}
	for _, el := range t.Suffix {
		parts = append(parts, el.String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t TupleShape) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TupleShape) FreeTypeVariables() []TypeParam {
	params := []TypeParam{}
	for _, el := range t.Prefix {
		params = append(params, el.FreeTypeVariables()...)
	}
	if t.Variadic != nil {
		params = append(params, t.Variadic.FreeTypeVariables()...)
	}
	for _, el := range t.Suffix {
		params = append(params, el.FreeTypeVariables()...)
	}
	return uniqueParams(params)
}

// applySpliced substitutes into the shape. A bound variadic reference is
// replaced by splicing the captured shape's parts directly into place
// (flattening), never by nesting the capture as a single element.
func (t TupleShape) applySpliced(s Subst, visited map[string]bool) Type {
	newPrefix := applyAll(t.Prefix, s, visited)
	if t.Variadic == nil {
		return TupleShape{Prefix: newPrefix}
	}
	newSuffix := applyAll(t.Suffix, s, visited)

	ref, isRef := t.Variadic.(TVariadic)
	if !isRef {
		return TupleShape{
			Prefix:   newPrefix,
			Variadic: ApplyWithCycleCheck(t.Variadic, s, visited),
			Suffix:   newSuffix,
		}
	}

	bound, ok := s[ref.Name]
	if !ok || visited[ref.Name] {
		return TupleShape{Prefix: newPrefix, Variadic: ref, Suffix: newSuffix}
	}
	newVisited := copyVisited(visited)
	newVisited[ref.Name] = true

	switch captured := bound.(type) {
	case TupleShape:
		inner, _ := captured.applySpliced(s, newVisited).(TupleShape)
		merged := TupleShape{
			Prefix:   append(append([]Type{}, newPrefix...), inner.Prefix...),
			Variadic: inner.Variadic,
			Suffix:   append(append([]Type{}, inner.Suffix...), newSuffix...),
		}
		if merged.Variadic == nil {
			// Exact capture: the whole result is fixed.
			merged.Prefix = append(merged.Prefix, merged.Suffix...)
			merged.Suffix = nil
		}
		return merged
	case TVariadic:
		return TupleShape{Prefix: newPrefix, Variadic: captured, Suffix: newSuffix}
	default:
		return TupleShape{Prefix: newPrefix, Variadic: ref, Suffix: newSuffix}
	}
}

func applyAll(types []Type, s Subst, visited map[string]bool) []Type {
	if types == nil {
		return nil
	}
	out := make([]Type, len(types))
	for i, t := range types {
		out[i] = ApplyWithCycleCheck(t, s, visited)
	}
	return out
}

// leadingMember is the type occupying position i counted from the start of
// an open shape. Inside the prefix the position is pinned. Past it, the
// position may fall in the open segment or alias a suffix element once the
// open segment collapses, so the result is the union of every candidate.
// minTotal is the smallest total length the context guarantees (at least
// MinLen); larger guarantees pin more suffix positions away.
func (t TupleShape) leadingMember(i, minTotal int) Type {
	if i < len(t.Prefix) {
		return t.Prefix[i]
	}
	members := []Type{t.Variadic}
	// suffix[s] lands on position i only when the total length is
	// len(suffix) + i - s, which must be at least minTotal.
	maxS := i - minTotal + len(t.Suffix)
	for s := 0; s <= maxS && s < len(t.Suffix); s++ {
		members = append(members, t.Suffix[s])
	}
	return NormalizeUnion(members)
}

// trailingMember is the type occupying position j counted from the end of
// an open shape (j = 0 is the last element). The suffix always trails the
// open segment, so positions inside the suffix are pinned; past it the
// candidates are the open segment and any prefix element close enough to
// the end under the minTotal guarantee.
func (t TupleShape) trailingMember(j, minTotal int) Type {
	if j < len(t.Suffix) {
		return t.Suffix[len(t.Suffix)-1-j]
	}
	members := []Type{t.Variadic}
	// prefix[p] lands on the j-th position from the end only when the
	// total length is p + 1 + j, which must be at least minTotal.
	minP := minTotal - 1 - j
	if minP < 0 {
		minP = 0
	}
	for p := minP; p < len(t.Prefix); p++ {
		members = append(members, t.Prefix[p])
	}
	return NormalizeUnion(members)
}
