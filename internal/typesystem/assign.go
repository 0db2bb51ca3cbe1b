package typesystem

// ElemAssigner is the element-assignability predicate supplied by the
// surrounding type system. Shape-level alignment stays in this package;
// individual element comparisons go through the predicate as a black box.
type ElemAssigner interface {
	Assignable(src, dst Type) bool
}

// DefaultAssigner is a structural predicate for self-contained use. Types
// are assignable when they render identically; Unknown is assignable in
// both directions; Never is assignable to everything; a union source must
// fit member-by-member while a union target accepts any member match;
// nested shapes and sequences recurse structurally.
type DefaultAssigner struct{}

func (d DefaultAssigner) Assignable(src, dst Type) bool {
	if isUnknown(src) || isUnknown(dst) {
		return true
	}
	if _, ok := src.(TNever); ok {
		return true
	}
	if src.String() == dst.String() {
		return true
	}
	if u, ok := src.(TUnion); ok {
		for _, m := range u.Types {
			if !d.Assignable(m, dst) {
				return false
			}
		}
		return true
	}
	if u, ok := dst.(TUnion); ok {
		for _, m := range u.Types {
			if d.Assignable(src, m) {
				return true
			}
		}
		return false
	}
	if s, ok := src.(TSeq); ok {
		if t, ok2 := dst.(TSeq); ok2 {
			return d.Assignable(s.Elem, t.Elem)
		}
	}
	if _, ok := src.(TupleShape); ok {
		switch dst.(type) {
		case TupleShape, TSeq:
			return len(CheckAssignable(src, dst, d)) == 0
		}
	}
	return false
}

// CheckAssignable decides whether src is assignable to dst. An empty result
// means assignable. Every failing position is collected rather than
// stopping at the first. Union sources must satisfy dst with every
// alternative (failures aggregate); union targets accept src if any
// alternative does.
func CheckAssignable(src, dst Type, ea ElemAssigner) []Failure {
	if isUnknown(src) || isUnknown(dst) {
		return nil
	}

	if u, ok := src.(TUnion); ok {
		failures := []Failure{}
		for _, alt := range u.Types {
			failures = append(failures, CheckAssignable(alt, dst, ea)...)
		}
		return failures
	}

	if u, ok := dst.(TUnion); ok {
		for _, alt := range u.Types {
			if len(CheckAssignable(src, alt, ea)) == 0 {
				return nil
			}
		}
		return []Failure{&ElementTypeMismatchError{Position: -1, Source: src, Target: dst}}
	}

	switch target := dst.(type) {
	case TSeq:
		return checkSeqTarget(src, target, ea)
	case TupleShape:
		if srcShape, ok := asShape(src); ok {
			return checkShapes(srcShape, target, ea)
		}
	}

	if ea.Assignable(src, dst) {
		return nil
	}
	return []Failure{&ElementTypeMismatchError{Position: -1, Source: src, Target: dst}}
}

// asShape normalizes sequence sources: an iterable of T behaves like the
// homogeneous shape (*T) on the source side of a check.
func asShape(t Type) (TupleShape, bool) {
	switch typ := t.(type) {
	case TupleShape:
		return typ, true
	case TSeq:
		return NewHomogeneousShape(typ.Elem), true
	}
	return TupleShape{}, false
}

func checkShapes(src, dst TupleShape, ea ElemAssigner) []Failure {
	if dst.IsExact() {
		if !src.IsExact() {
			// The source's length is unknowable; it can never satisfy a
			// fixed arity.
			return []Failure{NewSizeMismatch(len(dst.Prefix), src.MinLen(), true)}
		}
		if len(src.Prefix) != len(dst.Prefix) {
			return []Failure{NewSizeMismatch(len(dst.Prefix), len(src.Prefix), false)}
		}
		failures := []Failure{}
		for i := range dst.Prefix {
			if !ea.Assignable(src.Prefix[i], dst.Prefix[i]) {
				failures = append(failures, NewElementTypeMismatch(i, src.Prefix[i], dst.Prefix[i]))
			}
		}
		return failures
	}

	pt, st := len(dst.Prefix), len(dst.Suffix)

	if src.IsExact() {
		n := len(src.Prefix)
		if n < dst.MinLen() {
			return []Failure{NewSizeMismatch(dst.MinLen(), n, false)}
		}
		failures := []Failure{}
		for i := 0; i < pt; i++ {
			if !ea.Assignable(src.Prefix[i], dst.Prefix[i]) {
				failures = append(failures, NewElementTypeMismatch(i, src.Prefix[i], dst.Prefix[i]))
			}
		}
		for j := 0; j < st; j++ {
			pos := n - 1 - j
			if !ea.Assignable(src.Prefix[pos], dst.Suffix[st-1-j]) {
				failures = append(failures, NewElementTypeMismatch(pos, src.Prefix[pos], dst.Suffix[st-1-j]))
			}
		}
		for i := pt; i < n-st; i++ {
			if !ea.Assignable(src.Prefix[i], dst.Variadic) {
				failures = append(failures, NewElementTypeMismatch(i, src.Prefix[i], dst.Variadic))
			}
		}
		return failures
	}

	// Open source against open target: the source only guarantees its
	// minimum length, so any fixed target position past the source's
	// pinned region is checked against the union of types that could
	// occupy it.
	if src.MinLen() < dst.MinLen() {
		return []Failure{NewSizeMismatch(dst.MinLen(), src.MinLen(), true)}
	}
	failures := []Failure{}
	for i := 0; i < pt; i++ {
		member := src.leadingMember(i, src.MinLen())
		if !ea.Assignable(member, dst.Prefix[i]) {
			failures = append(failures, NewElementTypeMismatch(i, member, dst.Prefix[i]))
		}
	}
	for j := 0; j < st; j++ {
		member := src.trailingMember(j, src.MinLen())
		if !ea.Assignable(member, dst.Suffix[st-1-j]) {
			f := NewElementTypeMismatch(j+1, member, dst.Suffix[st-1-j])
			f.FromEnd = true
			failures = append(failures, f)
		}
	}
	if !ea.Assignable(src.Variadic, dst.Variadic) {
		failures = append(failures, NewElementTypeMismatch(len(src.Prefix), src.Variadic, dst.Variadic))
	}
	for i := pt; i < len(src.Prefix); i++ {
		if !ea.Assignable(src.Prefix[i], dst.Variadic) {
			failures = append(failures, NewElementTypeMismatch(i, src.Prefix[i], dst.Variadic))
		}
	}
	for j := st; j < len(src.Suffix); j++ {
		member := src.Suffix[len(src.Suffix)-1-j]
		if !ea.Assignable(member, dst.Variadic) {
			f := NewElementTypeMismatch(j+1, member, dst.Variadic)
			f.FromEnd = true
			failures = append(failures, f)
		}
	}
	return failures
}

// checkSeqTarget handles the non-tuple "iterable of T" consumer: every
// member type of the source must be assignable to the sequence's element.
func checkSeqTarget(src Type, dst TSeq, ea ElemAssigner) []Failure {
	switch s := src.(type) {
	case TSeq:
		if ea.Assignable(s.Elem, dst.Elem) {
			return nil
		}
		return []Failure{&ElementTypeMismatchError{Position: -1, Source: s.Elem, Target: dst.Elem}}
	case TupleShape:
		failures := []Failure{}
		for i, el := range s.Prefix {
			if !ea.Assignable(el, dst.Elem) {
				failures = append(failures, NewElementTypeMismatch(i, el, dst.Elem))
			}
		}
		if s.Variadic != nil && !ea.Assignable(s.Variadic, dst.Elem) {
			failures = append(failures, NewElementTypeMismatch(len(s.Prefix), s.Variadic, dst.Elem))
		}
		for j := range s.Suffix {
			el := s.Suffix[len(s.Suffix)-1-j]
			if !ea.Assignable(el, dst.Elem) {
				f := NewElementTypeMismatch(j+1, el, dst.Elem)
				f.FromEnd = true
				failures = append(failures, f)
			}
		}
		return failures
	default:
		if ea.Assignable(src, dst) {
			return nil
		}
		return []Failure{&ElementTypeMismatchError{Position: -1, Source: src, Target: dst}}
	}
}

func isUnknown(t Type) bool {
	_, ok := t.(TUnknown)
	return ok
}
