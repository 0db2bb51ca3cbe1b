package typesystem

// ElementAt resolves the element type of t at a literal integer index,
// positive or negative. Union receivers fan out: each alternative is
// indexed independently, the result is the union of the successful
// alternatives, and every failing alternative contributes its own failure
// rather than short-circuiting the rest. On total failure the result is
// Unknown.
func ElementAt(t Type, index int) (Type, []Failure) {
	switch typ := t.(type) {
	case TUnknown:
		return TUnknown{}, nil
	case TSeq:
		return typ.Elem, nil
	case TUnion:
		results := []Type{}
		failures := []Failure{}
		for _, alt := range typ.Types {
			res, fails := ElementAt(alt, index)
			if len(fails) > 0 {
				failures = append(failures, fails...)
				continue
			}
			results = append(results, res)
		}
		if len(results) == 0 {
			return TUnknown{}, failures
		}
		return NormalizeUnion(results), failures
	case TupleShape:
		return typ.elementAt(index)
	default:
		return TUnknown{}, nil
	}
}

func (t TupleShape) elementAt(index int) (Type, []Failure) {
	if t.IsExact() {
		n := len(t.Prefix)
		i := index
		if i < 0 {
			i = n + i
		}
		if i < 0 || i >= n {
			return TUnknown{}, []Failure{NewIndexOutOfRange(index, n, t)}
		}
		return t.Prefix[i], nil
	}

	// Open shapes never reject an index: the open segment absorbs any
	// position. Only indices inside the prefix are statically pinned;
	// everything else, negative indices included, falls in the ambiguous
	// region and resolves to the union of every member type the position
	// could alias.
	if index >= 0 && index < len(t.Prefix) {
		return t.Prefix[index], nil
	}
	return NormalizeUnion(t.MemberTypes()), nil
}
