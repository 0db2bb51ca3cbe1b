package typesystem

// Signature is a generic declaration's tuple-shaped parameter surface: the
// declared type parameters, the parameter shape their occurrences appear
// in, and the result type the substitution feeds. At most one declared
// parameter may be a VariadicTupleParam.
type Signature struct {
	TypeParams []TypeParam
	Params     TupleShape
	Result     Type
}

// Specialize walks the declared parameter shape positionally against the
// argument shape, binding scalar parameters to the aligned argument types
// and the variadic tuple parameter, if the shape splits on one, to the
// captured middle. It returns the result type with the substitution
// applied, the substitution itself, and any failures; on failure the
// result is Unknown and the substitution nil.
//
// The specializer only binds. Whether the concrete argument elements
// actually satisfy the declared element types is the assignability
// checker's job, run by the caller against the specialized parameter
// shape.
func Specialize(sig Signature, args TupleShape) (Type, Subst, []Failure) {
	variadics := 0
	for _, p := range sig.TypeParams {
		if p.Kind == VariadicTupleParam {
			variadics++
		}
	}
	if variadics > 1 {
		return TUnknown{}, nil,
			[]Failure{NewMalformedShape("signature declares more than one variadic tuple parameter")}
	}

	subst := Subst{}
	params := sig.Params

	if params.IsExact() {
		if !args.IsExact() {
			return TUnknown{}, nil,
				[]Failure{NewSizeMismatch(len(params.Prefix), args.MinLen(), true)}
		}
		if len(args.Prefix) != len(params.Prefix) {
			return TUnknown{}, nil,
				[]Failure{NewSizeMismatch(len(params.Prefix), len(args.Prefix), false)}
		}
		for i, decl := range params.Prefix {
			bindScalar(subst, decl, args.Prefix[i])
		}
		return applyResult(sig.Result, subst), subst, nil
	}

	// The declared shape splits into leading scalars, the open segment,
	// and trailing scalars. The arguments must cover both fixed flanks;
	// whatever lies between them is the variadic parameter's capture.
	lead, trail := len(params.Prefix), len(params.Suffix)
	if args.MinLen() < lead+trail {
		return TUnknown{}, nil,
			[]Failure{NewSizeMismatch(lead+trail, args.MinLen(), !args.IsExact())}
	}

	min := args.MinLen()
	for i := 0; i < lead; i++ {
		bindScalar(subst, params.Prefix[i], argLeading(args, i, min))
	}
	for j := 0; j < trail; j++ {
		bindScalar(subst, params.Suffix[trail-1-j], argTrailing(args, j, min))
	}
	if ref, ok := params.Variadic.(TVariadic); ok {
		subst[ref.Name] = captureMiddle(args, lead, trail)
	}
	return applyResult(sig.Result, subst), subst, nil
}

// bindScalar records what a scalar parameter occurrence saw at one
// position. A parameter occurring at several positions widens to the union
// of everything it saw; concrete declared elements bind nothing.
func bindScalar(subst Subst, decl, arg Type) {
	v, ok := decl.(TVar)
	if !ok {
		return
	}
	if prev, bound := subst[v.Name]; bound {
		subst[v.Name] = NormalizeUnion([]Type{prev, arg})
		return
	}
	subst[v.Name] = arg
}

// argLeading is the argument type aligned with leading position i. For an
// open argument shape past its pinned prefix this is the candidate union,
// the same widening the open-open assignability alignment uses.
func argLeading(args TupleShape, i, minTotal int) Type {
	if args.IsExact() {
		return args.Prefix[i]
	}
	return args.leadingMember(i, minTotal)
}

// argTrailing is the argument type aligned with position j from the end.
func argTrailing(args TupleShape, j, minTotal int) Type {
	if args.IsExact() {
		return args.Prefix[len(args.Prefix)-1-j]
	}
	return args.trailingMember(j, minTotal)
}

// captureMiddle builds the shape the variadic tuple parameter captures
// once lead leading and trail trailing argument positions are claimed by
// scalars. For exact arguments it is the literal middle slice; for open
// arguments it keeps the open segment and the unclaimed fixed elements,
// which may itself still carry an unresolved variadic reference passed
// through by the call site.
func captureMiddle(args TupleShape, lead, trail int) TupleShape {
	if args.IsExact() {
		middle := args.Prefix[lead : len(args.Prefix)-trail]
		return NewExactShape(append([]Type{}, middle...)...)
	}

	var capPrefix []Type
	if lead < len(args.Prefix) {
		capPrefix = append([]Type{}, args.Prefix[lead:]...)
	}
	var capSuffix []Type
	if trail < len(args.Suffix) {
		capSuffix = append([]Type{}, args.Suffix[:len(args.Suffix)-trail]...)
	}
	return TupleShape{Prefix: capPrefix, Variadic: args.Variadic, Suffix: capSuffix}
}

func applyResult(result Type, subst Subst) Type {
	if result == nil {
		return nil
	}
	return ApplyWithCycleCheck(result, subst, make(map[string]bool))
}
