package typesystem

// BindTarget is one slot of a destructuring pattern: a name plus whether
// the slot collects the rest. A pattern may mark at most one target as
// collecting; names are opaque to the algebra and pass through unchanged.
type BindTarget struct {
	Name        string
	CollectRest bool
}

// Binding pairs a pattern target with the type it binds to.
type Binding struct {
	Name string
	Type Type
}

// Destructure matches an ordered pattern of binding targets against a
// source type and computes the type each target binds to. It produces one
// Binding per target even when the match fails: failed positions bind
// Unknown (a failed collect-rest binds Seq of Unknown) so the surrounding
// checker can keep analyzing the code that uses the names.
//
// Without a collect-rest target the source must be an exact shape with
// length equal to the target count; an open source's length is unknowable
// and reports SizeMismatch just as it would against a fixed-arity
// consumer. With a collect-rest target the source only needs to guarantee
// the n-1 fixed positions; the rest target absorbs the middle as a
// sequence. A sequence source has no length to check and binds its
// element type everywhere.
//
// Union sources are not handled here: the caller expands the union and
// merges per-alternative bindings itself.
func Destructure(targets []BindTarget, source Type) ([]Binding, []Failure) {
	restAt := -1
	for i, tgt := range targets {
		if !tgt.CollectRest {
			continue
		}
		if restAt >= 0 {
			return bindAllUnknown(targets, false),
				[]Failure{NewMalformedShape("pattern has more than one collect-rest target")}
		}
		restAt = i
	}

	switch src := source.(type) {
	case TUnknown:
		return bindAllUnknown(targets, true), nil
	case TSeq:
		bindings := make([]Binding, len(targets))
		for i, tgt := range targets {
			if tgt.CollectRest {
				bindings[i] = Binding{Name: tgt.Name, Type: TSeq{Elem: src.Elem}}
			} else {
				bindings[i] = Binding{Name: tgt.Name, Type: src.Elem}
			}
		}
		return bindings, nil
	case TupleShape:
		if restAt < 0 {
			return destructureFixed(targets, src)
		}
		return destructureRest(targets, src, restAt)
	default:
		return bindAllUnknown(targets, true),
			[]Failure{NewMalformedShape("cannot destructure " + source.String())}
	}
}

// destructureFixed binds a pattern with no collect-rest target. Every
// element must be consumed by exactly one target, so only an exact source
// of matching length succeeds.
func destructureFixed(targets []BindTarget, src TupleShape) ([]Binding, []Failure) {
	if !src.IsExact() {
		return bindAllUnknown(targets, true),
			[]Failure{NewSizeMismatch(len(targets), src.MinLen(), true)}
	}
	if len(src.Prefix) != len(targets) {
		return bindAllUnknown(targets, true),
			[]Failure{NewSizeMismatch(len(targets), len(src.Prefix), false)}
	}
	bindings := make([]Binding, len(targets))
	for i, tgt := range targets {
		bindings[i] = Binding{Name: tgt.Name, Type: src.Prefix[i]}
	}
	return bindings, nil
}

// destructureRest binds a pattern whose target at restAt collects the
// middle. The n-1 plain targets claim the source's leading and trailing
// positions; whatever can lie between them collapses into the rest
// target's sequence element.
func destructureRest(targets []BindTarget, src TupleShape, restAt int) ([]Binding, []Failure) {
	n := len(targets)
	lead := restAt
	trail := n - 1 - restAt

	if src.MinLen() < n-1 {
		return bindAllUnknown(targets, true),
			[]Failure{NewSizeMismatch(n-1, src.MinLen(), !src.IsExact())}
	}

	bindings := make([]Binding, n)

	if src.IsExact() {
		length := len(src.Prefix)
		for i := 0; i < lead; i++ {
			bindings[i] = Binding{Name: targets[i].Name, Type: src.Prefix[i]}
		}
		for j := 0; j < trail; j++ {
			pos := length - trail + j
			bindings[restAt+1+j] = Binding{Name: targets[restAt+1+j].Name, Type: src.Prefix[pos]}
		}
		middle := make([]Type, 0, length-lead-trail)
		for i := lead; i < length-trail; i++ {
			middle = append(middle, src.Prefix[i])
		}
		// An empty middle collapses to a sequence nothing inhabits.
		bindings[restAt] = Binding{Name: targets[restAt].Name, Type: TSeq{Elem: NormalizeUnion(middle)}}
		return bindings, nil
	}

	min := src.MinLen()
	for i := 0; i < lead; i++ {
		bindings[i] = Binding{Name: targets[i].Name, Type: src.leadingMember(i, min)}
	}
	for j := 0; j < trail; j++ {
		fromEnd := trail - 1 - j
		bindings[restAt+1+j] = Binding{Name: targets[restAt+1+j].Name, Type: src.trailingMember(fromEnd, min)}
	}

	// The rest can hold the open segment plus any fixed element the plain
	// targets did not claim: prefix elements past the leading targets and
	// suffix elements ahead of the trailing ones.
	members := []Type{}
	for p := lead; p < len(src.Prefix); p++ {
		members = append(members, src.Prefix[p])
	}
	members = append(members, src.Variadic)
	for s := 0; s < len(src.Suffix)-trail; s++ {
		members = append(members, src.Suffix[s])
	}
	bindings[restAt] = Binding{Name: targets[restAt].Name, Type: TSeq{Elem: NormalizeUnion(members)}}
	return bindings, nil
}

// bindAllUnknown is the failure fallback: every target still gets a
// binding. seqForRest keeps the collect-rest target's sequence nature when
// the pattern itself is trustworthy; a malformed pattern binds plain
// Unknown everywhere since which target really collects is unknowable.
func bindAllUnknown(targets []BindTarget, seqForRest bool) []Binding {
	bindings := make([]Binding, len(targets))
	for i, tgt := range targets {
		var t Type = TUnknown{}
		if seqForRest && tgt.CollectRest {
			t = TSeq{Elem: TUnknown{}}
		}
		bindings[i] = Binding{Name: tgt.Name, Type: t}
	}
	return bindings
}
