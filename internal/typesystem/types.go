package typesystem

import (
	"sort"
	"strings"
)

// Type is the interface for all types in the tuple algebra.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TypeParam
}

// ParamKind separates scalar type parameters from variadic tuple parameters.
// The two bind differently: a scalar binds a single type, a variadic binds a
// captured TupleShape and substitution splices the capture in place.
type ParamKind int

const (
	ScalarParam        ParamKind = 0
	VariadicTupleParam ParamKind = 1
)

// TypeParam is a declared type parameter: a name plus its kind.
type TypeParam struct {
	Name string
	Kind ParamKind
}

// TCon represents a concrete named type (e.g. int, str, float).
type TCon struct {
	Name string
}

func (t TCon) String() string { return t.Name }

func (t TCon) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TCon) FreeTypeVariables() []TypeParam {
	return []TypeParam{}
}

// TVar represents a scalar type parameter occurrence (e.g. T, U).
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }

func (t TVar) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVar) FreeTypeVariables() []TypeParam {
	return []TypeParam{{Name: t.Name, Kind: ScalarParam}}
}

// TVariadic represents a variadic tuple parameter occurrence (e.g. *Ts).
// It is legal only as the open segment of a TupleShape. Once bound, the
// captured shape is spliced into the position where the reference appeared;
// a reference reached outside a shape context stands for "any element of
// the capture" and collapses to the union of the capture's member types.
type TVariadic struct {
	Name string
}

func (t TVariadic) String() string { return "*" + t.Name }

func (t TVariadic) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TVariadic) FreeTypeVariables() []TypeParam {
	return []TypeParam{{Name: t.Name, Kind: VariadicTupleParam}}
}

// TSeq represents an unbounded homogeneous sequence of Elem ("iterable of
// T"). It is the type a collect-rest target binds to and the non-tuple
// consumer target in assignability checks.
type TSeq struct {
	Elem Type
}

func (t TSeq) String() string { return "Seq[" + t.Elem.String() + "]" }

func (t TSeq) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TSeq) FreeTypeVariables() []TypeParam {
	return t.Elem.FreeTypeVariables()
}

// TUnion represents a union type (e.g. int | str).
// Types are normalized: flattened, deduplicated, and sorted for comparison.
type TUnion struct {
	Types []Type // At least 2 types
}

func (t TUnion) String() string {
	parts := []string{}
	for _, typ := range t.Types {
		parts = append(parts, typ.String())
	}
	return strings.Join(parts, " | ")
}

func (t TUnion) Apply(s Subst) Type {
	return ApplyWithCycleCheck(t, s, make(map[string]bool))
}

func (t TUnion) FreeTypeVariables() []TypeParam {
	params := []TypeParam{}
	for _, typ := range t.Types {
		params = append(params, typ.FreeTypeVariables()...)
	}
	return uniqueParams(params)
}

// TNever is the empty union: no value inhabits it. It is the element type
// of a collect-rest binding whose middle region is provably empty.
type TNever struct{}

func (t TNever) String() string                 { return "Never" }
func (t TNever) Apply(s Subst) Type             { return t }
func (t TNever) FreeTypeVariables() []TypeParam { return []TypeParam{} }

// TUnknown is the placeholder produced when an operation fails. It keeps
// analysis going: every operation accepts Unknown inputs and yields Unknown
// without reporting further failures.
type TUnknown struct{}

func (t TUnknown) String() string                 { return "Unknown" }
func (t TUnknown) Apply(s Subst) Type             { return t }
func (t TUnknown) FreeTypeVariables() []TypeParam { return []TypeParam{} }

// ApplyWithCycleCheck applies substitution with cycle detection.
// This is the main entry point for substitution application.
func ApplyWithCycleCheck(t Type, s Subst, visited map[string]bool) Type {
	if t == nil {
		return nil
	}

	switch typ := t.(type) {
	case TVar:
		if visited[typ.Name] {
			return typ // Break cycle - return the variable as-is
		}
		if replacement, ok := s[typ.Name]; ok {
			if tv, ok := replacement.(TVar); ok && tv.Name == typ.Name {
				return typ
			}
			newVisited := copyVisited(visited)
			newVisited[typ.Name] = true
			return ApplyWithCycleCheck(replacement, s, newVisited)
		}
		return typ

	case TVariadic:
		if visited[typ.Name] {
			return typ
		}
		replacement, ok := s[typ.Name]
		if !ok {
			return typ
		}
		newVisited := copyVisited(visited)
		newVisited[typ.Name] = true
		switch rep := replacement.(type) {
		case TupleShape:
			// Bare occurrence: collapse the capture to its member union.
			members := rep.MemberTypes()
			applied := make([]Type, len(members))
			for i, m := range members {
				applied[i] = ApplyWithCycleCheck(m, s, newVisited)
			}
			return NormalizeUnion(applied)
		case TVariadic:
			if rep.Name == typ.Name {
				return typ
			}
			return ApplyWithCycleCheck(rep, s, newVisited)
		default:
			// A variadic parameter can only be bound to a captured shape
			// or renamed to another reference.
			return typ
		}

	case TCon:
		return typ

	case TSeq:
		return TSeq{Elem: ApplyWithCycleCheck(typ.Elem, s, visited)}

	case TUnion:
		newTypes := make([]Type, len(typ.Types))
		for i, member := range typ.Types {
			newTypes[i] = ApplyWithCycleCheck(member, s, visited)
		}
		return NormalizeUnion(newTypes)

	case TupleShape:
		return typ.applySpliced(s, visited)

	default:
		// Fallback for any other types
		return t.Apply(s)
	}
}

func copyVisited(m map[string]bool) map[string]bool {
	newMap := make(map[string]bool, len(m))
	for k, v := range m {
		newMap[k] = v
	}
	return newMap
}

// NormalizeUnion creates a normalized union type.
// It flattens nested unions, removes duplicates, and sorts types.
// Zero members normalize to Never, a single member to itself.
func NormalizeUnion(types []Type) Type {
	// Flatten nested unions
	flat := []Type{}
	for _, t := range types {
		if u, ok := t.(TUnion); ok {
			flat = append(flat, u.Types...)
		} else {
			flat = append(flat, t)
		}
	}

	// Remove duplicates (using string representation for simplicity)
	seen := make(map[string]bool)
	unique := []Type{}
	for _, t := range flat {
		s := t.String()
		if !seen[s] {
			seen[s] = true
			unique = append(unique, t)
		}
	}

	if len(unique) == 0 {
		return TNever{}
	}

	// If only one type remains, return it directly
	if len(unique) == 1 {
		return unique[0]
	}

	// Sort for deterministic comparison
	sort.Slice(unique, func(i, j int) bool {
		return unique[i].String() < unique[j].String()
	})

	return TUnion{Types: unique}
}

// Subst is a mapping from type parameter names to bound types. Scalar
// parameters map to single types; variadic parameters map to captured
// TupleShape values.
type Subst map[string]Type

// Compose combines two substitutions.
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := Subst{}
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s1 {
		subst[k] = v.Apply(s2)
	}
	return subst
}

func uniqueParams(params []TypeParam) []TypeParam {
	unique := []TypeParam{}
	seen := map[string]bool{}
	for _, p := range params {
		if !seen[p.Name] {
			seen[p.Name] = true
			unique = append(unique, p)
		}
	}
	return unique
}
