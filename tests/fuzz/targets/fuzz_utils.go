package targets

import (
	"strings"

	"github.com/funvibe/funshape/internal/typesystem"
)

// mentionsParam walks a type and reports whether any type parameter
// reference with one of the given names survives in it.
func mentionsParam(t typesystem.Type, names map[string]bool) bool {
	switch v := t.(type) {
	case nil:
		return false
	case typesystem.TVar:
		return names[v.Name]
	case typesystem.TVariadic:
		return names[v.Name]
	case typesystem.TSeq:
		return mentionsParam(v.Elem, names)
	case typesystem.TUnion:
		for _, m := range v.Types {
			if mentionsParam(m, names) {
				return true
			}
		}
		return false
	case typesystem.TupleShape:
		for _, m := range v.MemberTypes() {
			if mentionsParam(m, names) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// paramNames collects the declared type parameter names of a signature.
func paramNames(sig typesystem.Signature) map[string]bool {
	names := make(map[string]bool, len(sig.TypeParams))
	for _, p := range sig.TypeParams {
		names[p.Name] = true
	}
	return names
}

// renderFailures flattens failures for assertion messages.
func renderFailures(failures []typesystem.Failure) string {
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = f.Error()
	}
	return strings.Join(parts, "; ")
}
