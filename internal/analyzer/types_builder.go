package analyzer

import (
	"fmt"

	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/diagnostics"
	"github.com/funvibe/funshape/internal/symbols"
	"github.com/funvibe/funshape/internal/token"
	"github.com/funvibe/funshape/internal/typesystem"
)

// BuildType converts a descriptor type node into a typesystem.Type.
// Malformed annotations are reported through errs and lower to Unknown so
// the surrounding check keeps going.
func BuildType(t ast.TypeExpr, table *symbols.SymbolTable, errs *[]*diagnostics.DiagnosticError) typesystem.Type {
	if t == nil {
		return typesystem.TUnknown{}
	}
	switch t := t.(type) {
	case *ast.NamedType:
		// Aliases and the built-in names resolve through the table;
		// anything else is an opaque concrete type.
		if table != nil {
			if resolved, ok := table.ResolveType(t.Name); ok {
				return resolved
			}
		}
		return typesystem.TCon{Name: t.Name}

	case *ast.VarType:
		if table != nil {
			if resolved, ok := table.ResolveType(t.Name); ok {
				switch rv := resolved.(type) {
				case typesystem.TVar:
					return rv
				case typesystem.TVariadic:
					addBuildError(errs, diagnostics.ErrT001, t.GetToken(),
						fmt.Sprintf("variadic parameter '%s' used as a single type", t.Name))
					return typesystem.TUnknown{}
				default:
					addBuildError(errs, diagnostics.ErrT001, t.GetToken(),
						fmt.Sprintf("'%s' already names a type, not a type parameter", t.Name))
					return typesystem.TUnknown{}
				}
			}
			// First reference declares the parameter in the current
			// scope so later occurrences resolve to the same variable.
			tv := typesystem.TVar{Name: t.Name}
			table.DefineType(t.Name, tv)
			return tv
		}
		return typesystem.TVar{Name: t.Name}

	case *ast.VariadicRefType:
		addBuildError(errs, diagnostics.ErrT001, t.GetToken(),
			fmt.Sprintf("variadic parameter '%s' must appear unpacked inside a tuple annotation", t.Name))
		return typesystem.TUnknown{}

	case *ast.SeqType:
		return typesystem.TSeq{Elem: BuildType(t.Elem, table, errs)}

	case *ast.UnionType:
		alts := make([]typesystem.Type, 0, len(t.Alts))
		for _, alt := range t.Alts {
			alts = append(alts, BuildType(alt, table, errs))
		}
		return typesystem.NormalizeUnion(alts)

	case *ast.TupleType:
		shape, ok := BuildShape(t, table, errs)
		if !ok {
			return typesystem.TUnknown{}
		}
		return shape

	default:
		return typesystem.TUnknown{}
	}
}

// BuildShape lowers a tuple annotation to a TupleShape. The second result
// is false when the annotation cannot be represented; a diagnostic has
// been staged by then. A nil annotation is the empty exact tuple.
func BuildShape(tt *ast.TupleType, table *symbols.SymbolTable, errs *[]*diagnostics.DiagnosticError) (typesystem.TupleShape, bool) {
	if tt == nil {
		return typesystem.NewExactShape(), true
	}

	if tt.Ellipsis {
		if len(tt.Entries) != 1 || tt.Entries[0].Unpack {
			addBuildError(errs, diagnostics.ErrT001, tt.GetToken(),
				"'...' requires exactly one plain element type before it")
			return typesystem.TupleShape{}, false
		}
		return typesystem.NewHomogeneousShape(BuildType(tt.Entries[0].Type, table, errs)), true
	}

	var prefix, suffix []typesystem.Type
	var variadic typesystem.Type

	appendElem := func(el typesystem.Type) {
		if variadic != nil {
			suffix = append(suffix, el)
		} else {
			prefix = append(prefix, el)
		}
	}

	for _, entry := range tt.Entries {
		if !entry.Unpack {
			appendElem(BuildType(entry.Type, table, errs))
			continue
		}

		switch inner := entry.Type.(type) {
		case *ast.VariadicRefType:
			if variadic != nil {
				addBuildError(errs, diagnostics.ErrT001, tt.GetToken(),
					"tuple annotation cannot carry a second open segment")
				return typesystem.TupleShape{}, false
			}
			ref := resolveVariadicRef(inner, table, errs)
			if ref == nil {
				return typesystem.TupleShape{}, false
			}
			variadic = ref

		case *ast.TupleType:
			innerShape, ok := BuildShape(inner, table, errs)
			if !ok {
				return typesystem.TupleShape{}, false
			}
			if innerShape.IsExact() {
				// Unpacking an exact tuple splices its elements in place.
				for _, el := range innerShape.Prefix {
					appendElem(el)
				}
				continue
			}
			if variadic != nil {
				addBuildError(errs, diagnostics.ErrT001, tt.GetToken(),
					"tuple annotation cannot carry a second open segment")
				return typesystem.TupleShape{}, false
			}
			prefix = append(prefix, innerShape.Prefix...)
			variadic = innerShape.Variadic
			suffix = append(suffix, innerShape.Suffix...)

		case nil:
			addBuildError(errs, diagnostics.ErrT001, tt.GetToken(),
				"unpack marker without a type")
			return typesystem.TupleShape{}, false

		default:
			addBuildError(errs, diagnostics.ErrT001, inner.GetToken(),
				fmt.Sprintf("cannot unpack %s", inner.TokenLiteral()))
			return typesystem.TupleShape{}, false
		}
	}

	return typesystem.NewOpenShape(prefix, variadic, suffix), true
}

// BuildSignature lowers a generic signature descriptor. Declared type
// parameters live in an enclosed scope so they never collide with global
// aliases.
func BuildSignature(sig *ast.GenericSignature, table *symbols.SymbolTable, errs *[]*diagnostics.DiagnosticError) (typesystem.Signature, bool) {
	if sig == nil {
		addBuildError(errs, diagnostics.ErrT001, token.Token{}, "call requires a signature")
		return typesystem.Signature{}, false
	}

	inner := table
	if table != nil {
		inner = symbols.NewEnclosedSymbolTable(table, symbols.ScopeSignature)
	}

	params := make([]typesystem.TypeParam, 0, len(sig.TypeParams))
	for _, p := range sig.TypeParams {
		if inner != nil && inner.IsDefinedLocally(p.Name) {
			addBuildError(errs, diagnostics.ErrT001, p.Token,
				fmt.Sprintf("duplicate type parameter '%s'", p.Name))
			return typesystem.Signature{}, false
		}
		if p.Variadic {
			params = append(params, typesystem.TypeParam{Name: p.Name, Kind: typesystem.VariadicTupleParam})
			if inner != nil {
				inner.DefineType(p.Name, typesystem.TVariadic{Name: p.Name})
			}
		} else {
			params = append(params, typesystem.TypeParam{Name: p.Name, Kind: typesystem.ScalarParam})
			if inner != nil {
				inner.DefineType(p.Name, typesystem.TVar{Name: p.Name})
			}
		}
	}

	shape, ok := BuildShape(sig.Params, inner, errs)
	if !ok {
		return typesystem.Signature{}, false
	}

	out := typesystem.Signature{TypeParams: params, Params: shape}
	if sig.Result != nil {
		out.Result = BuildType(sig.Result, inner, errs)
	}
	return out, true
}

func resolveVariadicRef(ref *ast.VariadicRefType, table *symbols.SymbolTable, errs *[]*diagnostics.DiagnosticError) typesystem.Type {
	if table != nil {
		if resolved, ok := table.ResolveType(ref.Name); ok {
			if v, ok := resolved.(typesystem.TVariadic); ok {
				return v
			}
			addBuildError(errs, diagnostics.ErrT001, ref.GetToken(),
				fmt.Sprintf("'%s' is not a variadic tuple parameter", ref.Name))
			return nil
		}
		// A caller forwarding its own variadic parameter introduces the
		// name here, same as first-use scalar parameters.
		v := typesystem.TVariadic{Name: ref.Name}
		table.DefineType(ref.Name, v)
		return v
	}
	return typesystem.TVariadic{Name: ref.Name}
}

func addBuildError(errs *[]*diagnostics.DiagnosticError, code diagnostics.ErrorCode, tok token.Token, args ...interface{}) {
	if errs == nil {
		return
	}
	*errs = append(*errs, diagnostics.NewError(code, tok, args...))
}
