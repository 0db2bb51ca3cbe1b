package analyzer

import (
	"fmt"

	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/diagnostics"
	"github.com/funvibe/funshape/internal/token"
	"github.com/funvibe/funshape/internal/typesystem"
)

// CheckIndex resolves the type of a literal-index access. Failures become
// diagnostics at the node's token; the result degrades to Unknown rather
// than stopping the walk.
func (a *Analyzer) CheckIndex(node *ast.IndexExpression) typesystem.Type {
	recv := BuildType(node.Receiver, a.table, &a.errors)
	result, failures := a.cache.ElementAt(recv, node.Index)
	a.reportFailures(node.GetToken(), failures, diagnostics.ErrT001)
	return result
}

// CheckAssign verifies that a Source-typed value satisfies the Target
// annotation. It returns true when the assignment is admissible.
func (a *Analyzer) CheckAssign(node *ast.AssignExpression) bool {
	src := BuildType(node.Source, a.table, &a.errors)
	dst := BuildType(node.Target, a.table, &a.errors)
	failures := a.cache.CheckAssignable(src, dst, a.assigner)
	a.reportFailures(node.GetToken(), failures, diagnostics.ErrT001)
	return len(failures) == 0
}

// CheckDestructure types every pattern target against the source and
// defines the resulting bindings in the table. A union source is checked
// once per alternative; each target then binds the union of its
// per-alternative types.
func (a *Analyzer) CheckDestructure(node *ast.DestructureExpression) []typesystem.Binding {
	src := BuildType(node.Source, a.table, &a.errors)

	if node.Pattern == nil {
		a.addError(diagnostics.NewError(diagnostics.ErrT005, node.GetToken(), "missing pattern"))
		return nil
	}

	targets := make([]typesystem.BindTarget, len(node.Pattern.Targets))
	for i, t := range node.Pattern.Targets {
		targets[i] = typesystem.BindTarget{Name: t.Name, CollectRest: t.CollectRest}
	}

	var bindings []typesystem.Binding
	if u, ok := src.(typesystem.TUnion); ok {
		bindings = a.destructureUnion(targets, u, node.Pattern.GetToken())
	} else {
		var failures []typesystem.Failure
		bindings, failures = typesystem.Destructure(targets, src)
		a.reportFailures(node.Pattern.GetToken(), failures, diagnostics.ErrT005)
	}

	for _, b := range bindings {
		if b.Name != "" {
			a.table.Define(b.Name, b.Type)
		}
	}
	return bindings
}

// destructureUnion expands a union source, destructures every alternative
// and merges the per-target types of the alternatives that fit. Failures
// are reported for every alternative that cannot satisfy the pattern;
// only when none fits do the targets degrade to Unknown.
func (a *Analyzer) destructureUnion(targets []typesystem.BindTarget, u typesystem.TUnion, tok token.Token) []typesystem.Binding {
	perTarget := make([][]typesystem.Type, len(targets))
	viable := 0
	for _, alt := range u.Types {
		bs, fs := typesystem.Destructure(targets, alt)
		a.reportFailures(tok, fs, diagnostics.ErrT005)
		if len(fs) > 0 {
			continue
		}
		viable++
		for i, b := range bs {
			perTarget[i] = append(perTarget[i], b.Type)
		}
	}

	out := make([]typesystem.Binding, len(targets))
	for i, tgt := range targets {
		if viable == 0 {
			var bt typesystem.Type = typesystem.TUnknown{}
			if tgt.CollectRest {
				bt = typesystem.TSeq{Elem: typesystem.TUnknown{}}
			}
			out[i] = typesystem.Binding{Name: tgt.Name, Type: bt}
			continue
		}
		out[i] = typesystem.Binding{Name: tgt.Name, Type: typesystem.NormalizeUnion(perTarget[i])}
	}
	return out
}

// CheckCall specializes a generic signature against the call's argument
// shape, verifies the arguments against the specialized parameters and
// returns the specialized result plus the substitution that produced it.
func (a *Analyzer) CheckCall(node *ast.CallExpression) (typesystem.Type, typesystem.Subst) {
	sig, ok := BuildSignature(node.Signature, a.table, &a.errors)
	if !ok {
		return typesystem.TUnknown{}, nil
	}
	args, ok := BuildShape(node.Args, a.table, &a.errors)
	if !ok {
		return typesystem.TUnknown{}, nil
	}

	result, subst, failures := typesystem.Specialize(sig, args)
	a.reportFailures(node.GetToken(), failures, diagnostics.ErrT001)
	if len(failures) > 0 {
		return result, subst
	}

	// Binding done, the arguments still have to fit the now-concrete
	// parameter shape.
	specialized := sig.Params.Apply(subst)
	a.reportFailures(node.GetToken(), a.cache.CheckAssignable(args, specialized, a.assigner), diagnostics.ErrT001)
	return result, subst
}

func (a *Analyzer) reportFailures(tok token.Token, failures []typesystem.Failure, malformedCode diagnostics.ErrorCode) {
	for _, f := range failures {
		a.addError(failureToDiagnostic(tok, f, malformedCode))
	}
}

// failureToDiagnostic maps a core failure onto a coded diagnostic.
// MalformedShape maps to the caller's code since both bad annotations
// (T001) and bad patterns (T005) surface as that kind.
func failureToDiagnostic(tok token.Token, f typesystem.Failure, malformedCode diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	switch e := f.(type) {
	case *typesystem.MalformedShapeError:
		return diagnostics.NewError(malformedCode, tok, e.Reason)

	case *typesystem.SizeMismatchError:
		actual := fmt.Sprintf("%d", e.Actual)
		if e.ActualOpen {
			actual = fmt.Sprintf("at least %d", e.Actual)
		}
		return diagnostics.NewError(diagnostics.ErrT002, tok, e.Required, actual)

	case *typesystem.ElementTypeMismatchError:
		pos := fmt.Sprintf("%d", e.Position)
		switch {
		case e.FromEnd:
			pos = fmt.Sprintf("%d from end", e.Position)
		case e.Position < 0:
			pos = "any"
		}
		return diagnostics.NewError(diagnostics.ErrT003, tok, e.Source, e.Target, pos)

	case *typesystem.IndexOutOfRangeError:
		return diagnostics.NewError(diagnostics.ErrT004, tok, e.Index, e.Receiver)

	default:
		return diagnostics.NewError(malformedCode, tok, f.Error())
	}
}
