// Package shape is the high-level embedding API for the tuple shape
// engine. Callers build annotations with the expression constructors,
// hand them to an Engine, and get back resolved types, bindings and
// coded diagnostics without touching the internal packages.
//
//	eng := shape.New()
//	eng.RegisterAlias("Pair", shape.Tuple(shape.Named("int"), shape.Named("str")))
//	t, diags := eng.Index(shape.Named("Pair"), -1)   // str
package shape

import (
	"github.com/funvibe/funshape/internal/analyzer"
	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/diagnostics"
	"github.com/funvibe/funshape/internal/token"
	"github.com/funvibe/funshape/internal/typesystem"
)

// Expr is an annotation under construction. The zero Expr is the absent
// annotation: building it yields Unknown, and a Signature with a zero
// Result declares none.
type Expr struct {
	node   ast.TypeExpr
	unpack bool
}

// Named references a concrete type or a registered alias.
func Named(name string) Expr {
	return Expr{node: &ast.NamedType{Token: token.Synthetic(name), Name: name}}
}

// Var references a scalar type parameter.
func Var(name string) Expr {
	return Expr{node: &ast.VarType{Token: token.Synthetic(name), Name: name}}
}

// Variadic references a variadic tuple parameter. It only means something
// unpacked inside a tuple: Tuple(Named("int"), Unpack(Variadic("Ts"))).
func Variadic(name string) Expr {
	return Expr{node: &ast.VariadicRefType{Token: token.Synthetic("*" + name), Name: name}}
}

// Seq is a sequence annotation with no length information.
func Seq(elem Expr) Expr {
	return Expr{node: &ast.SeqType{Token: token.Synthetic("Seq"), Elem: elem.node}}
}

// Union is the union of the given alternatives.
func Union(alts ...Expr) Expr {
	nodes := make([]ast.TypeExpr, len(alts))
	for i, a := range alts {
		nodes[i] = a.node
	}
	return Expr{node: &ast.UnionType{Token: token.Synthetic("|"), Alts: nodes}}
}

// Tuple is an exact tuple annotation, unless an element is wrapped in
// Unpack, in which case that element splices in.
func Tuple(elems ...Expr) Expr {
	return Expr{node: tupleNode(elems)}
}

// Homogeneous is the unknown-length tuple annotation (elem, ...).
func Homogeneous(elem Expr) Expr {
	tt := tupleNode([]Expr{elem})
	tt.Ellipsis = true
	return Expr{node: tt}
}

// Unpack marks a tuple element for splicing: an inner tuple inlines its
// elements, a variadic reference stands for a whole segment.
func Unpack(e Expr) Expr {
	e.unpack = true
	return e
}

func tupleNode(elems []Expr) *ast.TupleType {
	tt := &ast.TupleType{Token: token.Synthetic("(")}
	for _, el := range elems {
		tt.Entries = append(tt.Entries, ast.TupleEntry{Type: el.node, Unpack: el.unpack})
	}
	return tt
}

// Target is one destructuring slot. Rest marks the collect-rest target.
type Target struct {
	Name string
	Rest bool
}

// Param declares one type parameter of a Signature.
type Param struct {
	Name     string
	Variadic bool
}

// Signature is a generic callable surface for Specialize.
type Signature struct {
	TypeParams []Param
	Params     Expr // tuple annotation
	Result     Expr // zero value: no declared result
}

// Engine runs annotation-level operations. Aliases registered on the
// engine are visible to every later operation; the operations themselves
// are independent, so diagnostics never leak between calls.
type Engine struct {
	assigner typesystem.ElemAssigner
	aliases  []alias
}

type alias struct {
	name string
	expr Expr
}

// New builds an Engine with the default element assignability rule
// (equal renderings, Unknown and union-member acceptance).
func New() *Engine {
	return NewWithAssigner(typesystem.DefaultAssigner{})
}

// NewWithAssigner builds an Engine around a custom element assignability
// predicate.
func NewWithAssigner(ea typesystem.ElemAssigner) *Engine {
	return &Engine{assigner: ea}
}

// RegisterAlias makes name mean the given annotation in every later
// operation and reports what is wrong with the definition, if anything.
// A malformed alias still registers and means Unknown; its diagnostics
// surface here once, not on every later use. Re-registering a name
// shadows the earlier meaning.
func (e *Engine) RegisterAlias(name string, t Expr) []*diagnostics.DiagnosticError {
	an := e.analyzer()
	an.DefineAlias(name, t.node)
	e.aliases = append(e.aliases, alias{name: name, expr: t})
	return an.Errors()
}

// analyzer builds a fresh analyzer seeded with the registered aliases.
// Each operation gets its own, so implicit type parameters and
// diagnostics stay scoped to the single call. Alias replay drops its
// diagnostics; RegisterAlias already reported them.
func (e *Engine) analyzer() *analyzer.Analyzer {
	an := analyzer.NewWithAssigner(e.assigner)
	for _, a := range e.aliases {
		var sink []*diagnostics.DiagnosticError
		an.Table().DefineType(a.name, analyzer.BuildType(a.expr.node, an.Table(), &sink))
	}
	return an
}

// Build lowers an annotation to its type. Malformed annotations lower to
// Unknown and explain themselves in the diagnostics.
func (e *Engine) Build(t Expr) (typesystem.Type, []*diagnostics.DiagnosticError) {
	an := e.analyzer()
	built := an.Build(t.node)
	return built, an.Errors()
}

// Index resolves the element type of receiver at a literal index,
// negative indices counting from the end.
func (e *Engine) Index(receiver Expr, index int) (typesystem.Type, []*diagnostics.DiagnosticError) {
	an := e.analyzer()
	result := an.CheckIndex(&ast.IndexExpression{
		Token:    token.Synthetic("["),
		Receiver: receiver.node,
		Index:    index,
	})
	return result, an.Errors()
}

// Assignable reports whether a source value is assignable to the target
// annotation, with the failures as diagnostics.
func (e *Engine) Assignable(source, target Expr) (bool, []*diagnostics.DiagnosticError) {
	an := e.analyzer()
	ok := an.CheckAssign(&ast.AssignExpression{
		Token:  token.Synthetic("="),
		Source: source.node,
		Target: target.node,
	})
	return ok, an.Errors()
}

// Destructure matches a pattern of targets against the source annotation
// and returns what each name binds to. Every target gets a binding even
// on failure, so callers can keep resolving the bound names.
func (e *Engine) Destructure(targets []Target, source Expr) ([]typesystem.Binding, []*diagnostics.DiagnosticError) {
	an := e.analyzer()
	pattern := &ast.AssignPattern{Token: token.Synthetic("[")}
	for _, tgt := range targets {
		lexeme := tgt.Name
		if tgt.Rest {
			lexeme = "*" + tgt.Name
		}
		pattern.Targets = append(pattern.Targets, ast.AssignTarget{
			Token:       token.Synthetic(lexeme),
			Name:        tgt.Name,
			CollectRest: tgt.Rest,
		})
	}
	bindings := an.CheckDestructure(&ast.DestructureExpression{
		Token:   token.Synthetic("["),
		Pattern: pattern,
		Source:  source.node,
	})
	return bindings, an.Errors()
}

// Specialize binds the signature's type parameters against the argument
// tuple, verifies the arguments against the specialized parameters and
// returns the specialized result type (nil when the signature declares
// none) plus the substitution.
func (e *Engine) Specialize(sig Signature, args Expr) (typesystem.Type, typesystem.Subst, []*diagnostics.DiagnosticError) {
	an := e.analyzer()

	node := &ast.GenericSignature{Token: token.Synthetic("(")}
	for _, p := range sig.TypeParams {
		lexeme := p.Name
		if p.Variadic {
			lexeme = "*" + p.Name
		}
		node.TypeParams = append(node.TypeParams, ast.TypeParamDecl{
			Token:    token.Synthetic(lexeme),
			Name:     p.Name,
			Variadic: p.Variadic,
		})
	}
	if params, ok := sig.Params.node.(*ast.TupleType); ok {
		node.Params = params
	}
	node.Result = sig.Result.node

	argTuple, _ := args.node.(*ast.TupleType)
	result, subst := an.CheckCall(&ast.CallExpression{
		Token:     token.Synthetic("("),
		Signature: node,
		Args:      argTuple,
	})
	return result, subst, an.Errors()
}
