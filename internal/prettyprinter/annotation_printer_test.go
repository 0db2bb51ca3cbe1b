package prettyprinter

import (
	"testing"

	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/token"
)

func named(name string) *ast.NamedType {
	return &ast.NamedType{Token: token.Synthetic(name), Name: name}
}

func el(t ast.TypeExpr) ast.TupleEntry {
	return ast.TupleEntry{Type: t}
}

func unpack(t ast.TypeExpr) ast.TupleEntry {
	return ast.TupleEntry{Type: t, Unpack: true}
}

func tuple(entries ...ast.TupleEntry) *ast.TupleType {
	return &ast.TupleType{Token: token.Synthetic("("), Entries: entries}
}

func TestPrintType(t *testing.T) {
	homogeneous := tuple(el(named("str")))
	homogeneous.Ellipsis = true

	tests := []struct {
		name string
		node ast.TypeExpr
		want string
	}{
		{"named", named("int"), "int"},
		{"var", &ast.VarType{Token: token.Synthetic("T"), Name: "T"}, "T"},
		{"variadic ref", &ast.VariadicRefType{Token: token.Synthetic("*Ts"), Name: "Ts"}, "*Ts"},
		{"seq", &ast.SeqType{Token: token.Synthetic("Seq"), Elem: named("int")}, "Seq[int]"},
		{"union", &ast.UnionType{Token: token.Synthetic("|"), Alts: []ast.TypeExpr{named("int"), named("str")}}, "int | str"},
		{"empty tuple", tuple(), "()"},
		{"exact tuple", tuple(el(named("int")), el(named("str"))), "(int, str)"},
		{"homogeneous tuple", homogeneous, "(str, ...)"},
		{"unpacked inner tuple", tuple(el(named("int")), unpack(homogeneous), el(named("bool"))), "(int, *(str, ...), bool)"},
		{"unpacked variadic ref", tuple(el(named("int")), unpack(&ast.VariadicRefType{Token: token.Synthetic("*Ts"), Name: "Ts"})), "(int, *Ts)"},
		{"nil", nil, "<???>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewAnnotationPrinter()
			p.PrintType(tt.node)
			if got := p.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintNode(t *testing.T) {
	pair := tuple(el(named("int")), el(named("str")))
	sig := &ast.GenericSignature{
		Token: token.Synthetic("("),
		TypeParams: []ast.TypeParamDecl{
			{Token: token.Synthetic("T"), Name: "T"},
			{Token: token.Synthetic("*Ts"), Name: "Ts", Variadic: true},
		},
		Params: tuple(
			el(&ast.VarType{Token: token.Synthetic("T"), Name: "T"}),
			unpack(&ast.VariadicRefType{Token: token.Synthetic("*Ts"), Name: "Ts"}),
		),
		Result: &ast.VarType{Token: token.Synthetic("T"), Name: "T"},
	}

	tests := []struct {
		name string
		node ast.Node
		want string
	}{
		{
			"index",
			&ast.IndexExpression{Token: token.Synthetic("["), Receiver: pair, Index: -1},
			"(int, str)[-1]",
		},
		{
			"assign",
			&ast.AssignExpression{Token: token.Synthetic("="), Source: pair, Target: named("Pair")},
			"(int, str) -> Pair",
		},
		{
			"destructure",
			&ast.DestructureExpression{
				Token: token.Synthetic("["),
				Pattern: &ast.AssignPattern{Token: token.Synthetic("["), Targets: []ast.AssignTarget{
					{Token: token.Synthetic("a"), Name: "a"},
					{Token: token.Synthetic("*rest"), Name: "rest", CollectRest: true},
				}},
				Source: pair,
			},
			"[a, *rest] = (int, str)",
		},
		{
			"call",
			&ast.CallExpression{Token: token.Synthetic("("), Signature: sig, Args: pair},
			"([T, *Ts](T, *Ts) -> T)(int, str)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewAnnotationPrinter()
			p.PrintNode(tt.node)
			if got := p.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
