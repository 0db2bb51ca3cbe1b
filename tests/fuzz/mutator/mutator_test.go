package mutator

import (
	"testing"

	"github.com/funvibe/funshape/internal/analyzer"
	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/prettyprinter"
	"github.com/funvibe/funshape/internal/token"
)

func sampleTuple() *ast.TupleType {
	return &ast.TupleType{
		Token: token.Synthetic("("),
		Entries: []ast.TupleEntry{
			{Type: &ast.NamedType{Token: token.Synthetic("int"), Name: "int"}},
			{Type: &ast.SeqType{
				Token: token.Synthetic("Seq"),
				Elem:  &ast.NamedType{Token: token.Synthetic("str"), Name: "str"},
			}},
			{Type: &ast.UnionType{
				Token: token.Synthetic("|"),
				Alts: []ast.TypeExpr{
					&ast.NamedType{Token: token.Synthetic("bool"), Name: "bool"},
					&ast.NamedType{Token: token.Synthetic("float"), Name: "float"},
				},
			}},
		},
	}
}

func render(t ast.TypeExpr) string {
	p := prettyprinter.NewAnnotationPrinter()
	p.PrintType(t)
	return p.String()
}

func TestMutator_Determinism(t *testing.T) {
	t1, t2 := sampleTuple(), sampleTuple()
	m1, m2 := NewASTMutator(42), NewASTMutator(42)

	for i := 0; i < 20; i++ {
		m1.Mutate(t1)
		m2.Mutate(t2)
	}
	if render(t1) != render(t2) {
		t.Fatalf("same seed diverged: %s vs %s", render(t1), render(t2))
	}
}

func TestMutator_ChangesTree(t *testing.T) {
	tt := sampleTuple()
	before := render(tt)

	m := NewASTMutator(1)
	changed := false
	for i := 0; i < 10 && !changed; i++ {
		m.Mutate(tt)
		changed = render(tt) != before
	}
	if !changed {
		t.Fatal("ten mutations never changed the tree")
	}
}

// Whatever the mutations produce must still lower: the builder reports
// malformed annotations instead of panicking.
func TestMutator_MutantsStillLower(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		tt := sampleTuple()
		m := NewASTMutator(seed)
		for i := 0; i < 30; i++ {
			m.Mutate(tt)
			an := analyzer.New()
			if built := an.Build(tt); built == nil {
				t.Fatalf("seed %d iteration %d: Build returned nil for %s", seed, i, render(tt))
			}
		}
	}
}
