package mutator

import (
	"math/rand"

	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/token"
)

// ASTMutator applies random mutations to an annotation tree.
type ASTMutator struct {
	rnd *rand.Rand
}

// NewASTMutator creates a new ASTMutator with the given seed.
func NewASTMutator(seed int64) *ASTMutator {
	return &ASTMutator{
		rnd: rand.New(rand.NewSource(seed)),
	}
}

var namePool = []string{"int", "str", "bool", "float", "Pair", "Mystery", "T", "Ts"}

// Mutate applies a random mutation to the annotation in place. The tree
// stays structurally sound; the semantics are free to break, which is
// the point.
func (m *ASTMutator) Mutate(expr ast.TypeExpr) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.NamedType:
		e.Name = m.randomName()
	case *ast.VarType:
		e.Name = m.randomName()
	case *ast.VariadicRefType:
		e.Name = m.randomName()
	case *ast.SeqType:
		if m.rnd.Float32() < 0.5 {
			e.Elem = m.randomLeaf()
		} else {
			m.Mutate(e.Elem)
		}
	case *ast.UnionType:
		m.mutateUnion(e)
	case *ast.TupleType:
		m.MutateTuple(e)
	}
}

func (m *ASTMutator) mutateUnion(u *ast.UnionType) {
	if len(u.Alts) == 0 {
		u.Alts = append(u.Alts, m.randomLeaf())
		return
	}
	idx := m.rnd.Intn(len(u.Alts))
	switch m.rnd.Intn(3) {
	case 0:
		m.Mutate(u.Alts[idx])
	case 1:
		u.Alts = append(u.Alts, u.Alts[idx])
	default:
		if len(u.Alts) > 1 {
			u.Alts = append(u.Alts[:idx], u.Alts[idx+1:]...)
		} else {
			u.Alts[idx] = m.randomLeaf()
		}
	}
}

// MutateTuple mutates a tuple annotation in place: entries flip their
// unpack marker, duplicate, vanish or change type, and the ellipsis flag
// toggles.
func (m *ASTMutator) MutateTuple(tt *ast.TupleType) {
	if len(tt.Entries) == 0 {
		tt.Entries = append(tt.Entries, ast.TupleEntry{Type: m.randomLeaf()})
		return
	}
	idx := m.rnd.Intn(len(tt.Entries))
	switch m.rnd.Intn(5) {
	case 0:
		tt.Entries[idx].Unpack = !tt.Entries[idx].Unpack
	case 1:
		tt.Ellipsis = !tt.Ellipsis
	case 2:
		tt.Entries = append(tt.Entries, tt.Entries[idx])
	case 3:
		tt.Entries[idx].Type = m.randomLeaf()
	default:
		m.Mutate(tt.Entries[idx].Type)
	}
}

func (m *ASTMutator) randomName() string {
	return namePool[m.rnd.Intn(len(namePool))]
}

// randomLeaf builds a fresh shallow node to splice into the tree.
func (m *ASTMutator) randomLeaf() ast.TypeExpr {
	name := m.randomName()
	switch m.rnd.Intn(4) {
	case 0:
		return &ast.VariadicRefType{Token: token.Synthetic("*" + name), Name: name}
	case 1:
		return &ast.SeqType{
			Token: token.Synthetic("Seq"),
			Elem:  &ast.NamedType{Token: token.Synthetic(name), Name: name},
		}
	case 2:
		return &ast.VarType{Token: token.Synthetic(name), Name: name}
	default:
		return &ast.NamedType{Token: token.Synthetic(name), Name: name}
	}
}
