package ast

import (
	"github.com/funvibe/funshape/internal/token"
)

// --- Type annotation nodes ---

// NamedType represents a concrete type name like 'int', or a registered
// alias like 'Pair'.
type NamedType struct {
	Token token.Token // The name's token
	Name  string
}

func (nt *NamedType) typeExprNode()         {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }

// VarType represents a scalar type parameter reference, e.g. T.
type VarType struct {
	Token token.Token
	Name  string
}

func (vt *VarType) typeExprNode()         {}
func (vt *VarType) TokenLiteral() string  { return vt.Token.Lexeme }
func (vt *VarType) GetToken() token.Token { return vt.Token }

// VariadicRefType represents a variadic tuple parameter reference, e.g.
// Ts in (int, *Ts). It stands for a whole run of element types and is
// only meaningful under an unpacked tuple entry.
type VariadicRefType struct {
	Token token.Token
	Name  string
}

func (vr *VariadicRefType) typeExprNode()         {}
func (vr *VariadicRefType) TokenLiteral() string  { return vr.Token.Lexeme }
func (vr *VariadicRefType) GetToken() token.Token { return vr.Token }

// SeqType represents a sequence annotation with no length information,
// e.g. Seq[int].
type SeqType struct {
	Token token.Token // The 'Seq' token
	Elem  TypeExpr
}

func (st *SeqType) typeExprNode()         {}
func (st *SeqType) TokenLiteral() string  { return st.Token.Lexeme }
func (st *SeqType) GetToken() token.Token { return st.Token }

// UnionType represents a union annotation, e.g. int | str.
type UnionType struct {
	Token token.Token // The '|' token (or first alternative's token)
	Alts  []TypeExpr
}

func (ut *UnionType) typeExprNode()         {}
func (ut *UnionType) TokenLiteral() string  { return ut.Token.Lexeme }
func (ut *UnionType) GetToken() token.Token { return ut.Token }

// TupleEntry is one element position of a tuple annotation. Unpack marks
// a '*'-prefixed entry: an inlined tuple, or a variadic parameter
// reference.
type TupleEntry struct {
	Type   TypeExpr
	Unpack bool
}

// TupleType represents a tuple annotation.
//
//	(int, str)                exact
//	(int, ...)                zero or more ints (Ellipsis)
//	(int, *(str, ...), bool)  open middle via an unpacked inner tuple
//	(int, *Ts)                unpacked variadic parameter
type TupleType struct {
	Token    token.Token // The '(' token
	Entries  []TupleEntry
	Ellipsis bool // '...' after a single entry: unknown length
}

func (tt *TupleType) typeExprNode()         {}
func (tt *TupleType) TokenLiteral() string  { return tt.Token.Lexeme }
func (tt *TupleType) GetToken() token.Token { return tt.Token }

// --- Destructuring pattern nodes ---

// AssignTarget is one name in a destructuring pattern. CollectRest marks
// the starred target that soaks up unmatched middle elements.
type AssignTarget struct {
	Token       token.Token
	Name        string
	CollectRest bool
}

// AssignPattern is an ordered list of destructuring targets,
// e.g. [a, *rest, z].
type AssignPattern struct {
	Token   token.Token // The '[' token
	Targets []AssignTarget
}

func (ap *AssignPattern) TokenLiteral() string { return ap.Token.Lexeme }
func (ap *AssignPattern) GetToken() token.Token {
	if ap == nil {
		return token.Token{}
	}
	return ap.Token
}
