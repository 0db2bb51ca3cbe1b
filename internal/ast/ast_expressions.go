package ast

import (
	"github.com/funvibe/funshape/internal/token"
)

// IndexExpression represents a literal-index access into a tuple-typed
// value, e.g. pair[1] or pair[-1].
type IndexExpression struct {
	Token    token.Token // The '[' token
	Receiver TypeExpr    // type of the value being indexed
	Index    int         // literal index, possibly negative
}

func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// AssignExpression represents a value of type Source flowing into a
// declaration of type Target, e.g. x: (int, str) = pair.
type AssignExpression struct {
	Token  token.Token // The '=' token
	Source TypeExpr
	Target TypeExpr
}

func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// DestructureExpression represents a pattern assignment,
// e.g. [a, *rest, z] = value.
type DestructureExpression struct {
	Token   token.Token // The pattern's '[' token
	Pattern *AssignPattern
	Source  TypeExpr
}

func (de *DestructureExpression) TokenLiteral() string  { return de.Token.Lexeme }
func (de *DestructureExpression) GetToken() token.Token { return de.Token }

// TypeParamDecl declares one type parameter of a generic signature.
// Variadic parameters capture whole tuple segments instead of single
// types.
type TypeParamDecl struct {
	Token    token.Token
	Name     string
	Variadic bool
}

// GenericSignature describes a generic callable: declared type
// parameters, parameter annotations as a tuple, and an optional result
// annotation.
type GenericSignature struct {
	Token      token.Token
	TypeParams []TypeParamDecl
	Params     *TupleType
	Result     TypeExpr // nil when the signature declares no result
}

func (gs *GenericSignature) TokenLiteral() string { return gs.Token.Lexeme }
func (gs *GenericSignature) GetToken() token.Token {
	if gs == nil {
		return token.Token{}
	}
	return gs.Token
}

// CallExpression represents a call to a generic signature with a tuple of
// argument types, e.g. first(*args).
type CallExpression struct {
	Token     token.Token // The '(' token
	Signature *GenericSignature
	Args      *TupleType // argument types, possibly open
}

func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }
