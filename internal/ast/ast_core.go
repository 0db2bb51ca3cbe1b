package ast

import (
	"github.com/funvibe/funshape/internal/token"
)

// TokenProvider is an interface for any descriptor node that can provide
// its primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all descriptor nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// TypeExpr is a Node that describes a type annotation. Annotations arrive
// already structured (there is no parser in front of the analyzer); the
// descriptor tree is what a frontend or a conformance fixture hands over.
type TypeExpr interface {
	Node
	typeExprNode()
}
