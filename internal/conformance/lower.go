package conformance

import (
	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/config"
	"github.com/funvibe/funshape/internal/token"
)

// Expr lowers the node to a descriptor. Tokens carry the YAML position,
// so diagnostics point back into the suite file.
func (t *TypeNode) Expr() ast.TypeExpr {
	switch {
	case t == nil:
		return nil
	case t.Name != "":
		return &ast.NamedType{Token: t.tok(token.IDENT, t.Name), Name: t.Name}
	case t.Var != "":
		return &ast.VarType{Token: t.tok(token.IDENT, t.Var), Name: t.Var}
	case t.Variadic != "":
		return &ast.VariadicRefType{Token: t.tok(token.ASTERISK, "*"+t.Variadic), Name: t.Variadic}
	case t.Seq != nil:
		return &ast.SeqType{Token: t.tok(token.IDENT, config.SeqTypeName), Elem: t.Seq.Expr()}
	case len(t.Union) > 0:
		alts := make([]ast.TypeExpr, len(t.Union))
		for i, alt := range t.Union {
			alts[i] = alt.Expr()
		}
		return &ast.UnionType{Token: t.tok(token.IDENT, "|"), Alts: alts}
	case t.Tuple != nil:
		return t.Tuple.Expr()
	}
	return nil
}

func (t *TypeNode) tok(tt token.TokenType, lexeme string) token.Token {
	return token.Token{Type: tt, Lexeme: lexeme, Line: t.line, Column: t.column}
}

// Expr lowers the tuple node to a tuple descriptor.
func (tn *TupleNode) Expr() *ast.TupleType {
	if tn == nil {
		return nil
	}
	tt := &ast.TupleType{
		Token:    token.Token{Type: token.LPAREN, Lexeme: "(", Line: tn.line, Column: tn.column},
		Ellipsis: tn.Ellipsis,
	}
	for _, e := range tn.Entries {
		tt.Entries = append(tt.Entries, ast.TupleEntry{Type: e.Type.Expr(), Unpack: e.Unpack})
	}
	return tt
}

// Node lowers the signature node to a signature descriptor.
func (s *SignatureNode) Node() *ast.GenericSignature {
	if s == nil {
		return nil
	}
	sig := &ast.GenericSignature{
		Token:  token.Token{Type: token.LPAREN, Lexeme: "(", Line: s.line, Column: s.column},
		Params: s.Params.Expr(),
	}
	for _, p := range s.TypeParams {
		lexeme := p.Name
		if p.Variadic {
			lexeme = "*" + p.Name
		}
		sig.TypeParams = append(sig.TypeParams, ast.TypeParamDecl{
			Token:    token.Token{Type: token.IDENT, Lexeme: lexeme, Line: s.line, Column: s.column},
			Name:     p.Name,
			Variadic: p.Variadic,
		})
	}
	if s.Result != nil {
		sig.Result = s.Result.Expr()
	}
	return sig
}

// pattern lowers the case's destructuring targets.
func (c *Case) pattern() *ast.AssignPattern {
	p := &ast.AssignPattern{Token: c.opToken(token.LBRACKET, "[")}
	for _, t := range c.Pattern {
		lexeme := t.Name
		if t.CollectRest {
			lexeme = "*" + t.Name
		}
		p.Targets = append(p.Targets, ast.AssignTarget{
			Token:       c.opToken(token.IDENT, lexeme),
			Name:        t.Name,
			CollectRest: t.CollectRest,
		})
	}
	return p
}

func (c *Case) opToken(tt token.TokenType, lexeme string) token.Token {
	return token.Token{Type: tt, Lexeme: lexeme, Line: c.line, Column: c.column}
}
