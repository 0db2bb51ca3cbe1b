package token

// TokenType identifies the syntactic class of a token.
type TokenType string

const (
	IDENT    TokenType = "IDENT"    // variable or type name
	INT      TokenType = "INT"      // integer literal (index)
	ASTERISK TokenType = "ASTERISK" // unpack / collect-rest marker
	LPAREN   TokenType = "LPAREN"
	LBRACKET TokenType = "LBRACKET"
	EOF      TokenType = "EOF"
)

// Token is a source position carrier. Descriptor nodes handed to the
// analyzer keep the token of the construct they were lowered from, so
// diagnostics can point back into the original file.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

// Synthetic builds a token for nodes that have no source position
// (programmatically constructed descriptors, tests).
func Synthetic(lexeme string) Token {
	return Token{Type: IDENT, Lexeme: lexeme}
}
