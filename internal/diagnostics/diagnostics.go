package diagnostics

import (
	"fmt"

	"github.com/funvibe/funshape/internal/token"
)

// ErrorCode identifies a diagnostic kind. Codes are stable: tests and
// conformance fixtures match on them, never on message text.
type ErrorCode string

const (
	ErrT001 ErrorCode = "T001" // malformed tuple annotation
	ErrT002 ErrorCode = "T002" // size mismatch
	ErrT003 ErrorCode = "T003" // element type mismatch
	ErrT004 ErrorCode = "T004" // index out of range
	ErrT005 ErrorCode = "T005" // malformed destructuring pattern
)

// templates maps each code to its message format. Args passed to NewError
// fill the template in order.
var templates = map[ErrorCode]string{
	ErrT001: "malformed tuple annotation: %s",
	ErrT002: "size mismatch: expected %s, got %s",
	ErrT003: "element of type '%s' is not assignable to '%s' (position %s)",
	ErrT004: "index %s is out of range for '%s'",
	ErrT005: "malformed destructuring pattern: %s",
}

// Descriptions returns the code table for CLI display, in code order.
func Descriptions() []struct{ Code, Template string } {
	codes := []ErrorCode{ErrT001, ErrT002, ErrT003, ErrT004, ErrT005}
	out := make([]struct{ Code, Template string }, 0, len(codes))
	for _, c := range codes {
		out = append(out, struct{ Code, Template string }{string(c), templates[c]})
	}
	return out
}

// DiagnosticError is a coded, positioned diagnostic.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%d:%d: [%s] %s", e.Token.Line, e.Token.Column, e.Code, e.Message)
}

// NewError builds a DiagnosticError from the code's template. Each arg is
// rendered with %v before filling the template's %s verbs, so callers can
// pass types, ints and strings alike.
func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	tmpl, ok := templates[code]
	if !ok {
		tmpl = "%s"
	}
	strArgs := make([]interface{}, len(args))
	for i, a := range args {
		strArgs[i] = fmt.Sprintf("%v", a)
	}
	return &DiagnosticError{
		Code:    code,
		Token:   tok,
		Message: fmt.Sprintf(tmpl, strArgs...),
	}
}
