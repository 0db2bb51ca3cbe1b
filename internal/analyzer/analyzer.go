package analyzer

import (
	"fmt"
	"sort"

	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/diagnostics"
	"github.com/funvibe/funshape/internal/symbols"
	"github.com/funvibe/funshape/internal/typesystem"
)

// Analyzer checks tuple-typed operations over descriptor nodes. It owns
// the alias namespace, the element assignability predicate and a verdict
// cache. Build one Analyzer per checked unit so cached verdicts never
// leak across assigner configurations.
type Analyzer struct {
	table    *symbols.SymbolTable
	assigner typesystem.ElemAssigner
	cache    *typesystem.Cache

	errorSet    map[string]*diagnostics.DiagnosticError // Key: "line:col:code:message" for deduplication
	errors      []*diagnostics.DiagnosticError          // Staging slice for BuildType and friends
	currentFile string
}

func New() *Analyzer {
	return NewWithAssigner(typesystem.DefaultAssigner{})
}

// NewWithAssigner builds an Analyzer around a custom element
// assignability predicate.
func NewWithAssigner(ea typesystem.ElemAssigner) *Analyzer {
	return &Analyzer{
		table:    symbols.NewSymbolTable(),
		assigner: ea,
		cache:    typesystem.NewCache(),
		errorSet: make(map[string]*diagnostics.DiagnosticError),
	}
}

// Table exposes the global alias table, e.g. for registering named types
// before checking.
func (a *Analyzer) Table() *symbols.SymbolTable {
	return a.table
}

// SetFile sets the file attributed to subsequent diagnostics.
func (a *Analyzer) SetFile(file string) {
	a.currentFile = file
}

// DefineAlias lowers expr and registers it in the global table under
// name. Later annotations resolve the name through the table.
func (a *Analyzer) DefineAlias(name string, expr ast.TypeExpr) typesystem.Type {
	t := BuildType(expr, a.table, &a.errors)
	a.table.DefineType(name, t)
	return t
}

// Build lowers a standalone annotation. Malformed annotations surface as
// diagnostics and lower to Unknown.
func (a *Analyzer) Build(expr ast.TypeExpr) typesystem.Type {
	return BuildType(expr, a.table, &a.errors)
}

// addError adds an error, deduplicating by position, code and message.
// The message participates in the key: one operation can produce several
// diagnostics of the same code at the same position (one per union
// alternative), and each of those must survive.
func (a *Analyzer) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" && a.currentFile != "" {
		err.File = a.currentFile
	}
	key := fmt.Sprintf("%d:%d:%s:%s", err.Token.Line, err.Token.Column, err.Code, err.Message)
	if a.errorSet == nil {
		a.errorSet = make(map[string]*diagnostics.DiagnosticError)
	}
	a.errorSet[key] = err
}

// Errors returns all unique diagnostics as a slice, sorted by position.
func (a *Analyzer) Errors() []*diagnostics.DiagnosticError {
	// Merge anything BuildType staged through the slice first.
	for _, err := range a.errors {
		a.addError(err)
	}

	result := make([]*diagnostics.DiagnosticError, 0, len(a.errorSet))
	for _, err := range a.errorSet {
		result = append(result, err)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Token.Line != result[j].Token.Line {
			return result[i].Token.Line < result[j].Token.Line
		}
		if result[i].Token.Column != result[j].Token.Column {
			return result[i].Token.Column < result[j].Token.Column
		}
		if result[i].Code != result[j].Code {
			return result[i].Code < result[j].Code
		}
		return result[i].Message < result[j].Message
	})

	return result
}
