package symbols

import (
	"github.com/funvibe/funshape/internal/config"
	"github.com/funvibe/funshape/internal/typesystem"
)

type SymbolKind int

const (
	VariableSymbol SymbolKind = iota
	TypeSymbol
)

type ScopeType int

const (
	ScopeGlobal    ScopeType = iota // aliases and built-in names
	ScopeSignature                  // type parameters of one generic signature
)

type Symbol struct {
	Name string
	Type typesystem.Type
	Kind SymbolKind
}

// SymbolTable maps names to types. Scopes nest: a signature's type
// parameters live in an enclosed table so they never leak into the
// global alias namespace.
type SymbolTable struct {
	store     map[string]Symbol
	types     map[string]typesystem.Type
	outer     *SymbolTable
	scopeType ScopeType
}

func NewEmptySymbolTable() *SymbolTable {
	return &SymbolTable{
		store: make(map[string]Symbol),
		types: make(map[string]typesystem.Type),
	}
}

// NewSymbolTable returns a global-scope table with the built-in type
// names registered.
func NewSymbolTable() *SymbolTable {
	st := NewEmptySymbolTable()
	st.scopeType = ScopeGlobal
	st.DefineType(config.UnknownTypeName, typesystem.TUnknown{})
	st.DefineType(config.NeverTypeName, typesystem.TNever{})
	return st
}

func NewEnclosedSymbolTable(outer *SymbolTable, scopeType ScopeType) *SymbolTable {
	st := NewEmptySymbolTable()
	st.outer = outer
	st.scopeType = scopeType
	return st
}

// Outer returns the outer scope symbol table.
func (s *SymbolTable) Outer() *SymbolTable {
	return s.outer
}

// IsGlobalScope returns true if this symbol table is the root scope.
func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeType == ScopeGlobal
}

func (s *SymbolTable) Define(name string, t typesystem.Type) {
	s.store[name] = Symbol{Name: name, Type: t, Kind: VariableSymbol}
}

func (s *SymbolTable) DefineType(name string, t typesystem.Type) {
	s.types[name] = t
	s.store[name] = Symbol{Name: name, Type: t, Kind: TypeSymbol}
}

func (s *SymbolTable) Find(name string) (Symbol, bool) {
	sym, ok := s.store[name]
	if ok {
		return sym, true
	}
	if s.outer != nil {
		return s.outer.Find(name)
	}
	return Symbol{}, false
}

// IsDefinedLocally checks if a name is defined in the current scope
// (shallow check).
func (s *SymbolTable) IsDefinedLocally(name string) bool {
	_, ok := s.store[name]
	return ok
}

// ResolveType looks a type name up through the scope chain.
func (s *SymbolTable) ResolveType(name string) (typesystem.Type, bool) {
	t, ok := s.types[name]
	if !ok && s.outer != nil {
		return s.outer.ResolveType(name)
	}
	return t, ok
}
