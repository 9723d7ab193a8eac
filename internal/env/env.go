// Package env holds the two scoped namespaces the analyzer works against:
// values (variables and functions) and types.
package env

import (
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// Entry is a binding in the value namespace.
type Entry interface {
	isEntry()
}

// VarEntry binds a variable. ReadOnly marks loop variables.
type VarEntry struct {
	Ty       typesystem.Type
	ReadOnly bool
}

// FunEntry binds a function signature.
type FunEntry struct {
	Formals []typesystem.Field
	Result  typesystem.Type
}

func (*VarEntry) isEntry() {}
func (*FunEntry) isEntry() {}

// Env pairs the value and type namespaces. Their scopes are independent.
type Env struct {
	Values *symbols.Table[Entry]
	Types  *symbols.Table[typesystem.Type]
}

// New returns an empty environment.
func New() *Env {
	return &Env{
		Values: symbols.NewTable[Entry](),
		Types:  symbols.NewTable[typesystem.Type](),
	}
}

// LookupVar returns the variable entry bound to sym.
func (e *Env) LookupVar(sym *symbols.Symbol) (*VarEntry, bool) {
	entry, ok := e.Values.Get(sym)
	if !ok {
		return nil, false
	}
	v, ok := entry.(*VarEntry)
	return v, ok
}

// LookupFun returns the function entry bound to sym.
func (e *Env) LookupFun(sym *symbols.Symbol) (*FunEntry, bool) {
	entry, ok := e.Values.Get(sym)
	if !ok {
		return nil, false
	}
	f, ok := entry.(*FunEntry)
	return f, ok
}

// LookupType returns the type bound to sym.
func (e *Env) LookupType(sym *symbols.Symbol) (typesystem.Type, bool) {
	return e.Types.Get(sym)
}
