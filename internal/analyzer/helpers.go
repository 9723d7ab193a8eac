package analyzer

import (
	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/token"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// checkInt reports et unless it coerces to int.
func (w *walker) checkInt(et ExpTy, at ast.Exp) bool {
	if et.Ty.CoerceTo(typesystem.Int) {
		return true
	}
	w.errorf(diagnostics.ErrS004, tokenOf(at), "integer required, got %s", et.Ty)
	return false
}

// checkComparable accepts operands of the ordering operators: int or string.
func (w *walker) checkComparable(et ExpTy, at ast.Exp) bool {
	if et.Ty.CoerceTo(typesystem.Int) || et.Ty.CoerceTo(typesystem.String) {
		return true
	}
	w.errorf(diagnostics.ErrS004, tokenOf(at), "integer or string required, got %s", et.Ty)
	return false
}

// checkEquable accepts operands of = and <>: int, string, nil, records and arrays.
func (w *walker) checkEquable(et ExpTy, at ast.Exp) bool {
	switch typesystem.Actual(et.Ty).(type) {
	case typesystem.TInt, typesystem.TString, typesystem.TNil, *typesystem.TRecord, *typesystem.TArray:
		return true
	}
	if name, ok := typesystem.Unbound(et.Ty); ok {
		w.errorf(diagnostics.ErrS007, tokenOf(at), "type %s is not resolved", name)
		return false
	}
	w.errorf(diagnostics.ErrS004, tokenOf(at), "integer, string, record or array required, got %s", et.Ty)
	return false
}

// lookupType resolves a type name, reporting it when undeclared.
func (w *walker) lookupType(name *symbols.Symbol, tok token.Token) (typesystem.Type, bool) {
	ty, ok := w.env.Types.Get(name)
	if !ok {
		w.errorf(diagnostics.ErrS003, tok, "undeclared type %s", name)
		return typesystem.Void, false
	}
	return ty, true
}

// duplicates tracks names within one declaration group or parameter list.
type duplicates map[*symbols.Symbol]token.Token

// check reports name if it was already seen and remembers it otherwise.
func (d duplicates) check(w *walker, name *symbols.Symbol, tok token.Token, what string) {
	if first, seen := d[name]; seen {
		w.errorf(diagnostics.ErrS008, tok, "%s %s is already declared at %s in the same group", what, name, first)
		return
	}
	d[name] = tok
}
