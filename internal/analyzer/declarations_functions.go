package analyzer

import (
	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// transFunctionDecs processes a group of mutually recursive functions. All
// headers are entered before any body is checked.
func (w *walker) transFunctionDecs(group []*ast.FunctionDec) {
	seen := make(duplicates, len(group))
	entries := make([]*env.FunEntry, len(group))
	for i, d := range group {
		seen.check(w, d.Name, d.Token, "function")
		entries[i] = w.functionHeader(d)
		w.env.Values.Put(d.Name, entries[i])
	}

	for i, d := range group {
		w.functionBody(d, entries[i])
	}
}

func (w *walker) functionHeader(d *ast.FunctionDec) *env.FunEntry {
	params := make(duplicates, len(d.Params))
	formals := make([]typesystem.Field, 0, len(d.Params))
	for _, p := range d.Params {
		params.check(w, p.Name, p.Token, "parameter")
		ty, _ := w.lookupType(p.Type, p.Token)
		formals = append(formals, typesystem.Field{Name: p.Name, Type: ty})
	}

	result := typesystem.Void
	if d.Result != nil {
		result, _ = w.lookupType(d.Result.Name, d.Result.Token)
	}
	return &env.FunEntry{Formals: formals, Result: result}
}

func (w *walker) functionBody(d *ast.FunctionDec, entry *env.FunEntry) {
	w.env.Values.BeginScope()
	defer w.env.Values.EndScope()
	for _, f := range entry.Formals {
		w.env.Values.Put(f.Name, &env.VarEntry{Ty: f.Type})
	}

	// break never escapes a function body
	saved := w.inLoop
	w.inLoop = false
	body := w.transExp(d.Body)
	w.inLoop = saved

	if body.Ty.CoerceTo(entry.Result) {
		return
	}
	if d.Result == nil {
		w.errorf(diagnostics.ErrS004, tokenOf(d.Body), "procedure %s must not produce a value, body has type %s", d.Name, body.Ty)
		return
	}
	w.errorf(diagnostics.ErrS004, tokenOf(d.Body), "function %s returns %s, body has type %s", d.Name, entry.Result, body.Ty)
}
