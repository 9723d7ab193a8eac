package analyzer

import (
	"fmt"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// BuildType converts type syntax into a typesystem.Type, resolving names in
// types. Undeclared names are appended to errs and stand for void. Each array
// or record syntax builds a new, distinct type.
func BuildType(t ast.Ty, types *symbols.Table[typesystem.Type], errs *[]*diagnostics.DiagnosticError) typesystem.Type {
	resolve := func(name *symbols.Symbol, n ast.Node) typesystem.Type {
		if ty, ok := types.Get(name); ok {
			return ty
		}
		*errs = append(*errs, diagnostics.Newf(diagnostics.ErrS003, n.GetToken(), "undeclared type %s", name))
		return typesystem.Void
	}

	switch t := t.(type) {
	case *ast.NameTy:
		return resolve(t.Name, t)

	case *ast.ArrayTy:
		return typesystem.NewArray(resolve(t.Elem, t))

	case *ast.RecordTy:
		fields := make([]typesystem.Field, 0, len(t.Fields))
		seen := make(map[*symbols.Symbol]bool, len(t.Fields))
		for _, f := range t.Fields {
			if seen[f.Name] {
				*errs = append(*errs, diagnostics.Newf(diagnostics.ErrS008, f.Token, "field %s is declared twice in the record", f.Name))
			}
			seen[f.Name] = true
			fields = append(fields, typesystem.Field{Name: f.Name, Type: resolve(f.Type, f)})
		}
		return typesystem.NewRecord(fields)

	default:
		panic(fmt.Sprintf("analyzer: unexpected type syntax %T", t))
	}
}

// transTy builds t against the current type namespace.
func (w *walker) transTy(t ast.Ty) typesystem.Type {
	var errs []*diagnostics.DiagnosticError
	ty := BuildType(t, w.env.Types, &errs)
	for _, err := range errs {
		w.addError(err)
	}
	return ty
}
