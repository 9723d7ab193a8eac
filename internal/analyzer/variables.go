package analyzer

import (
	"fmt"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// transVar checks an l-value read.
func (w *walker) transVar(v ast.Var) ExpTy {
	return w.transLValue(v, false)
}

// transLValue resolves v. When assign is set, v is the target of an
// assignment and must not be a loop variable.
func (w *walker) transLValue(v ast.Var, assign bool) ExpTy {
	switch n := v.(type) {
	case *ast.SimpleVar:
		entry, ok := w.env.Values.Get(n.Name)
		if !ok {
			w.errorf(diagnostics.ErrS001, n.Token, "undeclared variable %s", n.Name)
			return ExpTy{Ty: typesystem.Void}
		}
		ve, ok := entry.(*env.VarEntry)
		if !ok {
			w.errorf(diagnostics.ErrS006, n.Token, "%s is a function, not a variable", n.Name)
			return ExpTy{Ty: typesystem.Void}
		}
		if assign && ve.ReadOnly {
			w.errorf(diagnostics.ErrS010, n.Token, "cannot assign to loop variable %s", n.Name)
		}
		return ExpTy{Ty: ve.Ty}

	case *ast.FieldVar:
		base := w.transLValue(n.Var, false)
		rec, ok := typesystem.AsRecord(base.Ty)
		if !ok {
			w.errorf(diagnostics.ErrS006, n.Token, "cannot select field %s of non-record type %s", n.Field, base.Ty)
			return ExpTy{Ty: typesystem.Void}
		}
		field, _, ok := rec.Field(n.Field)
		if !ok {
			w.errorf(diagnostics.ErrS012, n.Token, "type %s has no field %s", base.Ty, n.Field)
			return ExpTy{Ty: typesystem.Void}
		}
		return ExpTy{Ty: field.Type}

	case *ast.SubscriptVar:
		base := w.transLValue(n.Var, false)
		w.checkInt(w.transExp(n.Index), n.Index)
		arr, ok := typesystem.AsArray(base.Ty)
		if !ok {
			w.errorf(diagnostics.ErrS006, n.Token, "cannot index non-array type %s", base.Ty)
			return ExpTy{Ty: typesystem.Void}
		}
		return ExpTy{Ty: arr.Elem}

	default:
		panic(fmt.Sprintf("analyzer: unexpected variable node %T", v))
	}
}
