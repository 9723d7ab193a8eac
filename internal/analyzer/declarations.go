package analyzer

import (
	"fmt"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// transDecs processes the declarations of a let in order. Consecutive type
// declarations form one mutually recursive group, as do consecutive function
// declarations. A declaration of another kind ends the group.
func (w *walker) transDecs(decs []ast.Dec) {
	for i := 0; i < len(decs); {
		switch d := decs[i].(type) {
		case *ast.VarDec:
			w.transVarDec(d)
			i++
		case *ast.TypeDec:
			var group []*ast.TypeDec
			for ; i < len(decs); i++ {
				td, ok := decs[i].(*ast.TypeDec)
				if !ok {
					break
				}
				group = append(group, td)
			}
			w.transTypeDecs(group)
		case *ast.FunctionDec:
			var group []*ast.FunctionDec
			for ; i < len(decs); i++ {
				fd, ok := decs[i].(*ast.FunctionDec)
				if !ok {
					break
				}
				group = append(group, fd)
			}
			w.transFunctionDecs(group)
		default:
			panic(fmt.Sprintf("analyzer: unexpected declaration node %T", decs[i]))
		}
	}
}

func (w *walker) transVarDec(d *ast.VarDec) {
	init := w.transExp(d.Init)
	ty := init.Ty

	if d.Type != nil {
		if declared, ok := w.lookupType(d.Type.Name, d.Type.Token); ok {
			if !init.Ty.CoerceTo(declared) {
				w.errorf(diagnostics.ErrS004, tokenOf(d.Init), "variable %s is declared %s but initialized with %s", d.Name, declared, init.Ty)
			}
			ty = declared
		}
	} else if typesystem.Actual(init.Ty) == typesystem.Nil {
		w.errorf(diagnostics.ErrS011, d.Token, "variable %s is initialized with nil and needs a record type annotation", d.Name)
		ty = typesystem.Void
	}

	w.env.Values.Put(d.Name, &env.VarEntry{Ty: ty})
}
