package analyzer

import (
	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// transTypeDecs processes a group of mutually recursive type declarations.
//
// Every name is entered first, unbound, so that bodies may refer to any
// member of the group. Bodies are then translated and bound in order. A body
// that is only a chain of names leading back to its own name is a cycle; it
// is reported and the name is bound to void.
func (w *walker) transTypeDecs(group []*ast.TypeDec) {
	seen := make(duplicates, len(group))
	names := make([]*typesystem.TName, len(group))
	for i, d := range group {
		seen.check(w, d.Name, d.Token, "type")
		names[i] = typesystem.NewName(d.Name)
		w.env.Types.Put(d.Name, names[i])
	}

	for i, d := range group {
		body := w.transTy(d.Ty)
		if err := names[i].Bind(body); err != nil {
			w.errorf(diagnostics.ErrS007, d.Token, "%v", err)
			_ = names[i].Bind(typesystem.Void)
		}
	}
}
