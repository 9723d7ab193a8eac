package analyzer

import (
	"fmt"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// transExp checks e and records its type. An absent expression is void.
func (w *walker) transExp(e ast.Exp) ExpTy {
	if e == nil {
		return ExpTy{Ty: typesystem.Void}
	}

	var result ExpTy
	switch n := e.(type) {
	case *ast.IntExp:
		result = ExpTy{Ty: typesystem.Int}
	case *ast.StringExp:
		result = ExpTy{Ty: typesystem.String}
	case *ast.NilExp:
		result = ExpTy{Ty: typesystem.Nil}
	case *ast.VarExp:
		result = w.transVar(n.Var)
	case *ast.SeqExp:
		result = w.transSeq(n)
	case *ast.AssignExp:
		result = w.transAssign(n)
	case *ast.IfExp:
		result = w.transIf(n)
	case *ast.WhileExp:
		result = w.transWhile(n)
	case *ast.ForExp:
		result = w.transFor(n)
	case *ast.BreakExp:
		if !w.inLoop {
			w.errorf(diagnostics.ErrS009, n.Token, "break is not inside a loop")
		}
		result = ExpTy{Ty: typesystem.Void}
	case *ast.LetExp:
		result = w.transLet(n)
	case *ast.OpExp:
		result = w.transOp(n)
	case *ast.RecordExp:
		result = w.transRecord(n)
	case *ast.ArrayExp:
		result = w.transArray(n)
	case *ast.CallExp:
		result = w.transCall(n)
	default:
		panic(fmt.Sprintf("analyzer: unexpected expression node %T", e))
	}

	w.TypeMap[e] = result.Ty
	return result
}

func (w *walker) transSeq(n *ast.SeqExp) ExpTy {
	result := ExpTy{Ty: typesystem.Void}
	for _, e := range n.Exps {
		result = w.transExp(e)
	}
	return result
}

func (w *walker) transAssign(n *ast.AssignExp) ExpTy {
	rhs := w.transExp(n.Exp)
	lhs := w.transLValue(n.Var, true)
	if !rhs.Ty.CoerceTo(lhs.Ty) {
		w.errorf(diagnostics.ErrS004, n.Token, "cannot assign %s to a variable of type %s", rhs.Ty, lhs.Ty)
	}
	return ExpTy{Ty: typesystem.Void}
}

func (w *walker) transIf(n *ast.IfExp) ExpTy {
	w.checkInt(w.transExp(n.Test), n.Test)
	then := w.transExp(n.Then)
	if n.Else == nil {
		if !then.Ty.CoerceTo(typesystem.Void) {
			w.errorf(diagnostics.ErrS004, tokenOf(n.Then), "if-then without else must not produce a value, got %s", then.Ty)
		}
		return ExpTy{Ty: typesystem.Void}
	}
	els := w.transExp(n.Else)
	if !els.Ty.CoerceTo(then.Ty) {
		w.errorf(diagnostics.ErrS004, tokenOf(n.Else), "if branches have different types: then is %s, else is %s", then.Ty, els.Ty)
	}
	return ExpTy{Ty: els.Ty}
}

func (w *walker) transWhile(n *ast.WhileExp) ExpTy {
	w.checkInt(w.transExp(n.Test), n.Test)
	body := w.loopBody(n.Body)
	if !body.Ty.CoerceTo(typesystem.Void) {
		w.errorf(diagnostics.ErrS004, tokenOf(n.Body), "while body must not produce a value, got %s", body.Ty)
	}
	return ExpTy{Ty: typesystem.Void}
}

func (w *walker) transFor(n *ast.ForExp) ExpTy {
	w.checkInt(w.transExp(n.Lo), n.Lo)
	w.checkInt(w.transExp(n.Hi), n.Hi)

	w.env.Values.BeginScope()
	defer w.env.Values.EndScope()
	w.env.Values.Put(n.Var, &env.VarEntry{Ty: typesystem.Int, ReadOnly: w.readOnlyLoopVars})

	body := w.loopBody(n.Body)
	if !body.Ty.CoerceTo(typesystem.Void) {
		w.errorf(diagnostics.ErrS004, tokenOf(n.Body), "for body must not produce a value, got %s", body.Ty)
	}
	return ExpTy{Ty: typesystem.Void}
}

// loopBody checks body with break allowed.
func (w *walker) loopBody(body ast.Exp) ExpTy {
	saved := w.inLoop
	w.inLoop = true
	defer func() { w.inLoop = saved }()
	return w.transExp(body)
}

func (w *walker) transLet(n *ast.LetExp) ExpTy {
	w.env.Values.BeginScope()
	w.env.Types.BeginScope()
	defer func() {
		w.env.Types.EndScope()
		w.env.Values.EndScope()
	}()

	w.transDecs(n.Decs)
	body := w.transExp(n.Body)
	return ExpTy{Exp: body.Exp, Ty: body.Ty}
}

func (w *walker) transOp(n *ast.OpExp) ExpTy {
	left := w.transExp(n.Left)
	right := w.transExp(n.Right)

	switch {
	case n.Oper.IsArithmetic():
		w.checkInt(left, n.Left)
		w.checkInt(right, n.Right)
	case n.Oper.IsOrdering():
		lok := w.checkComparable(left, n.Left)
		rok := w.checkComparable(right, n.Right)
		if lok && rok && !typesystem.Identical(left.Ty, right.Ty) {
			w.errorf(diagnostics.ErrS004, n.Token, "operands of %s have different types: %s and %s", n.Oper, left.Ty, right.Ty)
		}
	case n.Oper.IsEquality():
		w.checkEquality(n, left, right)
	default:
		panic(fmt.Sprintf("analyzer: unexpected operator %d", n.Oper))
	}
	return ExpTy{Ty: typesystem.Int}
}

func (w *walker) checkEquality(n *ast.OpExp, left, right ExpTy) {
	lok := w.checkEquable(left, n.Left)
	rok := w.checkEquable(right, n.Right)
	if !lok || !rok {
		return
	}
	lt, rt := typesystem.Actual(left.Ty), typesystem.Actual(right.Ty)
	if lt == typesystem.Nil && rt == typesystem.Nil {
		w.errorf(diagnostics.ErrS004, n.Token, "cannot compare nil with nil")
		return
	}
	if !left.Ty.CoerceTo(right.Ty) && !right.Ty.CoerceTo(left.Ty) {
		w.errorf(diagnostics.ErrS004, n.Token, "operands of %s have different types: %s and %s", n.Oper, left.Ty, right.Ty)
	}
}

func (w *walker) transRecord(n *ast.RecordExp) ExpTy {
	ty, found := w.lookupType(n.Type, n.Token)
	var rec *typesystem.TRecord
	if found {
		var ok bool
		if rec, ok = typesystem.AsRecord(ty); !ok {
			w.errorf(diagnostics.ErrS006, n.Token, "%s is not a record type", n.Type)
		}
	}

	for i, f := range n.Fields {
		init := w.transExp(f.Init)
		if rec == nil {
			continue
		}
		if i >= len(rec.Fields) {
			w.errorf(diagnostics.ErrS005, f.Token, "record %s has no field %s at position %d", n.Type, f.Name, i+1)
			continue
		}
		decl := rec.Fields[i]
		if decl.Name != f.Name {
			w.errorf(diagnostics.ErrS005, f.Token, "expected field %s of record %s, found %s", decl.Name, n.Type, f.Name)
			continue
		}
		if !init.Ty.CoerceTo(decl.Type) {
			w.errorf(diagnostics.ErrS004, tokenOf(f.Init), "field %s of record %s expects %s, got %s", f.Name, n.Type, decl.Type, init.Ty)
		}
	}
	if rec != nil && len(n.Fields) < len(rec.Fields) {
		w.errorf(diagnostics.ErrS005, n.Token, "missing field %s in record %s", rec.Fields[len(n.Fields)].Name, n.Type)
	}

	if !found {
		return ExpTy{Ty: typesystem.Void}
	}
	return ExpTy{Ty: ty}
}

func (w *walker) transArray(n *ast.ArrayExp) ExpTy {
	ty, found := w.lookupType(n.Type, n.Token)
	w.checkInt(w.transExp(n.Size), n.Size)
	init := w.transExp(n.Init)
	if !found {
		return ExpTy{Ty: typesystem.Void}
	}

	arr, ok := typesystem.AsArray(ty)
	if !ok {
		w.errorf(diagnostics.ErrS006, n.Token, "%s is not an array type", n.Type)
		return ExpTy{Ty: ty}
	}
	if !init.Ty.CoerceTo(arr.Elem) {
		w.errorf(diagnostics.ErrS004, tokenOf(n.Init), "array initializer has type %s, element type of %s is %s", init.Ty, n.Type, arr.Elem)
	}
	return ExpTy{Ty: ty}
}

func (w *walker) transCall(n *ast.CallExp) ExpTy {
	entry, ok := w.env.Values.Get(n.Func)
	var fun *env.FunEntry
	if !ok {
		w.errorf(diagnostics.ErrS002, n.Token, "undeclared function %s", n.Func)
	} else if fun, ok = entry.(*env.FunEntry); !ok {
		w.errorf(diagnostics.ErrS006, n.Token, "%s is a variable, not a function", n.Func)
	}

	for i, arg := range n.Args {
		at := w.transExp(arg)
		if fun == nil || i >= len(fun.Formals) {
			continue
		}
		formal := fun.Formals[i]
		if !at.Ty.CoerceTo(formal.Type) {
			w.errorf(diagnostics.ErrS004, tokenOf(arg), "argument %s of %s expects %s, got %s", formal.Name, n.Func, formal.Type, at.Ty)
		}
	}
	if fun == nil {
		return ExpTy{Ty: typesystem.Void}
	}

	switch {
	case len(n.Args) < len(fun.Formals):
		w.errorf(diagnostics.ErrS005, n.Token, "missing argument %s in call to %s", fun.Formals[len(n.Args)].Name, n.Func)
	case len(n.Args) > len(fun.Formals):
		w.errorf(diagnostics.ErrS005, tokenOf(n.Args[len(fun.Formals)]), "too many arguments in call to %s: want %d, got %d", n.Func, len(fun.Formals), len(n.Args))
	}
	return ExpTy{Ty: fun.Result}
}
