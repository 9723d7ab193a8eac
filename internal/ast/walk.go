package ast

import "fmt"

// Inspect traverses the tree rooted at node in depth-first order, calling fn
// for each node. If fn returns false the children of that node are skipped.
// Nil nodes are ignored.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *IntExp, *StringExp, *NilExp, *BreakExp, *SimpleVar, *NameTy, *ArrayTy, *Field:
	case *VarExp:
		Inspect(n.Var, fn)
	case *SeqExp:
		for _, e := range n.Exps {
			Inspect(e, fn)
		}
	case *AssignExp:
		Inspect(n.Var, fn)
		Inspect(n.Exp, fn)
	case *IfExp:
		Inspect(n.Test, fn)
		Inspect(n.Then, fn)
		Inspect(n.Else, fn)
	case *WhileExp:
		Inspect(n.Test, fn)
		Inspect(n.Body, fn)
	case *ForExp:
		Inspect(n.Lo, fn)
		Inspect(n.Hi, fn)
		Inspect(n.Body, fn)
	case *LetExp:
		for _, d := range n.Decs {
			Inspect(d, fn)
		}
		Inspect(n.Body, fn)
	case *OpExp:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *RecordExp:
		for _, f := range n.Fields {
			Inspect(f, fn)
		}
	case *FieldExp:
		Inspect(n.Init, fn)
	case *ArrayExp:
		Inspect(n.Size, fn)
		Inspect(n.Init, fn)
	case *CallExp:
		for _, a := range n.Args {
			Inspect(a, fn)
		}
	case *FieldVar:
		Inspect(n.Var, fn)
	case *SubscriptVar:
		Inspect(n.Var, fn)
		Inspect(n.Index, fn)
	case *VarDec:
		if n.Type != nil {
			Inspect(n.Type, fn)
		}
		Inspect(n.Init, fn)
	case *TypeDec:
		Inspect(n.Ty, fn)
	case *FunctionDec:
		for _, p := range n.Params {
			Inspect(p, fn)
		}
		if n.Result != nil {
			Inspect(n.Result, fn)
		}
		Inspect(n.Body, fn)
	case *RecordTy:
		for _, f := range n.Fields {
			Inspect(f, fn)
		}
	default:
		panic(fmt.Sprintf("ast: unexpected node %T", node))
	}
}
