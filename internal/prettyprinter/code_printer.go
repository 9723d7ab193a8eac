// Package prettyprinter renders syntax trees in the language's concrete syntax.
package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/tigersem/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter). Comparisons do not associate.
var operatorPrecedence = map[ast.Op]int{
	ast.EqOp:     2,
	ast.NeqOp:    2,
	ast.LtOp:     2,
	ast.LeOp:     2,
	ast.GtOp:     2,
	ast.GeOp:     2,
	ast.PlusOp:   3,
	ast.MinusOp:  3,
	ast.TimesOp:  4,
	ast.DivideOp: 4,
}

// Expressions that are not operators bind loosest unless they are atoms.
// precClosed marks positions where a trailing loose expression would
// swallow the text that follows it.
const (
	precLoose  = 0
	precClosed = 1
	precAtom   = 10
)

type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders e followed by a newline. A nil expression prints as "()".
func Print(e ast.Exp) string {
	p := NewCodePrinter()
	p.printExpr(e, precLoose, false)
	p.buf.WriteByte('\n')
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) newline() {
	p.buf.WriteByte('\n')
	p.buf.WriteString(strings.Repeat("    ", p.indent))
}

func precedence(e ast.Exp) int {
	switch e := e.(type) {
	case *ast.OpExp:
		return operatorPrecedence[e.Oper]
	case *ast.AssignExp, *ast.IfExp, *ast.WhileExp, *ast.ForExp, *ast.ArrayExp:
		return precLoose
	}
	return precAtom
}

// printExpr prints an expression, adding parentheses only if needed
func (p *CodePrinter) printExpr(expr ast.Exp, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("()")
		return
	}

	prec := precedence(expr)
	needParens := prec < parentPrec
	if prec == parentPrec && parentPrec > precClosed {
		// Arithmetic is left-associative; comparisons never chain
		needParens = isRight || prec == operatorPrecedence[ast.EqOp]
	}
	if needParens {
		p.write("(")
		defer p.write(")")
	}

	switch e := expr.(type) {
	case *ast.IntExp:
		p.write(strconv.FormatInt(e.Value, 10))
	case *ast.StringExp:
		p.write(strconv.Quote(e.Value))
	case *ast.NilExp:
		p.write("nil")
	case *ast.BreakExp:
		p.write("break")
	case *ast.VarExp:
		p.printVar(e.Var)
	case *ast.SeqExp:
		p.printSeq(e)
	case *ast.AssignExp:
		p.printVar(e.Var)
		p.write(" := ")
		p.printExpr(e.Exp, precLoose, true)
	case *ast.IfExp:
		p.write("if ")
		p.printExpr(e.Test, precLoose, false)
		p.write(" then ")
		p.printExpr(e.Then, precClosed, false)
		if e.Else != nil {
			p.write(" else ")
			p.printExpr(e.Else, precLoose, true)
		}
	case *ast.WhileExp:
		p.write("while ")
		p.printExpr(e.Test, precLoose, false)
		p.write(" do ")
		p.printExpr(e.Body, precLoose, true)
	case *ast.ForExp:
		p.write("for " + e.Var.Name() + " := ")
		p.printExpr(e.Lo, precLoose, false)
		p.write(" to ")
		p.printExpr(e.Hi, precLoose, false)
		p.write(" do ")
		p.printExpr(e.Body, precLoose, true)
	case *ast.LetExp:
		p.printLet(e)
	case *ast.OpExp:
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Oper.String() + " ")
		p.printExpr(e.Right, prec, true)
	case *ast.RecordExp:
		p.write(e.Type.Name() + "{")
		for i, f := range e.Fields {
			if i > 0 {
				p.write(", ")
			}
			p.write(f.Name.Name() + " = ")
			p.printExpr(f.Init, precLoose, false)
		}
		p.write("}")
	case *ast.ArrayExp:
		p.write(e.Type.Name() + "[")
		p.printExpr(e.Size, precLoose, false)
		p.write("] of ")
		p.printExpr(e.Init, precLoose, true)
	case *ast.CallExp:
		p.write(e.Func.Name() + "(")
		for i, a := range e.Args {
			if i > 0 {
				p.write(", ")
			}
			p.printExpr(a, precLoose, false)
		}
		p.write(")")
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printVar(v ast.Var) {
	switch v := v.(type) {
	case *ast.SimpleVar:
		p.write(v.Name.Name())
	case *ast.FieldVar:
		p.printVar(v.Var)
		p.write("." + v.Field.Name())
	case *ast.SubscriptVar:
		p.printVar(v.Var)
		p.write("[")
		p.printExpr(v.Index, precLoose, false)
		p.write("]")
	default:
		p.write("<???>")
	}
}

// printSeq breaks sequences of more than one expression over lines.
func (p *CodePrinter) printSeq(s *ast.SeqExp) {
	switch len(s.Exps) {
	case 0:
		p.write("()")
		return
	case 1:
		p.write("(")
		p.printExpr(s.Exps[0], precLoose, false)
		p.write(")")
		return
	}
	p.write("(")
	p.indent++
	for i, e := range s.Exps {
		p.newline()
		p.printExpr(e, precLoose, false)
		if i < len(s.Exps)-1 {
			p.write(";")
		}
	}
	p.indent--
	p.newline()
	p.write(")")
}

func (p *CodePrinter) printLet(e *ast.LetExp) {
	p.write("let")
	p.indent++
	for _, d := range e.Decs {
		p.newline()
		p.printDec(d)
	}
	p.indent--
	p.newline()
	p.write("in")
	p.indent++
	body := []ast.Exp{e.Body}
	if seq, ok := e.Body.(*ast.SeqExp); ok {
		body = seq.Exps
	}
	for i, b := range body {
		if b == nil {
			continue
		}
		p.newline()
		p.printExpr(b, precLoose, false)
		if i < len(body)-1 {
			p.write(";")
		}
	}
	p.indent--
	p.newline()
	p.write("end")
}

func (p *CodePrinter) printDec(d ast.Dec) {
	switch d := d.(type) {
	case *ast.VarDec:
		p.write("var " + d.Name.Name())
		if d.Type != nil {
			p.write(": " + d.Type.Name.Name())
		}
		p.write(" := ")
		p.printExpr(d.Init, precLoose, false)
	case *ast.TypeDec:
		p.write("type " + d.Name.Name() + " = ")
		p.printTy(d.Ty)
	case *ast.FunctionDec:
		p.write("function " + d.Name.Name() + "(")
		p.printFields(d.Params)
		p.write(")")
		if d.Result != nil {
			p.write(": " + d.Result.Name.Name())
		}
		p.write(" =")
		p.indent++
		p.newline()
		p.printExpr(d.Body, precLoose, false)
		p.indent--
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printTy(t ast.Ty) {
	switch t := t.(type) {
	case *ast.NameTy:
		p.write(t.Name.Name())
	case *ast.ArrayTy:
		p.write("array of " + t.Elem.Name())
	case *ast.RecordTy:
		p.write("{")
		p.printFields(t.Fields)
		p.write("}")
	default:
		p.write("<???>")
	}
}

func (p *CodePrinter) printFields(fields []*ast.Field) {
	for i, f := range fields {
		if i > 0 {
			p.write(", ")
		}
		p.write(f.Name.Name() + ": " + f.Type.Name())
	}
}
