package ast

import (
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	GetToken() token.Token
}

// Exp is a value-producing (or void) expression.
type Exp interface {
	Node
	expNode()
}

// Var is an l-value: a simple name, a field access or a subscript.
type Var interface {
	Node
	varNode()
}

// Dec is a declaration inside a let block.
type Dec interface {
	Node
	decNode()
}

// Ty is type syntax on the right-hand side of a type declaration.
type Ty interface {
	Node
	tyNode()
}

// Field is a name/type pair from a record type or a parameter list.
type Field struct {
	Token token.Token
	Name  *symbols.Symbol
	Type  *symbols.Symbol
}

func (f *Field) TokenLiteral() string  { return f.Token.Lexeme }
func (f *Field) GetToken() token.Token { return f.Token }

// Op is a binary operator.
type Op int

const (
	PlusOp Op = iota
	MinusOp
	TimesOp
	DivideOp
	EqOp
	NeqOp
	LtOp
	LeOp
	GtOp
	GeOp
)

var opNames = [...]string{
	PlusOp:   "+",
	MinusOp:  "-",
	TimesOp:  "*",
	DivideOp: "/",
	EqOp:     "=",
	NeqOp:    "<>",
	LtOp:     "<",
	LeOp:     "<=",
	GtOp:     ">",
	GeOp:     ">=",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "?"
}

// LookupOp maps operator text to an Op.
func LookupOp(s string) (Op, bool) {
	for i, name := range opNames {
		if name == s {
			return Op(i), true
		}
	}
	switch s {
	case "!=":
		return NeqOp, true
	case "==":
		return EqOp, true
	}
	return 0, false
}

// IsArithmetic reports whether o is one of + - * /.
func (o Op) IsArithmetic() bool { return o <= DivideOp }

// IsEquality reports whether o is = or <>.
func (o Op) IsEquality() bool { return o == EqOp || o == NeqOp }

// IsOrdering reports whether o is one of < <= > >=.
func (o Op) IsOrdering() bool { return o >= LtOp && o <= GeOp }
