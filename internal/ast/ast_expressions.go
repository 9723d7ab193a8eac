package ast

import (
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/token"
)

// IntExp is an integer literal.
type IntExp struct {
	Token token.Token
	Value int64
}

// StringExp is a string literal.
type StringExp struct {
	Token token.Token
	Value string
}

// NilExp is the nil literal.
type NilExp struct {
	Token token.Token
}

// VarExp reads an l-value.
type VarExp struct {
	Token token.Token
	Var   Var
}

// SeqExp evaluates Exps in order; its value is the last one's.
type SeqExp struct {
	Token token.Token
	Exps  []Exp
}

// AssignExp stores Exp into Var.
type AssignExp struct {
	Token token.Token
	Var   Var
	Exp   Exp
}

// IfExp is if-then with an optional else.
type IfExp struct {
	Token token.Token
	Test  Exp
	Then  Exp
	Else  Exp // nil when absent
}

// WhileExp is a while loop.
type WhileExp struct {
	Token token.Token
	Test  Exp
	Body  Exp
}

// ForExp is a counting loop; Var is bound to an int inside Body.
type ForExp struct {
	Token token.Token
	Var   *symbols.Symbol
	Lo    Exp
	Hi    Exp
	Body  Exp
}

// BreakExp leaves the innermost loop.
type BreakExp struct {
	Token token.Token
}

// LetExp introduces declarations for the duration of Body.
type LetExp struct {
	Token token.Token
	Decs  []Dec
	Body  Exp
}

// OpExp is a binary operation.
type OpExp struct {
	Token token.Token
	Left  Exp
	Oper  Op
	Right Exp
}

// FieldExp is one initializer of a record construction.
type FieldExp struct {
	Token token.Token
	Name  *symbols.Symbol
	Init  Exp
}

// RecordExp constructs a value of the record type named Type.
type RecordExp struct {
	Token  token.Token
	Type   *symbols.Symbol
	Fields []*FieldExp
}

// ArrayExp constructs Size copies of Init as the array type named Type.
type ArrayExp struct {
	Token token.Token
	Type  *symbols.Symbol
	Size  Exp
	Init  Exp
}

// CallExp calls the function Func.
type CallExp struct {
	Token token.Token
	Func  *symbols.Symbol
	Args  []Exp
}

func (e *IntExp) TokenLiteral() string    { return e.Token.Lexeme }
func (e *StringExp) TokenLiteral() string { return e.Token.Lexeme }
func (e *NilExp) TokenLiteral() string    { return e.Token.Lexeme }
func (e *VarExp) TokenLiteral() string    { return e.Token.Lexeme }
func (e *SeqExp) TokenLiteral() string    { return e.Token.Lexeme }
func (e *AssignExp) TokenLiteral() string { return e.Token.Lexeme }
func (e *IfExp) TokenLiteral() string     { return e.Token.Lexeme }
func (e *WhileExp) TokenLiteral() string  { return e.Token.Lexeme }
func (e *ForExp) TokenLiteral() string    { return e.Token.Lexeme }
func (e *BreakExp) TokenLiteral() string  { return e.Token.Lexeme }
func (e *LetExp) TokenLiteral() string    { return e.Token.Lexeme }
func (e *OpExp) TokenLiteral() string     { return e.Token.Lexeme }
func (e *FieldExp) TokenLiteral() string  { return e.Token.Lexeme }
func (e *RecordExp) TokenLiteral() string { return e.Token.Lexeme }
func (e *ArrayExp) TokenLiteral() string  { return e.Token.Lexeme }
func (e *CallExp) TokenLiteral() string   { return e.Token.Lexeme }

func (e *IntExp) GetToken() token.Token    { return e.Token }
func (e *StringExp) GetToken() token.Token { return e.Token }
func (e *NilExp) GetToken() token.Token    { return e.Token }
func (e *VarExp) GetToken() token.Token    { return e.Token }
func (e *SeqExp) GetToken() token.Token    { return e.Token }
func (e *AssignExp) GetToken() token.Token { return e.Token }
func (e *IfExp) GetToken() token.Token     { return e.Token }
func (e *WhileExp) GetToken() token.Token  { return e.Token }
func (e *ForExp) GetToken() token.Token    { return e.Token }
func (e *BreakExp) GetToken() token.Token  { return e.Token }
func (e *LetExp) GetToken() token.Token    { return e.Token }
func (e *OpExp) GetToken() token.Token     { return e.Token }
func (e *FieldExp) GetToken() token.Token  { return e.Token }
func (e *RecordExp) GetToken() token.Token { return e.Token }
func (e *ArrayExp) GetToken() token.Token  { return e.Token }
func (e *CallExp) GetToken() token.Token   { return e.Token }

func (*IntExp) expNode()    {}
func (*StringExp) expNode() {}
func (*NilExp) expNode()    {}
func (*VarExp) expNode()    {}
func (*SeqExp) expNode()    {}
func (*AssignExp) expNode() {}
func (*IfExp) expNode()     {}
func (*WhileExp) expNode()  {}
func (*ForExp) expNode()    {}
func (*BreakExp) expNode()  {}
func (*LetExp) expNode()    {}
func (*OpExp) expNode()     {}
func (*RecordExp) expNode() {}
func (*ArrayExp) expNode()  {}
func (*CallExp) expNode()   {}
