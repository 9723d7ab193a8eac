package ast

import (
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/token"
)

// --- L-values ---

// SimpleVar names a variable.
type SimpleVar struct {
	Token token.Token
	Name  *symbols.Symbol
}

// FieldVar selects a record field.
type FieldVar struct {
	Token token.Token
	Var   Var
	Field *symbols.Symbol
}

// SubscriptVar indexes an array.
type SubscriptVar struct {
	Token token.Token
	Var   Var
	Index Exp
}

func (v *SimpleVar) TokenLiteral() string    { return v.Token.Lexeme }
func (v *FieldVar) TokenLiteral() string     { return v.Token.Lexeme }
func (v *SubscriptVar) TokenLiteral() string { return v.Token.Lexeme }

func (v *SimpleVar) GetToken() token.Token    { return v.Token }
func (v *FieldVar) GetToken() token.Token     { return v.Token }
func (v *SubscriptVar) GetToken() token.Token { return v.Token }

func (*SimpleVar) varNode()    {}
func (*FieldVar) varNode()     {}
func (*SubscriptVar) varNode() {}

// --- Declarations ---

// VarDec declares a variable. Type is nil when there is no annotation.
type VarDec struct {
	Token token.Token
	Name  *symbols.Symbol
	Type  *NameTy
	Init  Exp
}

// TypeDec declares a type name.
type TypeDec struct {
	Token token.Token
	Name  *symbols.Symbol
	Ty    Ty
}

// FunctionDec declares a function. Result is nil for procedures.
type FunctionDec struct {
	Token  token.Token
	Name   *symbols.Symbol
	Params []*Field
	Result *NameTy
	Body   Exp
}

func (d *VarDec) TokenLiteral() string      { return d.Token.Lexeme }
func (d *TypeDec) TokenLiteral() string     { return d.Token.Lexeme }
func (d *FunctionDec) TokenLiteral() string { return d.Token.Lexeme }

func (d *VarDec) GetToken() token.Token      { return d.Token }
func (d *TypeDec) GetToken() token.Token     { return d.Token }
func (d *FunctionDec) GetToken() token.Token { return d.Token }

func (*VarDec) decNode()      {}
func (*TypeDec) decNode()     {}
func (*FunctionDec) decNode() {}

// --- Type syntax ---

// NameTy refers to a type by name.
type NameTy struct {
	Token token.Token
	Name  *symbols.Symbol
}

// ArrayTy is `array of Elem`.
type ArrayTy struct {
	Token token.Token
	Elem  *symbols.Symbol
}

// RecordTy is `{ f1: t1, ... }`.
type RecordTy struct {
	Token  token.Token
	Fields []*Field
}

func (t *NameTy) TokenLiteral() string   { return t.Token.Lexeme }
func (t *ArrayTy) TokenLiteral() string  { return t.Token.Lexeme }
func (t *RecordTy) TokenLiteral() string { return t.Token.Lexeme }

func (t *NameTy) GetToken() token.Token   { return t.Token }
func (t *ArrayTy) GetToken() token.Token  { return t.Token }
func (t *RecordTy) GetToken() token.Token { return t.Token }

func (*NameTy) tyNode()   {}
func (*ArrayTy) tyNode()  {}
func (*RecordTy) tyNode() {}
