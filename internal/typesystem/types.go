package typesystem

import (
	"strings"

	"github.com/funvibe/tigersem/internal/symbols"
)

// Type is the closed set of semantic types. The unexported marker keeps the
// set closed so type switches over it can be exhaustive.
type Type interface {
	String() string
	// CoerceTo reports whether a value of this type may be used where target
	// is expected.
	CoerceTo(target Type) bool
	isType()
}

// TVoid is the type of expressions that produce no value.
type TVoid struct{}

// TInt is the integer type.
type TInt struct{}

// TString is the string type.
type TString struct{}

// TNil is the type of the nil literal.
type TNil struct{}

var (
	Void   Type = TVoid{}
	Int    Type = TInt{}
	String Type = TString{}
	Nil    Type = TNil{}
)

func (TVoid) String() string   { return "void" }
func (TInt) String() string    { return "int" }
func (TString) String() string { return "string" }
func (TNil) String() string    { return "nil" }

func (t TVoid) CoerceTo(target Type) bool   { return Coerces(t, target) }
func (t TInt) CoerceTo(target Type) bool    { return Coerces(t, target) }
func (t TString) CoerceTo(target Type) bool { return Coerces(t, target) }
func (t TNil) CoerceTo(target Type) bool    { return Coerces(t, target) }

func (TVoid) isType()   {}
func (TInt) isType()    {}
func (TString) isType() {}
func (TNil) isType()    {}

// Field is one named slot of a record type or a formal parameter list.
type Field struct {
	Name *symbols.Symbol
	Type Type
}

// TRecord is a record type. Records are nominal: two TRecord values are the
// same type only if they are the same pointer.
type TRecord struct {
	Fields []Field
}

// NewRecord allocates a fresh record type.
func NewRecord(fields []Field) *TRecord {
	return &TRecord{Fields: fields}
}

// Field finds a field by name, returning its position in declaration order.
func (r *TRecord) Field(name *symbols.Symbol) (Field, int, bool) {
	for i, f := range r.Fields {
		if f.Name == name {
			return f, i, true
		}
	}
	return Field{}, -1, false
}

func (r *TRecord) String() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Name.Name() + ": " + typeName(f.Type)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (r *TRecord) CoerceTo(target Type) bool { return Coerces(r, target) }
func (*TRecord) isType()                     {}

// TArray is an array type. Like records, arrays are nominal.
type TArray struct {
	Elem Type
}

// NewArray allocates a fresh array type.
func NewArray(elem Type) *TArray {
	return &TArray{Elem: elem}
}

func (a *TArray) String() string             { return "array of " + typeName(a.Elem) }
func (a *TArray) CoerceTo(target Type) bool { return Coerces(a, target) }
func (*TArray) isType()                     {}

// TName is the placeholder registered for a type declaration before its body
// is known. It is bound exactly once.
type TName struct {
	Sym     *symbols.Symbol
	binding Type
}

// NewName returns an unbound name type.
func NewName(sym *symbols.Symbol) *TName {
	return &TName{Sym: sym}
}

func (n *TName) String() string             { return n.Sym.Name() }
func (n *TName) CoerceTo(target Type) bool { return Coerces(n, target) }
func (*TName) isType()                     {}

// Binding returns the bound type, or nil while unbound.
func (n *TName) Binding() Type { return n.binding }

// IsBound reports whether Bind has been called.
func (n *TName) IsBound() bool { return n.binding != nil }

// Bind sets the body of the name. Binding a name twice panics. If following
// t through bound names leads back to n the binding is refused with a
// *CycleError, leaving n unbound.
func (n *TName) Bind(t Type) error {
	if n.binding != nil {
		panic("typesystem: type " + n.Sym.Name() + " bound twice")
	}
	if t == nil {
		panic("typesystem: binding " + n.Sym.Name() + " to nil")
	}
	for cur := t; ; {
		name, ok := cur.(*TName)
		if !ok {
			break
		}
		if name == n {
			return &CycleError{Name: n.Sym}
		}
		if name.binding == nil {
			break
		}
		cur = name.binding
	}
	n.binding = t
	return nil
}

// typeName prints named types by name so recursive records stay finite.
func typeName(t Type) string {
	if t == nil {
		return "<missing>"
	}
	return t.String()
}
