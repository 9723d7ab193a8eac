package typesystem

// Actual follows name bindings until it reaches a type that is not a bound
// name. The result is either a structural or primitive type, or the first
// unbound *TName on the chain.
func Actual(t Type) Type {
	for {
		n, ok := t.(*TName)
		if !ok || n.binding == nil {
			return t
		}
		t = n.binding
	}
}

// Unbound returns the unbound name that t resolves to, if any.
func Unbound(t Type) (*TName, bool) {
	n, ok := Actual(t).(*TName)
	return n, ok
}

// Coerces implements the coercion rule shared by every Type.
//
// Primitives coerce to the same primitive. Nil coerces to any record.
// Names, records and arrays coerce only when both sides resolve to the very
// same type object.
func Coerces(from, to Type) bool {
	if from == nil || to == nil {
		return false
	}
	a := Actual(from)
	b := Actual(to)

	switch a.(type) {
	case TVoid:
		_, ok := b.(TVoid)
		return ok
	case TInt:
		_, ok := b.(TInt)
		return ok
	case TString:
		_, ok := b.(TString)
		return ok
	case TNil:
		switch b.(type) {
		case TNil, *TRecord:
			return true
		}
		return false
	case *TRecord, *TArray, *TName:
		return a == b
	default:
		panic("typesystem: unknown type " + a.String())
	}
}

// AsRecord resolves t and returns it as a record.
func AsRecord(t Type) (*TRecord, bool) {
	r, ok := Actual(t).(*TRecord)
	return r, ok
}

// AsArray resolves t and returns it as an array.
func AsArray(t Type) (*TArray, bool) {
	a, ok := Actual(t).(*TArray)
	return a, ok
}

// Identical reports whether two types resolve to the same type. Primitives
// are identical to themselves; structural types by identity.
func Identical(x, y Type) bool {
	return Actual(x) == Actual(y)
}
