package typesystem

import (
	"errors"
	"testing"

	"github.com/funvibe/tigersem/internal/symbols"
)

func sym(name string) *symbols.Symbol { return symbols.Intern(name) }

func TestPrimitiveCoercion(t *testing.T) {
	tests := []struct {
		name string
		from Type
		to   Type
		want bool
	}{
		{"int to int", Int, Int, true},
		{"string to string", String, String, true},
		{"void to void", Void, Void, true},
		{"int to string", Int, String, false},
		{"string to int", String, Int, false},
		{"nil to int", Nil, Int, false},
		{"nil to string", Nil, String, false},
		{"int to void", Int, Void, false},
		{"void to int", Void, Int, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CoerceTo(tt.to); got != tt.want {
				t.Errorf("%s.CoerceTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRecordIdentity(t *testing.T) {
	fields := []Field{{Name: sym("x"), Type: Int}}
	a := NewName(sym("a"))
	b := NewName(sym("b"))
	if err := a.Bind(NewRecord(fields)); err != nil {
		t.Fatal(err)
	}
	if err := b.Bind(NewRecord(fields)); err != nil {
		t.Fatal(err)
	}

	if a.CoerceTo(b) {
		t.Errorf("structurally identical records must stay distinct")
	}
	if !a.CoerceTo(a) {
		t.Errorf("a record type coerces to itself")
	}
	if !Nil.CoerceTo(a) {
		t.Errorf("nil coerces to any record")
	}
	if a.CoerceTo(Nil) {
		t.Errorf("a record does not coerce to nil")
	}
}

func TestArrayIdentity(t *testing.T) {
	a1 := NewArray(Int)
	a2 := NewArray(Int)
	if a1.CoerceTo(a2) {
		t.Errorf("two array declarations with the same element type are distinct")
	}
	alias := NewName(sym("intArray"))
	if err := alias.Bind(a1); err != nil {
		t.Fatal(err)
	}
	if !alias.CoerceTo(a1) || !a1.CoerceTo(alias) {
		t.Errorf("a name coerces to the array it is bound to")
	}
	if Nil.CoerceTo(a1) {
		t.Errorf("nil does not coerce to arrays")
	}
}

func TestActualFollowsChain(t *testing.T) {
	a := NewName(sym("a"))
	b := NewName(sym("b"))
	if err := a.Bind(b); err != nil {
		t.Fatal(err)
	}
	if n, ok := Unbound(a); !ok || n != b {
		t.Fatalf("expected a to resolve to unbound b")
	}
	if err := b.Bind(Int); err != nil {
		t.Fatal(err)
	}
	if Actual(a) != Int {
		t.Errorf("Actual(a) = %s, want int", Actual(a))
	}
	if !a.CoerceTo(Int) {
		t.Errorf("alias of int coerces to int")
	}
}

func TestBindRejectsPureNameCycle(t *testing.T) {
	a := NewName(sym("a"))
	b := NewName(sym("b"))
	if err := a.Bind(b); err != nil {
		t.Fatal(err)
	}
	err := b.Bind(a)
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected CycleError, got %v", err)
	}
	if cycle.Name != sym("b") {
		t.Errorf("cycle reported on %s, want b", cycle.Name)
	}
	if b.IsBound() {
		t.Errorf("refused binding must leave the name unbound")
	}
}

func TestBindAllowsCycleThroughRecord(t *testing.T) {
	list := NewName(sym("intlist"))
	rec := NewRecord([]Field{
		{Name: sym("head"), Type: Int},
		{Name: sym("tail"), Type: list},
	})
	if err := list.Bind(rec); err != nil {
		t.Fatalf("self reference through a record is legal: %v", err)
	}
	r, ok := AsRecord(list)
	if !ok {
		t.Fatalf("intlist should resolve to a record")
	}
	tail, idx, ok := r.Field(sym("tail"))
	if !ok || idx != 1 {
		t.Fatalf("tail field not found in order")
	}
	if !tail.Type.CoerceTo(list) {
		t.Errorf("tail has type intlist")
	}
	if got := list.Binding().String(); got != "{head: int, tail: intlist}" {
		t.Errorf("String() = %q", got)
	}
}

func TestBindTwicePanics(t *testing.T) {
	n := NewName(sym("once"))
	if err := n.Bind(Int); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on second Bind")
		}
	}()
	_ = n.Bind(String)
}

func TestIdentical(t *testing.T) {
	r := NewRecord(nil)
	n := NewName(sym("r"))
	_ = n.Bind(r)
	if !Identical(n, r) {
		t.Errorf("name and its record are identical")
	}
	if Identical(Nil, r) {
		t.Errorf("nil is not identical to a record")
	}
	if !Identical(String, String) {
		t.Errorf("string is identical to string")
	}
}
