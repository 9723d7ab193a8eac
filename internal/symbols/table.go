package symbols

// Table is a block-structured mapping from symbols to bindings.
//
// Each symbol owns a stack of bindings; Put pushes onto it and records the
// symbol in an undo log. EndScope pops the log back to the mark left by the
// matching BeginScope, which restores every shadowed outer binding.
type Table[V any] struct {
	bindings map[*Symbol][]V
	undo     []*Symbol
	marks    []int
}

// NewTable returns an empty table with one open (outermost) scope.
func NewTable[V any]() *Table[V] {
	return &Table[V]{bindings: make(map[*Symbol][]V)}
}

// Get returns the innermost visible binding of sym.
func (t *Table[V]) Get(sym *Symbol) (V, bool) {
	stack := t.bindings[sym]
	if len(stack) == 0 {
		var zero V
		return zero, false
	}
	return stack[len(stack)-1], true
}

// Put binds sym in the current scope, hiding any outer binding.
func (t *Table[V]) Put(sym *Symbol, v V) {
	t.bindings[sym] = append(t.bindings[sym], v)
	t.undo = append(t.undo, sym)
}

// BeginScope opens a nested scope.
func (t *Table[V]) BeginScope() {
	t.marks = append(t.marks, len(t.undo))
}

// EndScope discards every binding made since the matching BeginScope.
// Calling it without an open scope is a programming error.
func (t *Table[V]) EndScope() {
	if len(t.marks) == 0 {
		panic("symbols: EndScope without matching BeginScope")
	}
	mark := t.marks[len(t.marks)-1]
	t.marks = t.marks[:len(t.marks)-1]
	for i := len(t.undo) - 1; i >= mark; i-- {
		sym := t.undo[i]
		stack := t.bindings[sym]
		if len(stack) == 1 {
			delete(t.bindings, sym)
		} else {
			t.bindings[sym] = stack[:len(stack)-1]
		}
	}
	t.undo = t.undo[:mark]
}

// Depth reports how many scopes are open above the outermost one.
func (t *Table[V]) Depth() int {
	return len(t.marks)
}

// Visible returns every symbol that currently resolves to a binding, in no
// particular order.
func (t *Table[V]) Visible() []*Symbol {
	out := make([]*Symbol, 0, len(t.bindings))
	for sym := range t.bindings {
		out = append(out, sym)
	}
	return out
}
