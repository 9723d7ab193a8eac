// Package symbols provides interned identifiers and the block-structured
// tables keyed by them.
package symbols

import "sync"

// Symbol is an interned identifier. Two symbols with the same text are the
// same pointer, so symbols compare with == and key maps directly.
type Symbol struct {
	name string
}

func (s *Symbol) String() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}

// Name returns the identifier text.
func (s *Symbol) Name() string { return s.String() }

var (
	internMu sync.Mutex
	interned = make(map[string]*Symbol)
)

// Intern returns the unique symbol for name.
func Intern(name string) *Symbol {
	internMu.Lock()
	defer internMu.Unlock()
	if s, ok := interned[name]; ok {
		return s
	}
	s := &Symbol{name: name}
	interned[name] = s
	return s
}
