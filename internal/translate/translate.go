// Package translate holds the hand-off type shared with the translation stage.
// The semantic analyzer threads these handles through without inspecting them.
package translate

// Exp is an opaque translated-expression handle. A nil Exp is valid and is what
// the analyzer produces when no translator is attached.
type Exp interface{}
