package typesystem

import (
	"fmt"

	"github.com/funvibe/tigersem/internal/symbols"
)

// CycleError is returned by Bind when a name would resolve to itself without
// passing through a record or array.
type CycleError struct {
	Name *symbols.Symbol
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("illegal cycle in definition of type %s", e.Name)
}
