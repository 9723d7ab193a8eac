// Package diagnostics defines the error values produced by semantic analysis.
//
// Diagnostics are data, not control flow: every checking rule that finds a
// problem records a DiagnosticError and carries on with a recovery type.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/funvibe/tigersem/internal/token"
)

// DiagnosticError is a single positioned semantic error.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

// NewError builds a diagnostic. An empty message falls back to the code summary.
func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	if message == "" {
		message = code.Summary()
	}
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

// Newf is NewError with a formatted message.
func Newf(code ErrorCode, tok token.Token, format string, args ...interface{}) *DiagnosticError {
	return NewError(code, tok, fmt.Sprintf(format, args...))
}

func (e *DiagnosticError) Error() string {
	loc := e.Token.String()
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return fmt.Sprintf("%s: error [%s]: %s", loc, e.Code, e.Message)
}

// Reporter receives diagnostics as they are found.
type Reporter interface {
	Report(err *DiagnosticError)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err *DiagnosticError)

func (f ReporterFunc) Report(err *DiagnosticError) { f(err) }

// Collector is a Reporter that keeps every diagnostic in arrival order.
type Collector struct {
	errs []*DiagnosticError
}

func (c *Collector) Report(err *DiagnosticError) {
	c.errs = append(c.errs, err)
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int { return len(c.errs) }

// Sorted returns the collected diagnostics ordered by position. Diagnostics at
// the same position keep arrival order; nothing is deduplicated.
func (c *Collector) Sorted() []*DiagnosticError {
	out := make([]*DiagnosticError, len(c.errs))
	copy(out, c.errs)
	Sort(out)
	return out
}

// Sort stably orders diagnostics by file, then line and column.
func Sort(errs []*DiagnosticError) {
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].File != errs[j].File {
			return errs[i].File < errs[j].File
		}
		return errs[i].Token.Before(errs[j].Token)
	})
}
