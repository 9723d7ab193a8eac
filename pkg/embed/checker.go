// Package tigersem embeds the type checker in Go programs. Hosts can bind
// Go functions and structs so that checked programs may call and build them.
package tigersem

import (
	"context"
	"fmt"
	"os"
	"reflect"

	"github.com/funvibe/tigersem/internal/analyzer"
	"github.com/funvibe/tigersem/internal/astio"
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/pipeline"
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// Checker wraps the analyzer and provides a high-level embedding API.
type Checker struct {
	marshaller *Marshaller
	bindings   []binding

	// SkipBuiltins leaves the standard library out.
	SkipBuiltins bool
	// ReadOnlyLoopVars rejects assignment to for loop variables.
	ReadOnlyLoopVars bool
}

// binding represents a bound Go function or struct.
type binding struct {
	name string
	ty   typesystem.Type // set for types
	fun  *env.FunEntry   // set for functions
}

// Diagnostic is a semantic error found in a checked program.
type Diagnostic struct {
	Code    string
	File    string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: error [%s]: %s", d.File, d.Line, d.Column, d.Code, d.Message)
}

// Result is the outcome of checking one program.
type Result struct {
	// Type is the type of the whole program.
	Type        string
	Diagnostics []Diagnostic
}

// OK reports whether the program type-checked without diagnostics.
func (r *Result) OK() bool { return len(r.Diagnostics) == 0 }

// New creates a checker with the standard library and no host bindings.
func New() *Checker {
	return &Checker{marshaller: NewMarshaller()}
}

// BindType declares the Go type of sample under name.
//
// A struct becomes a record type. Exported fields become record fields with
// their first letter lowered; a `tiger:"name"` tag overrides the name and
// `tiger:"-"` skips the field.
//
// A slice or array names the array type that Go slices of that element type
// convert to, so programs can construct values for bound functions.
func (c *Checker) BindType(name string, sample interface{}) error {
	if !isIdentifier(name) {
		return fmt.Errorf("invalid type name %q", name)
	}
	if sample == nil {
		return fmt.Errorf("%s: sample must not be nil", name)
	}
	t := reflect.TypeOf(sample)
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		at, err := c.marshaller.TypeOf(t)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		c.bindings = append(c.bindings, binding{name: name, ty: at})
		return nil
	}
	tn, err := c.marshaller.record(name, t)
	if err != nil {
		return err
	}
	c.bindings = append(c.bindings, binding{name: name, ty: tn})
	return nil
}

// Bind declares the Go function fn under name. Structs in its signature
// must already be bound with BindType.
func (c *Checker) Bind(name string, fn interface{}) error {
	if !isIdentifier(name) {
		return fmt.Errorf("invalid function name %q", name)
	}
	if fn == nil {
		return fmt.Errorf("%s: function must not be nil", name)
	}
	formals, result, err := c.marshaller.signature(reflect.TypeOf(fn))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	c.bindings = append(c.bindings, binding{name: name, fun: &env.FunEntry{Formals: formals, Result: result}})
	return nil
}

func (c *Checker) prelude(e *env.Env) {
	for _, b := range c.bindings {
		if b.fun != nil {
			e.Values.Put(symbols.Intern(b.name), b.fun)
		} else {
			e.Types.Put(symbols.Intern(b.name), b.ty)
		}
	}
}

// Check type-checks a YAML syntax tree document. Malformed documents are
// reported as an error; semantic problems are returned in the result.
func (c *Checker) Check(ctx context.Context, file string, source []byte) (*Result, error) {
	pctx := pipeline.NewPipelineContext(source)
	pctx.Context = ctx
	pctx.FilePath = file

	pctx = pipeline.New(
		&astio.DecodeProcessor{},
		&analyzer.SemanticAnalyzerProcessor{
			SkipBuiltins:     c.SkipBuiltins,
			ReadOnlyLoopVars: c.ReadOnlyLoopVars,
			Prelude:          c.prelude,
		},
	).Run(pctx)

	if !pctx.Decoded {
		if len(pctx.Errors) > 0 {
			return nil, pctx.Errors[0]
		}
		return nil, fmt.Errorf("%s: document could not be decoded", file)
	}

	res := &Result{Type: typesystem.Void.String()}
	if pctx.ResultType != nil {
		res.Type = pctx.ResultType.String()
	}
	for _, e := range pctx.Errors {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    string(e.Code),
			File:    e.File,
			Line:    e.Token.Line,
			Column:  e.Token.Column,
			Message: e.Message,
		})
	}
	return res, nil
}

// CheckFile reads and checks the document at path.
func (c *Checker) CheckFile(ctx context.Context, path string) (*Result, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Check(ctx, path, source)
}
