package tigersem_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tigersem "github.com/funvibe/tigersem/pkg/embed"
)

// User represents a Go struct exposed to checked programs as a record.
type User struct {
	Name   string
	Score  int
	Admin  bool `tiger:"is_admin"`
	Secret string `tiger:"-"`
	hidden int
}

// Node is self-referencing.
type Node struct {
	Value int
	Next  *Node
}

func check(t *testing.T, c *tigersem.Checker, src string) *tigersem.Result {
	t.Helper()
	res, err := c.Check(context.Background(), "embed.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	return res
}

func TestEmbedAPI(t *testing.T) {
	c := tigersem.New()

	// 1. Bind a simple function
	if err := c.Bind("double", func(x int) int { return x * 2 }); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	// 2. Bind a struct and a function returning it
	if err := c.BindType("user", User{}); err != nil {
		t.Fatalf("BindType: %v", err)
	}
	if err := c.Bind("lookup", func(name string) (*User, error) { return nil, errors.New("unused") }); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	// 3. Check programs using the bindings
	res := check(t, c, "call: {func: double, args: [21]}\n")
	if !res.OK() || res.Type != "int" {
		t.Errorf("double: %+v", res)
	}

	src := `
let:
  decs:
    - var: {name: u, type: user, init: {call: {func: lookup, args: [{string: alice}]}}}
  body:
    - {var: {field: {of: u, name: score}}}
    - {var: {field: {of: u, name: is_admin}}}
`
	res = check(t, c, src)
	if !res.OK() || res.Type != "int" {
		t.Errorf("record access: %+v", res)
	}

	// 4. Type errors against host signatures are diagnostics
	res = check(t, c, "call: {func: double, args: [{string: x}]}\n")
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "S004" {
		t.Fatalf("expected one S004, got %+v", res.Diagnostics)
	}
	if d := res.Diagnostics[0]; d.File != "embed.yaml" || d.Line != 1 || !strings.Contains(d.Error(), "[S004]") {
		t.Errorf("unexpected diagnostic %+v", d)
	}

	for _, field := range []string{"secret", "hidden", "admin"} {
		src := "let: {decs: [{var: {name: u, type: user, init: {call: {func: lookup, args: [{string: a}]}}}}], body: {var: {field: {of: u, name: " + field + "}}}}\n"
		res := check(t, c, src)
		if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "S012" {
			t.Errorf("field %s should not exist, got %+v", field, res.Diagnostics)
		}
	}
}

func TestBindRecursiveStruct(t *testing.T) {
	c := tigersem.New()
	if err := c.BindType("node", &Node{}); err != nil {
		t.Fatalf("BindType: %v", err)
	}
	if err := c.Bind("head", func() *Node { return nil }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	src := `
let:
  decs:
    - var: {name: n, type: node, init: {call: {func: head}}}
    - var: {name: m, type: node, init: {record: {type: node, fields: [{name: value, init: 1}, {name: next, init: {nil: ~}}]}}}
  body: {var: {field: {of: {field: {of: n, name: next}}, name: value}}}
`
	res := check(t, c, src)
	if !res.OK() || res.Type != "int" {
		t.Errorf("recursive struct: %+v", res)
	}
}

func TestBindProcedure(t *testing.T) {
	c := tigersem.New()
	if err := c.Bind("log", func(msg string, level int) {}); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := c.Bind("tags", func() []string { return nil }); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	res := check(t, c, "call: {func: log, args: [{string: hi}, 1]}\n")
	if !res.OK() || res.Type != "void" {
		t.Errorf("procedure: %+v", res)
	}
	res = check(t, c, "call: {func: log, args: [{string: hi}]}\n")
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "S005" {
		t.Errorf("missing argument: %+v", res.Diagnostics)
	}
	res = check(t, c, "call: {func: tags}\n")
	if !res.OK() || res.Type != "array of string" {
		t.Errorf("slice result: %+v", res)
	}
}

func TestBindSlicesShareArrayType(t *testing.T) {
	c := tigersem.New()
	if err := c.Bind("mk", func() []int { return nil }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := c.Bind("sum", func(xs []int) int { return 0 }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := c.Bind("fixed", func() [3]int64 { return [3]int64{} }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := c.Bind("words", func() []string { return nil }); err != nil {
		t.Fatalf("Bind: %v", err)
	}

	res := check(t, c, "call: {func: sum, args: [{call: {func: mk}}]}\n")
	if !res.OK() || res.Type != "int" {
		t.Errorf("sum(mk()): %+v", res)
	}
	res = check(t, c, "call: {func: sum, args: [{call: {func: fixed}}]}\n")
	if !res.OK() {
		t.Errorf("sum(fixed()): %+v", res.Diagnostics)
	}
	res = check(t, c, "call: {func: sum, args: [{call: {func: words}}]}\n")
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "S004" {
		t.Errorf("sum(words()) should be a mismatch, got %+v", res.Diagnostics)
	}
}

func TestBindTypeNamesSlice(t *testing.T) {
	c := tigersem.New()
	if err := c.BindType("ints", []int{}); err != nil {
		t.Fatalf("BindType: %v", err)
	}
	if err := c.Bind("sum", func(xs []int) int { return 0 }); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	src := "call: {func: sum, args: [{array: {type: ints, size: 3, init: 0}}]}\n"
	res := check(t, c, src)
	if !res.OK() || res.Type != "int" {
		t.Errorf("sum(ints [3] of 0): %+v", res)
	}
	if err := c.BindType("chans", []chan int{}); err == nil || !strings.Contains(err.Error(), "unsupported Go type") {
		t.Errorf("slice of channels: %v", err)
	}
}

func TestBindErrors(t *testing.T) {
	c := tigersem.New()
	tests := []struct {
		name string
		bind func() error
		want string
	}{
		{"not a function", func() error { return c.Bind("f", 42) }, "expected a function"},
		{"bad name", func() error { return c.Bind("not valid", func() {}) }, "invalid function name"},
		{"channel argument", func() error { return c.Bind("g", func(chan int) {}) }, "unsupported Go type"},
		{"two results", func() error { return c.Bind("h", func() (int, string) { return 0, "" }) }, "at most one value"},
		{"variadic", func() error { return c.Bind("v", func(xs ...int) {}) }, "variadic"},
		{"unbound struct", func() error { return c.Bind("u", func(User) {}) }, "not bound"},
		{"type not a struct", func() error { return c.BindType("t", 3) }, "expected a struct"},
		{"nil sample", func() error { return c.BindType("t", nil) }, "must not be nil"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bind()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}

	if err := c.BindType("user", User{}); err != nil {
		t.Fatalf("BindType: %v", err)
	}
	if err := c.BindType("person", User{}); err == nil || !strings.Contains(err.Error(), "already bound") {
		t.Errorf("rebinding a struct: %v", err)
	}
}

func TestSkipBuiltins(t *testing.T) {
	c := tigersem.New()
	res := check(t, c, "call: {func: print, args: [{string: hi}]}\n")
	if !res.OK() {
		t.Fatalf("print should be available: %+v", res.Diagnostics)
	}

	c.SkipBuiltins = true
	res = check(t, c, "call: {func: print, args: [{string: hi}]}\n")
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Code != "S002" {
		t.Errorf("expected S002 without builtins, got %+v", res.Diagnostics)
	}
}

func TestCheckFile(t *testing.T) {
	c := tigersem.New()
	path := filepath.Join(t.TempDir(), "prog.yaml")
	if err := os.WriteFile(path, []byte("{string: hi}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := c.CheckFile(context.Background(), path)
	if err != nil {
		t.Fatalf("CheckFile: %v", err)
	}
	if res.Type != "string" {
		t.Errorf("type = %q, want string", res.Type)
	}

	if _, err := c.CheckFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	if _, err := c.Check(context.Background(), "bad.yaml", []byte("bogus: 1\n")); err == nil {
		t.Error("expected a decode error")
	}
}
