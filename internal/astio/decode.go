// Package astio reads syntax trees produced by an external front end.
//
// Trees are exchanged as YAML. Every expression is a mapping with a single key
// naming its form:
//
//	let:
//	  decs:
//	    - type: {name: point, ty: {record: [{name: x, type: int}]}}
//	    - var: {name: p, type: point, init: {record: {type: point, fields: [{name: x, init: 1}]}}}
//	  body:
//	    - var: {field: {of: p, name: x}}
//
// A YAML sequence in expression position is a sequence expression and a bare
// integer is an integer literal. Line and column of each YAML key become the
// position of the node built from it. Anchors may appear but aliases are
// rejected.
package astio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/symbols"
	"github.com/funvibe/tigersem/internal/token"
)

// DecodeError reports a document that does not describe a valid tree.
type DecodeError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *DecodeError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Token returns the position of the error.
func (e *DecodeError) Token() token.Token {
	return token.Token{Line: e.Line, Column: e.Column}
}

// DecodeFile reads and decodes the tree stored at path.
func DecodeFile(path string) (ast.Exp, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Decode(data, path)
}

// Decode decodes a single expression document. The file name is used only for
// error messages. An empty document decodes to a nil expression.
func Decode(data []byte, file string) (ast.Exp, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}
	d := &decoder{file: file}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, nil
		}
		root = root.Content[0]
	}
	if err := d.rejectAliases(root); err != nil {
		return nil, err
	}
	return d.exp(root)
}

type decoder struct {
	file string
}

// rejectAliases fails on the first alias node in document order. It walks
// Content only and never follows an alias target.
func (d *decoder) rejectAliases(root *yaml.Node) error {
	stack := []*yaml.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Kind == yaml.AliasNode {
			return d.errorf(n, "alias *%s is not supported; write the subtree out", n.Value)
		}
		for i := len(n.Content) - 1; i >= 0; i-- {
			stack = append(stack, n.Content[i])
		}
	}
	return nil
}

func (d *decoder) errorf(n *yaml.Node, format string, args ...interface{}) error {
	return &DecodeError{File: d.file, Line: n.Line, Column: n.Column, Msg: fmt.Sprintf(format, args...)}
}

func tok(n *yaml.Node, lexeme string) token.Token {
	return token.Token{Lexeme: lexeme, Line: n.Line, Column: n.Column}
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// single splits a one-key mapping into its key and value nodes.
func (d *decoder) single(n *yaml.Node, what string) (*yaml.Node, *yaml.Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, nil, d.errorf(n, "%s must be a mapping with exactly one key", what)
	}
	return n.Content[0], n.Content[1], nil
}

// fields reads a mapping, rejecting keys outside allowed.
func (d *decoder) fields(n *yaml.Node, form string, allowed ...string) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, d.errorf(n, "%s expects a mapping", form)
	}
	out := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		known := false
		for _, a := range allowed {
			if a == key {
				known = true
				break
			}
		}
		if !known {
			return nil, d.errorf(n.Content[i], "unknown key %q in %s", key, form)
		}
		if _, dup := out[key]; dup {
			return nil, d.errorf(n.Content[i], "duplicate key %q in %s", key, form)
		}
		out[key] = n.Content[i+1]
	}
	return out, nil
}

func (d *decoder) required(m map[string]*yaml.Node, parent *yaml.Node, form, key string) (*yaml.Node, error) {
	v, ok := m[key]
	if !ok {
		return nil, d.errorf(parent, "%s requires %q", form, key)
	}
	return v, nil
}

func (d *decoder) name(n *yaml.Node, what string) (*symbols.Symbol, error) {
	if n.Kind != yaml.ScalarNode || n.Value == "" || isNull(n) {
		return nil, d.errorf(n, "%s must be a non-empty name", what)
	}
	return symbols.Intern(n.Value), nil
}

// optExp decodes an expression that may be absent or null.
func (d *decoder) optExp(n *yaml.Node) (ast.Exp, error) {
	if isNull(n) {
		return nil, nil
	}
	return d.exp(n)
}

func (d *decoder) exp(n *yaml.Node) (ast.Exp, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		return d.seq(n, n)
	case yaml.ScalarNode:
		if n.Tag == "!!int" {
			return d.intLit(n, n)
		}
		return nil, d.errorf(n, "scalar %q is not an expression; use {var: name} or {string: text}", n.Value)
	case yaml.AliasNode:
		return nil, d.errorf(n, "alias *%s is not supported", n.Value)
	}

	key, val, err := d.single(n, "expression")
	if err != nil {
		return nil, err
	}
	switch key.Value {
	case "int":
		return d.intLit(key, val)
	case "string":
		if val.Kind != yaml.ScalarNode {
			return nil, d.errorf(val, "string literal must be a scalar")
		}
		return &ast.StringExp{Token: tok(key, val.Value), Value: val.Value}, nil
	case "nil":
		return &ast.NilExp{Token: tok(key, "nil")}, nil
	case "break":
		return &ast.BreakExp{Token: tok(key, "break")}, nil
	case "var":
		v, err := d.lvalue(val)
		if err != nil {
			return nil, err
		}
		return &ast.VarExp{Token: v.GetToken(), Var: v}, nil
	case "seq":
		return d.seq(key, val)
	case "assign":
		return d.assign(key, val)
	case "if":
		return d.ifExp(key, val)
	case "while":
		return d.while(key, val)
	case "for":
		return d.forExp(key, val)
	case "let":
		return d.let(key, val)
	case "op":
		return d.op(key, val)
	case "record":
		return d.record(key, val)
	case "array":
		return d.array(key, val)
	case "call":
		return d.call(key, val)
	default:
		return nil, d.errorf(key, "unknown expression form %q", key.Value)
	}
}

func (d *decoder) intLit(at, val *yaml.Node) (ast.Exp, error) {
	v, err := strconv.ParseInt(val.Value, 0, 64)
	if err != nil {
		return nil, d.errorf(val, "invalid integer literal %q", val.Value)
	}
	return &ast.IntExp{Token: tok(at, val.Value), Value: v}, nil
}

func (d *decoder) seq(at, val *yaml.Node) (ast.Exp, error) {
	out := &ast.SeqExp{Token: tok(at, "(")}
	if isNull(val) {
		return out, nil
	}
	if val.Kind != yaml.SequenceNode {
		return nil, d.errorf(val, "seq expects a list of expressions")
	}
	for _, item := range val.Content {
		e, err := d.exp(item)
		if err != nil {
			return nil, err
		}
		out.Exps = append(out.Exps, e)
	}
	return out, nil
}

func (d *decoder) assign(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "assign", "var", "exp")
	if err != nil {
		return nil, err
	}
	vn, err := d.required(m, val, "assign", "var")
	if err != nil {
		return nil, err
	}
	en, err := d.required(m, val, "assign", "exp")
	if err != nil {
		return nil, err
	}
	v, err := d.lvalue(vn)
	if err != nil {
		return nil, err
	}
	e, err := d.exp(en)
	if err != nil {
		return nil, err
	}
	return &ast.AssignExp{Token: tok(key, ":="), Var: v, Exp: e}, nil
}

func (d *decoder) ifExp(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "if", "test", "then", "else")
	if err != nil {
		return nil, err
	}
	out := &ast.IfExp{Token: tok(key, "if")}
	testNode, err := d.required(m, val, "if", "test")
	if err != nil {
		return nil, err
	}
	thenNode, err := d.required(m, val, "if", "then")
	if err != nil {
		return nil, err
	}
	if out.Test, err = d.exp(testNode); err != nil {
		return nil, err
	}
	if out.Then, err = d.exp(thenNode); err != nil {
		return nil, err
	}
	if elseNode, ok := m["else"]; ok {
		if out.Else, err = d.exp(elseNode); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (d *decoder) while(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "while", "test", "body")
	if err != nil {
		return nil, err
	}
	testNode, err := d.required(m, val, "while", "test")
	if err != nil {
		return nil, err
	}
	bodyNode, err := d.required(m, val, "while", "body")
	if err != nil {
		return nil, err
	}
	out := &ast.WhileExp{Token: tok(key, "while")}
	if out.Test, err = d.exp(testNode); err != nil {
		return nil, err
	}
	if out.Body, err = d.exp(bodyNode); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) forExp(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "for", "var", "lo", "hi", "body")
	if err != nil {
		return nil, err
	}
	out := &ast.ForExp{Token: tok(key, "for")}
	nodes := make(map[string]*yaml.Node, 4)
	for _, k := range []string{"var", "lo", "hi", "body"} {
		if nodes[k], err = d.required(m, val, "for", k); err != nil {
			return nil, err
		}
	}
	if out.Var, err = d.name(nodes["var"], "loop variable"); err != nil {
		return nil, err
	}
	if out.Lo, err = d.exp(nodes["lo"]); err != nil {
		return nil, err
	}
	if out.Hi, err = d.exp(nodes["hi"]); err != nil {
		return nil, err
	}
	if out.Body, err = d.exp(nodes["body"]); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) let(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "let", "decs", "body")
	if err != nil {
		return nil, err
	}
	out := &ast.LetExp{Token: tok(key, "let")}
	if decs, ok := m["decs"]; ok && !isNull(decs) {
		if decs.Kind != yaml.SequenceNode {
			return nil, d.errorf(decs, "decs expects a list of declarations")
		}
		for _, item := range decs.Content {
			dec, err := d.dec(item)
			if err != nil {
				return nil, err
			}
			out.Decs = append(out.Decs, dec)
		}
	}
	if out.Body, err = d.optExp(m["body"]); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) op(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "op", "op", "left", "right")
	if err != nil {
		return nil, err
	}
	opNode, err := d.required(m, val, "op", "op")
	if err != nil {
		return nil, err
	}
	oper, ok := ast.LookupOp(opNode.Value)
	if !ok {
		return nil, d.errorf(opNode, "unknown operator %q", opNode.Value)
	}
	leftNode, err := d.required(m, val, "op", "left")
	if err != nil {
		return nil, err
	}
	rightNode, err := d.required(m, val, "op", "right")
	if err != nil {
		return nil, err
	}
	out := &ast.OpExp{Token: tok(opNode, opNode.Value), Oper: oper}
	if out.Left, err = d.exp(leftNode); err != nil {
		return nil, err
	}
	if out.Right, err = d.exp(rightNode); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) record(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "record", "type", "fields")
	if err != nil {
		return nil, err
	}
	typeNode, err := d.required(m, val, "record", "type")
	if err != nil {
		return nil, err
	}
	typ, err := d.name(typeNode, "record type")
	if err != nil {
		return nil, err
	}
	out := &ast.RecordExp{Token: tok(key, typ.Name()), Type: typ}
	fields, ok := m["fields"]
	if !ok || isNull(fields) {
		return out, nil
	}
	if fields.Kind != yaml.SequenceNode {
		return nil, d.errorf(fields, "record fields must be a list")
	}
	for _, item := range fields.Content {
		fm, err := d.fields(item, "record field", "name", "init")
		if err != nil {
			return nil, err
		}
		nameNode, err := d.required(fm, item, "record field", "name")
		if err != nil {
			return nil, err
		}
		initNode, err := d.required(fm, item, "record field", "init")
		if err != nil {
			return nil, err
		}
		name, err := d.name(nameNode, "field name")
		if err != nil {
			return nil, err
		}
		init, err := d.exp(initNode)
		if err != nil {
			return nil, err
		}
		out.Fields = append(out.Fields, &ast.FieldExp{Token: tok(nameNode, name.Name()), Name: name, Init: init})
	}
	return out, nil
}

func (d *decoder) array(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "array", "type", "size", "init")
	if err != nil {
		return nil, err
	}
	nodes := make(map[string]*yaml.Node, 3)
	for _, k := range []string{"type", "size", "init"} {
		if nodes[k], err = d.required(m, val, "array", k); err != nil {
			return nil, err
		}
	}
	typ, err := d.name(nodes["type"], "array type")
	if err != nil {
		return nil, err
	}
	out := &ast.ArrayExp{Token: tok(key, typ.Name()), Type: typ}
	if out.Size, err = d.exp(nodes["size"]); err != nil {
		return nil, err
	}
	if out.Init, err = d.exp(nodes["init"]); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *decoder) call(key, val *yaml.Node) (ast.Exp, error) {
	m, err := d.fields(val, "call", "func", "args")
	if err != nil {
		return nil, err
	}
	fnNode, err := d.required(m, val, "call", "func")
	if err != nil {
		return nil, err
	}
	fn, err := d.name(fnNode, "function name")
	if err != nil {
		return nil, err
	}
	out := &ast.CallExp{Token: tok(fnNode, fn.Name()), Func: fn}
	args, ok := m["args"]
	if !ok || isNull(args) {
		return out, nil
	}
	if args.Kind != yaml.SequenceNode {
		return nil, d.errorf(args, "call args must be a list")
	}
	for _, item := range args.Content {
		a, err := d.exp(item)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, a)
	}
	return out, nil
}
