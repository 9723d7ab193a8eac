package astio

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/tigersem/internal/ast"
)

func TestDecodeLetWithDeclarations(t *testing.T) {
	input := `
let:
  decs:
    - type: {name: intlist, ty: {record: [{name: head, type: int}, {name: tail, type: intlist}]}}
    - type: {name: row, ty: {array: int}}
    - var: {name: l, type: intlist, init: {nil: ~}}
    - function:
        name: len
        params: [{name: l, type: intlist}]
        result: int
        body: 0
  body:
    - {call: {func: len, args: [{var: l}]}}
    - {var: {field: {of: l, name: head}}}
`
	exp, err := Decode([]byte(input), "prog.yaml")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	let, ok := exp.(*ast.LetExp)
	if !ok {
		t.Fatalf("expected *ast.LetExp, got %T", exp)
	}
	if len(let.Decs) != 4 {
		t.Fatalf("expected 4 declarations, got %d", len(let.Decs))
	}

	td, ok := let.Decs[0].(*ast.TypeDec)
	if !ok {
		t.Fatalf("decs[0]: expected *ast.TypeDec, got %T", let.Decs[0])
	}
	rt, ok := td.Ty.(*ast.RecordTy)
	if !ok || len(rt.Fields) != 2 || rt.Fields[1].Type.Name() != "intlist" {
		t.Errorf("unexpected record syntax %#v", td.Ty)
	}
	if at, ok := let.Decs[1].(*ast.TypeDec).Ty.(*ast.ArrayTy); !ok || at.Elem.Name() != "int" {
		t.Errorf("decs[1]: expected array of int")
	}

	vd := let.Decs[2].(*ast.VarDec)
	if vd.Type == nil || vd.Type.Name.Name() != "intlist" {
		t.Errorf("var annotation lost: %#v", vd.Type)
	}
	if _, ok := vd.Init.(*ast.NilExp); !ok {
		t.Errorf("expected nil initializer, got %T", vd.Init)
	}

	fd := let.Decs[3].(*ast.FunctionDec)
	if fd.Name.Name() != "len" || len(fd.Params) != 1 || fd.Result == nil {
		t.Errorf("unexpected function %#v", fd)
	}
	if lit, ok := fd.Body.(*ast.IntExp); !ok || lit.Value != 0 {
		t.Errorf("bare integer body should decode to IntExp, got %#v", fd.Body)
	}

	seq, ok := let.Body.(*ast.SeqExp)
	if !ok || len(seq.Exps) != 2 {
		t.Fatalf("expected a two element sequence body, got %#v", let.Body)
	}
	fv, ok := seq.Exps[1].(*ast.VarExp).Var.(*ast.FieldVar)
	if !ok || fv.Field.Name() != "head" {
		t.Errorf("expected field access, got %#v", seq.Exps[1])
	}
	if _, ok := fv.Var.(*ast.SimpleVar); !ok {
		t.Errorf("field base should be a simple var, got %T", fv.Var)
	}
}

func TestDecodePositions(t *testing.T) {
	input := "op:\n  op: \"+\"\n  left: 1\n  right: {string: x}\n"
	exp, err := Decode([]byte(input), "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	op := exp.(*ast.OpExp)
	if op.Oper != ast.PlusOp {
		t.Errorf("expected +, got %s", op.Oper)
	}
	if op.Token.Line != 2 || op.Token.Column != 7 {
		t.Errorf("operator position = %s, want 2:7", op.Token)
	}
	if op.Left.GetToken().Line != 3 {
		t.Errorf("left operand line = %d, want 3", op.Left.GetToken().Line)
	}
	if s := op.Right.(*ast.StringExp); s.Value != "x" || s.Token.Line != 4 {
		t.Errorf("unexpected right operand %#v", s)
	}
}

func TestDecodeLValues(t *testing.T) {
	input := `
assign:
  var: {index: {of: {field: {of: r, name: items}}, at: 2}}
  exp: 7
`
	exp, err := Decode([]byte(input), "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	as := exp.(*ast.AssignExp)
	sv, ok := as.Var.(*ast.SubscriptVar)
	if !ok {
		t.Fatalf("expected subscript, got %T", as.Var)
	}
	if idx, ok := sv.Index.(*ast.IntExp); !ok || idx.Value != 2 {
		t.Errorf("unexpected index %#v", sv.Index)
	}
	if fv, ok := sv.Var.(*ast.FieldVar); !ok || fv.Field.Name() != "items" {
		t.Errorf("unexpected subscript base %#v", sv.Var)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	exp, err := Decode(nil, "")
	if err != nil || exp != nil {
		t.Errorf("Decode(nil) = %v, %v; want nil, nil", exp, err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
		line    int
	}{
		{"unknown form", "bogus: 1\n", "unknown expression form", 1},
		{"bare scalar", "x\n", "is not an expression", 1},
		{"unknown key", "if:\n  test: 1\n  then: 2\n  otherwise: 3\n", "unknown key \"otherwise\"", 4},
		{"missing key", "while:\n  test: 1\n", "requires \"body\"", 2},
		{"bad operator", "op: {op: \"**\", left: 1, right: 2}\n", "unknown operator", 1},
		{"empty name", "var: \"\"\n", "non-empty name", 1},
		{"two keys", "int: 1\nstring: a\n", "exactly one key", 1},
		{"bad declaration", "let:\n  decs:\n    - class: {}\n", "unknown declaration form", 3},
		{"self-referencing alias", "&a {seq: [*a]}\n", "alias *a is not supported", 1},
		{"nested aliases", "seq:\n  - &a [1, 1]\n  - &b [*a, *a]\n  - &c [*b, *b]\n  - [*c, *c]\n", "alias *a is not supported", 3},
		{"alias as name", "let:\n  decs:\n    - var: {name: &n x, init: 1}\n  body: {var: *n}\n", "alias *n is not supported", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), "bad.yaml")
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %T", err)
			}
			if de.Line != tt.line {
				t.Errorf("error line = %d, want %d", de.Line, tt.line)
			}
			if de.File != "bad.yaml" {
				t.Errorf("error file = %q", de.File)
			}
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode([]byte("let: [unclosed\n"), "broken.yaml")
	if err == nil || !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("expected a parse error naming the file, got %v", err)
	}
}
