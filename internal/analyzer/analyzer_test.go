package analyzer

import (
	"strings"
	"testing"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/astio"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// analyzeSource decodes a YAML tree and checks it with the standard library
// in scope.
func analyzeSource(t *testing.T, input string) (*Analyzer, ast.Exp, []*diagnostics.DiagnosticError) {
	t.Helper()
	root, err := astio.Decode([]byte(input), "test.yaml")
	if err != nil {
		t.Fatalf("decoding test program: %v\ninput: %s", err, input)
	}
	a := NewWithBuiltins()
	a.File = "test.yaml"
	errs := a.Analyze(root)
	return a, root, errs
}

func formatErrors(errs []*diagnostics.DiagnosticError) string {
	var msgs []string
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// expectAnalyzerError asserts that at least one error with the given code is produced.
func expectAnalyzerError(t *testing.T, input string, code diagnostics.ErrorCode) *diagnostics.DiagnosticError {
	t.Helper()
	_, _, errs := analyzeSource(t, input)
	if len(errs) == 0 {
		t.Fatalf("expected error %s, but got none\ninput: %s", code, input)
	}
	for _, e := range errs {
		if e.Code == code {
			return e
		}
	}
	t.Fatalf("expected error %s, got:\n%s\ninput: %s", code, formatErrors(errs), input)
	return nil
}

// expectAnalyzerErrorContains asserts an error with the given code whose message contains substr.
func expectAnalyzerErrorContains(t *testing.T, input string, code diagnostics.ErrorCode, substr string) {
	t.Helper()
	e := expectAnalyzerError(t, input, code)
	if !strings.Contains(e.Error(), substr) {
		t.Errorf("expected error message to contain %q, got: %s", substr, e.Error())
	}
}

// expectExactErrors asserts the exact sequence of error codes.
func expectExactErrors(t *testing.T, input string, codes ...diagnostics.ErrorCode) []*diagnostics.DiagnosticError {
	t.Helper()
	_, _, errs := analyzeSource(t, input)
	if len(errs) != len(codes) {
		t.Fatalf("expected %d errors %v, got %d:\n%s\ninput: %s", len(codes), codes, len(errs), formatErrors(errs), input)
	}
	for i, code := range codes {
		if errs[i].Code != code {
			t.Fatalf("error %d: expected %s, got:\n%s", i, code, formatErrors(errs))
		}
	}
	return errs
}

// expectNoAnalyzerErrors asserts that analysis produces no errors and returns
// the program type.
func expectNoAnalyzerErrors(t *testing.T, input string) typesystem.Type {
	t.Helper()
	a, _, errs := analyzeSource(t, input)
	if len(errs) > 0 {
		t.Fatalf("expected no errors, got:\n%s\ninput: %s", formatErrors(errs), input)
	}
	return a.ResultType
}

func TestLiteralTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  typesystem.Type
	}{
		{"int", "int: 42\n", typesystem.Int},
		{"bare int", "7\n", typesystem.Int},
		{"string", "string: hello\n", typesystem.String},
		{"nil", "nil: ~\n", typesystem.Nil},
		{"int in let", "let: {decs: [{var: {name: s, init: {string: x}}}], body: 3}\n", typesystem.Int},
		{"string in seq", "[1, {string: last}]\n", typesystem.String},
		{"empty seq", "seq: []\n", typesystem.Void},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expectNoAnalyzerErrors(t, tt.input)
			if got != tt.want {
				t.Errorf("program type = %s, want %s", got, tt.want)
			}
		})
	}
}

const pointTypes = `
    - type: {name: a, ty: {record: [{name: x, type: int}]}}
    - type: {name: b, ty: {record: [{name: x, type: int}]}}
`

func TestStructurallyEqualRecordsAreDistinct(t *testing.T) {
	input := "let:\n  decs:" + pointTypes + `    - var: {name: v, type: b, init: {record: {type: a, fields: [{name: x, init: 1}]}}}
`
	expectExactErrors(t, input, diagnostics.ErrS004)

	assign := "let:\n  decs:" + pointTypes + `    - var: {name: va, type: a, init: {record: {type: a, fields: [{name: x, init: 1}]}}}
    - var: {name: vb, type: b, init: {record: {type: b, fields: [{name: x, init: 2}]}}}
  body:
    assign: {var: vb, exp: {var: va}}
`
	expectExactErrors(t, assign, diagnostics.ErrS004)
}

func TestNilCoercion(t *testing.T) {
	decls := `
let:
  decs:
    - type: {name: a, ty: {record: [{name: x, type: int}]}}
    - type: {name: arr, ty: {array: int}}
`
	expectNoAnalyzerErrors(t, decls+"    - var: {name: r, type: a, init: {nil: ~}}\n")

	for _, target := range []string{"int", "string", "arr"} {
		t.Run(target, func(t *testing.T) {
			input := decls + "    - var: {name: v, type: " + target + ", init: {nil: ~}}\n"
			expectExactErrors(t, input, diagnostics.ErrS004)
		})
	}
}

func TestRecursiveRecordIsValid(t *testing.T) {
	input := `
let:
  decs:
    - type: {name: intlist, ty: {record: [{name: head, type: int}, {name: tail, type: intlist}]}}
    - var:
        name: l
        type: intlist
        init: {record: {type: intlist, fields: [{name: head, init: 1}, {name: tail, init: {nil: ~}}]}}
  body: {var: {field: {of: {field: {of: l, name: tail}, name: tail}, name: head}}}
`
	if got := expectNoAnalyzerErrors(t, input); got != typesystem.Int {
		t.Errorf("program type = %s, want int", got)
	}
}

func TestPureNameCycleIsReported(t *testing.T) {
	input := `
let:
  decs:
    - type: {name: x, ty: y}
    - type: {name: y, ty: x}
`
	errs := expectExactErrors(t, input, diagnostics.ErrS007)
	if !strings.Contains(errs[0].Message, "cycle") {
		t.Errorf("expected a cycle message, got %q", errs[0].Message)
	}
	if errs[0].Token.Line != 5 {
		t.Errorf("cycle reported at line %d, want the declaration closing it on line 5", errs[0].Token.Line)
	}

	expectExactErrors(t, "let:\n  decs:\n    - type: {name: self, ty: self}\n", diagnostics.ErrS007)
}

func TestForwardFunctionReference(t *testing.T) {
	input := `
let:
  decs:
    - function:
        name: f
        params: [{name: n, type: int}]
        result: int
        body: {call: {func: g, args: [{var: n}]}}
    - function:
        name: g
        params: [{name: n, type: int}]
        result: int
        body: {var: n}
  body: {call: {func: f, args: [1]}}
`
	if got := expectNoAnalyzerErrors(t, input); got != typesystem.Int {
		t.Errorf("program type = %s, want int", got)
	}
}

func TestFunctionGroupEndsAtOtherDeclaration(t *testing.T) {
	input := `
let:
  decs:
    - function: {name: f, body: {call: {func: g}}}
    - var: {name: z, init: 0}
    - function: {name: g, body: {seq: []}}
`
	expectExactErrors(t, input, diagnostics.ErrS002)
}

func TestLetRestoresShadowedNames(t *testing.T) {
	input := `
let:
  decs:
    - var: {name: x, init: 1}
  body:
    - let:
        decs:
          - var: {name: x, init: {string: inner}}
        body: {assign: {var: x, exp: {string: changed}}}
    - op: {op: "+", left: {var: x}, right: 1}
`
	if got := expectNoAnalyzerErrors(t, input); got != typesystem.Int {
		t.Errorf("program type = %s, want int", got)
	}
}

func TestLetLocalIsUndeclaredOutside(t *testing.T) {
	input := `
- let: {decs: [{var: {name: y, init: 1}}], body: {var: y}}
- var: y
`
	errs := expectExactErrors(t, input, diagnostics.ErrS001)
	if errs[0].Token.Line != 3 {
		t.Errorf("error on line %d, want 3", errs[0].Token.Line)
	}
}

const twoArgFunction = `
let:
  decs:
    - function:
        name: f
        params: [{name: a, type: int}, {name: b, type: int}]
        result: string
        body: {string: ok}
  body:
`

func TestMissingArgumentReportedOnce(t *testing.T) {
	input := twoArgFunction + "    call: {func: f, args: [1]}\n"
	errs := expectExactErrors(t, input, diagnostics.ErrS005)
	if !strings.Contains(errs[0].Message, "missing argument b") {
		t.Errorf("unexpected message %q", errs[0].Message)
	}

	a, _, _ := analyzeSource(t, input)
	if a.ResultType != typesystem.String {
		t.Errorf("call type = %s, want the declared result string", a.ResultType)
	}
}

func TestTooManyArgumentsReportedOnce(t *testing.T) {
	expectExactErrors(t, twoArgFunction+"    call: {func: f, args: [1, 2, 3, 4]}\n", diagnostics.ErrS005)
}

func TestArgumentTypeMismatch(t *testing.T) {
	expectAnalyzerErrorContains(t, twoArgFunction+"    call: {func: f, args: [1, {string: two}]}\n",
		diagnostics.ErrS004, "argument b of f expects int, got string")
}

func TestForBodyMustBeVoid(t *testing.T) {
	valued := `for: {var: i, lo: 1, hi: 10, body: {op: {op: "+", left: {var: i}, right: 1}}}` + "\n"
	expectExactErrors(t, valued, diagnostics.ErrS004)

	assigning := `for: {var: i, lo: 1, hi: 10, body: {assign: {var: i, exp: {op: {op: "+", left: {var: i}, right: 1}}}}}` + "\n"
	if got := expectNoAnalyzerErrors(t, assigning); got != typesystem.Void {
		t.Errorf("for type = %s, want void", got)
	}
}

func TestReadOnlyLoopVars(t *testing.T) {
	input := `for: {var: i, lo: 1, hi: 10, body: {assign: {var: i, exp: 0}}}` + "\n"
	root, err := astio.Decode([]byte(input), "")
	if err != nil {
		t.Fatal(err)
	}
	a := NewWithBuiltins()
	a.ReadOnlyLoopVars = true
	errs := a.Analyze(root)
	if len(errs) != 1 || errs[0].Code != diagnostics.ErrS010 {
		t.Fatalf("expected one S010, got:\n%s", formatErrors(errs))
	}
}

func TestTypeMapRecordsEveryExpression(t *testing.T) {
	input := `
let:
  decs:
    - type: {name: row, ty: {array: int}}
    - var: {name: r, init: {array: {type: row, size: 3, init: 0}}}
    - function:
        name: sum
        params: [{name: xs, type: row}]
        result: int
        body:
          let:
            decs: [{var: {name: acc, init: 0}}]
            body:
              - for:
                  var: i
                  lo: 0
                  hi: 2
                  body: {assign: {var: acc, exp: {op: {op: "+", left: {var: acc}, right: {var: {index: {of: xs, at: {var: i}}}}}}}}
              - var: acc
  body:
    - if: {test: {op: {op: ">", left: {call: {func: sum, args: [{var: r}]}}, right: 0}}, then: {call: {func: print, args: [{string: positive}]}}}
    - call: {func: sum, args: [{var: r}]}
`
	a, root, errs := analyzeSource(t, input)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors:\n%s", formatErrors(errs))
	}

	count := 0
	ast.Inspect(root, func(n ast.Node) bool {
		e, ok := n.(ast.Exp)
		if !ok {
			return true
		}
		count++
		if _, ok := a.TypeMap[e]; !ok {
			t.Errorf("no type recorded for %T at %s", e, e.GetToken())
		}
		return true
	})
	if count != len(a.TypeMap) {
		t.Errorf("visited %d expressions but TypeMap has %d entries", count, len(a.TypeMap))
	}
	if a.TypeMap[root] != typesystem.Int {
		t.Errorf("root type = %s, want int", a.TypeMap[root])
	}
}

func TestErrorsAreSortedAndNotDeduplicated(t *testing.T) {
	input := `
- var: b
- var: a
- op: {op: "+", left: {string: s}, right: {string: s}}
`
	errs := expectExactErrors(t, input, diagnostics.ErrS001, diagnostics.ErrS001, diagnostics.ErrS004, diagnostics.ErrS004)
	for i := 1; i < len(errs); i++ {
		if errs[i].Token.Before(errs[i-1].Token) {
			t.Errorf("errors out of order: %s before %s", errs[i-1].Token, errs[i].Token)
		}
	}
	for _, e := range errs {
		if e.File != "test.yaml" {
			t.Errorf("diagnostic file = %q, want test.yaml", e.File)
		}
	}
}

func TestReporterSeesEveryDiagnostic(t *testing.T) {
	root, err := astio.Decode([]byte("[{var: a}, {call: {func: nope}}, {break: ~}]\n"), "")
	if err != nil {
		t.Fatal(err)
	}
	var seen []diagnostics.ErrorCode
	a := NewWithBuiltins()
	a.Reporter = diagnostics.ReporterFunc(func(e *diagnostics.DiagnosticError) {
		seen = append(seen, e.Code)
	})
	errs := a.Analyze(root)
	if len(seen) != 3 || len(errs) != 3 {
		t.Fatalf("reporter saw %v, Analyze returned %d", seen, len(errs))
	}
	want := []diagnostics.ErrorCode{diagnostics.ErrS001, diagnostics.ErrS002, diagnostics.ErrS009}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("report %d = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestScopesBalancedAfterErrors(t *testing.T) {
	input := `
let:
  decs:
    - type: {name: t, ty: undeclared}
    - function: {name: f, params: [{name: p, type: t}, {name: p, type: int}], result: int, body: {string: no}}
  body:
    for: {var: i, lo: {string: a}, hi: 1, body: {let: {decs: [{var: {name: q, init: {nil: ~}}}], body: {break: ~}}}}
`
	a, _, errs := analyzeSource(t, input)
	if len(errs) == 0 {
		t.Fatal("expected errors")
	}
	if d := a.Env().Values.Depth(); d != 0 {
		t.Errorf("value scope depth = %d after check, want 0", d)
	}
	if d := a.Env().Types.Depth(); d != 0 {
		t.Errorf("type scope depth = %d after check, want 0", d)
	}
}

func TestAnalyzeNilProgram(t *testing.T) {
	a := NewWithBuiltins()
	if errs := a.Analyze(nil); len(errs) != 0 {
		t.Fatalf("unexpected errors: %s", formatErrors(errs))
	}
	if a.ResultType != typesystem.Void {
		t.Errorf("empty program type = %s, want void", a.ResultType)
	}
}
