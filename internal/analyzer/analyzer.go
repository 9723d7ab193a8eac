// Package analyzer type-checks syntax trees.
//
// The checker walks an immutable tree once, resolving names against the
// scoped environment, and records the type of every expression in TypeMap.
// Violations never stop the walk: each rule reports a diagnostic and continues
// with a recovery type so that independent errors in the same program are all
// found.
package analyzer

import (
	"fmt"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/env"
	"github.com/funvibe/tigersem/internal/token"
	"github.com/funvibe/tigersem/internal/translate"
	"github.com/funvibe/tigersem/internal/typesystem"
)

// ExpTy pairs the translation of an expression with its type.
type ExpTy struct {
	Exp translate.Exp
	Ty  typesystem.Type
}

// Analyzer performs semantic analysis on a syntax tree.
type Analyzer struct {
	env *env.Env

	// File is stamped on diagnostics that do not name one.
	File string

	// Reporter, when set, receives each diagnostic as soon as it is found.
	Reporter diagnostics.Reporter

	// ReadOnlyLoopVars rejects assignment to the variable of a for loop.
	ReadOnlyLoopVars bool

	// TypeMap stores the type of every expression checked by the last call
	// to Analyze or Check.
	TypeMap map[ast.Exp]typesystem.Type

	// ResultType is the type of the whole program from the last run.
	ResultType typesystem.Type
}

// New creates an Analyzer working against e. Bindings already in e form the
// outermost scope; see RegisterBuiltins.
func New(e *env.Env) *Analyzer {
	return &Analyzer{
		env:     e,
		TypeMap: make(map[ast.Exp]typesystem.Type),
	}
}

// NewWithBuiltins creates an Analyzer over a fresh environment holding the
// standard library.
func NewWithBuiltins() *Analyzer {
	e := env.New()
	RegisterBuiltins(e)
	return New(e)
}

// Env returns the environment the analyzer works against.
func (a *Analyzer) Env() *env.Env { return a.env }

// Analyze checks root and returns every diagnostic ordered by position.
func (a *Analyzer) Analyze(root ast.Exp) []*diagnostics.DiagnosticError {
	_, errs := a.Check(root)
	return errs
}

// Check checks root and returns its translated expression and type along with
// every diagnostic ordered by position. A nil root checks as void.
func (a *Analyzer) Check(root ast.Exp) (ExpTy, []*diagnostics.DiagnosticError) {
	a.TypeMap = make(map[ast.Exp]typesystem.Type)
	w := &walker{
		env:      a.env,
		file:     a.File,
		reporter: a.Reporter,
		TypeMap:  a.TypeMap,

		readOnlyLoopVars: a.ReadOnlyLoopVars,
	}

	valueDepth, typeDepth := a.env.Values.Depth(), a.env.Types.Depth()
	result := w.transExp(root)
	if a.env.Values.Depth() != valueDepth || a.env.Types.Depth() != typeDepth {
		panic(fmt.Sprintf("analyzer: unbalanced scopes after check (values %d -> %d, types %d -> %d)",
			valueDepth, a.env.Values.Depth(), typeDepth, a.env.Types.Depth()))
	}

	a.ResultType = result.Ty
	errs := make([]*diagnostics.DiagnosticError, len(w.errors))
	copy(errs, w.errors)
	diagnostics.Sort(errs)
	return result, errs
}

type walker struct {
	env      *env.Env
	file     string
	reporter diagnostics.Reporter
	errors   []*diagnostics.DiagnosticError
	inLoop   bool // inside a while or for body of the current function
	TypeMap  map[ast.Exp]typesystem.Type

	readOnlyLoopVars bool
}

// addError records err. Diagnostics are never deduplicated.
func (w *walker) addError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = w.file
	}
	w.errors = append(w.errors, err)
	if w.reporter != nil {
		w.reporter.Report(err)
	}
}

func (w *walker) errorf(code diagnostics.ErrorCode, tok token.Token, format string, args ...interface{}) {
	w.addError(diagnostics.Newf(code, tok, format, args...))
}

// tokenOf returns the position of n, or the zero token for an absent node.
func tokenOf(n ast.Node) token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.GetToken()
}
