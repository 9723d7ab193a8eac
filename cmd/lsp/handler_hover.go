package main

import (
	"fmt"
	"log"

	"github.com/funvibe/tigersem/internal/ast"
	"github.com/funvibe/tigersem/internal/typesystem"
)

func (s *LanguageServer) handleHover(id interface{}, params HoverParams) error {
	log.Printf("Handling hover request for %s at line %d, char %d", params.TextDocument.URI, params.Position.Line, params.Position.Character)

	docState, exists := s.document(params.TextDocument.URI)
	if !exists {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	docState.Mu.RLock()
	content := docState.Content
	finalCtx := docState.Context
	docState.Mu.RUnlock()

	if finalCtx == nil || finalCtx.AstRoot == nil || isInsideComment(content, params.Position.Line, params.Position.Character) {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	// Analysis results are used even when the document has errors
	exp, ty := findTypedExp(finalCtx.AstRoot, finalCtx.TypeMap, params.Position.Line+1, params.Position.Character+1)
	if exp == nil {
		return s.sendResponse(ResponseMessage{Jsonrpc: "2.0", ID: id, Result: nil})
	}

	tok := exp.GetToken()
	start := Position{Line: tok.Line - 1, Character: tok.Column - 1}
	end := Position{Line: start.Line, Character: start.Character + max(len(tok.Lexeme), 1)}

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result: Hover{
			Contents: MarkupContent{
				Kind:  "markdown",
				Value: fmt.Sprintf("```\n%s: %s\n```", describeExp(exp), ty),
			},
			Range: &Range{Start: start, End: end},
		},
	})
}

// findTypedExp returns the checked expression whose token starts closest
// before (line, col) on the same line. Nested expressions win ties with
// their parents.
func findTypedExp(root ast.Exp, types map[ast.Exp]typesystem.Type, line, col int) (ast.Exp, typesystem.Type) {
	var best ast.Exp
	var bestTy typesystem.Type
	bestCol := 0
	ast.Inspect(root, func(n ast.Node) bool {
		exp, ok := n.(ast.Exp)
		if !ok {
			return true
		}
		ty, ok := types[exp]
		if !ok {
			return true
		}
		tok := exp.GetToken()
		if tok.Line == line && tok.Column <= col && tok.Column >= bestCol {
			best, bestTy, bestCol = exp, ty, tok.Column
		}
		return true
	})
	return best, bestTy
}

func describeExp(exp ast.Exp) string {
	switch e := exp.(type) {
	case *ast.IntExp:
		return "int literal"
	case *ast.StringExp:
		return "string literal"
	case *ast.NilExp:
		return "nil"
	case *ast.VarExp:
		return "variable " + e.Token.Lexeme
	case *ast.CallExp:
		return "call " + e.Func.Name()
	case *ast.RecordExp:
		return "record " + e.Type.Name()
	case *ast.ArrayExp:
		return "array " + e.Type.Name()
	case *ast.OpExp:
		return "operator " + e.Token.Lexeme
	case *ast.AssignExp:
		return "assignment"
	case *ast.IfExp:
		return "if"
	case *ast.WhileExp:
		return "while"
	case *ast.ForExp:
		return "for " + e.Var.Name()
	case *ast.LetExp:
		return "let"
	case *ast.SeqExp:
		return "sequence"
	case *ast.BreakExp:
		return "break"
	}
	return "expression"
}
