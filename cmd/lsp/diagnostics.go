package main

import (
	"path/filepath"

	"github.com/funvibe/tigersem/internal/config"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/pipeline"
)

func (s *LanguageServer) publishDiagnostics(uri string, finalCtx *pipeline.PipelineContext) error {
	notification := NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: s.convertDiagnostics(finalCtx.Errors, s.uriToPath(uri)),
		},
	}
	return s.sendNotification(notification)
}

func (s *LanguageServer) convertDiagnostics(errors []*diagnostics.DiagnosticError, filePath string) []Diagnostic {
	result := make([]Diagnostic, 0)
	targetPath := filepath.Clean(filePath)

	for _, err := range errors {
		if err.File != "" && targetPath != "" {
			if filepath.Clean(err.File) != targetPath {
				continue
			}
		}

		// LSP positions are 0-based; unknown positions go to the top of the file
		line := max(err.Token.Line-1, 0)
		col := max(err.Token.Column-1, 0)
		width := max(len(err.Token.Lexeme), 1)

		result = append(result, Diagnostic{
			Range: Range{
				Start: Position{Line: line, Character: col},
				End:   Position{Line: line, Character: col + width},
			},
			Severity: SeverityError,
			Code:     string(err.Code),
			Message:  err.Message,
			Source:   config.DiagnosticSource,
		})
	}

	return result
}
