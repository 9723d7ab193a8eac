package main

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/funvibe/tigersem/internal/analyzer"
	"github.com/funvibe/tigersem/internal/astio"
	"github.com/funvibe/tigersem/internal/pipeline"
)

// DocumentState stores the state of a single open document
type DocumentState struct {
	Content string                    // Current file content
	Context *pipeline.PipelineContext // Result of the last analysis (AST, types)
	Mu      sync.RWMutex              // Mutex to protect access to state
}

func (s *LanguageServer) handleDidOpen(params DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	content := params.TextDocument.Text

	docState := &DocumentState{
		Content: content,
		Context: s.analyzeDocument(content, uri),
	}

	s.mu.Lock()
	s.documents[uri] = docState
	s.mu.Unlock()

	log.Printf("Opened file: %s", uri)
	return s.publishDiagnostics(uri, docState.Context)
}

func (s *LanguageServer) handleDidChange(params DidChangeTextDocumentParams) error {
	// Full sync: the last change holds the whole document
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := params.TextDocument.URI
	newContent := params.ContentChanges[len(params.ContentChanges)-1].Text

	s.mu.RLock()
	docState, exists := s.documents[uri]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("document %s not found", uri)
	}

	finalCtx := s.analyzeDocument(newContent, uri)
	docState.Mu.Lock()
	docState.Content = newContent
	docState.Context = finalCtx
	docState.Mu.Unlock()

	log.Printf("Changed file: %s", uri)
	return s.publishDiagnostics(uri, finalCtx)
}

func (s *LanguageServer) handleDidClose(params DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.documents, uri)
	s.mu.Unlock()
	log.Printf("Closed file: %s", uri)

	// Clear the editor's markers for the closed document
	return s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params:  PublishDiagnosticsParams{URI: uri, Diagnostics: []Diagnostic{}},
	})
}

func (s *LanguageServer) analyzeDocument(content string, uri string) *pipeline.PipelineContext {
	ctx := pipeline.NewPipelineContext([]byte(content))
	ctx.FilePath = s.uriToPath(uri)

	processingPipeline := pipeline.New(
		&astio.DecodeProcessor{},
		&analyzer.SemanticAnalyzerProcessor{
			SkipBuiltins:     !s.config.UseBuiltins(),
			ReadOnlyLoopVars: s.config.ReadOnlyLoopVars,
		},
	)
	return processingPipeline.Run(ctx)
}

func (s *LanguageServer) document(uri string) (*DocumentState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[uri]
	return doc, ok
}

func (s *LanguageServer) uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
