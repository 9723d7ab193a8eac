package main

import (
	"log"

	"github.com/funvibe/tigersem/internal/config"
)

func (s *LanguageServer) handleInitialize(id interface{}, params InitializeParams) error {
	log.Printf("Handling initialize request with ID: %v", id)

	if params.RootURI != nil && *params.RootURI != "" {
		s.rootPath = s.uriToPath(*params.RootURI)
	} else if params.RootPath != nil && *params.RootPath != "" {
		s.rootPath = *params.RootPath
	}

	// A workspace config takes precedence over the one found at startup
	if s.rootPath != "" {
		if path, err := config.FindConfig(s.rootPath); err == nil && path != "" {
			if cfg, err := config.LoadConfig(path); err == nil {
				s.config = cfg
			} else {
				log.Printf("config: %v", err)
			}
		}
	}

	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result: InitializeResult{
			Capabilities: ServerCapabilities{
				TextDocumentSync: TextDocumentSyncFull,
				HoverProvider:    true,
			},
			ServerInfo: &ServerInfo{Name: config.DiagnosticSource},
		},
	})
}

func (s *LanguageServer) handleShutdown(id interface{}) error {
	s.shutdown = true
	return s.sendResponse(ResponseMessage{
		Jsonrpc: "2.0",
		ID:      id,
		Result:  nil,
	})
}
