package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/funvibe/tigersem/internal/config"
)

// Language Server implementation
type LanguageServer struct {
	documents map[string]*DocumentState // URI -> document state
	mu        sync.RWMutex              // Mutex to protect the documents map
	writer    io.Writer                 // Output stream for JSON-RPC responses
	rootPath  string                    // Workspace root reported by the client
	config    *config.Config
	shutdown  bool
	exit      func(code int)
}

func NewLanguageServer(writer io.Writer) *LanguageServer {
	if writer == nil {
		writer = os.Stdout
	}
	return &LanguageServer{
		documents: make(map[string]*DocumentState),
		writer:    writer,
		config:    config.Default(),
		exit:      os.Exit,
	}
}

// Start reads framed JSON-RPC messages from r until it is exhausted.
func (s *LanguageServer) Start(r io.Reader) {
	// Use a bufio.Reader instead of Scanner to handle arbitrary buffer sizes and raw reads
	reader := bufio.NewReader(r)

	for {
		// Read header line
		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("Error reading header: %v", err)
			}
			break
		}

		// Remove trailing CR/LF
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			continue // Skip empty lines between messages or before headers
		}

		if strings.HasPrefix(line, "Content-Length: ") {
			contentLength, err := strconv.Atoi(strings.TrimPrefix(line, "Content-Length: "))
			if err != nil {
				log.Printf("Error parsing Content-Length: %v", err)
				continue
			}

			// Skip any further headers up to the empty separator line
			for {
				header, err := reader.ReadString('\n')
				if err != nil {
					log.Printf("Error reading separator: %v", err)
					return
				}
				if strings.TrimRight(header, "\r\n") == "" {
					break
				}
			}

			content := make([]byte, contentLength)
			if _, err := io.ReadFull(reader, content); err != nil {
				log.Printf("Error reading content: %v", err)
				break
			}

			if err := s.handleMessage(content); err != nil {
				log.Printf("Error handling message: %v", err)
			}
		}
	}
}

type baseMessage struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

func (s *LanguageServer) handleMessage(content []byte) error {
	var msg baseMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %v", err)
	}

	log.Printf("Received %s (id %v)", msg.Method, msg.ID)

	// Requests carry an ID, notifications do not
	if msg.ID != nil {
		return s.handleRequest(msg)
	}
	return s.handleNotification(msg)
}

func (s *LanguageServer) handleRequest(msg baseMessage) error {
	switch msg.Method {
	case "initialize":
		var params InitializeParams
		if err := unmarshalParams(msg, &params); err != nil {
			return err
		}
		return s.handleInitialize(msg.ID, params)

	case "shutdown":
		return s.handleShutdown(msg.ID)

	case "textDocument/hover":
		var params HoverParams
		if err := unmarshalParams(msg, &params); err != nil {
			return err
		}
		return s.handleHover(msg.ID, params)

	default:
		return s.sendResponse(ResponseMessage{
			Jsonrpc: "2.0",
			ID:      msg.ID,
			Error: &Error{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", msg.Method),
			},
		})
	}
}

func (s *LanguageServer) handleNotification(msg baseMessage) error {
	switch msg.Method {
	case "initialized":
		// Client has finished initialization
		return nil

	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams
		if err := unmarshalParams(msg, &params); err != nil {
			return err
		}
		return s.handleDidOpen(params)

	case "textDocument/didChange":
		var params DidChangeTextDocumentParams
		if err := unmarshalParams(msg, &params); err != nil {
			return err
		}
		return s.handleDidChange(params)

	case "textDocument/didClose":
		var params DidCloseTextDocumentParams
		if err := unmarshalParams(msg, &params); err != nil {
			return err
		}
		return s.handleDidClose(params)

	case "exit":
		if s.shutdown {
			s.exit(0)
		} else {
			s.exit(1)
		}
		return nil

	default:
		// Unknown notification, ignore
		return nil
	}
}

func unmarshalParams(msg baseMessage, params interface{}) error {
	if len(msg.Params) == 0 {
		return fmt.Errorf("%s: missing params", msg.Method)
	}
	if err := json.Unmarshal(msg.Params, params); err != nil {
		return fmt.Errorf("%s: %v", msg.Method, err)
	}
	return nil
}

func (s *LanguageServer) sendResponse(response ResponseMessage) error {
	return s.sendMessage(response)
}

func (s *LanguageServer) sendNotification(notification NotificationMessage) error {
	return s.sendMessage(notification)
}

func (s *LanguageServer) sendMessage(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n%s", len(data), data)
	return err
}
