package main

import (
	"log"
	"os"

	"github.com/funvibe/tigersem/internal/config"
)

func main() {
	log.SetFlags(0)          // Disable timestamp in logs
	log.SetOutput(os.Stderr) // Log to stderr, not stdout (stdout is for LSP protocol)

	cfg, err := config.Resolve("")
	if err != nil {
		log.Printf("config: %v; using defaults", err)
		cfg = config.Default()
	}

	server := NewLanguageServer(os.Stdout)
	server.config = cfg
	server.Start(os.Stdin)
}
