package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/funvibe/tigersem/internal/config"
	"github.com/funvibe/tigersem/internal/server"
	"github.com/funvibe/tigersem/internal/store"
)

func handleServe(args []string) int {
	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	cfg, err := config.Resolve(cli.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	addr := cfg.Serve.Addr
	if cli.addr != "" {
		addr = cli.addr
	}

	log.SetFlags(0)
	log.SetPrefix("tigersem: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := server.Options{
		SkipBuiltins:     !cfg.UseBuiltins(),
		ReadOnlyLoopVars: cfg.ReadOnlyLoopVars,
	}
	if cfg.Store != "" {
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			log.Printf("%v", err)
			return 1
		}
		defer st.Close()
		opts.Store = st
	}

	srv, err := server.New(opts)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("listening on %s: %v", addr, err)
		return 1
	}
	if err := srv.Serve(ctx, lis); err != nil {
		log.Printf("serve: %v", err)
		return 1
	}
	log.Printf("stopped")
	return 0
}
