package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/tigersem/internal/config"
	"github.com/funvibe/tigersem/internal/store"
)

func handleRuns(args []string) int {
	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	if len(cli.rest) > 1 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		return 2
	}
	cfg, err := config.Resolve(cli.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	if cfg.Store == "" {
		fmt.Fprintln(os.Stderr, "Error: no store configured; set store in "+config.DefaultConfigFile)
		return 2
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	defer st.Close()

	if len(cli.rest) == 1 {
		err = showRun(ctx, st, cli.rest[0], os.Stdout)
	} else {
		err = listRuns(ctx, st, cli.limit, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func listRuns(ctx context.Context, st *store.Store, limit int, w io.Writer) error {
	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %3d  %s\n", r.ID, r.StartedAt.Local().Format(time.DateTime), r.ErrorCount, r.File)
	}
	return nil
}

func showRun(ctx context.Context, st *store.Store, arg string, w io.Writer) error {
	id, err := uuid.Parse(arg)
	if err != nil {
		return fmt.Errorf("bad run id %q: %w", arg, err)
	}
	run, err := st.GetRun(ctx, id)
	if err != nil {
		return err
	}
	diags, err := st.RunDiagnostics(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "run %s of %s at %s\n", run.ID, run.File, run.StartedAt.Local().Format(time.DateTime))
	for _, d := range diags {
		fmt.Fprintf(w, "%s:%d:%d: error [%s]: %s\n", run.File, d.Line, d.Column, d.Code, d.Message)
	}
	return nil
}
