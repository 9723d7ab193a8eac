package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/funvibe/tigersem/internal/analyzer"
	"github.com/funvibe/tigersem/internal/astio"
	"github.com/funvibe/tigersem/internal/config"
	"github.com/funvibe/tigersem/internal/diagnostics"
	"github.com/funvibe/tigersem/internal/pipeline"
	"github.com/funvibe/tigersem/internal/server"
	"github.com/funvibe/tigersem/internal/store"
)

// checkFunc checks one document and returns its diagnostics.
type checkFunc func(ctx context.Context, file string, source []byte) ([]*diagnostics.DiagnosticError, error)

func handleCheck(args []string) int {
	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	if len(cli.rest) == 0 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		return 2
	}

	cfg, err := config.Resolve(cli.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	if cli.noBuiltins {
		off := false
		cfg.Builtins = &off
	}

	files, err := collectFiles(cli.rest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}

	ctx := context.Background()
	var check checkFunc
	if cli.remote != "" {
		conn, err := grpc.NewClient(cli.remote, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: connecting to %s: %s\n", cli.remote, err)
			return 2
		}
		defer conn.Close()
		check = remoteCheck(conn)
	} else {
		var st *store.Store
		if cfg.Store != "" {
			if st, err = store.Open(ctx, cfg.Store); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				return 2
			}
			defer st.Close()
		}
		check = localCheck(cfg, st)
	}

	count, err := checkFiles(ctx, check, files, os.Stderr, colorEnabled(cfg.Color, os.Stderr))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	if count > 0 {
		fmt.Fprintf(os.Stderr, "%d error(s) in %d file(s)\n", count, len(files))
		return 1
	}
	return 0
}

// localCheck runs the pipeline in process.
func localCheck(cfg *config.Config, st *store.Store) checkFunc {
	return func(ctx context.Context, file string, source []byte) ([]*diagnostics.DiagnosticError, error) {
		pctx := pipeline.NewPipelineContext(source)
		pctx.Context = ctx
		pctx.FilePath = file
		pctx = pipeline.New(
			&astio.DecodeProcessor{},
			&analyzer.SemanticAnalyzerProcessor{
				SkipBuiltins:     !cfg.UseBuiltins(),
				ReadOnlyLoopVars: cfg.ReadOnlyLoopVars,
			},
			&store.Recorder{Store: st},
		).Run(pctx)
		return pctx.Errors, nil
	}
}

// remoteCheck sends each document to a running checker service.
func remoteCheck(conn grpc.ClientConnInterface) checkFunc {
	return func(ctx context.Context, file string, source []byte) ([]*diagnostics.DiagnosticError, error) {
		res, err := server.Check(ctx, conn, file, source)
		if err != nil {
			return nil, err
		}
		return res.Diagnostics, nil
	}
}

// checkFiles checks every file in order, writes its diagnostics to w and
// returns how many were found.
func checkFiles(ctx context.Context, check checkFunc, files []string, w io.Writer, color bool) (int, error) {
	count := 0
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return count, fmt.Errorf("reading %s: %w", file, err)
		}
		diags, err := check(ctx, file, source)
		if err != nil {
			return count, fmt.Errorf("checking %s: %w", file, err)
		}
		for _, d := range diags {
			fmt.Fprintln(w, formatDiagnostic(d, color))
		}
		count += len(diags)
	}
	return count, nil
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// collectFiles expands directories into the source files below them.
// Files named explicitly are kept whatever their extension.
func collectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSourceFile(p) && filepath.Base(p) != config.DefaultConfigFile {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	ansiBold  = "\033[1m"
	ansiRed   = "\033[31m"
	ansiReset = "\033[0m"
)

func formatDiagnostic(d *diagnostics.DiagnosticError, color bool) string {
	if !color {
		return d.Error()
	}
	loc := d.Token.String()
	if d.File != "" {
		loc = d.File + ":" + loc
	}
	return fmt.Sprintf("%s%s:%s %serror [%s]%s: %s", ansiBold, loc, ansiReset, ansiRed, d.Code, ansiReset, d.Message)
}
