package analyzer

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/funvibe/tigersem/internal/astio"
	"github.com/funvibe/tigersem/internal/pipeline"
)

var update = flag.Bool("update", false, "rewrite testdata .want files")

// summarize renders a check result as one line per diagnostic ("CODE line"),
// or "ok <type>" for a clean program.
func summarize(ctx *pipeline.PipelineContext) string {
	if !ctx.HasErrors() {
		return fmt.Sprintf("ok %s\n", ctx.ResultType)
	}
	var b strings.Builder
	for _, e := range ctx.Errors {
		fmt.Fprintf(&b, "%s %d\n", e.Code, e.Token.Line)
	}
	return b.String()
}

// TestGolden checks every testdata program against its .want file.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no testdata programs")
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yaml")
		t.Run(name, func(t *testing.T) {
			source, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			ctx := pipeline.NewPipelineContext(source)
			ctx.FilePath = file
			ctx = pipeline.New(&astio.DecodeProcessor{}, &SemanticAnalyzerProcessor{}).Run(ctx)
			got := summarize(ctx)

			wantFile := strings.TrimSuffix(file, ".yaml") + ".want"
			if *update {
				if err := os.WriteFile(wantFile, []byte(got), 0o644); err != nil {
					t.Fatal(err)
				}
				return
			}
			want, err := os.ReadFile(wantFile)
			if err != nil {
				t.Fatalf("missing %s: %v", wantFile, err)
			}
			if got != string(want) {
				t.Errorf("%s:\ngot:\n%s\nwant:\n%s\nfull diagnostics:\n%s", file, got, want, formatErrors(ctx.Errors))
			}
		})
	}
}
