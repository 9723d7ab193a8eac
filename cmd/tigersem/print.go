package main

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/tigersem/internal/astio"
	"github.com/funvibe/tigersem/internal/prettyprinter"
)

func handlePrint(args []string) int {
	cli, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 2
	}
	if len(cli.rest) == 0 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		return 2
	}
	if err := printFiles(cli.rest, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

// printFiles writes each document in concrete syntax, separated by a blank
// line when there is more than one.
func printFiles(files []string, w io.Writer) error {
	for i, file := range files {
		root, err := astio.DecodeFile(file)
		if err != nil {
			return err
		}
		if len(files) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "/* %s */\n", file)
		}
		fmt.Fprint(w, prettyprinter.Print(root))
	}
	return nil
}
