package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const usage = `Usage:
  %[1]s [check] [-config file] [-no-builtins] [-remote addr] <file.yaml|dir>...
  %[1]s print <file.yaml>...
  %[1]s serve [-config file] [-addr host:port]
  %[1]s runs [-config file] [-limit n] [run-id]
`

// cliArgs holds the flags shared by all commands.
type cliArgs struct {
	configPath string
	addr       string
	remote     string
	limit      int
	noBuiltins bool
	rest       []string
}

// parseArgs reads flags and positional arguments in any order.
func parseArgs(args []string) (*cliArgs, error) {
	out := &cliArgs{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			out.rest = append(out.rest, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		value := ""
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value = name[:eq], name[eq+1:]
		} else if name != "no-builtins" {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag %s needs a value", arg)
			}
			i++
			value = args[i]
		}

		switch name {
		case "config":
			out.configPath = value
		case "addr":
			out.addr = value
		case "remote":
			out.remote = value
		case "limit":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return nil, fmt.Errorf("-limit must be a non-negative number, got %q", value)
			}
			out.limit = n
		case "no-builtins":
			out.noBuiltins = true
		default:
			return nil, fmt.Errorf("unknown flag %s", arg)
		}
	}
	return out, nil
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(2)
	}

	command, rest := os.Args[1], os.Args[2:]
	switch command {
	case "help", "-help", "--help", "-h":
		fmt.Printf(usage, os.Args[0])
		return
	case "print":
		os.Exit(handlePrint(rest))
	case "serve":
		os.Exit(handleServe(rest))
	case "runs":
		os.Exit(handleRuns(rest))
	case "check":
		os.Exit(handleCheck(rest))
	default:
		os.Exit(handleCheck(os.Args[1:]))
	}
}
