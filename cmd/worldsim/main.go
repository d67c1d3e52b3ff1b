package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// Run is the CLI entrypoint, kept separate from main for testability. The
// primary invocation is positional: `worldsim <world.json> [flags]`. The
// `run` keyword is accepted as an alias ahead of the same arguments, for
// callers that prefer a named subcommand.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stderr)
		return 2
	}

	switch args[1] {
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	case "run":
		return runRunCmd(args[2:], stdout, stderr)
	default:
		return runRunCmd(args[1:], stdout, stderr)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "worldsim: deterministic conservation-law N-body simulator")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "USAGE:")
	fmt.Fprintln(w, "  worldsim <world.json> [--dt <seconds>] [--steps <n>] [--lock <path>]")
	fmt.Fprintln(w, "  worldsim run <world.json> [--dt <seconds>] [--steps <n>] [--lock <path>]")
	fmt.Fprintln(w, "  worldsim help")
}
