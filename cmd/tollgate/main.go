package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/tollgate-dao/tollgate"
	"github.com/tollgate-dao/tollgate/metrics"
)

// commands is a register of all availables commands that can be executed by
// this program. The name is used to match with the first argument given.
//
// A command function is given stdin, stdout and command line arguments
// except the program name and the command name. It is the responsibility of
// the command function to parse the arguments.
//
// Commands operating on the application state share the -home flag. State
// changes are applied by exec only, in a single block per invocation:
//
//	$ tollgate init -admin alice
//	$ echo '{"signers": ["alice"], "path": "rewards/distribute"}' \
//	    | tollgate exec -time 2024-03-08T01:00:00Z
var commands = map[string]func(input io.Reader, output io.Writer, args []string) error{
	"address": cmdAddress,
	"exec":    cmdExec,
	"init":    cmdInit,
	"paths":   cmdPaths,
	"quote":   cmdQuote,
	"version": cmdVersion,
	"view":    cmdView,
}

func main() {
	if len(os.Args) == 1 {
		fmt.Fprintf(os.Stderr, "%s runs the tollgate fee pipeline on a local state.\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [<flags>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		fmt.Fprintf(os.Stderr, "Run '%s <command> -help' to learn more about each command.\n", os.Args[0])
		os.Exit(2)
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "\nAvailable commands are:\n\t%s\n", strings.Join(availableCmds(), "\n\t"))
		os.Exit(2)
	}

	metrics.BuildInfo.WithLabelValues(tollgate.Version()).Set(1)

	// Skip two first arguments. Second argument is the command name that
	// we just consumed.
	if err := run(os.Stdin, os.Stdout, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func availableCmds() []string {
	available := make([]string, 0, len(commands))
	for name := range commands {
		available = append(available, name)
	}
	sort.Strings(available)
	return available
}

func cmdVersion(in io.Reader, out io.Writer, args []string) error {
	_, err := fmt.Fprintln(out, tollgate.Version())
	return err
}
