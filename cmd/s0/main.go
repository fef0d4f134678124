// Command s0 is the scheme0 CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/thomasrohde/scheme0/pkg/diagnostics"
	"github.com/thomasrohde/scheme0/pkg/runtime"
)

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl())
	}

	cmd := os.Args[1]
	switch cmd {
	case "repl":
		os.Exit(cmdRepl())
	case "eval":
		os.Exit(cmdEval(os.Args[2:]))
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "help", "--help", "-h":
		usage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage(os.Stderr)
		os.Exit(1)
	}
}

func usage(w *os.File) {
	fmt.Fprintln(w, "usage: s0 [command] [options]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  repl            start an interactive session (default)")
	fmt.Fprintln(w, "  eval <expr>     evaluate one expression and print the result")
	fmt.Fprintln(w, "  run <file>      evaluate every expression in a file")
}

func reportError(err error, pretty bool) {
	if diag, ok := diagnostics.DiagOf(err); ok {
		fmt.Fprintln(os.Stderr, diagnostics.FormatDiagnostic(diag, pretty))
		return
	}
	fmt.Fprintln(os.Stderr, err.Error())
}

// exitCodeFor distinguishes the three error kinds for scripting.
func exitCodeFor(err error) int {
	switch err.(type) {
	case *diagnostics.SyntaxError:
		return 2
	case *diagnostics.NameError:
		return 3
	case *diagnostics.RuntimeError:
		return 4
	}
	return 1
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".s0_history")
}

func cmdRepl() int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	in := runtime.New(runtime.WithSourceName("repl"))

	for {
		src, err := line.Prompt("s0> ")
		if err != nil {
			// Ctrl-C aborts the line, Ctrl-D ends the session.
			if err == liner.ErrPromptAborted {
				continue
			}
			break
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		line.AppendHistory(src)

		out, err := in.RunProgram(src)
		for _, res := range out {
			fmt.Println(res)
		}
		if err != nil {
			reportError(err, true)
		}
	}

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return 0
}

func cmdEval(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: s0 eval <expr>")
		return 1
	}

	in := runtime.New(runtime.WithSourceName("eval"))
	res, err := in.Run(strings.Join(args, " "))
	if err != nil {
		reportError(err, true)
		return exitCodeFor(err)
	}
	fmt.Println(res)
	return 0
}

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: s0 run <file>")
		return 1
	}
	file := args[0]

	source, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", file, err)
		return 1
	}

	in := runtime.New(runtime.WithSourceName(file))
	out, err := in.RunProgram(string(source))
	for _, res := range out {
		fmt.Println(res)
	}
	if err != nil {
		reportError(err, true)
		return exitCodeFor(err)
	}
	return 0
}
