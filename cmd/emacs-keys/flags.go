// ABOUTME: CLI flag parsing using stdlib flag package
// ABOUTME: Supports -script, -w, -jobs, -format, -clipboard, -log-level, -verbose, -bindings, -version

package main

import (
	"flag"
	"fmt"
	"os"
)

type cliArgs struct {
	script    string
	write     bool
	jobs      int
	format    string
	clipboard string
	logLevel  string
	verbose   bool
	bindings  bool
	commands  bool
	version   bool
	files     []string
}

func parseFlags(argv []string) (cliArgs, error) {
	var args cliArgs
	fs := flag.NewFlagSet("emacs-keys", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: emacs-keys [flags] [FILE]\n       emacs-keys -script SCRIPT [-w] [FILE...]\n\n")
		fs.PrintDefaults()
	}

	fs.StringVar(&args.script, "script", "", "Apply a command script to FILEs (or stdin) instead of editing")
	fs.BoolVar(&args.write, "w", false, "With -script, write results back to the files")
	fs.IntVar(&args.jobs, "jobs", 0, "With -script, files processed concurrently (default 4)")
	fs.StringVar(&args.format, "format", "text", "With -script, output format: text or json")
	fs.StringVar(&args.clipboard, "clipboard", "", "Clipboard backend: system, osc52 or memory")
	fs.StringVar(&args.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVar(&args.verbose, "verbose", false, "Shorthand for -log-level debug")
	fs.BoolVar(&args.bindings, "bindings", false, "Print the active key bindings as Markdown and exit")
	fs.BoolVar(&args.commands, "commands", false, "List the engine commands and exit")
	fs.BoolVar(&args.version, "version", false, "Show version and exit")

	if err := fs.Parse(argv); err != nil {
		return cliArgs{}, err
	}
	args.files = fs.Args()

	if args.format != "text" && args.format != "json" {
		return cliArgs{}, fmt.Errorf("unknown -format %q", args.format)
	}
	if args.script == "" && args.write {
		return cliArgs{}, fmt.Errorf("-w needs -script")
	}
	if args.script == "" && len(args.files) > 1 {
		return cliArgs{}, fmt.Errorf("interactive mode edits one file, got %d", len(args.files))
	}
	return args, nil
}
