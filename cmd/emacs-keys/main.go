// ABOUTME: CLI entry point for emacs-keys: Emacs kill/yank/mark editing in the terminal or in batch
// ABOUTME: Parses flags, loads settings, builds the keymap and clipboard, dispatches to a mode

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	// termfix must be imported before any package that imports bubbletea.
	_ "github.com/mauromedda/emacs-keys-go/internal/termfix"

	"golang.org/x/term"

	"github.com/mauromedda/emacs-keys-go/internal/config"
	"github.com/mauromedda/emacs-keys-go/internal/keybindings"
	eklog "github.com/mauromedda/emacs-keys-go/internal/log"
	"github.com/mauromedda/emacs-keys-go/internal/mode/batch"
	"github.com/mauromedda/emacs-keys-go/internal/mode/interactive"
	"github.com/mauromedda/emacs-keys-go/pkg/clipboard"
	"github.com/mauromedda/emacs-keys-go/pkg/emacs"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.version {
		fmt.Printf("emacs-keys %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, args, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run loads settings and dispatches to the selected mode.
func run(ctx context.Context, args cliArgs, stdout io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	settings, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	if err := applyLogLevel(args, settings); err != nil {
		return err
	}

	keys := keybindings.New(settings.ResolvedKeymap())
	for _, c := range keys.Conflicts() {
		eklog.Warn("keybindings: %s (%s) hides %v", c.Key, c.Action, c.Shadowing)
	}

	switch {
	case args.commands:
		for _, c := range emacs.Commands() {
			fmt.Fprintf(stdout, "%-26s %s\n", c, c.Description())
		}
		return nil
	case args.bindings:
		_, err := io.WriteString(stdout, keys.FormatAll())
		return err
	case args.script != "":
		return runBatch(ctx, args, settings, stdout)
	default:
		return runInteractive(ctx, args, settings, keys, cwd)
	}
}

func applyLogLevel(args cliArgs, settings *config.Settings) error {
	name := settings.LogLevel
	if args.logLevel != "" {
		name = args.logLevel
	}
	if args.verbose {
		name = "debug"
	}
	if name == "" {
		return nil
	}
	lvl, err := eklog.ParseLevel(name)
	if err != nil {
		return err
	}
	eklog.SetLevel(lvl)
	return nil
}

// engineOptions converts settings into engine options. Unknown command
// names are dropped with a warning.
func engineOptions(settings *config.Settings) emacs.Options {
	return emacs.Options{
		KillRingCapacity: settings.KillRingCapacity,
		ExtendCommands:   commandList("extend_commands", settings.ExtendCommands),
		BackwardCommands: commandList("backward_commands", settings.BackwardCommands),
	}
}

func commandList(field string, names []string) []emacs.Command {
	if names == nil {
		return nil
	}
	out := make([]emacs.Command, 0, len(names))
	for _, n := range names {
		c, ok := emacs.Lookup(n)
		if !ok {
			eklog.Warn("config: %s: unknown command %q ignored", field, n)
			continue
		}
		out = append(out, c)
	}
	return out
}

func newClipboard(backend string) (clipboard.Clipboard, error) {
	switch backend {
	case config.ClipboardSystem:
		return clipboard.NewSystem(), nil
	case config.ClipboardOSC52:
		return clipboard.NewOSC52(os.Stderr), nil
	case config.ClipboardMemory:
		return clipboard.NewMemory(""), nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q", backend)
	}
}

func runBatch(ctx context.Context, args cliArgs, settings *config.Settings, stdout io.Writer) error {
	steps, err := batch.LoadScript(args.script)
	if err != nil {
		return err
	}

	cfg := batch.Config{
		Steps:        steps,
		Write:        args.write,
		Jobs:         args.jobs,
		OutputFormat: args.format,
		Engine:       engineOptions(settings),
	}
	if err := batchClipboard(&cfg, args.clipboard); err != nil {
		return err
	}
	return batch.Run(ctx, cfg, args.files, os.Stdin, stdout)
}

// batchClipboard picks the per-file clipboard for a batch run. Memory (or
// none) keeps each file private. A system or terminal clipboard is one
// shared device, so files then run one at a time in argument order.
func batchClipboard(cfg *batch.Config, backend string) error {
	if backend == "" || backend == config.ClipboardMemory {
		cfg.NewClipboard = nil
		return nil
	}
	shared, err := newClipboard(backend)
	if err != nil {
		return err
	}
	cfg.NewClipboard = func() clipboard.Clipboard { return shared }
	cfg.Jobs = 1
	return nil
}

func runInteractive(ctx context.Context, args cliArgs, settings *config.Settings, keys *keybindings.Manager, cwd string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stderr.Fd())) {
		return errors.New("interactive mode needs a terminal; use -script for batch editing")
	}

	// The screen belongs to the editor; logs go to a file.
	eklog.SetOutput(io.Discard)
	if err := config.EnsureDir(config.GlobalDir()); err == nil {
		if f, err := os.OpenFile(config.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600); err == nil {
			defer f.Close()
			eklog.SetOutput(f)
		}
	}

	backend := settings.ClipboardBackend()
	if args.clipboard != "" {
		backend = args.clipboard
	}
	clip, err := newClipboard(backend)
	if err != nil {
		return err
	}
	opts := engineOptions(settings)
	opts.Clipboard = clip

	cfg := interactive.Config{Engine: opts, Keys: keys}
	if len(args.files) == 1 {
		cfg.Path = args.files[0]
		data, err := os.ReadFile(cfg.Path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("opening %s: %w", cfg.Path, err)
		}
		cfg.Text = string(data)
	}

	reload := func() (map[string]string, error) {
		s, err := config.Load(cwd)
		if err != nil {
			return nil, err
		}
		return s.ResolvedKeymap(), nil
	}
	return interactive.Run(ctx, cfg, config.WatchPaths(cwd), reload)
}
