// ABOUTME: Non-interactive mode applying a command script to files, one engine per file
// ABOUTME: Files run concurrently under errgroup; output is plain text or JSON

package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/emacs-keys-go/internal/log"
	"github.com/mauromedda/emacs-keys-go/pkg/clipboard"
	"github.com/mauromedda/emacs-keys-go/pkg/emacs"
	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

const defaultJobs = 4

// Config configures a batch run.
type Config struct {
	Steps        []Step
	Write        bool   // write results back instead of printing them
	Jobs         int    // concurrent files; 0 = 4
	OutputFormat string // "text" (default) or "json"
	Engine       emacs.Options
	// NewClipboard supplies each file's clipboard; nil gives every file a
	// private memory clipboard. Engine.Clipboard is ignored.
	NewClipboard func() clipboard.Clipboard
}

// Result is the final state of one file.
type Result struct {
	Path     string       `json:"path"`
	Text     string       `json:"text"`
	Cursor   textbuf.Pos  `json:"cursor"`
	Mark     *textbuf.Pos `json:"mark,omitempty"`
	KillRing []string     `json:"kill_ring,omitempty"`
}

// Run applies cfg.Steps to every path and reports to out. With no paths
// the script runs against stdin.
func Run(ctx context.Context, cfg Config, paths []string, in io.Reader, out io.Writer) error {
	if len(paths) == 0 {
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		res, err := Apply(ctx, cfg.Steps, string(data), cfg.engineOptions())
		if err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		res.Path = "-"
		return newFormatter(cfg.OutputFormat, false).write(out, []Result{res})
	}

	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = defaultJobs
	}

	results := make([]Result, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			res, err := runFile(gCtx, cfg, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Write {
		for _, r := range results {
			log.Info("batch: wrote %s", r.Path)
		}
		return nil
	}
	return newFormatter(cfg.OutputFormat, len(paths) > 1).write(out, results)
}

// engineOptions returns the options for one file's engine, with its own
// clipboard.
func (cfg Config) engineOptions() emacs.Options {
	opts := cfg.Engine
	opts.Clipboard = nil
	if cfg.NewClipboard != nil {
		opts.Clipboard = cfg.NewClipboard()
	}
	return opts
}

func runFile(ctx context.Context, cfg Config, path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, err
	}
	res, err := Apply(ctx, cfg.Steps, string(data), cfg.engineOptions())
	if err != nil {
		return Result{}, err
	}
	res.Path = path

	if cfg.Write && res.Text != string(data) {
		info, err := os.Stat(path)
		if err != nil {
			return Result{}, err
		}
		if err := os.WriteFile(path, []byte(res.Text), info.Mode().Perm()); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// Apply runs steps against text with a fresh engine. Unless opts names a
// clipboard, the engine gets a private in-memory one.
func Apply(ctx context.Context, steps []Step, text string, opts emacs.Options) (Result, error) {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.NewMemory("")
	}
	buf := textbuf.NewMemory(text)
	e := emacs.New(buf, opts)

	for _, st := range steps {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		switch st.Kind {
		case StepInsert:
			e.SelfInsert(st.Text)
		case StepGoto:
			e.Goto(st.Pos)
		default:
			if err := e.Execute(ctx, st.Command); err != nil {
				return Result{}, fmt.Errorf("step %d (%s): %w", st.Line, st, err)
			}
		}
	}

	res := Result{
		Text:     buf.Value(),
		Cursor:   buf.Cursor(),
		KillRing: e.KillRing(),
	}
	if m, active := e.Mark(); active {
		res.Mark = &m
	}
	return res, nil
}

// formatter writes batch results.
type formatter interface {
	write(w io.Writer, results []Result) error
}

func newFormatter(format string, headers bool) formatter {
	if format == "json" {
		return jsonFormatter{}
	}
	return textFormatter{headers: headers}
}

// textFormatter prints each buffer, with a header line per file when there
// is more than one.
type textFormatter struct {
	headers bool
}

func (f textFormatter) write(w io.Writer, results []Result) error {
	for _, r := range results {
		if f.headers {
			if _, err := fmt.Fprintf(w, "==> %s <==\n", r.Path); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.Text); err != nil {
			return err
		}
		if f.headers {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// jsonFormatter writes all results as one JSON array.
type jsonFormatter struct{}

func (jsonFormatter) write(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
