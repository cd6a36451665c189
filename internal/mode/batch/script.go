// ABOUTME: Batch script parsing: one step per line in text form, or a YAML list of step strings
// ABOUTME: A step is a command name, "insert TEXT", or "goto LINE:COL" (both 1-based)

package batch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/emacs-keys-go/pkg/emacs"
	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

// ErrScript marks a script that cannot be parsed.
var ErrScript = errors.New("invalid script")

// StepKind says what a Step does.
type StepKind int

const (
	StepCommand StepKind = iota
	StepInsert
	StepGoto
)

// Step is one parsed script instruction.
type Step struct {
	Kind    StepKind
	Command emacs.Command
	Text    string
	Pos     textbuf.Pos
	// Line is the 1-based source line, or list index for YAML scripts.
	Line int
}

func (s Step) String() string {
	switch s.Kind {
	case StepInsert:
		return "insert " + strconv.Quote(s.Text)
	case StepGoto:
		return fmt.Sprintf("goto %d:%d", s.Pos.Line+1, s.Pos.Col+1)
	default:
		return string(s.Command)
	}
}

// LoadScript reads a script file; .yaml and .yml files are parsed as YAML.
func LoadScript(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(strings.NewReader(string(data)))
	}
}

// Parse reads a line-oriented script. Blank lines and lines starting with
// '#' are skipped.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseStep(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		st.Line = n
		steps = append(steps, st)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return steps, nil
}

// ParseYAML reads a script written as a YAML list of step strings.
func ParseYAML(data []byte) ([]Step, error) {
	var raw []string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	steps := make([]Step, 0, len(raw))
	for i, s := range raw {
		st, err := parseStep(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		st.Line = i + 1
		steps = append(steps, st)
	}
	return steps, nil
}

func parseStep(s string) (Step, error) {
	verb, arg, _ := strings.Cut(s, " ")
	switch verb {
	case "insert":
		text, err := unquote(arg)
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepInsert, Text: text}, nil
	case "goto":
		p, err := parsePos(strings.TrimSpace(arg))
		if err != nil {
			return Step{}, err
		}
		return Step{Kind: StepGoto, Pos: p}, nil
	}

	cmd, ok := emacs.Lookup(s)
	if !ok {
		return Step{}, fmt.Errorf("%w: unknown command %q", ErrScript, s)
	}
	return Step{Kind: StepCommand, Command: cmd}, nil
}

// unquote accepts a Go string literal or raw text taken as-is.
func unquote(arg string) (string, error) {
	if strings.HasPrefix(arg, `"`) || strings.HasPrefix(arg, "`") {
		text, err := strconv.Unquote(arg)
		if err != nil {
			return "", fmt.Errorf("%w: insert %s: %w", ErrScript, arg, err)
		}
		return text, nil
	}
	return arg, nil
}

func parsePos(arg string) (textbuf.Pos, error) {
	l, c, ok := strings.Cut(arg, ":")
	if !ok {
		c = "1"
	}
	line, err1 := strconv.Atoi(l)
	col, err2 := strconv.Atoi(c)
	if err1 != nil || err2 != nil || line < 1 || col < 1 {
		return textbuf.Pos{}, fmt.Errorf("%w: goto %q wants LINE:COL", ErrScript, arg)
	}
	return textbuf.Pos{Line: line - 1, Col: col - 1}, nil
}
