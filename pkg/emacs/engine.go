// ABOUTME: Emacs command engine bound to one text buffer: mark, kill ring, yank session, history
// ABOUTME: Execute is the single entry point; commands run to completion one at a time

package emacs

import (
	"context"
	"fmt"

	"github.com/mauromedda/emacs-keys-go/internal/log"
	"github.com/mauromedda/emacs-keys-go/pkg/clipboard"
	"github.com/mauromedda/emacs-keys-go/pkg/emacs/internal/killring"
	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

// Options configures an Engine. Nil command lists select the defaults.
type Options struct {
	// KillRingCapacity is the number of kill ring slots; < 1 means 120.
	KillRingCapacity int
	// ExtendCommands merge into the previous kill when repeated.
	ExtendCommands []Command
	// BackwardCommands prepend rather than append when merging.
	BackwardCommands []Command
	// Clipboard receives kills and feeds yanks. Nil keeps kills in the ring only.
	Clipboard clipboard.Clipboard
}

// yankSession spans the text inserted by the last yank or yank-pop.
type yankSession struct {
	start textbuf.Pos
	end   textbuf.Pos
	pop   int
}

// Engine runs Emacs editing commands against one buffer. It is not safe for
// concurrent use: each document gets its own Engine driven by one goroutine.
type Engine struct {
	buf     textbuf.Buffer
	clip    clipboard.Clipboard
	mark    Mark
	ring    *killring.KillRing
	history history
	yank    *yankSession
}

// New creates an Engine for buf.
func New(buf textbuf.Buffer, opts Options) *Engine {
	extend := opts.ExtendCommands
	if extend == nil {
		extend = DefaultExtendCommands
	}
	backward := opts.BackwardCommands
	if backward == nil {
		backward = DefaultBackwardCommands
	}
	return &Engine{
		buf:     buf,
		clip:    opts.Clipboard,
		ring:    killring.New(opts.KillRingCapacity),
		history: newHistory(extend, backward),
	}
}

// Execute runs cmd. Commands whose precondition is unmet (no mark, no yank
// session) do nothing and return nil. Clipboard failures are returned
// wrapped in ErrClipboard.
func (e *Engine) Execute(ctx context.Context, cmd Command) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	if cmd != YankPop {
		e.yank = nil
	}
	rep := e.history.classify(cmd)
	log.Debug("emacs: %s (extend=%v backward=%v)", cmd, rep.extend, rep.backward)

	switch cmd {
	case ForwardChar:
		e.move(textbuf.MoveRight)
	case BackwardChar:
		e.move(textbuf.MoveLeft)
	case NextLine:
		e.move(textbuf.MoveLineDown)
	case PreviousLine:
		e.move(textbuf.MoveLineUp)
	case ForwardWord:
		e.move(textbuf.MoveWordRight)
	case BackwardWord:
		e.move(textbuf.MoveWordLeft)
	case MoveBeginningOfLine:
		e.moveBeginningOfLine()
	case MoveEndOfLine:
		e.moveEndOfLine()
	case BeginningOfBuffer:
		e.move(textbuf.MoveDocStart)
	case EndOfBuffer:
		e.move(textbuf.MoveDocEnd)
	case ForwardParagraph:
		e.moveParagraph(true)
	case BackwardParagraph:
		e.moveParagraph(false)

	case KillLine:
		return e.killLine(ctx, rep)
	case DeleteChar:
		e.deleteChar(textbuf.MoveRight)
	case DeleteBackwardChar:
		e.deleteChar(textbuf.MoveLeft)
	case KillWord:
		return e.killWord(ctx, textbuf.MoveWordRight, rep)
	case BackwardKillWord:
		return e.killWord(ctx, textbuf.MoveWordLeft, rep)
	case KillRegion:
		return e.killRegion(ctx, rep, true)
	case KillRingSave:
		return e.killRegion(ctx, rep, false)
	case Yank:
		return e.yankText(ctx)
	case YankPop:
		e.yankPop()

	case SetMarkCommand:
		e.mark.Set(e.buf)
	case ExchangePointAndMark:
		e.mark.Exchange(e.buf)
	case MarkWholeBuffer:
		e.markWholeBuffer()
	case KeyboardQuit:
		e.mark.Disable(e.buf)

	case Undo:
		e.buf.Undo()
		e.mark.Disable(e.buf)
	case Redo:
		e.buf.Redo()
		e.mark.Disable(e.buf)
	case Recenter:
		c := e.buf.Cursor()
		e.buf.ScrollIntoView(textbuf.Range{From: c, To: c}, true)

	case UpcaseWord:
		e.caseWord(upper)
	case DowncaseWord:
		e.caseWord(lower)
	case CapitalizeWord:
		e.caseWord(title)
	}
	return nil
}

// SelfInsert types text at the cursor. It ends any yank session and
// deactivates the mark, like any other editing command.
func (e *Engine) SelfInsert(text string) {
	e.yank = nil
	e.history.classify(SelfInsertCommand)
	if text == "" {
		return
	}
	e.mark.Disable(e.buf)
	c := e.buf.Cursor()
	e.buf.ReplaceRange(text, c, c)
	e.buf.SetCursor(textbuf.EndOf(c, text))
}

// Goto moves point to p. An active mark stays put, so the region grows or
// shrinks to the new point.
func (e *Engine) Goto(p textbuf.Pos) {
	e.yank = nil
	e.history.classify(GotoChar)
	e.mark.WithSelectionUpdate(e.buf, func() {
		e.buf.SetCursor(p)
	})
}

// Buffer returns the buffer the engine edits.
func (e *Engine) Buffer() textbuf.Buffer {
	return e.buf
}

// Mark returns the mark position and whether it is active.
func (e *Engine) Mark() (textbuf.Pos, bool) {
	return e.mark.Anchor()
}

// KillRing returns the kill ring entries, newest first.
func (e *Engine) KillRing() []string {
	return e.ring.Entries()
}

// Yanking reports whether a yank-pop would currently replace text.
func (e *Engine) Yanking() bool {
	return e.yank != nil
}

// LastCommand returns the most recently invoked command.
func (e *Engine) LastCommand() Command {
	return e.history.last
}
