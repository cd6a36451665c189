// ABOUTME: Kill commands: kill-line, kill-word, backward-kill-word, kill-region, kill-ring-save
// ABOUTME: The clipboard is written before the ring or buffer change so a failure leaves both intact

package emacs

import (
	"context"
	"fmt"

	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

// saveKill pushes text to the clipboard and then to the kill ring,
// honoring the repeat verdict.
func (e *Engine) saveKill(ctx context.Context, text string, rep repeat) error {
	if e.clip != nil {
		merged := e.ring.Merged(text, rep.extend, rep.backward)
		if err := e.clip.Write(ctx, merged); err != nil {
			return fmt.Errorf("%w: %w", ErrClipboard, err)
		}
	}
	e.ring.Save(text, rep.extend, rep.backward)
	return nil
}

func (e *Engine) killLine(ctx context.Context, rep repeat) error {
	e.mark.Disable(e.buf)

	cur := e.buf.Cursor()
	line := []rune(e.buf.Line(cur.Line))
	if cur.Col >= len(line) {
		// Nothing left on the line: kill the line break itself.
		if cur.Line >= e.buf.LineCount()-1 {
			return nil
		}
		if err := e.saveKill(ctx, "\n", rep); err != nil {
			return err
		}
		e.buf.ReplaceRange("", cur, textbuf.Pos{Line: cur.Line + 1})
		e.buf.SetCursor(cur)
		return nil
	}

	if err := e.saveKill(ctx, string(line[cur.Col:]), rep); err != nil {
		return err
	}
	e.buf.SetLine(cur.Line, string(line[:cur.Col]))
	e.buf.SetCursor(cur)
	return nil
}

func (e *Engine) killWord(ctx context.Context, m textbuf.Motion, rep repeat) error {
	e.mark.Disable(e.buf)

	from := e.buf.Cursor()
	e.buf.Exec(m)
	to := e.buf.Cursor()
	if from == to {
		return nil
	}

	e.buf.SetSelection(from, to)
	if err := e.saveKill(ctx, e.buf.Selection(), rep); err != nil {
		e.buf.SetCursor(from)
		return err
	}
	e.buf.ReplaceSelection("")
	e.mark.Disable(e.buf)
	return nil
}

// killRegion saves the region and, when remove is set, deletes it.
// Without an active mark it does nothing.
func (e *Engine) killRegion(ctx context.Context, rep repeat, remove bool) error {
	if !e.mark.Active() {
		return nil
	}

	text := e.buf.Selection()
	if text != "" {
		if err := e.saveKill(ctx, text, rep); err != nil {
			return err
		}
		if remove {
			e.buf.ReplaceSelection("")
		}
	}
	e.mark.Disable(e.buf)
	return nil
}

// deleteChar removes the grapheme next to the cursor in the direction of m
// without touching the kill ring.
func (e *Engine) deleteChar(m textbuf.Motion) {
	e.mark.Disable(e.buf)

	from := e.buf.Cursor()
	e.buf.Exec(m)
	to := e.buf.Cursor()
	if from == to {
		return
	}
	e.buf.ReplaceRange("", from, to)
	if textbuf.ComparePos(to, from) < 0 {
		from = to
	}
	e.buf.SetCursor(from)
}
