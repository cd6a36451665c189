// ABOUTME: Yank and yank-pop: reinsert killed text and cycle it through older kill ring entries
// ABOUTME: A yank session remembers the inserted span so yank-pop replaces exactly that text

package emacs

import (
	"context"
	"fmt"

	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

func (e *Engine) yankText(ctx context.Context) error {
	if e.clip != nil {
		external, err := e.clip.Read(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrClipboard, err)
		}
		// Text copied outside the editor joins the ring so yank-pop can
		// still reach it later.
		if recent, ok := e.ring.MostRecent(); external != "" && (!ok || recent != external) {
			e.ring.Save(external, false, false)
		}
	}

	text, ok := e.ring.MostRecent()
	if !ok {
		return nil
	}

	var start textbuf.Pos
	if anchor, active := e.mark.Anchor(); active {
		start = e.buf.Cursor()
		if textbuf.ComparePos(anchor, start) < 0 {
			start = anchor
		}
		e.buf.ReplaceSelection(text)
		e.mark.Disable(e.buf)
	} else {
		start = e.buf.Cursor()
		e.buf.ReplaceRange(text, start, start)
	}

	end := textbuf.EndOf(start, text)
	e.buf.SetCursor(end)
	e.yank = &yankSession{start: start, end: end, pop: e.ring.WriteIndex() - 1}
	return nil
}

func (e *Engine) yankPop() {
	if e.yank == nil {
		return
	}
	text, idx := e.ring.Previous(e.yank.pop)
	if idx < 0 {
		return
	}

	e.buf.ReplaceRange(text, e.yank.start, e.yank.end)
	end := textbuf.EndOf(e.yank.start, text)
	e.buf.SetCursor(end)
	e.yank.end = end
	e.yank.pop = idx - 1
}
