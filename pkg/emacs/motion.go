// ABOUTME: Cursor motion commands: characters, lines, words, line edges, buffer edges, paragraphs
// ABOUTME: All motions pass through the mark controller so an active region follows point

package emacs

import (
	"unicode/utf8"

	"github.com/mauromedda/emacs-keys-go/pkg/emacs/paragraph"
	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

func (e *Engine) move(m textbuf.Motion) {
	e.mark.WithSelectionUpdate(e.buf, func() {
		e.buf.Exec(m)
	})
}

func (e *Engine) moveBeginningOfLine() {
	e.mark.WithSelectionUpdate(e.buf, func() {
		c := e.buf.Cursor()
		e.buf.SetCursor(textbuf.Pos{Line: c.Line})
	})
}

func (e *Engine) moveEndOfLine() {
	e.mark.WithSelectionUpdate(e.buf, func() {
		c := e.buf.Cursor()
		n := utf8.RuneCountInString(e.buf.Line(c.Line))
		e.buf.SetCursor(textbuf.Pos{Line: c.Line, Col: n})
	})
}

func (e *Engine) moveParagraph(forward bool) {
	dir := paragraph.Backward
	if forward {
		dir = paragraph.Forward
	}
	e.mark.WithSelectionUpdate(e.buf, func() {
		off := e.buf.PosToOffset(e.buf.Cursor())
		target := paragraph.Find(e.buf.Value(), off, dir)
		if target != off {
			e.buf.SetCursor(e.buf.OffsetToPos(target))
		}
	})
}

// markWholeBuffer leaves the mark at the end and point at the start.
func (e *Engine) markWholeBuffer() {
	e.mark.Disable(e.buf)
	e.buf.Exec(textbuf.MoveDocEnd)
	e.mark.Set(e.buf)
	e.move(textbuf.MoveDocStart)
}
