// ABOUTME: Word case commands: upcase-word, downcase-word, capitalize-word
// ABOUTME: Case mapping uses golang.org/x/text/cases so non-ASCII words convert correctly

package emacs

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

type caseKind int

const (
	upper caseKind = iota
	lower
	title
)

// caser returns a fresh Caser; Casers carry state and are not shared.
func (k caseKind) caser() cases.Caser {
	switch k {
	case upper:
		return cases.Upper(language.Und)
	case lower:
		return cases.Lower(language.Und)
	default:
		return cases.Title(language.Und)
	}
}

// caseWord converts the text from the cursor to the end of the next word
// and leaves the cursor after it.
func (e *Engine) caseWord(k caseKind) {
	e.mark.Disable(e.buf)

	from := e.buf.Cursor()
	e.buf.Exec(textbuf.MoveWordRight)
	to := e.buf.Cursor()
	if from == to {
		return
	}

	e.buf.SetSelection(from, to)
	text := e.buf.Selection()
	converted := k.caser().String(text)
	if converted == text {
		e.buf.SetCursor(to)
		return
	}
	e.buf.ReplaceSelection(converted)
	e.buf.SetCursor(textbuf.EndOf(from, converted))
}
