// ABOUTME: Mark controller keeping the host selection in step with the mark
// ABOUTME: Every cursor motion goes through WithSelectionUpdate so the region follows point

package emacs

import "github.com/mauromedda/emacs-keys-go/pkg/textbuf"

// Mark is the saved anchor of the region. While active, the host selection
// runs from the anchor to the cursor after every command.
type Mark struct {
	anchor textbuf.Pos
	active bool
}

// Active reports whether the mark is set.
func (m *Mark) Active() bool {
	return m.active
}

// Anchor returns the mark position and whether it is active.
func (m *Mark) Anchor() (textbuf.Pos, bool) {
	return m.anchor, m.active
}

// Set activates the mark at the cursor. An active mark is cleared first,
// so setting twice in place re-arms the region at the same point.
func (m *Mark) Set(buf textbuf.Buffer) {
	if m.active {
		m.Disable(buf)
	}
	m.anchor = buf.Cursor()
	m.active = true
}

// Disable clears the mark and collapses the selection onto the cursor.
func (m *Mark) Disable(buf textbuf.Buffer) {
	c := buf.Cursor()
	buf.SetSelection(c, c)
	m.active = false
}

// WithSelectionUpdate runs move and re-extends the selection from the
// anchor to the new cursor. The selection is collapsed beforehand because
// hosts resolve relative motions against the selection edges.
func (m *Mark) WithSelectionUpdate(buf textbuf.Buffer, move func()) {
	if m.active {
		c := buf.Cursor()
		buf.SetSelection(c, c)
	}
	move()
	m.sync(buf)
}

// Exchange swaps the cursor and the anchor. No-op without an active mark.
func (m *Mark) Exchange(buf textbuf.Buffer) {
	if !m.active {
		return
	}
	c := buf.Cursor()
	target := m.anchor
	m.anchor = c
	buf.SetSelection(c, target)
}

func (m *Mark) sync(buf textbuf.Buffer) {
	if m.active {
		buf.SetSelection(m.anchor, buf.Cursor())
	}
}
