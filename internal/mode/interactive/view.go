// ABOUTME: Renders the visible buffer lines with the region and cursor highlighted
// ABOUTME: Columns are measured with go-runewidth so wide runes never overflow the terminal

package interactive

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

const tabWidth = 4

// View renders the buffer, status line, and echo area or minibuffer.
func (m Model) View() string {
	h := m.bodyHeight()

	var body []string
	if m.page != nil {
		body = m.page.view()
	} else {
		body = m.renderBody(m.buf.Snapshot(), h)
	}
	for len(body) < h {
		body = append(body, m.styles.Dim.Render("~"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(body, "\n"),
		m.renderStatus(),
		m.renderEcho(),
	)
}

func (m Model) renderBody(snap textbuf.Snapshot, height int) []string {
	region := textbuf.Range{From: snap.Anchor, To: snap.Cursor}.Normalize()
	lines := make([]string, 0, height)
	for i := m.top; i < len(snap.Lines) && len(lines) < height; i++ {
		lines = append(lines, m.renderLine(i, []rune(snap.Lines[i]), snap.Cursor, region))
	}
	return lines
}

// cellKind classifies a rune cell for styling.
type cellKind int

const (
	cellText cellKind = iota
	cellRegion
	cellCursor
)

// renderLine styles one line, grouping runs of equally styled cells so
// lipgloss renders each run once.
func (m Model) renderLine(n int, line []rune, cursor textbuf.Pos, region textbuf.Range) string {
	var out strings.Builder
	var run strings.Builder
	kind := cellText
	used := 0

	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(m.styleFor(kind).Render(run.String()))
		run.Reset()
	}

	for col := 0; col <= len(line); col++ {
		p := textbuf.Pos{Line: n, Col: col}
		cell := " "
		if col < len(line) {
			cell = string(line[col])
			if line[col] == '\t' {
				cell = strings.Repeat(" ", tabWidth)
			}
		}

		k := cellText
		switch {
		case p == cursor:
			k = cellCursor
		case !region.IsEmpty() && textbuf.ComparePos(region.From, p) <= 0 && textbuf.ComparePos(p, region.To) < 0:
			k = cellRegion
		}
		if col == len(line) && k != cellCursor {
			break
		}

		w := runewidth.StringWidth(cell)
		if used+w > m.width {
			break
		}
		used += w

		if k != kind {
			flush()
			kind = k
		}
		run.WriteString(cell)
	}
	flush()
	return out.String()
}

func (m Model) styleFor(k cellKind) lipgloss.Style {
	switch k {
	case cellRegion:
		return m.styles.Region
	case cellCursor:
		return m.styles.Cursor
	default:
		return m.styles.Text
	}
}

func (m Model) renderStatus() string {
	name := "*scratch*"
	if m.path != "" {
		name = filepath.Base(m.path)
	}
	mod := "--"
	if m.modified() {
		mod = "**"
	}
	c := m.buf.Cursor()

	left := fmt.Sprintf(" %s %s  L%d C%d ", mod, name, c.Line+1, c.Col)
	var flags []string
	if m.markActive {
		flags = append(flags, "Mark")
	}
	if m.yanking && !m.busy {
		flags = append(flags, "Yank")
	}
	if n := m.queue.Count(); n > 0 {
		flags = append(flags, fmt.Sprintf("%d queued", n))
	}

	line := m.styles.Status.Render(left)
	if len(flags) > 0 {
		line += m.styles.StatusFlag.Render("(" + strings.Join(flags, " ") + ") ")
	}
	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += m.styles.Status.Render(strings.Repeat(" ", pad))
	}
	return line
}

func (m Model) renderEcho() string {
	if m.mini != nil {
		return m.renderMinibuffer()
	}
	if m.prefix != "" {
		return m.styles.Message.Render(m.prefix + "-")
	}
	if m.page != nil {
		return m.styles.Dim.Render("q to close, up/down to scroll")
	}
	if m.errMessage {
		return m.styles.Error.Render(m.message)
	}
	return m.styles.Message.Render(m.message)
}

func (m Model) renderMinibuffer() string {
	var b strings.Builder
	b.WriteString(m.styles.Prompt.Render("M-x "))
	b.WriteString(string(m.mini.input))

	visible, sel := m.mini.window()
	if len(visible) == 0 {
		b.WriteString(m.styles.Dim.Render("  [No match]"))
		return truncate(b.String(), m.width)
	}
	b.WriteString("  ")
	for i, name := range visible {
		if i > 0 {
			b.WriteString(m.styles.Dim.Render(" | "))
		}
		if i == sel {
			b.WriteString(m.styles.MatchSel.Render(name))
		} else {
			b.WriteString(m.styles.Match.Render(name))
		}
	}
	return truncate(b.String(), m.width)
}

// truncate cuts a styled line to width cells.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
