// ABOUTME: Text buffer port consumed by the Emacs command engine
// ABOUTME: Positions are 0-based (line, rune column); offsets count runes in Value()

package textbuf

import (
	"strings"
	"unicode/utf8"
)

// Pos points into the buffer by line and rune column.
type Pos struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// ComparePos orders two positions in document order.
func ComparePos(a, b Pos) int {
	switch {
	case a.Line < b.Line:
		return -1
	case a.Line > b.Line:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

// Range is a span between two positions. From may come after To.
type Range struct {
	From Pos
	To   Pos
}

// Normalize returns the range with From <= To.
func (r Range) Normalize() Range {
	if ComparePos(r.From, r.To) <= 0 {
		return r
	}
	return Range{From: r.To, To: r.From}
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// Motion is a primitive cursor movement executed by the host buffer.
type Motion int

const (
	MoveRight Motion = iota
	MoveLeft
	MoveWordRight
	MoveWordLeft
	MoveLineDown
	MoveLineUp
	MoveDocStart
	MoveDocEnd
)

var motionNames = [...]string{
	MoveRight:     "moveRight",
	MoveLeft:      "moveLeft",
	MoveWordRight: "moveWordRight",
	MoveWordLeft:  "moveWordLeft",
	MoveLineDown:  "moveLineDown",
	MoveLineUp:    "moveLineUp",
	MoveDocStart:  "moveDocStart",
	MoveDocEnd:    "moveDocEnd",
}

func (m Motion) String() string {
	if m < 0 || int(m) >= len(motionNames) {
		return "motion(?)"
	}
	return motionNames[m]
}

// Buffer is the capability surface the engine needs from a host editor.
// The host selection always has its head at the cursor.
type Buffer interface {
	Cursor() Pos
	SetCursor(p Pos)

	Line(n int) string
	LineCount() int
	SetLine(n int, text string)

	// ReplaceRange replaces the text between from and to. Inserting is
	// ReplaceRange(text, p, p).
	ReplaceRange(text string, from, to Pos)

	// Selection returns the text between the selection anchor and the cursor.
	Selection() string
	// SetSelection places the anchor and moves the cursor to head.
	SetSelection(anchor, head Pos)
	// ReplaceSelection replaces the selected text and collapses the selection
	// to the end of the inserted text.
	ReplaceSelection(text string)

	Value() string
	PosToOffset(p Pos) int
	OffsetToPos(offset int) Pos

	Undo()
	Redo()
	ScrollIntoView(r Range, center bool)

	// Exec runs a primitive motion. Hosts may resolve relative motions
	// against a non-empty selection instead of the cursor.
	Exec(m Motion)
}

// EndOf returns the position just after text when it is inserted at start.
func EndOf(start Pos, text string) Pos {
	lines := strings.Split(text, "\n")
	last := utf8.RuneCountInString(lines[len(lines)-1])
	if len(lines) == 1 {
		return Pos{Line: start.Line, Col: start.Col + last}
	}
	return Pos{Line: start.Line + len(lines) - 1, Col: last}
}
