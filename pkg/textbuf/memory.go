// ABOUTME: In-memory Buffer with rune lines, selection, undo/redo and grapheme-aware motions
// ABOUTME: Mutex-guarded so a renderer can snapshot it while a command runs

package textbuf

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/mauromedda/emacs-keys-go/pkg/textbuf/internal/undo"
	"github.com/rivo/uniseg"
)

const undoDepth = 200

// snapshot captures buffer text and cursor for undo/redo. Line slices are
// never mutated in place, so snapshots share them.
type snapshot struct {
	lines  [][]rune
	cursor Pos
}

// Snapshot is a consistent copy of the buffer for rendering.
type Snapshot struct {
	Lines  []string
	Cursor Pos
	Anchor Pos
	Scroll Range
	Center bool
}

// Memory is a Buffer kept entirely in memory.
type Memory struct {
	mu      sync.Mutex
	lines   [][]rune
	cursor  Pos
	anchor  Pos
	goalCol int
	history *undo.History[snapshot]
	scroll  Range
	center  bool
}

// NewMemory creates a buffer holding text with the cursor at the start.
func NewMemory(text string) *Memory {
	return &Memory{
		lines:   splitLines(text),
		goalCol: -1,
		history: undo.New[snapshot](undoDepth),
	}
}

func splitLines(s string) [][]rune {
	parts := strings.Split(s, "\n")
	lines := make([][]rune, len(parts))
	for i, p := range parts {
		lines[i] = []rune(p)
	}
	return lines
}

// Cursor returns the cursor position.
func (b *Memory) Cursor() Pos {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.cursor
}

// SetCursor moves the cursor and collapses the selection onto it.
func (b *Memory) SetCursor(p Pos) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cursor = b.clamp(p)
	b.anchor = b.cursor
	b.goalCol = -1
}

// Line returns the text of line n, or "" when n is out of range.
func (b *Memory) Line(n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 || n >= len(b.lines) {
		return ""
	}
	return string(b.lines[n])
}

// LineCount returns the number of lines; an empty buffer has one.
func (b *Memory) LineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.lines)
}

// SetLine replaces the content of line n.
func (b *Memory) SetLine(n int, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n < 0 || n >= len(b.lines) {
		return
	}
	b.record()
	b.replace(Pos{Line: n}, Pos{Line: n, Col: len(b.lines[n])}, text)
}

// ReplaceRange replaces the text between from and to.
func (b *Memory) ReplaceRange(text string, from, to Pos) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := Range{From: b.clamp(from), To: b.clamp(to)}.Normalize()
	if r.IsEmpty() && text == "" {
		return
	}
	b.record()
	b.replace(r.From, r.To, text)
}

// Selection returns the text between the anchor and the cursor.
func (b *Memory) Selection() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.textIn(Range{From: b.anchor, To: b.cursor}.Normalize())
}

// SetSelection sets the anchor and moves the cursor to head.
func (b *Memory) SetSelection(anchor, head Pos) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.anchor = b.clamp(anchor)
	b.cursor = b.clamp(head)
	b.goalCol = -1
}

// ReplaceSelection replaces the selected text and leaves the cursor after it.
func (b *Memory) ReplaceSelection(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	r := Range{From: b.anchor, To: b.cursor}.Normalize()
	if r.IsEmpty() && text == "" {
		return
	}
	b.record()
	end := b.replace(r.From, r.To, text)
	b.cursor = end
	b.anchor = end
}

// Value returns the whole buffer joined with "\n".
func (b *Memory) Value() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.value()
}

// PosToOffset converts a position into a rune offset into Value().
func (b *Memory) PosToOffset(p Pos) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.offsetOf(b.clamp(p))
}

// OffsetToPos converts a rune offset into a position, clamping to the buffer.
func (b *Memory) OffsetToPos(offset int) Pos {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.posOf(offset)
}

// Undo restores the state before the last edit.
func (b *Memory) Undo() {
	b.mu.Lock()
	defer b.mu.Unlock()

	prev, ok := b.history.Undo(b.current())
	if !ok {
		return
	}
	b.restore(prev)
}

// Redo re-applies the last undone edit.
func (b *Memory) Redo() {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, ok := b.history.Redo(b.current())
	if !ok {
		return
	}
	b.restore(next)
}

// ScrollIntoView records the range a view should bring on screen.
func (b *Memory) ScrollIntoView(r Range, center bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.scroll = Range{From: b.clamp(r.From), To: b.clamp(r.To)}
	b.center = center
}

// Snapshot returns a copy of the text, cursor, anchor and scroll request.
func (b *Memory) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := make([]string, len(b.lines))
	for i, l := range b.lines {
		lines[i] = string(l)
	}
	return Snapshot{
		Lines:  lines,
		Cursor: b.cursor,
		Anchor: b.anchor,
		Scroll: b.scroll,
		Center: b.center,
	}
}

// Exec runs a primitive motion. Like most hosts, a non-empty selection makes
// horizontal character motion collapse onto the selection edge instead of
// moving from the cursor.
func (b *Memory) Exec(m Motion) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sel := Range{From: b.anchor, To: b.cursor}.Normalize()
	next := b.cursor
	keepGoal := false

	switch m {
	case MoveRight:
		if !sel.IsEmpty() {
			next = sel.To
			break
		}
		next = b.charRight(b.cursor)
	case MoveLeft:
		if !sel.IsEmpty() {
			next = sel.From
			break
		}
		next = b.charLeft(b.cursor)
	case MoveWordRight:
		next = b.posOf(b.wordRight(b.offsetOf(b.cursor)))
	case MoveWordLeft:
		next = b.posOf(b.wordLeft(b.offsetOf(b.cursor)))
	case MoveLineDown, MoveLineUp:
		next = b.vertical(m == MoveLineDown)
		keepGoal = true
	case MoveDocStart:
		next = Pos{}
	case MoveDocEnd:
		last := len(b.lines) - 1
		next = Pos{Line: last, Col: len(b.lines[last])}
	}

	if !keepGoal {
		b.goalCol = -1
	}
	b.cursor = next
	b.anchor = next
}

func (b *Memory) charRight(p Pos) Pos {
	line := b.lines[p.Line]
	if p.Col < len(line) {
		return Pos{Line: p.Line, Col: nextGrapheme(line, p.Col)}
	}
	if p.Line < len(b.lines)-1 {
		return Pos{Line: p.Line + 1}
	}
	return p
}

func (b *Memory) charLeft(p Pos) Pos {
	if p.Col > 0 {
		return Pos{Line: p.Line, Col: prevGrapheme(b.lines[p.Line], p.Col)}
	}
	if p.Line > 0 {
		return Pos{Line: p.Line - 1, Col: len(b.lines[p.Line-1])}
	}
	return p
}

func (b *Memory) vertical(down bool) Pos {
	if b.goalCol < 0 {
		b.goalCol = b.cursor.Col
	}
	line := b.cursor.Line
	switch {
	case down && line < len(b.lines)-1:
		line++
	case !down && line > 0:
		line--
	case down:
		return Pos{Line: line, Col: len(b.lines[line])}
	default:
		return Pos{Line: line}
	}
	return Pos{Line: line, Col: min(b.goalCol, len(b.lines[line]))}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// wordRight skips non-word runes, then word runes.
func (b *Memory) wordRight(off int) int {
	runes := []rune(b.value())
	for off < len(runes) && !isWordRune(runes[off]) {
		off++
	}
	for off < len(runes) && isWordRune(runes[off]) {
		off++
	}
	return off
}

// wordLeft skips non-word runes, then word runes, moving backward.
func (b *Memory) wordLeft(off int) int {
	runes := []rune(b.value())
	for off > 0 && !isWordRune(runes[off-1]) {
		off--
	}
	for off > 0 && isWordRune(runes[off-1]) {
		off--
	}
	return off
}

// nextGrapheme returns the column after the grapheme cluster starting at col.
func nextGrapheme(line []rune, col int) int {
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(string(line[col:]), -1)
	n := utf8.RuneCountInString(cluster)
	if n == 0 {
		n = 1
	}
	return min(col+n, len(line))
}

// prevGrapheme returns the column where the cluster ending at col starts.
func prevGrapheme(line []rune, col int) int {
	s := string(line[:col])
	state := -1
	pos, start := 0, 0
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		start = pos
		pos += utf8.RuneCountInString(cluster)
	}
	return start
}

// record pushes the pre-edit state. Must be called with b.mu held.
func (b *Memory) record() {
	b.history.Record(b.current())
}

func (b *Memory) current() snapshot {
	return snapshot{
		lines:  append([][]rune(nil), b.lines...),
		cursor: b.cursor,
	}
}

func (b *Memory) restore(s snapshot) {
	b.lines = s.lines
	b.cursor = b.clamp(s.cursor)
	b.anchor = b.cursor
	b.goalCol = -1
}

// replace swaps the text in [from, to) for text and maps cursor and anchor
// through the edit. Returns the end of the inserted text.
// Must be called with b.mu held and from <= to, both clamped.
func (b *Memory) replace(from, to Pos, text string) Pos {
	repl := splitLines(text)
	head := append([]rune(nil), b.lines[from.Line][:from.Col]...)
	tail := append([]rune(nil), b.lines[to.Line][to.Col:]...)

	repl[0] = append(head, repl[0]...)
	last := len(repl) - 1
	end := Pos{Line: from.Line + last, Col: len(repl[last])}
	repl[last] = append(repl[last], tail...)

	lines := make([][]rune, 0, len(b.lines)-(to.Line-from.Line+1)+len(repl))
	lines = append(lines, b.lines[:from.Line]...)
	lines = append(lines, repl...)
	lines = append(lines, b.lines[to.Line+1:]...)
	b.lines = lines

	b.cursor = mapPos(b.cursor, from, to, end)
	b.anchor = mapPos(b.anchor, from, to, end)
	b.goalCol = -1
	return end
}

// mapPos moves p through an edit that replaced [from, to) with text ending at end.
func mapPos(p, from, to, end Pos) Pos {
	if ComparePos(p, from) <= 0 {
		return p
	}
	if ComparePos(p, to) <= 0 {
		return end
	}
	if p.Line == to.Line {
		return Pos{Line: end.Line, Col: end.Col + p.Col - to.Col}
	}
	return Pos{Line: p.Line + end.Line - to.Line, Col: p.Col}
}

func (b *Memory) clamp(p Pos) Pos {
	p.Line = max(0, min(p.Line, len(b.lines)-1))
	p.Col = max(0, min(p.Col, len(b.lines[p.Line])))
	return p
}

func (b *Memory) value() string {
	parts := make([]string, len(b.lines))
	for i, l := range b.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

func (b *Memory) textIn(r Range) string {
	if r.From.Line == r.To.Line {
		return string(b.lines[r.From.Line][r.From.Col:r.To.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[r.From.Line][r.From.Col:]))
	for i := r.From.Line + 1; i < r.To.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[r.To.Line][:r.To.Col]))
	return sb.String()
}

func (b *Memory) offsetOf(p Pos) int {
	off := 0
	for i := 0; i < p.Line; i++ {
		off += len(b.lines[i]) + 1
	}
	return off + p.Col
}

func (b *Memory) posOf(offset int) Pos {
	if offset <= 0 {
		return Pos{}
	}
	for i, l := range b.lines {
		if offset <= len(l) {
			return Pos{Line: i, Col: offset}
		}
		offset -= len(l) + 1
	}
	last := len(b.lines) - 1
	return Pos{Line: last, Col: len(b.lines[last])}
}
