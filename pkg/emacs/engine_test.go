// ABOUTME: Tests for the Emacs command engine against the in-memory buffer and clipboard
// ABOUTME: Covers mark tracking, kill merging, kill ring wraparound, yank-pop cycling, clipboard failures

package emacs

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/mauromedda/emacs-keys-go/pkg/clipboard"
	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

func newEngine(t *testing.T, text string, opts Options) (*Engine, *textbuf.Memory, *clipboard.Memory) {
	t.Helper()

	buf := textbuf.NewMemory(text)
	clip := clipboard.NewMemory("")
	if opts.Clipboard == nil {
		opts.Clipboard = clip
	}
	return New(buf, opts), buf, clip
}

func run(t *testing.T, e *Engine, cmds ...Command) {
	t.Helper()

	for _, c := range cmds {
		if err := e.Execute(context.Background(), c); err != nil {
			t.Fatalf("Execute(%s): %v", c, err)
		}
	}
}

// killAll fills the ring with one non-merged kill per text.
func killAll(t *testing.T, e *Engine, texts ...string) {
	t.Helper()

	for _, s := range texts {
		e.SelfInsert(s)
		run(t, e, MoveBeginningOfLine, KillLine)
	}
}

func TestEngine_KillRegionWholeLine(t *testing.T) {
	t.Parallel()

	e, buf, clip := newEngine(t, "", Options{})
	e.SelfInsert("hello world")
	run(t, e, MoveBeginningOfLine, SetMarkCommand, MoveEndOfLine, KillRegion)

	if got := e.KillRing(); len(got) != 1 || got[0] != "hello world" {
		t.Errorf("KillRing() = %q, want [hello world]", got)
	}
	if got := buf.Line(0); got != "" {
		t.Errorf("Line(0) = %q, want empty", got)
	}
	if _, active := e.Mark(); active {
		t.Error("mark still active after kill-region")
	}
	if got, _ := clip.Read(context.Background()); got != "hello world" {
		t.Errorf("clipboard = %q, want %q", got, "hello world")
	}
}

func TestEngine_KillLineRestOfLine(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "foo bar", Options{})
	buf.SetCursor(textbuf.Pos{Col: 3})
	run(t, e, KillLine)

	if got := buf.Value(); got != "foo" {
		t.Errorf("Value() = %q, want %q", got, "foo")
	}
	if got := e.KillRing(); len(got) != 1 || got[0] != " bar" {
		t.Errorf("KillRing() = %q, want [\" bar\"]", got)
	}

	// At the end of the last line there is nothing left to kill.
	run(t, e, KillLine)
	if got := e.KillRing(); len(got) != 1 || got[0] != " bar" {
		t.Errorf("KillRing() after no-op kill = %q", got)
	}
}

func TestEngine_KillLineJoinsLineBreak(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "foo bar\nbaz", Options{})
	buf.SetCursor(textbuf.Pos{Col: 3})
	run(t, e, KillLine, KillLine)

	if got := buf.Value(); got != "foobaz" {
		t.Errorf("Value() = %q, want %q", got, "foobaz")
	}
	if got := e.KillRing(); len(got) != 1 || got[0] != " bar\n" {
		t.Errorf("KillRing() = %q, want one merged entry", got)
	}
}

func TestEngine_ConsecutiveKillsMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cmd   Command
		start textbuf.Pos
	}{
		{"forward", KillWord, textbuf.Pos{}},
		{"backward", BackwardKillWord, textbuf.Pos{Col: 13}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, buf, clip := newEngine(t, "one two three", Options{})
			buf.SetCursor(tt.start)
			run(t, e, tt.cmd, tt.cmd, tt.cmd)

			if got := buf.Value(); got != "" {
				t.Errorf("Value() = %q, want empty", got)
			}
			if got := e.KillRing(); len(got) != 1 || got[0] != "one two three" {
				t.Errorf("KillRing() = %q, want [one two three]", got)
			}
			if got, _ := clip.Read(context.Background()); got != "one two three" {
				t.Errorf("clipboard = %q, want merged text", got)
			}
		})
	}
}

func TestEngine_InterruptedKillsDoNotMerge(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "one two three", Options{})
	run(t, e, KillWord)
	e.SelfInsert("x")
	run(t, e, KillWord)

	if got := buf.Value(); got != "x three" {
		t.Errorf("Value() = %q, want %q", got, "x three")
	}
	want := []string{" two", "one"}
	if got := e.KillRing(); !slices.Equal(got, want) {
		t.Errorf("KillRing() = %q, want %q", got, want)
	}
	if got := e.LastCommand(); got != KillWord {
		t.Errorf("LastCommand() = %s, want %s", got, KillWord)
	}
}

func TestEngine_ExtendCommandsConfigurable(t *testing.T) {
	t.Parallel()

	e, _, _ := newEngine(t, "one two", Options{ExtendCommands: []Command{}})
	run(t, e, KillWord, KillWord)

	if got := e.KillRing(); len(got) != 2 {
		t.Errorf("KillRing() = %q, want two separate entries", got)
	}
}

func TestEngine_KillRingWrapsAtCapacity(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "", Options{KillRingCapacity: 3})
	killAll(t, e, "t1", "t2", "t3", "t4", "t5")

	want := []string{"t5", "t4", "t3"}
	if got := e.KillRing(); !slices.Equal(got, want) {
		t.Fatalf("KillRing() = %q, want %q", got, want)
	}

	run(t, e, Yank)
	for _, w := range []string{"t5", "t4", "t3", "t5"} {
		if got := buf.Value(); got != w {
			t.Fatalf("Value() = %q, want %q", got, w)
		}
		run(t, e, YankPop)
	}
}

func TestEngine_YankPopCycles(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "", Options{})
	killAll(t, e, "A", "B", "C")
	e.SelfInsert("[]")
	run(t, e, BackwardChar, Yank)

	if got := buf.Cursor(); got != (textbuf.Pos{Col: 2}) {
		t.Errorf("Cursor() after yank = %+v, want {0 2}", got)
	}
	for _, w := range []string{"[C]", "[B]", "[A]", "[C]"} {
		if got := buf.Value(); got != w {
			t.Fatalf("Value() = %q, want %q", got, w)
		}
		if !e.Yanking() {
			t.Fatal("yank session lost")
		}
		run(t, e, YankPop)
	}
}

func TestEngine_YankPopMultiLine(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "", Options{})
	killAll(t, e, "short")
	e.SelfInsert("two\nlines")
	run(t, e, BeginningOfBuffer, SetMarkCommand, EndOfBuffer, KillRegion)

	run(t, e, Yank)
	if got := buf.Value(); got != "two\nlines" {
		t.Fatalf("Value() = %q", got)
	}
	run(t, e, YankPop)
	if got := buf.Value(); got != "short" {
		t.Errorf("Value() after pop = %q, want %q", got, "short")
	}
	if got := buf.Cursor(); got != (textbuf.Pos{Col: 5}) {
		t.Errorf("Cursor() = %+v, want {0 5}", got)
	}
}

func TestEngine_YankPopEndsWithOtherCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Command
	}{
		{"keyboard-quit", KeyboardQuit},
		{"motion", BackwardChar},
		{"mark", SetMarkCommand},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, buf, _ := newEngine(t, "", Options{})
			killAll(t, e, "A", "B")
			run(t, e, Yank, tt.cmd)
			if e.Yanking() {
				t.Fatalf("yank session survived %s", tt.cmd)
			}

			run(t, e, YankPop)
			if got := buf.Value(); got != "B" {
				t.Errorf("Value() = %q, want yank-pop to be a no-op", got)
			}
		})
	}
}

func TestEngine_YankPopWithoutYankIsNoop(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "", Options{})
	killAll(t, e, "A")
	run(t, e, YankPop)

	if got := buf.Value(); got != "" {
		t.Errorf("Value() = %q, want empty", got)
	}
}

func TestEngine_YankEmptyRing(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "abc", Options{})
	run(t, e, Yank, YankPop)

	if got := buf.Value(); got != "abc" {
		t.Errorf("Value() = %q, want unchanged", got)
	}
	if e.Yanking() {
		t.Error("empty yank started a session")
	}
}

func TestEngine_YankTakesExternalClipboard(t *testing.T) {
	t.Parallel()

	e, buf, clip := newEngine(t, "", Options{})
	killAll(t, e, "A")
	if err := clip.Write(context.Background(), "ext"); err != nil {
		t.Fatal(err)
	}
	run(t, e, Yank)

	if got := buf.Value(); got != "ext" {
		t.Errorf("Value() = %q, want %q", got, "ext")
	}
	want := []string{"ext", "A"}
	if got := e.KillRing(); !slices.Equal(got, want) {
		t.Errorf("KillRing() = %q, want %q", got, want)
	}
}

func TestEngine_YankReplacesActiveRegion(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "abc", Options{Clipboard: clipboard.NewMemory("X")})
	run(t, e, SetMarkCommand, ForwardChar, ForwardChar, Yank)

	if got := buf.Value(); got != "Xc" {
		t.Errorf("Value() = %q, want %q", got, "Xc")
	}
	if _, active := e.Mark(); active {
		t.Error("mark still active after yank")
	}
}

func TestEngine_ClipboardFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		cursor textbuf.Pos
		cmds   []Command
	}{
		{"kill-line", textbuf.Pos{Col: 3}, []Command{KillLine}},
		{"kill-word", textbuf.Pos{Col: 3}, []Command{KillWord}},
		{"kill-region", textbuf.Pos{}, []Command{SetMarkCommand, ForwardWord, KillRegion}},
		{"yank", textbuf.Pos{}, []Command{Yank}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, buf, clip := newEngine(t, "foo bar", Options{})
			buf.SetCursor(tt.cursor)
			clip.Fail(errors.New("no display"))

			var err error
			for _, c := range tt.cmds {
				err = e.Execute(context.Background(), c)
			}
			if !errors.Is(err, ErrClipboard) {
				t.Fatalf("err = %v, want ErrClipboard", err)
			}
			if got := buf.Value(); got != "foo bar" {
				t.Errorf("Value() = %q, want unchanged", got)
			}
			if got := e.KillRing(); len(got) != 0 {
				t.Errorf("KillRing() = %q, want empty", got)
			}
		})
	}
}

func TestEngine_KillWordFailureRestoresCursor(t *testing.T) {
	t.Parallel()

	e, buf, clip := newEngine(t, "foo bar", Options{})
	clip.Fail(errors.New("no display"))
	if err := e.Execute(context.Background(), KillWord); !errors.Is(err, ErrClipboard) {
		t.Fatalf("err = %v, want ErrClipboard", err)
	}
	if got := buf.Cursor(); got != (textbuf.Pos{}) {
		t.Errorf("Cursor() = %+v, want start", got)
	}
}

func TestEngine_NilClipboardKeepsRingOnly(t *testing.T) {
	t.Parallel()

	buf := textbuf.NewMemory("foo bar")
	e := New(buf, Options{})
	run(t, e, KillWord, MoveEndOfLine, Yank)

	if got := buf.Value(); got != " barfoo" {
		t.Errorf("Value() = %q, want %q", got, " barfoo")
	}
}

func TestEngine_UnknownCommand(t *testing.T) {
	t.Parallel()

	e, _, _ := newEngine(t, "", Options{})
	for _, c := range []Command{"frobnicate", SelfInsertCommand} {
		if err := e.Execute(context.Background(), c); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Execute(%q) = %v, want ErrUnknownCommand", c, err)
		}
	}
}

func TestEngine_MarkFollowsCursor(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "hello world", Options{})
	run(t, e, SetMarkCommand, ForwardWord)
	if got := buf.Selection(); got != "hello" {
		t.Fatalf("Selection() = %q, want %q", got, "hello")
	}

	// Motion starts from point, not from the selection edge.
	run(t, e, BackwardChar)
	if got := buf.Selection(); got != "hell" {
		t.Fatalf("Selection() = %q, want %q", got, "hell")
	}

	run(t, e, KeyboardQuit)
	if got := buf.Selection(); got != "" {
		t.Errorf("Selection() after keyboard-quit = %q", got)
	}
	if _, active := e.Mark(); active {
		t.Error("mark still active after keyboard-quit")
	}

	// Without a mark, motion leaves no selection behind.
	run(t, e, ForwardWord)
	if got := buf.Selection(); got != "" {
		t.Errorf("Selection() without mark = %q", got)
	}
}

func TestEngine_SetMarkTwiceRearms(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "hello world", Options{})
	run(t, e, SetMarkCommand, ForwardWord, SetMarkCommand)

	anchor, active := e.Mark()
	if !active || anchor != (textbuf.Pos{Col: 5}) {
		t.Errorf("Mark() = %+v %v, want {0 5} active", anchor, active)
	}
	if got := buf.Selection(); got != "" {
		t.Errorf("Selection() = %q, want empty", got)
	}
}

func TestEngine_ExchangePointAndMark(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "hello world", Options{})
	run(t, e, SetMarkCommand, ForwardWord, ExchangePointAndMark)

	if got := buf.Cursor(); got != (textbuf.Pos{}) {
		t.Errorf("Cursor() = %+v, want start", got)
	}
	if anchor, _ := e.Mark(); anchor != (textbuf.Pos{Col: 5}) {
		t.Errorf("anchor = %+v, want {0 5}", anchor)
	}
	if got := buf.Selection(); got != "hello" {
		t.Errorf("Selection() = %q, want %q", got, "hello")
	}
}

func TestEngine_MarkWholeBufferThenKill(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "ab\ncd", Options{})
	run(t, e, MarkWholeBuffer)
	if got := buf.Selection(); got != "ab\ncd" {
		t.Fatalf("Selection() = %q", got)
	}
	if got := buf.Cursor(); got != (textbuf.Pos{}) {
		t.Errorf("Cursor() = %+v, want start", got)
	}

	run(t, e, KillRegion)
	if got := buf.Value(); got != "" {
		t.Errorf("Value() = %q, want empty", got)
	}
}

func TestEngine_KillRingSave(t *testing.T) {
	t.Parallel()

	e, buf, clip := newEngine(t, "hello world", Options{})
	run(t, e, SetMarkCommand, ForwardWord, KillRingSave)

	if got := buf.Value(); got != "hello world" {
		t.Errorf("Value() = %q, want unchanged", got)
	}
	if got := e.KillRing(); len(got) != 1 || got[0] != "hello" {
		t.Errorf("KillRing() = %q", got)
	}
	if got, _ := clip.Read(context.Background()); got != "hello" {
		t.Errorf("clipboard = %q", got)
	}
	if _, active := e.Mark(); active {
		t.Error("mark still active after kill-ring-save")
	}
}

func TestEngine_EmptyRegionOnlyClearsMark(t *testing.T) {
	t.Parallel()

	e, _, _ := newEngine(t, "abc", Options{})
	run(t, e, SetMarkCommand, KillRegion)

	if got := e.KillRing(); len(got) != 0 {
		t.Errorf("KillRing() = %q, want empty", got)
	}
	if _, active := e.Mark(); active {
		t.Error("mark still active")
	}
}

func TestEngine_ParagraphMotion(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "a\nb\n\nc\nd", Options{})
	steps := []struct {
		cmd  Command
		want textbuf.Pos
	}{
		{ForwardParagraph, textbuf.Pos{Line: 2}},
		{ForwardParagraph, textbuf.Pos{Line: 4, Col: 1}},
		{BackwardParagraph, textbuf.Pos{Line: 2}},
		{BackwardParagraph, textbuf.Pos{}},
	}
	for _, s := range steps {
		run(t, e, s.cmd)
		if got := buf.Cursor(); got != s.want {
			t.Fatalf("%s: Cursor() = %+v, want %+v", s.cmd, got, s.want)
		}
	}
}

func TestEngine_ParagraphMotionExtendsRegion(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "a\nb\n\nc\nd", Options{})
	run(t, e, SetMarkCommand, ForwardParagraph)

	if got := buf.Selection(); got != "a\nb\n" {
		t.Errorf("Selection() = %q, want %q", got, "a\nb\n")
	}
}

func TestEngine_CaseWords(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "hello world", Options{})
	run(t, e, UpcaseWord)
	if got := buf.Value(); got != "HELLO world" {
		t.Fatalf("upcase-word: %q", got)
	}
	if got := buf.Cursor(); got != (textbuf.Pos{Col: 5}) {
		t.Errorf("Cursor() = %+v, want {0 5}", got)
	}

	run(t, e, CapitalizeWord)
	if got := buf.Value(); got != "HELLO World" {
		t.Fatalf("capitalize-word: %q", got)
	}

	run(t, e, MoveBeginningOfLine, DowncaseWord)
	if got := buf.Value(); got != "hello World" {
		t.Errorf("downcase-word: %q", got)
	}
}

func TestEngine_DeleteCharSkipsKillRing(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "abc", Options{})
	run(t, e, DeleteChar, EndOfBuffer, DeleteBackwardChar)

	if got := buf.Value(); got != "b" {
		t.Errorf("Value() = %q, want %q", got, "b")
	}
	if got := buf.Cursor(); got != (textbuf.Pos{Col: 1}) {
		t.Errorf("Cursor() = %+v, want {0 1}", got)
	}
	if got := e.KillRing(); len(got) != 0 {
		t.Errorf("KillRing() = %q, want empty", got)
	}
}

func TestEngine_UndoClearsMark(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "abc", Options{})
	run(t, e, KillLine, SetMarkCommand, Undo)

	if got := buf.Value(); got != "abc" {
		t.Errorf("Value() after undo = %q", got)
	}
	if _, active := e.Mark(); active {
		t.Error("mark still active after undo")
	}

	run(t, e, Redo)
	if got := buf.Value(); got != "" {
		t.Errorf("Value() after redo = %q", got)
	}
}

func TestEngine_Recenter(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "a\nb\nc", Options{})
	run(t, e, NextLine, Recenter)

	snap := buf.Snapshot()
	if snap.Scroll.From != (textbuf.Pos{Line: 1}) || !snap.Center {
		t.Errorf("scroll = %+v center=%v", snap.Scroll, snap.Center)
	}
}

func TestEngine_GotoExtendsRegion(t *testing.T) {
	t.Parallel()

	e, buf, _ := newEngine(t, "hello\nworld", Options{})
	run(t, e, SetMarkCommand)
	e.Goto(textbuf.Pos{Line: 1, Col: 2})

	if got := buf.Selection(); got != "hello\nwo" {
		t.Errorf("Selection() = %q, want %q", got, "hello\nwo")
	}
	if got := e.LastCommand(); got != GotoChar {
		t.Errorf("LastCommand() = %s, want %s", got, GotoChar)
	}
}
