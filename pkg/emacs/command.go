// ABOUTME: Command identifiers understood by the engine, with one-line descriptions
// ABOUTME: Names follow Emacs (kebab-case) so keymaps read like an init file

package emacs

import "slices"

// Command names an engine operation.
type Command string

const (
	ForwardChar         Command = "forward-char"
	BackwardChar        Command = "backward-char"
	NextLine            Command = "next-line"
	PreviousLine        Command = "previous-line"
	ForwardWord         Command = "forward-word"
	BackwardWord        Command = "backward-word"
	MoveBeginningOfLine Command = "move-beginning-of-line"
	MoveEndOfLine       Command = "move-end-of-line"
	BeginningOfBuffer   Command = "beginning-of-buffer"
	EndOfBuffer         Command = "end-of-buffer"
	ForwardParagraph    Command = "forward-paragraph"
	BackwardParagraph   Command = "backward-paragraph"

	KillLine           Command = "kill-line"
	DeleteChar         Command = "delete-char"
	DeleteBackwardChar Command = "delete-backward-char"
	KillWord           Command = "kill-word"
	BackwardKillWord   Command = "backward-kill-word"
	KillRegion         Command = "kill-region"
	KillRingSave       Command = "kill-ring-save"
	Yank               Command = "yank"
	YankPop            Command = "yank-pop"

	SetMarkCommand       Command = "set-mark-command"
	ExchangePointAndMark Command = "exchange-point-and-mark"
	MarkWholeBuffer      Command = "mark-whole-buffer"
	KeyboardQuit         Command = "keyboard-quit"

	Undo     Command = "undo"
	Redo     Command = "redo"
	Recenter Command = "recenter"

	UpcaseWord     Command = "upcase-word"
	DowncaseWord   Command = "downcase-word"
	CapitalizeWord Command = "capitalize-word"

	// SelfInsertCommand is recorded for typed text. It takes an argument, so
	// it runs through Engine.SelfInsert rather than Execute.
	SelfInsertCommand Command = "self-insert-command"
	// GotoChar is recorded for Engine.Goto.
	GotoChar Command = "goto-char"
)

var descriptions = map[Command]string{
	ForwardChar:          "Move point right one character",
	BackwardChar:         "Move point left one character",
	NextLine:             "Move cursor vertically down one line",
	PreviousLine:         "Move cursor vertically up one line",
	ForwardWord:          "Move point forward to the end of the next word",
	BackwardWord:         "Move point backward to the start of the previous word",
	MoveBeginningOfLine:  "Move point to the beginning of the current line",
	MoveEndOfLine:        "Move point to the end of the current line",
	BeginningOfBuffer:    "Move point to the beginning of the buffer",
	EndOfBuffer:          "Move point to the end of the buffer",
	ForwardParagraph:     "Move forward to the end of the paragraph",
	BackwardParagraph:    "Move backward to the start of the paragraph",
	KillLine:             "Kill the rest of the current line, or the line break",
	DeleteChar:           "Delete the following character",
	DeleteBackwardChar:   "Delete the previous character",
	KillWord:             "Kill characters forward until the end of a word",
	BackwardKillWord:     "Kill characters backward until the start of a word",
	KillRegion:           "Kill the text between point and mark",
	KillRingSave:         "Save the region as if killed, but do not kill it",
	Yank:                 "Reinsert the most recently killed text",
	YankPop:              "Replace the just-yanked text with an earlier kill",
	SetMarkCommand:       "Set the mark where point is",
	ExchangePointAndMark: "Put the mark where point is and point where the mark was",
	MarkWholeBuffer:      "Put point at the beginning and mark at the end of the buffer",
	KeyboardQuit:         "Deactivate the mark and abandon yank-pop",
	Undo:                 "Undo the last change",
	Redo:                 "Redo the last undone change",
	Recenter:             "Scroll so point is in the middle of the window",
	UpcaseWord:           "Convert the following word to upper case",
	DowncaseWord:         "Convert the following word to lower case",
	CapitalizeWord:       "Capitalize the following word",
}

// Valid reports whether Execute knows the command.
func (c Command) Valid() bool {
	_, ok := descriptions[c]
	return ok
}

// Description returns the one-line help text, or "" for unknown commands.
func (c Command) Description() string {
	return descriptions[c]
}

// Lookup returns the command with the given name.
func Lookup(name string) (Command, bool) {
	c := Command(name)
	return c, c.Valid()
}

// Commands returns every executable command, sorted by name.
func Commands() []Command {
	out := make([]Command, 0, len(descriptions))
	for c := range descriptions {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}
