// ABOUTME: M-x minibuffer: reads a command name with fuzzy completion
// ABOUTME: Candidates are ranked by sahilm/fuzzy; an exact name always wins

package interactive

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

const maxMinibufferMatches = 6

type minibuffer struct {
	input    []rune
	names    []string
	matches  []string
	selected int
}

func newMinibuffer(names []string) *minibuffer {
	mb := &minibuffer{names: names}
	mb.filter()
	return mb
}

func (mb *minibuffer) filter() {
	mb.selected = 0
	if len(mb.input) == 0 {
		mb.matches = mb.names
		return
	}
	found := fuzzy.Find(string(mb.input), mb.names)
	mb.matches = make([]string, len(found))
	for i, f := range found {
		mb.matches[i] = f.Str
	}
}

func (mb *minibuffer) insert(s string) {
	mb.input = append(mb.input, []rune(s)...)
	mb.filter()
}

func (mb *minibuffer) backspace() {
	if len(mb.input) == 0 {
		return
	}
	mb.input = mb.input[:len(mb.input)-1]
	mb.filter()
}

func (mb *minibuffer) move(delta int) {
	if len(mb.matches) == 0 {
		return
	}
	n := len(mb.matches)
	mb.selected = ((mb.selected+delta)%n + n) % n
}

// complete replaces the input with the highlighted candidate.
func (mb *minibuffer) complete() {
	if len(mb.matches) == 0 {
		return
	}
	mb.input = []rune(mb.matches[mb.selected])
	mb.filter()
}

// choice returns the command to run, or "" when nothing matches.
func (mb *minibuffer) choice() string {
	if slices.Contains(mb.names, string(mb.input)) {
		return string(mb.input)
	}
	if len(mb.matches) == 0 {
		return ""
	}
	return mb.matches[mb.selected]
}

// window returns the visible candidates and the index of the selected one.
func (mb *minibuffer) window() ([]string, int) {
	if len(mb.matches) <= maxMinibufferMatches {
		return mb.matches, mb.selected
	}
	start := max(0, mb.selected-maxMinibufferMatches/2)
	end := start + maxMinibufferMatches
	if end > len(mb.matches) {
		end = len(mb.matches)
		start = end - maxMinibufferMatches
	}
	return mb.matches[start:end], mb.selected - start
}
