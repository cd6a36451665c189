// ABOUTME: Declares a dark terminal background to lipgloss before Bubble Tea initializes
// ABOUTME: Import with _ ahead of any package that imports bubbletea

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// Only lipgloss's default renderer is covered here: with the background
	// known it never sends its own OSC 11 query. Other termenv outputs can
	// still query (interactive.Run builds its output without a color cache
	// for that reason).
	//
	// This package must not import bubbletea, directly or transitively,
	// so its init runs first.
	lipgloss.SetHasDarkBackground(true)
}
