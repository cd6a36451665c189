// ABOUTME: Lipgloss styles for the editor view: region, cursor, status line, minibuffer
// ABOUTME: Built once; colors assume the dark background that termfix sets

package interactive

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Text       lipgloss.Style
	Region     lipgloss.Style
	Cursor     lipgloss.Style
	Status     lipgloss.Style
	StatusFlag lipgloss.Style
	Message    lipgloss.Style
	Error      lipgloss.Style
	Prompt     lipgloss.Style
	Match      lipgloss.Style
	MatchSel   lipgloss.Style
	Dim        lipgloss.Style
}

func newStyles() styles {
	return styles{
		Text:       lipgloss.NewStyle(),
		Region:     lipgloss.NewStyle().Background(lipgloss.Color("24")).Foreground(lipgloss.Color("231")),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		Status:     lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("252")),
		StatusFlag: lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("214")).Bold(true),
		Message:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		Match:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MatchSel:   lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true).Underline(true),
		Dim:        lipgloss.NewStyle().Faint(true),
	}
}
