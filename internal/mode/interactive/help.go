// ABOUTME: Key binding help rendered as Markdown through glamour
// ABOUTME: Caches rendered results keyed by content hash + width; a viewport pages through them

package interactive

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// helpRenderer wraps glamour to render the bindings table with caching.
type helpRenderer struct {
	cache map[string]string // "hash:width" -> rendered
}

func newHelpRenderer() *helpRenderer {
	return &helpRenderer{cache: make(map[string]string)}
}

// Render returns md styled for the terminal. On renderer errors the raw
// Markdown is returned.
func (r *helpRenderer) Render(md string, width int) string {
	if md == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	key := cacheKey(md, width)
	if cached, ok := r.cache[key]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	rendered = strings.TrimRight(rendered, "\n ")

	r.cache[key] = rendered
	return rendered
}

func cacheKey(content string, width int) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x:%d", h[:8], width)
}

// helpView pages through rendered help text.
type helpView struct {
	vp viewport.Model
}

func newHelpView(rendered string, width, height int) *helpView {
	vp := viewport.New(width, height)
	vp.KeyMap = helpKeyMap()
	vp.SetContent(rendered)
	return &helpView{vp: vp}
}

// helpKeyMap binds Emacs and pager keys for scrolling.
func helpKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "ctrl+v")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "alt+v")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Down:         key.NewBinding(key.WithKeys("down", "ctrl+n", "j")),
		Up:           key.NewBinding(key.WithKeys("up", "ctrl+p", "k")),
	}
}

func (h *helpView) resize(width, height int) {
	h.vp.Width = width
	h.vp.Height = height
}

func (h *helpView) update(msg tea.KeyMsg) {
	h.vp, _ = h.vp.Update(msg)
}

func (h *helpView) view() []string {
	return strings.Split(h.vp.View(), "\n")
}
