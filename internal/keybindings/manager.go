// ABOUTME: Keybindings manager with O(1) key-to-action lookup and two-key prefix sequences
// ABOUTME: Drops unknown command names, detects prefix conflicts, supports hot-reload

package keybindings

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mauromedda/emacs-keys-go/internal/log"
	"github.com/mauromedda/emacs-keys-go/pkg/emacs"
)

// Action is an engine command name or one of the editor actions below.
type Action string

// Editor actions handled by the terminal UI rather than the engine.
const (
	ExecuteExtendedCommand Action = "execute-extended-command"
	SaveBuffer             Action = "save-buffer"
	Quit                   Action = "save-buffers-kill-terminal"
	DescribeBindings       Action = "describe-bindings"
)

var editorActions = map[Action]string{
	ExecuteExtendedCommand: "Read a command name and run it",
	SaveBuffer:             "Save the buffer to its file",
	Quit:                   "Save and exit",
	DescribeBindings:       "Show all key bindings",
}

// Command returns the engine command for a, if it is one.
func (a Action) Command() (emacs.Command, bool) {
	return emacs.Lookup(string(a))
}

// Valid reports whether a names an engine command or an editor action.
func (a Action) Valid() bool {
	if _, ok := editorActions[a]; ok {
		return true
	}
	_, ok := a.Command()
	return ok
}

// Description returns the one-line help for a.
func (a Action) Description() string {
	if d, ok := editorActions[a]; ok {
		return d
	}
	return emacs.Command(a).Description()
}

// ConflictInfo describes a key that is bound to an action and also starts
// a longer sequence, so the sequence can never be typed.
type ConflictInfo struct {
	Key       string
	Action    Action
	Shadowing []string
}

// Binding is one key sequence and its action.
type Binding struct {
	Key    string
	Action Action
}

// Manager resolves key sequences to actions. Safe for concurrent use so the
// settings watcher can reload it while the UI reads it.
type Manager struct {
	mu       sync.RWMutex
	lookup   map[string]Action // "ctrl+x ctrl+x" → exchange-point-and-mark
	prefixes map[string][]string
}

// New builds a Manager from a keymap of key text to action name.
// Entries naming unknown actions are dropped with a warning.
func New(keymap map[string]string) *Manager {
	m := &Manager{}
	m.Reload(keymap)
	return m
}

// Reload replaces every binding with keymap.
func (m *Manager) Reload(keymap map[string]string) {
	lookup := make(map[string]Action, len(keymap))
	prefixes := make(map[string][]string)

	for raw, name := range keymap {
		seq := Normalize(raw)
		a := Action(name)
		if !a.Valid() {
			log.Warn("keybindings: %q bound to unknown command %q, ignored", raw, name)
			continue
		}
		keys := strings.Split(seq, " ")
		if len(keys) > 2 {
			log.Warn("keybindings: %q has more than two keys, ignored", raw)
			continue
		}
		lookup[seq] = a
		if len(keys) == 2 {
			prefixes[keys[0]] = append(prefixes[keys[0]], seq)
		}
	}
	for _, seqs := range prefixes {
		slices.Sort(seqs)
	}

	m.mu.Lock()
	m.lookup = lookup
	m.prefixes = prefixes
	m.mu.Unlock()
}

// Normalize collapses runs of whitespace in a key sequence to single spaces.
func Normalize(seq string) string {
	return strings.Join(strings.Fields(seq), " ")
}

// Lookup returns the action bound to a key or a two-key sequence.
func (m *Manager) Lookup(seq string) (Action, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	a, ok := m.lookup[Normalize(seq)]
	return a, ok
}

// IsPrefix reports whether key starts a bound two-key sequence.
func (m *Manager) IsPrefix(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.prefixes[key]) > 0
}

// KeysFor returns the sequences bound to a, sorted.
func (m *Manager) KeysFor(a Action) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k, v := range m.lookup {
		if v == a {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Bindings returns every binding sorted by action, then key.
func (m *Manager) Bindings() []Binding {
	m.mu.RLock()
	out := make([]Binding, 0, len(m.lookup))
	for k, a := range m.lookup {
		out = append(out, Binding{Key: k, Action: a})
	}
	m.mu.RUnlock()

	slices.SortFunc(out, func(x, y Binding) int {
		if c := strings.Compare(string(x.Action), string(y.Action)); c != 0 {
			return c
		}
		return strings.Compare(x.Key, y.Key)
	})
	return out
}

// Conflicts detects single keys that are bound while also acting as a prefix.
func (m *Manager) Conflicts() []ConflictInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var conflicts []ConflictInfo
	for prefix, seqs := range m.prefixes {
		if a, ok := m.lookup[prefix]; ok {
			conflicts = append(conflicts, ConflictInfo{Key: prefix, Action: a, Shadowing: seqs})
		}
	}
	slices.SortFunc(conflicts, func(x, y ConflictInfo) int {
		return strings.Compare(x.Key, y.Key)
	})
	return conflicts
}

// FormatAll returns a Markdown table of all bindings for the help view.
func (m *Manager) FormatAll() string {
	var b strings.Builder
	b.WriteString("# Key bindings\n\n")
	b.WriteString("| Key | Command | Description |\n")
	b.WriteString("|---|---|---|\n")

	for _, bd := range m.Bindings() {
		fmt.Fprintf(&b, "| `%s` | %s | %s |\n", bd.Key, bd.Action, bd.Action.Description())
	}
	return b.String()
}
