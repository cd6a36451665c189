// ABOUTME: Root Bubble Tea model: routes keys through the keymap to the engine or editor actions
// ABOUTME: Engine commands run in a tea.Cmd; keys arriving meanwhile wait in the KeyQueue

package interactive

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/emacs-keys-go/internal/keybindings"
	"github.com/mauromedda/emacs-keys-go/internal/log"
	"github.com/mauromedda/emacs-keys-go/pkg/emacs"
	"github.com/mauromedda/emacs-keys-go/pkg/textbuf"
)

// commandDoneMsg reports that an engine command finished.
type commandDoneMsg struct {
	cmd emacs.Command
	err error
}

// statusMsg shows text in the echo area; sent by background work.
type statusMsg string

// Config is everything the interactive mode needs to edit one document.
type Config struct {
	Path   string // file saved by save-buffer; "" for a scratch buffer
	Text   string
	Engine emacs.Options
	Keys   *keybindings.Manager
}

// Model is the root Bubble Tea model for the editor.
type Model struct {
	ctx    context.Context
	buf    *textbuf.Memory
	engine *emacs.Engine
	keys   *keybindings.Manager
	queue  *KeyQueue
	help   *helpRenderer
	styles styles

	path  string
	saved string

	busy   bool
	prefix string
	mini   *minibuffer
	page   *helpView

	width, height int
	top           int
	message       string
	errMessage    bool
	markActive    bool
	yanking       bool
}

// New creates a Model editing cfg.Text.
func New(ctx context.Context, cfg Config) Model {
	buf := textbuf.NewMemory(cfg.Text)
	return Model{
		ctx:    ctx,
		buf:    buf,
		engine: emacs.New(buf, cfg.Engine),
		keys:   cfg.Keys,
		queue:  NewKeyQueue(),
		help:   newHelpRenderer(),
		styles: newStyles(),
		path:   cfg.Path,
		saved:  cfg.Text,
		width:  80,
		height: 24,
	}
}

// Init returns nil; there is no startup work.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.page != nil {
			m.page.resize(m.width, m.bodyHeight())
		}
		m.scroll(false)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case commandDoneMsg:
		return m.commandDone(msg)

	case statusMsg:
		m.setMessage(string(msg), false)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.busy {
		m.queue.Push(msg)
		return m, nil
	}
	if m.page != nil {
		return m.updateHelp(msg), nil
	}
	if m.mini != nil {
		return m.updateMinibuffer(msg)
	}

	if msg.Paste {
		return m.selfInsert(string(msg.Runes)), nil
	}

	k := msg.String()
	m.message = ""

	if m.prefix != "" {
		seq := m.prefix + " " + k
		m.prefix = ""
		a, ok := m.keys.Lookup(seq)
		if !ok {
			m.setMessage(seq+" is undefined", true)
			return m, nil
		}
		return m.dispatch(a)
	}
	if m.keys.IsPrefix(k) {
		m.prefix = k
		return m, nil
	}
	if a, ok := m.keys.Lookup(k); ok {
		return m.dispatch(a)
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		if !msg.Alt {
			return m.selfInsert(string(msg.Runes)), nil
		}
	case tea.KeyEnter:
		return m.selfInsert("\n"), nil
	case tea.KeyTab:
		return m.selfInsert("\t"), nil
	}
	m.setMessage(k+" is undefined", true)
	return m, nil
}

func (m Model) dispatch(a keybindings.Action) (Model, tea.Cmd) {
	if cmd, ok := a.Command(); ok {
		return m.execute(cmd)
	}

	switch a {
	case keybindings.ExecuteExtendedCommand:
		m.mini = newMinibuffer(extendedCommandNames())
	case keybindings.SaveBuffer:
		m.save()
	case keybindings.Quit:
		if m.modified() && !m.save() {
			return m, nil
		}
		return m, tea.Quit
	case keybindings.DescribeBindings:
		m.page = newHelpView(m.help.Render(m.keys.FormatAll(), m.width), m.width, m.bodyHeight())
	}
	return m, nil
}

// execute runs cmd off the Update goroutine. Only one command runs at a time.
func (m Model) execute(cmd emacs.Command) (Model, tea.Cmd) {
	m.busy = true
	e, ctx := m.engine, m.ctx
	return m, func() tea.Msg {
		return commandDoneMsg{cmd: cmd, err: e.Execute(ctx, cmd)}
	}
}

func (m Model) commandDone(msg commandDoneMsg) (Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		log.Warn("interactive: %s: %v", msg.cmd, msg.err)
		m.setMessage(msg.err.Error(), true)
	}
	m.afterCommand(msg.cmd)

	var cmds []tea.Cmd
	for !m.busy {
		next, ok := m.queue.Pop()
		if !ok {
			break
		}
		var c tea.Cmd
		m, c = m.handleKey(next)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) selfInsert(text string) Model {
	m.engine.SelfInsert(text)
	m.afterCommand(emacs.SelfInsertCommand)
	return m
}

// afterCommand refreshes state read by View. Must run while no command is
// in flight.
func (m *Model) afterCommand(cmd emacs.Command) {
	_, m.markActive = m.engine.Mark()
	m.yanking = m.engine.Yanking()
	m.scroll(cmd == emacs.Recenter)
}

func (m Model) updateMinibuffer(msg tea.KeyMsg) (Model, tea.Cmd) {
	mb := m.mini
	switch msg.String() {
	case "esc", "ctrl+g":
		m.mini = nil
		m.setMessage("Quit", false)
	case "enter":
		m.mini = nil
		name := mb.choice()
		if name == "" {
			m.setMessage("[No match]", true)
			return m, nil
		}
		return m.dispatch(keybindings.Action(name))
	case "tab":
		mb.complete()
	case "backspace":
		mb.backspace()
	case "up", "ctrl+p":
		mb.move(-1)
	case "down", "ctrl+n":
		mb.move(1)
	default:
		if (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt {
			mb.insert(string(msg.Runes))
		}
	}
	return m, nil
}

func (m Model) updateHelp(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "q", "esc", "ctrl+g", "f1":
		m.page = nil
	default:
		m.page.update(msg)
	}
	return m
}

// save writes the buffer to its file and reports whether it succeeded.
func (m *Model) save() bool {
	if m.path == "" {
		m.setMessage("No file to save to", true)
		return false
	}
	text := m.buf.Value()
	perm := os.FileMode(0o644)
	if info, err := os.Stat(m.path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(m.path, []byte(text), perm); err != nil {
		log.Error("interactive: saving %s: %v", m.path, err)
		m.setMessage(fmt.Sprintf("Saving %s: %v", m.path, err), true)
		return false
	}
	m.saved = text
	m.setMessage("Wrote "+m.path, false)
	return true
}

func (m *Model) modified() bool {
	return m.buf.Value() != m.saved
}

func (m *Model) setMessage(s string, isErr bool) {
	m.message = s
	m.errMessage = isErr
}

// scroll keeps the cursor line on screen, or centers it.
func (m *Model) scroll(center bool) {
	h := m.bodyHeight()
	line := m.buf.Cursor().Line
	switch {
	case center:
		m.top = max(0, line-h/2)
	case line < m.top:
		m.top = line
	case line >= m.top+h:
		m.top = line - h + 1
	}
}

// bodyHeight is the number of text rows above the status and echo lines.
func (m *Model) bodyHeight() int {
	return max(1, m.height-2)
}

// Text returns the current buffer contents.
func (m Model) Text() string {
	return m.buf.Value()
}

// extendedCommandNames lists what M-x offers: engine commands plus editor actions.
func extendedCommandNames() []string {
	cmds := emacs.Commands()
	names := make([]string, 0, len(cmds)+3)
	for _, c := range cmds {
		names = append(names, string(c))
	}
	return append(names,
		string(keybindings.SaveBuffer),
		string(keybindings.Quit),
		string(keybindings.DescribeBindings),
	)
}
