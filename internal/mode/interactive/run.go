// ABOUTME: Entry point for the interactive editor: builds the tea.Program and blocks until exit
// ABOUTME: A settings watcher reloads the keymap in the background while the program runs

package interactive

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/mauromedda/emacs-keys-go/internal/config"
	"github.com/mauromedda/emacs-keys-go/internal/log"
)

// ReloadFunc loads a fresh keymap when settings files change.
type ReloadFunc func() (map[string]string, error)

// Run starts the editor on the alternate screen. Blocks until the user exits.
// When watchPaths and reload are set, edits to those files rebind cfg.Keys.
func Run(ctx context.Context, cfg Config, watchPaths []string, reload ReloadFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A plain writer would get termenv's color cache, which queries the
	// terminal background (OSC 11) and blocks until it answers.
	p := tea.NewProgram(
		New(ctx, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(termenv.NewOutput(os.Stderr)),
	)

	if len(watchPaths) > 0 && reload != nil {
		w := config.NewWatcher(watchPaths, func() {
			p.Send(reloadKeys(cfg, reload))
		})
		go w.Run(ctx)
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("bubble tea: %w", err)
	}
	return nil
}

// reloadKeys applies a fresh keymap and returns the echo-area message.
func reloadKeys(cfg Config, reload ReloadFunc) statusMsg {
	km, err := reload()
	if err != nil {
		log.Warn("interactive: reloading keymap: %v", err)
		return statusMsg("Settings not reloaded: " + err.Error())
	}
	cfg.Keys.Reload(km)
	log.Info("interactive: keymap reloaded (%d bindings)", len(km))
	return statusMsg("Keymap reloaded")
}
