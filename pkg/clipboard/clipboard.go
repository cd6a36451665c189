// ABOUTME: Clipboard port plus the platform implementation backed by atotto/clipboard
// ABOUTME: atotto picks pbcopy/pbpaste, wl-clipboard, xclip or xsel, or the Windows API

package clipboard

import (
	"context"
	"errors"
	"fmt"

	sysclip "github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard mechanism is available.
var ErrUnsupported = errors.New("clipboard not supported")

// Clipboard reads and writes plain text. Both calls may block on external
// tools; they honor ctx cancellation.
type Clipboard interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, text string) error
}

// System talks to the platform clipboard.
type System struct {
	unsupported bool
	readAll     func() (string, error)
	writeAll    func(string) error
}

// NewSystem returns a System clipboard for the running platform.
func NewSystem() *System {
	return &System{
		unsupported: sysclip.Unsupported,
		readAll:     sysclip.ReadAll,
		writeAll:    sysclip.WriteAll,
	}
}

// Write copies text to the system clipboard.
func (s *System) Write(ctx context.Context, text string) error {
	if s.unsupported {
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.writeAll(text); err != nil {
		return fmt.Errorf("system clipboard write: %w", err)
	}
	return nil
}

// Read returns the current system clipboard text.
func (s *System) Read(ctx context.Context) (string, error) {
	if s.unsupported {
		return "", ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	text, err := s.readAll()
	if err != nil {
		return "", fmt.Errorf("system clipboard read: %w", err)
	}
	return text, nil
}
