// ABOUTME: In-process clipboard for tests, batch runs, and terminals without a clipboard tool
// ABOUTME: Optionally fails every call to exercise clipboard-unavailable paths

package clipboard

import (
	"context"
	"sync"
)

// Memory keeps the clipboard text in process.
type Memory struct {
	mu   sync.Mutex
	text string
	err  error
}

// NewMemory returns a Memory clipboard holding text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

// Read returns the stored text.
func (m *Memory) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

// Write replaces the stored text.
func (m *Memory) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}
	m.text = text
	return nil
}

// Fail makes every following call return err; nil restores normal behavior.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.err = err
}
