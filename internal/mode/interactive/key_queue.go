// ABOUTME: FIFO of keys typed while an engine command is still running
// ABOUTME: Shared by pointer across model copies so Bubble Tea's value updates see one queue

package interactive

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyQueue holds keys in arrival order until the engine is idle again.
type KeyQueue struct {
	mu   sync.Mutex
	keys []tea.KeyMsg
}

// NewKeyQueue creates an empty queue.
func NewKeyQueue() *KeyQueue {
	return &KeyQueue{}
}

// Push appends a key.
func (q *KeyQueue) Push(k tea.KeyMsg) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.keys = append(q.keys, k)
}

// Pop removes and returns the oldest key.
func (q *KeyQueue) Pop() (tea.KeyMsg, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.keys) == 0 {
		return tea.KeyMsg{}, false
	}
	k := q.keys[0]
	q.keys = q.keys[1:]
	return k, true
}

// Count returns the number of queued keys.
func (q *KeyQueue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.keys)
}

// Clear drops every queued key.
func (q *KeyQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.keys = nil
}
