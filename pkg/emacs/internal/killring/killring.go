// ABOUTME: Emacs-style kill ring with a fixed number of slots
// ABOUTME: Tracks the newest slot and the highest slot ever written for yank-pop wrapping

package killring

// DefaultCapacity is the number of slots used when none is configured.
const DefaultCapacity = 120

// KillRing stores killed text in a fixed array of slots. Slots are
// overwritten in place as the write index wraps; nothing is ever shifted.
type KillRing struct {
	slots     []string
	written   []bool
	write     int
	highWater int
}

// New creates a KillRing with the given capacity. Capacities below one fall
// back to DefaultCapacity.
func New(capacity int) *KillRing {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &KillRing{
		slots:   make([]string, capacity),
		written: make([]bool, capacity),
		// The first save advances onto slot 0.
		write:     capacity - 1,
		highWater: -1,
	}
}

// Save stores text. With extend set and a non-empty newest slot, text is
// merged into that slot: appended, or prepended when backward is set.
// Otherwise the write index advances and text fills the next slot.
func (kr *KillRing) Save(text string, extend, backward bool) {
	merged := kr.Merged(text, extend, backward)
	if !kr.merges(extend) {
		kr.write = (kr.write + 1) % len(kr.slots)
		if kr.write > kr.highWater {
			kr.highWater = kr.write
		}
	}
	kr.slots[kr.write] = merged
	kr.written[kr.write] = true
}

// Merged returns the text the newest slot will hold after an identical Save.
func (kr *KillRing) Merged(text string, extend, backward bool) string {
	if !kr.merges(extend) {
		return text
	}
	if backward {
		return text + kr.slots[kr.write]
	}
	return kr.slots[kr.write] + text
}

func (kr *KillRing) merges(extend bool) bool {
	return extend && kr.written[kr.write]
}

// MostRecent returns the newest entry, or false if nothing was saved yet.
func (kr *KillRing) MostRecent() (string, bool) {
	if !kr.written[kr.write] {
		return "", false
	}
	return kr.slots[kr.write], true
}

// Previous returns the entry at pop. A negative pop wraps to the highest
// slot written so far. The returned index is the slot actually read; the
// caller decrements it before the next call.
func (kr *KillRing) Previous(pop int) (string, int) {
	if kr.highWater < 0 {
		return "", -1
	}
	if pop < 0 || pop > kr.highWater {
		pop = kr.highWater
	}
	return kr.slots[pop], pop
}

// WriteIndex returns the slot holding the newest entry.
func (kr *KillRing) WriteIndex() int {
	return kr.write
}

// HighWater returns the highest slot ever written, or -1 for an empty ring.
func (kr *KillRing) HighWater() int {
	return kr.highWater
}

// Cap returns the number of slots.
func (kr *KillRing) Cap() int {
	return len(kr.slots)
}

// Len returns the number of slots holding an entry.
func (kr *KillRing) Len() int {
	return kr.highWater + 1
}

// Entries returns the stored entries, newest first.
func (kr *KillRing) Entries() []string {
	n := kr.Len()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		idx := (kr.write - i + n) % n
		out = append(out, kr.slots[idx])
	}
	return out
}
