// ABOUTME: Command-repeat classifier deciding whether a kill extends the previous one
// ABOUTME: Per-engine state; only an immediate repeat of the same extendable command merges

package emacs

// DefaultExtendCommands are the kills that merge when repeated back to back.
var DefaultExtendCommands = []Command{KillWord, BackwardKillWord, KillLine}

// DefaultBackwardCommands are the kills whose text is prepended on merge.
var DefaultBackwardCommands = []Command{BackwardKillWord}

// repeat is the classifier verdict for one invocation.
type repeat struct {
	extend   bool
	backward bool
}

type history struct {
	last       Command
	extendable map[Command]bool
	backward   map[Command]bool
}

func newHistory(extend, backward []Command) history {
	h := history{
		extendable: make(map[Command]bool, len(extend)),
		backward:   make(map[Command]bool, len(backward)),
	}
	for _, c := range extend {
		h.extendable[c] = true
	}
	for _, c := range backward {
		h.backward[c] = true
	}
	return h
}

// classify reports how cmd relates to the previous invocation and records
// cmd as the new last command.
func (h *history) classify(cmd Command) repeat {
	r := repeat{
		extend:   h.last == cmd && h.extendable[cmd],
		backward: h.backward[cmd],
	}
	h.last = cmd
	return r
}
