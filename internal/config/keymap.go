// ABOUTME: Default Emacs keymap and user overrides from settings
// ABOUTME: Keys use terminal key text ("ctrl+f", "alt+f"); sequences are space separated

package config

// DefaultKeymap returns the built-in bindings, key text to command name.
func DefaultKeymap() map[string]string {
	return map[string]string{
		"ctrl+f": "forward-char",
		"right":  "forward-char",
		"ctrl+b": "backward-char",
		"left":   "backward-char",
		"ctrl+n": "next-line",
		"down":   "next-line",
		"ctrl+p": "previous-line",
		"up":     "previous-line",
		"alt+f":  "forward-word",
		"alt+b":  "backward-word",
		"ctrl+a": "move-beginning-of-line",
		"home":   "move-beginning-of-line",
		"ctrl+e": "move-end-of-line",
		"end":    "move-end-of-line",
		"alt+<":  "beginning-of-buffer",
		"alt+>":  "end-of-buffer",
		"alt+}":  "forward-paragraph",
		"alt+{":  "backward-paragraph",

		"ctrl+k":        "kill-line",
		"ctrl+d":        "delete-char",
		"delete":        "delete-char",
		"backspace":     "delete-backward-char",
		"alt+d":         "kill-word",
		"alt+backspace": "backward-kill-word",
		"ctrl+w":        "kill-region",
		"alt+w":         "kill-ring-save",
		"ctrl+y":        "yank",
		"alt+y":         "yank-pop",

		"ctrl+@":        "set-mark-command",
		"ctrl+x ctrl+x": "exchange-point-and-mark",
		"ctrl+x h":      "mark-whole-buffer",
		"ctrl+g":        "keyboard-quit",

		"ctrl+_": "undo",
		"alt+_":  "redo",
		"ctrl+l": "recenter",

		"alt+u": "upcase-word",
		"alt+l": "downcase-word",
		"alt+c": "capitalize-word",

		"alt+x":         "execute-extended-command",
		"ctrl+x ctrl+s": "save-buffer",
		"ctrl+x ctrl+c": "save-buffers-kill-terminal",
		"f1":            "describe-bindings",
	}
}

// ResolvedKeymap returns the default keymap with the settings overrides
// applied. An override with an empty command name unbinds the key.
func (s *Settings) ResolvedKeymap() map[string]string {
	km := DefaultKeymap()
	for key, cmd := range s.Keymap {
		if cmd == "" {
			delete(km, key)
			continue
		}
		km[key] = cmd
	}
	return km
}
