// ABOUTME: Sentinel errors returned by the command engine
// ABOUTME: Unmet preconditions are not errors; commands silently do nothing instead

package emacs

import "errors"

var (
	// ErrUnknownCommand is returned by Execute for names it does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrClipboard wraps clipboard failures. Buffer and kill ring are left
	// untouched when it is returned.
	ErrClipboard = errors.New("clipboard unavailable")
)
