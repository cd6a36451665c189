// ABOUTME: Paragraph boundary scanning for forward/backward-paragraph motion
// ABOUTME: Pure function over buffer text and rune offsets; "\n" and "\r\n" are line breaks

package paragraph

import "unicode"

// Direction selects which way Find scans.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Find returns the rune offset of the paragraph boundary reached from offset
// when scanning text in dir. A boundary is the start of a blank line that
// follows at least one line containing non-whitespace text. Blank lines
// around the starting point are skipped. When no boundary is found the
// result is the start or end of text; starting at that extreme returns
// offset unchanged.
func Find(text string, offset int, dir Direction) int {
	runes := []rune(text)
	offset = max(0, min(offset, len(runes)))
	if dir == Backward {
		return backward(runes, offset)
	}
	return forward(runes, offset)
}

func forward(runes []rune, offset int) int {
	n := len(runes)
	if offset >= n {
		return offset
	}

	foundText, foundFirstBreak := false, false
	for i := offset; i < n; {
		width := breakWidth(runes, i)
		switch {
		case width > 0:
			if foundText {
				if foundFirstBreak {
					// i is the first rune of the blank line's own break.
					return i
				}
				foundFirstBreak = true
			}
			i += width
			continue
		case !unicode.IsSpace(runes[i]):
			foundText = true
			foundFirstBreak = false
		}
		i++
	}
	return n
}

func backward(runes []rune, offset int) int {
	if offset <= 0 {
		return offset
	}

	foundText, foundFirstBreak := false, false
	for i := offset - 1; i >= 0; {
		if runes[i] == '\n' {
			start := i
			if i > 0 && runes[i-1] == '\r' {
				start = i - 1
			}
			if foundText {
				if foundFirstBreak {
					// The blank line begins right after this break.
					return i + 1
				}
				foundFirstBreak = true
			}
			i = start - 1
			continue
		}
		if !unicode.IsSpace(runes[i]) {
			foundText = true
			foundFirstBreak = false
		}
		i--
	}
	return 0
}

// breakWidth reports the length of a line break starting at i, or 0.
func breakWidth(runes []rune, i int) int {
	switch {
	case runes[i] == '\n':
		return 1
	case runes[i] == '\r' && i+1 < len(runes) && runes[i+1] == '\n':
		return 2
	}
	return 0
}
