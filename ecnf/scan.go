package ecnf

import (
	"unicode"
	"unicode/utf8"
)

// isSectionKeyChar reports whether r may begin a key.
func isSectionKeyChar(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// isKeyChar reports whether r may appear after the first rune of a key.
func isKeyChar(r rune) bool {
	return isSectionKeyChar(r) || r == '_'
}

// isWrapped reports whether s has at least two bytes, begins with open, and
// ends with close. A lone quote is therefore not wrapped, while "" is.
func isWrapped(s string, open, close rune) bool {
	if len(s) < 2 {
		return false
	}

	first, _ := utf8.DecodeRuneInString(s)
	last, _ := utf8.DecodeLastRuneInString(s)

	return first == open && last == close
}

// cursor reads runes from a single line.
type cursor struct {
	s   string
	pos int
}

func newCursor(s string) *cursor {
	return &cursor{s: s}
}

// scanWhile consumes and returns the longest prefix of the remaining input
// whose runes all satisfy pred. The first rune failing pred is not consumed.
func (c *cursor) scanWhile(pred func(rune) bool) string {
	start := c.pos

	for c.pos < len(c.s) {
		r, size := utf8.DecodeRuneInString(c.s[c.pos:])
		if !pred(r) {
			break
		}

		c.pos += size
	}

	return c.s[start:c.pos]
}

// skipWhitespace discards a run of whitespace.
func (c *cursor) skipWhitespace() {
	_ = c.scanWhile(unicode.IsSpace)
}

// next consumes one rune. It returns false if the input is exhausted.
func (c *cursor) next() (rune, bool) {
	if c.pos >= len(c.s) {
		return 0, false
	}

	r, size := utf8.DecodeRuneInString(c.s[c.pos:])
	c.pos += size

	return r, true
}

// rest returns the unconsumed input without consuming it.
func (c *cursor) rest() string {
	return c.s[c.pos:]
}

// startsWith reports whether the first rune of s satisfies pred.
func startsWith(s string, pred func(rune) bool) bool {
	r, size := utf8.DecodeRuneInString(s)

	return size > 0 && pred(r)
}
