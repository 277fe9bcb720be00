package model

import "strings"

// Line is one visual text line of a statement split on whitespace.
type Line []string

// Text joins the tokens with single spaces.
func (l Line) Text() string {
	return strings.Join(l, " ")
}

// Compact joins the tokens with no separator.
func (l Line) Compact() string {
	return strings.Join(l, "")
}

// Lower returns a copy of the line with every token lower-cased.
func (l Line) Lower() Line {
	out := make(Line, len(l))
	for i, tok := range l {
		out[i] = strings.ToLower(tok)
	}
	return out
}

// HasPrefix reports whether the line starts with the given tokens.
func (l Line) HasPrefix(prefix []string) bool {
	if len(prefix) == 0 || len(l) < len(prefix) {
		return false
	}
	for i, tok := range prefix {
		if l[i] != tok {
			return false
		}
	}
	return true
}
