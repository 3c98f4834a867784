package sizes

// block.go handles the embedded form: a flat field wrapped in markers and
// appended to a description after a blank line.
//
// Callers must keep at most one block per text. Extract returns the first
// block found; Replace rewrites only that one.

import (
	"regexp"
	"strings"
)

// blockSeparator sits between the description and the block.
const blockSeparator = "\n\n"

type blockMatcher struct {
	re *regexp.Regexp
}

func newBlockMatcher(open, close string) blockMatcher {
	// (?s) lets the block span lines; .*? stops at the first close marker.
	pattern := `(?s)` + regexp.QuoteMeta(open) + `(.*?)` + regexp.QuoteMeta(close)
	return blockMatcher{re: regexp.MustCompile(pattern)}
}

// Embed appends q to description as a marker-wrapped block.
//
// The block always lists every size in the vocabulary, zeros included, so an
// empty map is written as all zeros rather than the sentinel.
func (c *Codec) Embed(description string, q Quantities) string {
	return description + blockSeparator + c.block(q)
}

func (c *Codec) block(q Quantities) string {
	return c.openTag + c.join(q, false) + c.closeTag
}

// Extract returns the field inside the first block in text.
// It reports false when text has no block or the block is empty; absence of
// size information is a valid state, not an error.
func (c *Codec) Extract(text string) (string, bool) {
	m := c.blocks.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	field := strings.TrimSpace(m[1])
	if field == "" {
		return "", false
	}
	return field, true
}

// HasBlock reports whether text contains a start/end marker pair.
func (c *Codec) HasBlock(text string) bool {
	return c.blocks.re.MatchString(text)
}

// Replace rewrites the first block in text with q, keeping the surrounding
// text. If text has no block, q is embedded as by Embed.
func (c *Codec) Replace(text string, q Quantities) string {
	loc := c.blocks.re.FindStringIndex(text)
	if loc == nil {
		return c.Embed(text, q)
	}
	return text[:loc[0]] + c.block(q) + text[loc[1]:]
}

// Strip removes the first block and the blank-line separator before it.
func (c *Codec) Strip(text string) string {
	loc := c.blocks.re.FindStringIndex(text)
	if loc == nil {
		return text
	}
	head := strings.TrimSuffix(text[:loc[0]], blockSeparator)
	return head + text[loc[1]:]
}
