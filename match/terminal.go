package match

import (
	"fmt"

	"github.com/npillmayer/pergo"
)

// The terminal matchers consume input characters directly. On success they
// advance the context cursor past the consumed characters and create a
// parse-tree node; on failure they leave the cursor untouched and return
// false.

// --- Single character -------------------------------------------------------

// CharMatcher matches one specific character.
type CharMatcher struct {
	baseMatcher
	char rune
}

// NewChar creates a matcher for a single character.
func NewChar(c rune) *CharMatcher {
	m := &CharMatcher{char: c}
	if c == pergo.EOI {
		m.label = "EOI"
	} else {
		m.label = fmt.Sprintf("'%c'", c)
	}
	return m
}

// Char returns the character this matcher consumes.
func (m *CharMatcher) Char() rune {
	return m.char
}

func (m *CharMatcher) Match(ctx *Context) (bool, error) {
	if ctx.current.Char() != m.char {
		return false, nil
	}
	ctx.AdvanceLocation()
	ctx.CreateNode()
	return true, nil
}

func (m *CharMatcher) StarterChars() *Chars {
	return CharsOf(m.char)
}

// --- Character range --------------------------------------------------------

// CharRangeMatcher matches any single character between lo and hi, inclusive.
type CharRangeMatcher struct {
	baseMatcher
	lo, hi rune
}

// NewCharRange creates a matcher for a character range.
func NewCharRange(lo, hi rune) *CharRangeMatcher {
	if hi < lo {
		lo, hi = hi, lo
	}
	return &CharRangeMatcher{lo: lo, hi: hi, baseMatcher: baseMatcher{
		label: fmt.Sprintf("'%c'..'%c'", lo, hi),
	}}
}

func (m *CharRangeMatcher) Match(ctx *Context) (bool, error) {
	c := ctx.current.Char()
	if c < m.lo || c > m.hi {
		return false, nil
	}
	ctx.AdvanceLocation()
	ctx.CreateNode()
	return true, nil
}

func (m *CharRangeMatcher) StarterChars() *Chars {
	return CharRange(m.lo, m.hi)
}

// --- Character set ----------------------------------------------------------

// CharSetMatcher matches any single character of a set. With a subtractive
// set it matches any character but the excluded ones; EOI never matches.
type CharSetMatcher struct {
	baseMatcher
	chars *Chars
}

// NewCharSet creates a matcher for a character set.
func NewCharSet(chars *Chars) *CharSetMatcher {
	return &CharSetMatcher{chars: chars.Without(pergo.EOI), baseMatcher: baseMatcher{
		label: chars.String(),
	}}
}

func (m *CharSetMatcher) Match(ctx *Context) (bool, error) {
	c := ctx.current.Char()
	if c == pergo.EOI || !m.chars.Contains(c) {
		return false, nil
	}
	ctx.AdvanceLocation()
	ctx.CreateNode()
	return true, nil
}

func (m *CharSetMatcher) StarterChars() *Chars {
	return m.chars
}

// --- Any --------------------------------------------------------------------

// AnyMatcher matches any single character except EOI.
type AnyMatcher struct {
	baseMatcher
}

// NewAny creates a matcher consuming any one input character.
func NewAny() *AnyMatcher {
	return &AnyMatcher{baseMatcher{label: "ANY"}}
}

func (m *AnyMatcher) Match(ctx *Context) (bool, error) {
	if ctx.current.Char() == pergo.EOI {
		return false, nil
	}
	ctx.AdvanceLocation()
	ctx.CreateNode()
	return true, nil
}

func (m *AnyMatcher) StarterChars() *Chars {
	return AllBut(pergo.EOI)
}

// --- String literal ---------------------------------------------------------

// StringMatcher matches a literal string, character by character.
type StringMatcher struct {
	baseMatcher
	str []rune
}

// NewString creates a matcher for a literal string.
func NewString(s string) *StringMatcher {
	return &StringMatcher{str: []rune(s), baseMatcher: baseMatcher{
		label: fmt.Sprintf("%q", s),
	}}
}

// Text returns the literal this matcher consumes.
func (m *StringMatcher) Text() string {
	return string(m.str)
}

func (m *StringMatcher) Match(ctx *Context) (bool, error) {
	start := ctx.current
	for _, c := range m.str {
		if ctx.current.Char() != c {
			ctx.current = start
			return false, nil
		}
		ctx.AdvanceLocation()
	}
	ctx.CreateNode()
	return true, nil
}

func (m *StringMatcher) StarterChars() *Chars {
	if len(m.str) == 0 {
		return OnlyEmpty()
	}
	return CharsOf(m.str[0])
}
