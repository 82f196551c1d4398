package match

import "github.com/npillmayer/pergo"

// --- Sequence ---------------------------------------------------------------

// SequenceMatcher matches its children one after another, left to right. It
// fails as soon as one child fails. A sequence may carry a cut point: from
// the designated child onward, failures no longer propagate silently but are
// routed through the run's error handler (enforced matching).
type SequenceMatcher struct {
	baseMatcher
	children    []Matcher
	enforceFrom int // index of the first enforced child, -1 for none
}

// NewSequence creates a sequence of matchers without a cut point.
func NewSequence(children ...Matcher) *SequenceMatcher {
	return &SequenceMatcher{
		baseMatcher: baseMatcher{label: "Sequence"},
		children:    children,
		enforceFrom: -1,
	}
}

// EnforcedFrom marks the cut point: children from index i onward run under
// enforcement. Returns the receiver for chaining during grammar construction.
func (m *SequenceMatcher) EnforcedFrom(i int) *SequenceMatcher {
	m.enforceFrom = i
	return m
}

// Children returns the child matchers of the sequence.
func (m *SequenceMatcher) Children() []Matcher {
	return m.children
}

func (m *SequenceMatcher) Match(ctx *Context) (bool, error) {
	for i, child := range m.children {
		sub := ctx.BindSub(child)
		if m.enforceFrom >= 0 && i >= m.enforceFrom {
			sub.SetEnforced(true)
		}
		if !sub.RunMatcher() {
			return false, nil
		}
	}
	ctx.CreateNode()
	return true, nil
}

func (m *SequenceMatcher) StarterChars() *Chars {
	acc := OnlyEmpty()
	for _, child := range m.children {
		acc = acc.Without(pergo.EmptyMark).Union(child.StarterChars())
		if !acc.Contains(pergo.EmptyMark) {
			break
		}
	}
	return acc
}

// --- Ordered choice ---------------------------------------------------------

// FirstOfMatcher tries its children in order and commits to the first one
// that matches. Because a failing child never commits cursor progress
// upward, every alternative starts out at the original location.
type FirstOfMatcher struct {
	baseMatcher
	children []Matcher
}

// NewFirstOf creates an ordered choice of matchers.
func NewFirstOf(children ...Matcher) *FirstOfMatcher {
	return &FirstOfMatcher{
		baseMatcher: baseMatcher{label: "FirstOf"},
		children:    children,
	}
}

// Children returns the alternatives of the choice.
func (m *FirstOfMatcher) Children() []Matcher {
	return m.children
}

func (m *FirstOfMatcher) Match(ctx *Context) (bool, error) {
	for _, child := range m.children {
		if ctx.BindSub(child).RunMatcher() {
			ctx.CreateNode()
			return true, nil
		}
	}
	return false, nil
}

func (m *FirstOfMatcher) StarterChars() *Chars {
	acc := NoChars()
	for _, child := range m.children {
		acc = acc.Union(child.StarterChars())
	}
	return acc
}
