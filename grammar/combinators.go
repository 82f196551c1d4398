package grammar

import "github.com/npillmayer/pergo/match"

// The free-standing combinators compose matchers into grammar expressions.
// They are thin veneers over the match package constructors, plus the cut
// marker for enforced sequences.

// cutMatcher is a position marker within Seq argument lists; it never
// becomes part of the matcher graph.
type cutMatcher struct{}

func (cutMatcher) Match(ctx *match.Context) (bool, error) { return true, nil }
func (cutMatcher) Label() string                          { return "cut" }
func (cutMatcher) IsWithoutNode() bool                    { return true }
func (cutMatcher) IsLeaf() bool                           { return false }
func (cutMatcher) StarterChars() *match.Chars             { return match.OnlyEmpty() }

var cut = cutMatcher{}

// Cut marks the cut point of a sequence: children following the marker run
// under enforcement, i.e. their failures are routed through the run's error
// handler for recovery instead of failing the sequence silently.
func Cut() match.Matcher {
	return cut
}

// Seq matches its arguments one after another. A Cut() marker among the
// arguments designates the enforcement point; it matches nothing itself.
func Seq(ms ...match.Matcher) match.Matcher {
	children := make([]match.Matcher, 0, len(ms))
	cutAt := -1
	for _, m := range ms {
		if _, ok := m.(cutMatcher); ok {
			cutAt = len(children)
			continue
		}
		children = append(children, m)
	}
	seq := match.NewSequence(children...)
	if cutAt >= 0 {
		seq.EnforcedFrom(cutAt)
	}
	return seq
}

// FirstOf matches the first of its alternatives that succeeds, in order.
func FirstOf(ms ...match.Matcher) match.Matcher {
	return match.NewFirstOf(ms...)
}

// ZeroOrMore matches m any number of times, greedily.
func ZeroOrMore(m match.Matcher) match.Matcher {
	return match.NewZeroOrMore(m)
}

// OneOrMore matches m at least once, then greedily as often as possible.
func OneOrMore(m match.Matcher) match.Matcher {
	return match.NewOneOrMore(m)
}

// Optional matches m if possible and succeeds either way.
func Optional(m match.Matcher) match.Matcher {
	return match.NewOptional(m)
}

// Test is positive lookahead: it succeeds iff m matches ahead, consuming
// nothing.
func Test(m match.Matcher) match.Matcher {
	return match.NewTest(m)
}

// TestNot is negative lookahead: it succeeds iff m does not match ahead,
// consuming nothing.
func TestNot(m match.Matcher) match.Matcher {
	return match.NewTestNot(m)
}

// Action wraps a semantic action into the grammar.
func Action(fn match.ActionFunc) match.Matcher {
	return match.NewAction(fn)
}
