package match

import "github.com/npillmayer/pergo"

// The repetition matchers count iterations of their operand. An operand that
// matches without consuming input would loop forever; this is detected at
// runtime and raised as a grammar defect, not as an input error.
//
// Repetition clears the enforcement flag: a failing iteration is the normal
// way a loop ends and must never be routed through error recovery.

// --- ZeroOrMore -------------------------------------------------------------

// ZeroOrMoreMatcher matches its operand any number of times, greedily.
// It always succeeds.
type ZeroOrMoreMatcher struct {
	baseMatcher
	sub Matcher
}

// NewZeroOrMore creates a zero-or-more repetition of a matcher.
func NewZeroOrMore(sub Matcher) *ZeroOrMoreMatcher {
	return &ZeroOrMoreMatcher{baseMatcher{label: "ZeroOrMore"}, sub}
}

func (m *ZeroOrMoreMatcher) Match(ctx *Context) (bool, error) {
	ctx.SetEnforced(false)
	last := ctx.CurrentLocation()
	for ctx.BindSub(m.sub).RunMatcher() {
		cur := ctx.CurrentLocation()
		if cur == last {
			panic(emptyMatchDefect(ctx, m))
		}
		last = cur
	}
	ctx.CreateNode()
	return true, nil
}

func (m *ZeroOrMoreMatcher) StarterChars() *Chars {
	return m.sub.StarterChars().Add(pergo.EmptyMark)
}

// FollowerChars describes what may legally follow inside the loop: another
// iteration of the operand, or — marked by EmptyMark — whatever follows the
// loop itself.
func (m *ZeroOrMoreMatcher) FollowerChars(ctx *Context) *Chars {
	return m.sub.StarterChars().Add(pergo.EmptyMark)
}

// --- OneOrMore --------------------------------------------------------------

// OneOrMoreMatcher matches its operand at least once, then greedily as often
// as possible. The first, mandatory iteration still runs under the inherited
// enforcement; the repetition tail does not.
type OneOrMoreMatcher struct {
	baseMatcher
	sub Matcher
}

// NewOneOrMore creates a one-or-more repetition of a matcher.
func NewOneOrMore(sub Matcher) *OneOrMoreMatcher {
	return &OneOrMoreMatcher{baseMatcher{label: "OneOrMore"}, sub}
}

func (m *OneOrMoreMatcher) Match(ctx *Context) (bool, error) {
	last := ctx.CurrentLocation()
	if !ctx.BindSub(m.sub).RunMatcher() {
		return false, nil
	}
	if ctx.CurrentLocation() == last {
		panic(emptyMatchDefect(ctx, m))
	}
	last = ctx.CurrentLocation()
	ctx.SetEnforced(false)
	for ctx.BindSub(m.sub).RunMatcher() {
		cur := ctx.CurrentLocation()
		if cur == last {
			panic(emptyMatchDefect(ctx, m))
		}
		last = cur
	}
	ctx.CreateNode()
	return true, nil
}

func (m *OneOrMoreMatcher) StarterChars() *Chars {
	return m.sub.StarterChars()
}

func (m *OneOrMoreMatcher) FollowerChars(ctx *Context) *Chars {
	return m.sub.StarterChars().Add(pergo.EmptyMark)
}

// --- Optional ---------------------------------------------------------------

// OptionalMatcher matches its operand if possible and succeeds either way.
// The operand runs un-enforced — its failure is not an error condition.
type OptionalMatcher struct {
	baseMatcher
	sub Matcher
}

// NewOptional creates an optional occurrence of a matcher.
func NewOptional(sub Matcher) *OptionalMatcher {
	return &OptionalMatcher{baseMatcher{label: "Optional"}, sub}
}

func (m *OptionalMatcher) Match(ctx *Context) (bool, error) {
	ctx.SetEnforced(false)
	ctx.BindSub(m.sub).RunMatcher()
	ctx.CreateNode()
	return true, nil
}

func (m *OptionalMatcher) StarterChars() *Chars {
	return m.sub.StarterChars().Add(pergo.EmptyMark)
}

// FollowerChars of an optional is just the EmptyMark: nothing within the
// option itself may follow, computation continues further up the stack.
func (m *OptionalMatcher) FollowerChars(ctx *Context) *Chars {
	return OnlyEmpty()
}
