package match

import "github.com/npillmayer/pergo"

// The syntactic predicates perform lookahead: they run their operand and
// report the outcome, but never consume input and never contribute to the
// parse tree — neither themselves nor anything matched inside them (see
// Context.InPredicate). Enforcement is cleared for the operand; lookahead is
// pure information and must not trigger error recovery.
//
// An operand that succeeds without consuming input (while input remains) is
// a grammar defect: the predicate would convey no information.

// --- Test -------------------------------------------------------------------

// TestMatcher succeeds iff its operand matches ahead.
type TestMatcher struct {
	baseMatcher
	sub Matcher
}

// NewTest creates a positive lookahead for a matcher.
func NewTest(sub Matcher) *TestMatcher {
	return &TestMatcher{baseMatcher{label: "Test"}, sub}
}

func (m *TestMatcher) Match(ctx *Context) (bool, error) {
	return testOperand(ctx, m, m.sub)
}

func (m *TestMatcher) StarterChars() *Chars {
	return m.sub.StarterChars().Add(pergo.EmptyMark)
}

// --- TestNot ----------------------------------------------------------------

// TestNotMatcher succeeds iff its operand does not match ahead.
type TestNotMatcher struct {
	baseMatcher
	sub Matcher
}

// NewTestNot creates a negative lookahead for a matcher.
func NewTestNot(sub Matcher) *TestNotMatcher {
	return &TestNotMatcher{baseMatcher{label: "TestNot"}, sub}
}

func (m *TestNotMatcher) Match(ctx *Context) (bool, error) {
	matched, err := testOperand(ctx, m, m.sub)
	return !matched, err
}

func (m *TestNotMatcher) StarterChars() *Chars {
	return OnlyEmpty()
}

// testOperand runs a predicate operand and unconditionally resets the cursor
// afterwards.
func testOperand(ctx *Context, pred Matcher, sub Matcher) (bool, error) {
	ctx.SetEnforced(false)
	before := ctx.CurrentLocation()
	matched := ctx.BindSub(sub).RunMatcher()
	if matched && ctx.CurrentLocation() == before && before.Char() != pergo.EOI {
		panic(emptyMatchDefect(ctx, pred))
	}
	ctx.SetCurrentLocation(before)
	return matched, nil
}
