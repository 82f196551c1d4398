package match

import (
	"fmt"

	"github.com/npillmayer/pergo"
)

// ErrorHandler is the strategy consulted when a matcher fails under
// enforcement. The handler sees the failed frame as-is and may recover by
// moving the cursor — skipping illegal input or inserting virtual characters
// — and returning true to report a recovered success. Returning false lets
// the failure propagate as an ordinary match failure.
type ErrorHandler interface {
	HandleParseError(ctx *Context) bool
}

// --- Reporting only ---------------------------------------------------------

// ReportingHandler records enforcement failures as parse errors but never
// recovers. It is the default handler of a parse run.
type ReportingHandler struct{}

func (ReportingHandler) HandleParseError(ctx *Context) bool {
	ctx.AddParseError(expectation(ctx.Matcher()))
	return false
}

// --- Recovering -------------------------------------------------------------

// RecoveringHandler records the failure, then repairs the input: a missed
// single-character terminal is fixed by inserting the character as virtual
// input and re-running the matcher; for anything else, input is skipped up
// to the next character of the resynchronisation alphabet (the follower set
// of the live context stack) and the frame reports a recovered success
// covering the skipped input.
type RecoveringHandler struct{}

func (RecoveringHandler) HandleParseError(ctx *Context) bool {
	ctx.AddParseError(expectation(ctx.Matcher()))
	if cm, ok := ctx.Matcher().(*CharMatcher); ok {
		tracer().Debugf("recovery inserts virtual %q at %s", cm.Char(), ctx.CurrentLocation())
		ctx.InsertVirtualInput(cm.Char())
		matched, err := cm.Match(ctx)
		return err == nil && matched
	}
	followers := ctx.CurrentFollowerChars()
	for !ctx.CurrentLocation().IsAtEnd() && !followers.Contains(ctx.CurrentLocation().Char()) {
		ctx.AdvanceLocation()
	}
	tracer().Debugf("recovery resynchronized to %s", ctx.CurrentLocation())
	return true
}

// expectation renders a "expected …" message for a failed matcher.
func expectation(m Matcher) string {
	starters := m.StarterChars().Without(pergo.EmptyMark)
	if starters.IsEmptySet() || starters.IsInverted() {
		return fmt.Sprintf("expected %s", m.Label())
	}
	return fmt.Sprintf("expected %s, i.e. one of %s", m.Label(), starters)
}
