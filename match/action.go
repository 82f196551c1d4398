package match

// ActionFunc is a semantic action, executed against the current context. A
// false return is an ordinary match failure. A non-nil error is recorded as
// a parse error by the driver and likewise treated as a match failure.
// Actions typically read the context (last node, matched text, int tag) and
// mutate the value slot of the enclosing frame or an externally supplied
// value scope.
type ActionFunc func(ctx *Context) (bool, error)

// ActionMatcher runs a user-supplied semantic action. It has no children
// and consumes no input by itself, though the action may move the cursor
// explicitly (e.g. insert virtual input). The action operates on the
// enclosing frame — the frame of the surrounding sequence or choice — so
// value and cursor mutations take effect on the node under construction.
// The action frame itself still runs through the driver like any other
// child, keeping commit and enforcement semantics uniform.
type ActionMatcher struct {
	baseMatcher
	action ActionFunc
}

// NewAction wraps a semantic action into a matcher.
func NewAction(action ActionFunc) *ActionMatcher {
	return &ActionMatcher{baseMatcher{label: "action"}, action}
}

func (m *ActionMatcher) Match(ctx *Context) (bool, error) {
	target := ctx
	if ctx.parent != nil {
		target = ctx.parent
	}
	matched, err := m.action(target)
	if target != ctx {
		// the action may have moved the enclosing cursor; align this frame
		// so the driver's commit preserves the motion
		ctx.current = target.current
	}
	return matched, err
}

func (m *ActionMatcher) StarterChars() *Chars {
	return OnlyEmpty()
}
