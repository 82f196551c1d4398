package match

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/pergo/input"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var errAbort = errors.New("lookup failed")

// skipOneHandler records the failure and skips a single input character,
// reporting recovered success.
type skipOneHandler struct{}

func (skipOneHandler) HandleParseError(ctx *Context) bool {
	ctx.AddParseError("skipping one character")
	ctx.AdvanceLocation()
	return true
}

func TestEnforcedRecoveryBySkipping(t *testing.T) { // S6
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	seq := NewSequence(NewChar('a'), NewChar('b')).EnforcedFrom(1)
	rule := Named("S", seq)
	buf := input.NewBuffer("ax")
	result, err := Run(rule, buf, WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Fatalf("expected the handler to recover the parse")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected exactly one parse error, got %d", len(result.Errors))
	}
	e := result.Errors[0]
	if e.Location.Index() != 1 {
		t.Errorf("error should be recorded at offset 1, is %d", e.Location.Index())
	}
	if e.Path != "S/'b'" {
		t.Errorf("expected error path S/'b', got %s", e.Path)
	}
}

func TestNoRecoveryWithoutEnforcement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	seq := Named("S", NewSequence(NewChar('a'), NewChar('b')))
	result, err := Run(seq, input.NewBuffer("ax"), WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Errorf("without a cut point, failures must not be recovered")
	}
	if len(result.Errors) != 0 {
		t.Errorf("the handler must not have been consulted, got %v", result.Errors)
	}
}

func TestReportingHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	seq := Named("S", NewSequence(NewChar('a'), NewChar('b')).EnforcedFrom(1))
	result, err := Run(seq, input.NewBuffer("ax"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Errorf("the reporting handler never recovers")
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one reported error, got %d", len(result.Errors))
	}
	if !strings.Contains(result.Errors[0].Message, "expected") {
		t.Errorf("unexpected message: %s", result.Errors[0].Message)
	}
}

func TestRecoveringHandlerInsertsVirtualChar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	seq := Named("S", NewSequence(NewChar('a'), NewChar('b'), NewChar('c')).EnforcedFrom(1))
	buf := input.NewBuffer("ac")
	result, err := Run(seq, buf, WithErrorHandler(RecoveringHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Fatalf("expected recovery by virtual insertion")
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected one parse error, got %d", len(result.Errors))
	}
	if result.End.Index() != 2 {
		t.Errorf("expected the real input to be fully consumed, end is %v", result.End)
	}
	// the inserted 'b' produces a node covering no buffer text
	b := FindNode(result.Root, "'b'")
	if b == nil || b.Text(buf) != "" {
		t.Errorf("virtual input must have no extent in the buffer")
	}
}

func TestRecoveringHandlerResynchronizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	// item list with a bad item: recovery should skip to the next comma
	item := NewOneOrMore(NewCharRange('a', 'z'))
	list := Named("List", NewSequence(
		item,
		NewZeroOrMore(NewSequence(NewChar(','), NewSequence(item).EnforcedFrom(0))),
	))
	buf := input.NewBuffer("ab,12,cd")
	result, err := Run(list, buf, WithErrorHandler(RecoveringHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Fatalf("expected recovery to keep the parse alive")
	}
	if len(result.Errors) == 0 {
		t.Errorf("expected the bad item to be reported")
	}
	if result.End.Index() != len("ab,12,cd") {
		t.Errorf("expected resynchronisation to reach the end, is %v", result.End)
	}
}

func TestEnforcedRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	result, err := Run(NewChar('b'), input.NewBuffer("a"),
		WithErrorHandler(skipOneHandler{}), Enforced())
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Errorf("an enforced root failure should be routed through the handler")
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected one recorded error, got %d", len(result.Errors))
	}
	result, err = Run(NewChar('b'), input.NewBuffer("a"),
		WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched || len(result.Errors) != 0 {
		t.Errorf("without Enforced, the root fails silently")
	}
}

func TestActionBehindCutIsEnforced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	declining := NewAction(func(ctx *Context) (bool, error) { return false, nil })
	seq := Named("S", NewSequence(NewChar('a'), declining).EnforcedFrom(1))
	result, err := Run(seq, input.NewBuffer("a"), WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Errorf("a plain action failure behind the cut must reach the handler")
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected the handler's error record, got %d", len(result.Errors))
	}
}

func TestActionErrorSkipsRecovery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	erring := NewAction(func(ctx *Context) (bool, error) {
		return false, errAbort
	})
	seq := Named("S", NewSequence(NewChar('a'), erring).EnforcedFrom(1))
	result, err := Run(seq, input.NewBuffer("a"), WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Errorf("an action error is a match failure, not a recovery case")
	}
	if len(result.Errors) != 1 || result.Errors[0].Message != errAbort.Error() {
		t.Errorf("expected only the logged action error, got %v", result.Errors)
	}
}

func TestEnforcementClearedInLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	// the loop exit must not consult the handler, even under enforcement
	inner := NewZeroOrMore(NewChar('a'))
	seq := Named("S", NewSequence(NewChar('x'), inner).EnforcedFrom(1))
	result, err := Run(seq, input.NewBuffer("xaab"), WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 3 {
		t.Fatalf("expected to consume \"xaa\", end is %v", result.End)
	}
	if len(result.Errors) != 0 {
		t.Errorf("loop exit is not an error, got %v", result.Errors)
	}
}

func TestEnforcementClearedInPredicate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	pred := NewTestNot(NewChar('z'))
	seq := Named("S", NewSequence(NewChar('a'), pred, NewChar('b')).EnforcedFrom(1))
	result, err := Run(seq, input.NewBuffer("ab"), WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Fatalf("expected a match")
	}
	if len(result.Errors) != 0 {
		t.Errorf("lookahead must not trigger recovery, got %v", result.Errors)
	}
}

func TestEnforcementClearedInOptional(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	opt := NewOptional(NewChar('z'))
	seq := Named("S", NewSequence(NewChar('a'), opt, NewChar('b')).EnforcedFrom(1))
	result, err := Run(seq, input.NewBuffer("ab"), WithErrorHandler(skipOneHandler{}))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Fatalf("expected a match")
	}
	if len(result.Errors) != 0 {
		t.Errorf("a failing optional is not an error, got %v", result.Errors)
	}
}
