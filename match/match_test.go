package match

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/pergo/input"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// labels projects a parse tree onto nested label lists, for comparison with
// go-cmp.
func labels(n *Node) []interface{} {
	if n == nil {
		return nil
	}
	out := []interface{}{n.Label}
	for _, sub := range n.SubNodes {
		out = append(out, labels(sub))
	}
	return out
}

func TestStringRule(t *testing.T) { // S1
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	buf := input.NewBuffer("ab")
	result, err := Run(Named("A", NewString("ab")), buf)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Fatalf("expected \"ab\" to match")
	}
	if result.End.Index() != 2 {
		t.Errorf("expected cursor at index 2, is %d", result.End.Index())
	}
	if result.Root == nil || result.Root.Label != "A" {
		t.Fatalf("expected one node A, got %v", result.Root)
	}
	if result.Root.Text(buf) != "ab" {
		t.Errorf("expected node text \"ab\", got %q", result.Root.Text(buf))
	}
	if CountNodes(result.Root) != 1 {
		t.Errorf("expected exactly one node, got %d", CountNodes(result.Root))
	}
}

func TestOneOrMoreDigits(t *testing.T) { // S2
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	buf := input.NewBuffer("42x")
	digits := Named("Digits", NewOneOrMore(NewCharRange('0', '9')))
	result, err := Run(digits, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 2 {
		t.Fatalf("expected to match \"42\", end is %v", result.End)
	}
	if result.Root == nil || len(result.Root.SubNodes) != 2 {
		t.Fatalf("expected node Digits with two terminal children, got %v", result.Root)
	}
	if result.Root.SubNodes[0].Text(buf) != "4" || result.Root.SubNodes[1].Text(buf) != "2" {
		t.Errorf("unexpected terminal children")
	}
}

func TestOrderedChoiceCommits(t *testing.T) { // S3, L1
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	buf := input.NewBuffer("foobar")
	word := Named("Word", NewFirstOf(NewString("foo"), NewString("foobar")))
	result, err := Run(word, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched {
		t.Fatalf("expected a match")
	}
	if result.End.Index() != 3 {
		t.Errorf("ordered choice must commit to the first alternative, end is %d", result.End.Index())
	}
}

func TestOrderedChoiceBacktracks(t *testing.T) { // P1
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	buf := input.NewBuffer("ax")
	m := NewFirstOf(NewString("ab"), NewString("ax"))
	result, err := Run(m, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 2 {
		t.Errorf("second alternative must start at the original location")
	}
}

func TestPredicateTransparency(t *testing.T) { // S4, L3
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	buf := input.NewBuffer("xy")
	look := Named("Look", NewSequence(NewTest(NewString("x")), NewString("xy")))
	result, err := Run(look, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 2 {
		t.Fatalf("expected to match \"xy\" entirely, end is %v", result.End)
	}
	want := []interface{}{"Look", []interface{}{`"xy"`}}
	if diff := cmp.Diff(want, labels(result.Root)); diff != "" {
		t.Errorf("the Test must contribute no nodes (-want +got):\n%s", diff)
	}
}

func TestTestNot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	buf := input.NewBuffer("ab")
	m := NewSequence(NewTestNot(NewString("x")), NewString("ab"))
	result, err := Run(m, buf)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 2 {
		t.Errorf("TestNot should succeed on non-matching lookahead")
	}
	buf = input.NewBuffer("xy")
	result, err = Run(m, buf)
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Errorf("TestNot should fail on matching lookahead")
	}
	if result.End.Index() != 0 {
		t.Errorf("a failed TestNot must not consume input")
	}
}

func TestOptionalAlwaysSucceeds(t *testing.T) { // L2
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	opt := NewOptional(NewString("ab"))
	result, err := Run(opt, input.NewBuffer("ab"))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 2 {
		t.Errorf("optional should advance iff its operand would, end %v", result.End)
	}
	result, err = Run(opt, input.NewBuffer("zz"))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 0 {
		t.Errorf("optional should succeed without advancing on failure")
	}
}

func TestEmptyMatchInLoopIsFatal(t *testing.T) { // S5
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	bad := Named("BadStar", NewZeroOrMore(NewOptional(NewString("a"))))
	result, err := Run(bad, input.NewBuffer("aa"))
	if err == nil {
		t.Fatalf("expected a parser fault, got result %v", result)
	}
	if _, ok := err.(*RuntimeError); !ok {
		t.Fatalf("expected a *RuntimeError, got %T", err)
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("fault should mention empty matches: %v", err)
	}
}

func TestEmptyMatchInPredicateIsFatal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	m := NewSequence(NewTest(NewOptional(NewString("x"))), NewString("ab"))
	_, err := Run(m, input.NewBuffer("ab"))
	if err == nil {
		t.Fatalf("expected a parser fault for an empty-matching predicate operand")
	}
}

func TestZeroOrMore(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	loop := Named("As", NewZeroOrMore(NewChar('a')))
	result, err := Run(loop, input.NewBuffer("aaab"))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 3 {
		t.Errorf("expected to consume \"aaa\", end is %v", result.End)
	}
	if len(result.Root.SubNodes) != 3 {
		t.Errorf("expected 3 children, got %d", len(result.Root.SubNodes))
	}
	result, err = Run(loop, input.NewBuffer("b"))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.End.Index() != 0 {
		t.Errorf("zero-or-more should succeed on zero iterations")
	}
}

func TestOneOrMoreFailsOnZero(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	result, err := Run(NewOneOrMore(NewChar('a')), input.NewBuffer("b"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Errorf("one-or-more needs at least one iteration")
	}
}

func TestCharSetAndAny(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	vowel := NewCharSet(CharsOf('a', 'e', 'i', 'o', 'u'))
	result, err := Run(vowel, input.NewBuffer("e"))
	if err != nil || !result.Matched {
		t.Errorf("expected vowel set to match 'e'")
	}
	result, err = Run(vowel, input.NewBuffer("x"))
	if err != nil || result.Matched {
		t.Errorf("vowel set must not match 'x'")
	}
	noParen := NewCharSet(AllBut('(', ')'))
	result, err = Run(noParen, input.NewBuffer("("))
	if err != nil || result.Matched {
		t.Errorf("subtractive set must not match excluded char")
	}
	result, err = Run(NewAny(), input.NewBuffer(""))
	if err != nil || result.Matched {
		t.Errorf("ANY must not match EOI")
	}
}

func TestActionSetsValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	rule := Named("N", NewSequence(
		NewString("42"),
		NewAction(func(ctx *Context) (bool, error) {
			ctx.SetValue(42)
			return true, nil
		}),
	))
	result, err := Run(rule, input.NewBuffer("42"))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Matched || result.Root == nil {
		t.Fatalf("expected a match with a node")
	}
	if result.Root.Value != 42 {
		t.Errorf("expected the action value on the node, got %v", result.Root.Value)
	}
}

func TestActionFailureFailsSequence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	rule := NewSequence(
		NewString("a"),
		NewAction(func(ctx *Context) (bool, error) { return false, nil }),
	)
	result, err := Run(rule, input.NewBuffer("a"))
	if err != nil {
		t.Fatal(err)
	}
	if result.Matched {
		t.Errorf("a declining action must fail the sequence")
	}
	if len(result.Errors) != 0 {
		t.Errorf("a plain action failure is not a parse error")
	}
}

func TestActionPanicBecomesFault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	rule := NewSequence(
		NewString("a"),
		NewAction(func(ctx *Context) (bool, error) { panic("boom") }),
	)
	_, err := Run(rule, input.NewBuffer("a"))
	if err == nil {
		t.Fatalf("expected a parser fault")
	}
	fault, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected a *RuntimeError, got %T", err)
	}
	if fault.Cause != "boom" {
		t.Errorf("fault should carry the original panic value, has %v", fault.Cause)
	}
}

func TestLastNodeAfterParse(t *testing.T) { // P5
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	var last *Node
	rule := NewSequence(
		NewChar('a'),
		NewChar('b'),
		NewAction(func(ctx *Context) (bool, error) {
			last = ctx.LastNode()
			return true, nil
		}),
	)
	result, err := Run(rule, input.NewBuffer("ab"))
	if err != nil || !result.Matched {
		t.Fatalf("expected a match")
	}
	if last == nil || last.Label != "'b'" {
		t.Errorf("last node should be the most recently committed node, is %v", last)
	}
}

func TestSuppressedRootIsWrapped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	root := Suppressed(Named("R", NewSequence(NewChar('a'), NewChar('b'))))
	result, err := Run(root, input.NewBuffer("ab"))
	if err != nil || !result.Matched {
		t.Fatalf("expected a match")
	}
	if result.Root == nil || len(result.Root.SubNodes) != 2 {
		t.Errorf("suppressed root should still deliver its children, got %v", result.Root)
	}
}

func TestFormatTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pergo.match")
	defer teardown()
	//
	buf := input.NewBuffer("ab")
	result, err := Run(Named("S", NewSequence(NewChar('a'), NewChar('b'))), buf)
	if err != nil || !result.Matched {
		t.Fatalf("expected a match")
	}
	dump := Format(result.Root, buf)
	if !strings.Contains(dump, "S") || !strings.Contains(dump, "'a'") {
		t.Errorf("unexpected tree dump:\n%s", dump)
	}
	if n := FindNode(result.Root, "'b'"); n == nil || n.Text(buf) != "b" {
		t.Errorf("FindNode should locate the terminal node")
	}
}
