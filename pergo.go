package pergo

import "fmt"

// --- Sentinel characters ----------------------------------------------------

// EOI is the sentinel character terminating every input buffer. It is not a
// legal input character; grammars may match it explicitly to anchor a rule at
// the end of input.
const EOI rune = '\uFFFF'

// EmptyMark is a pseudo-character used within character sets to signal
// "may match empty". It never occurs in input. Starter-character sets of
// matchers that can succeed without consuming input contain EmptyMark, and
// the follower-set computation walks up the context stack for as long as the
// accumulated set still carries it.
const EmptyMark rune = '\uFFFE'

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input characters. For every
// node of a parse tree we track which input positions the node covers.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
