package match

import (
	"fmt"
	"strings"

	"github.com/npillmayer/pergo/input"
)

// ParseError records a recoverable problem encountered during a parse run:
// a failed semantic action or a diagnostic emitted by the error handler.
// Parse errors are appended to the run's error list in order of discovery.
type ParseError struct {
	Location *input.Location
	Path     string
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s (in %s)", e.Message, e.Location, e.Path)
}

// RuntimeError is a parser fault: an unexpected condition which terminates
// the parse run. Faults are either grammar defects detected at runtime or
// wrapped panics out of matcher/action code. They propagate to the root of
// the context stack and surface as the error return of Run.
type RuntimeError struct {
	Message string
	Cause   interface{}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

// renderMessage produces a diagnostic quoting the offending input line with
// a caret below the error column.
func renderMessage(buf *input.Buffer, loc *input.Location, msg string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (line %d, column %d)", msg, loc.Line(), loc.Column())
	line := buf.Line(loc.Line())
	if line != "" {
		fmt.Fprintf(&sb, "\n%s\n%s^", line, strings.Repeat(" ", loc.Column()-1))
	}
	return sb.String()
}

// wrapFault wraps an unexpected panic value once, attaching a rendered
// diagnostic for the failure site.
func wrapFault(cause interface{}, c *Context) *RuntimeError {
	msg := renderMessage(c.env.buf, c.current,
		fmt.Sprintf("parser fault in %s: %v", c.Path(), cause))
	return &RuntimeError{Message: msg, Cause: cause}
}

// emptyMatchDefect signals a broken grammar: the operand of a repetition or
// predicate allows empty matches.
func emptyMatchDefect(c *Context, m Matcher) *RuntimeError {
	return &RuntimeError{
		Message: renderMessage(c.env.buf, c.current,
			fmt.Sprintf("the inner rule of %s '%s' must not allow empty matches", kindOf(m), m.Label())),
	}
}

func unresolvedProxyFault(c *Context, p *ProxyMatcher) *RuntimeError {
	return &RuntimeError{
		Message: fmt.Sprintf("unresolved rule reference '%s' executed at %s", p.Label(), c.Path()),
	}
}

func kindOf(m Matcher) string {
	switch m.(type) {
	case *ZeroOrMoreMatcher:
		return "ZeroOrMore"
	case *OneOrMoreMatcher:
		return "OneOrMore"
	case *TestMatcher:
		return "Test"
	case *TestNotMatcher:
		return "TestNot"
	default:
		return "rule"
	}
}
