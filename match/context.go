package match

import (
	"fmt"

	"github.com/npillmayer/pergo"
	"github.com/npillmayer/pergo/input"
)

// run is the state shared by all context frames of a single parse run. One
// instance exists per run, referenced by every frame. The matcher graph
// itself carries no per-run state, so a grammar may serve concurrent parses
// as long as each run owns its own chain of frames.
type run struct {
	buf          *input.Buffer
	errors       []*ParseError
	lastNode     *Node
	handler      ErrorHandler
	parser       interface{} // opaque facade of the grammar front end
	rootEnforced bool        // enforce the root frame, see option Enforced
}

// Context is the stateful companion of an active rule invocation: one frame
// per level of the matcher recursion. A frame holds the cursor window of its
// matcher, the accumulating parse-tree children, the value slot for semantic
// actions and the enforcement flag for error recovery.
//
// Frames are pooled down the recursion spine: every frame lazily allocates a
// single sub-frame and rebinds it for each child invocation. After
// RunMatcher returns, the frame retires itself (matcher == nil), marking it
// reusable for the parent's next child binding.
type Context struct {
	env     *run
	parent  *Context
	sub     *Context
	level   int
	matcher Matcher

	start    *input.Location
	current  *input.Location
	subNodes []*Node
	node     *Node
	value    interface{}
	intTag   int

	belowLeaf bool
	enforced  bool
}

// --- Binding and retirement -------------------------------------------------

// BindSub prepares this frame's reusable sub-frame for executing a child
// matcher and returns it. Proxies around the child are unwrapped here, so
// they are never visible during matching. The sub-frame starts at the
// current location of this frame and inherits enforcement and leaf-level
// suppression.
func (c *Context) BindSub(m Matcher) *Context {
	sc := c.sub
	if sc == nil {
		sc = &Context{env: c.env, parent: c, level: c.level + 1}
		c.sub = sc
	}
	unwrapped := unwrap(m)
	if unwrapped == nil {
		panic(unresolvedProxyFault(c, m.(*ProxyMatcher)))
	}
	sc.matcher = unwrapped
	sc.start = c.current
	sc.current = c.current
	sc.node = nil
	sc.subNodes = nil
	sc.value = nil
	sc.belowLeaf = c.belowLeaf || c.matcher.IsLeaf()
	sc.enforced = c.enforced
	return sc
}

// --- The driver -------------------------------------------------------------

// RunMatcher executes the frame's matcher and performs the post-match
// bookkeeping: a failed action is recorded as a parse error; a failure under
// enforcement is routed through the error handler, which may recover; a
// success commits the frame's cursor to the parent. Finally the frame
// retires itself for reuse.
//
// This is the only place where cursor progress travels upward. Failure is
// therefore indistinguishable, from the parent's point of view, from the
// cursor never having moved.
func (c *Context) RunMatcher() bool {
	matched, err := c.matchSafely()
	if err != nil {
		tracer().Debugf("action error in %s: %v", c.Path(), err)
		c.AddParseError(err.Error())
		matched = false
	} else if !matched && c.enforced {
		matched = c.env.handler.HandleParseError(c)
	}
	if matched && c.parent != nil {
		c.parent.current = c.current
	}
	c.matcher = nil // retire this frame
	return matched
}

// matchSafely invokes Match, containing panics from matcher and action code:
// a *RuntimeError travels unchanged, anything else is wrapped once with a
// diagnostic rendered at the failure site.
func (c *Context) matchSafely() (matched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if fault, ok := r.(*RuntimeError); ok {
				panic(fault)
			}
			panic(wrapFault(r, c))
		}
	}()
	return c.matcher.Match(c)
}

// --- Parse-tree assembly ----------------------------------------------------

// CreateNode constructs the parse-tree node for this frame and attaches it
// to the parent. No node is produced below leaf level or anywhere inside a
// syntactic predicate. A matcher flagged as suppressed forwards its children
// into the parent instead of creating a node of its own.
func (c *Context) CreateNode() {
	if c.belowLeaf || c.InPredicate() {
		return
	}
	if c.matcher.IsWithoutNode() {
		if c.parent != nil && c.subNodes != nil {
			c.parent.subNodes = append(c.parent.subNodes, c.subNodes...)
		}
		return
	}
	c.node = &Node{
		Label:    c.matcher.Label(),
		SubNodes: c.subNodes,
		Start:    c.start,
		End:      c.current,
		Value:    c.treeValue(),
	}
	if c.parent != nil {
		c.parent.subNodes = append(c.parent.subNodes, c.node)
	}
	c.env.lastNode = c.node
}

// treeValue is the node's explicit value if set, otherwise the value of the
// right-most child carrying one.
func (c *Context) treeValue() interface{} {
	if c.value != nil {
		return c.value
	}
	for i := len(c.subNodes) - 1; i >= 0; i-- {
		if v := c.subNodes[i].Value; v != nil {
			return v
		}
	}
	return nil
}

// AddChildNode attaches a ready-made node as a child of this frame.
func (c *Context) AddChildNode(n *Node) {
	c.subNodes = append(c.subNodes, n)
}

// AddChildNodes attaches a list of ready-made nodes as children of this
// frame, preserving order.
func (c *Context) AddChildNodes(ns []*Node) {
	c.subNodes = append(c.subNodes, ns...)
}

// --- Follower-set computation -----------------------------------------------

// CurrentFollowerChars computes the set of characters that may legally
// follow at the current position, by walking the live context stack upward
// and querying every FollowMatcher frame. The walk continues for as long as
// the accumulated set carries the EmptyMark pseudo-character, i.e. for as
// long as the current level may end without requiring further input. The
// resulting set is the resynchronisation alphabet for error recovery.
func (c *Context) CurrentFollowerChars() *Chars {
	acc := OnlyEmpty()
	for p := c; p != nil; p = p.parent {
		if fm, ok := p.matcher.(FollowMatcher); ok {
			acc = acc.Without(pergo.EmptyMark).Union(fm.FollowerChars(p))
			if !acc.Contains(pergo.EmptyMark) {
				return acc
			}
		}
	}
	return acc.Without(pergo.EmptyMark).Add(pergo.EOI)
}

// --- Diagnostics ------------------------------------------------------------

// Path returns the chain of matcher labels from the root down to this frame.
func (c *Context) Path() string {
	label := "?"
	if c.matcher != nil {
		label = c.matcher.Label()
	}
	if c.parent == nil {
		return label
	}
	return c.parent.Path() + "/" + label
}

// InPredicate is true if this frame or any of its ancestors executes a
// syntactic predicate (Test/TestNot).
func (c *Context) InPredicate() bool {
	for p := c; p != nil; p = p.parent {
		switch p.matcher.(type) {
		case *TestMatcher, *TestNotMatcher:
			return true
		}
	}
	return false
}

func (c *Context) String() string {
	return fmt.Sprintf("<ctx %d %s @ %s>", c.level, c.Path(), c.current)
}

// --- Accessors for matcher and action code ----------------------------------

// InputBuffer returns the buffer this parse run operates on.
func (c *Context) InputBuffer() *input.Buffer {
	return c.env.buf
}

// Matcher returns the matcher this frame executes; nil for a retired frame.
func (c *Context) Matcher() Matcher {
	return c.matcher
}

// Parent returns the enclosing frame, nil at the root.
func (c *Context) Parent() *Context {
	return c.parent
}

// SubContext returns the frame's reusable sub-frame, if allocated.
func (c *Context) SubContext() *Context {
	return c.sub
}

// Level returns the recursion depth of the frame.
func (c *Context) Level() int {
	return c.level
}

// StartLocation returns the cursor position at frame entry.
func (c *Context) StartLocation() *input.Location {
	return c.start
}

// CurrentLocation returns the frame's cursor.
func (c *Context) CurrentLocation() *input.Location {
	return c.current
}

// SetCurrentLocation moves the frame's cursor. Intended for matcher
// implementations and error handlers.
func (c *Context) SetCurrentLocation(loc *input.Location) {
	c.current = loc
}

// AdvanceLocation moves the frame's cursor to the next input character.
func (c *Context) AdvanceLocation() {
	c.current = c.current.Advance(c.env.buf)
}

// InsertVirtualInput inserts a synthetic character in front of the cursor.
func (c *Context) InsertVirtualInput(r rune) {
	c.current = c.current.InsertVirtual(r)
}

// InsertVirtualText inserts synthetic characters in front of the cursor.
func (c *Context) InsertVirtualText(s string) {
	c.current = c.current.InsertVirtualText(s)
}

// SubNodes returns a snapshot of the children accumulated so far.
func (c *Context) SubNodes() []*Node {
	if c.subNodes == nil {
		return nil
	}
	ns := make([]*Node, len(c.subNodes))
	copy(ns, c.subNodes)
	return ns
}

// Node returns the frame's own parse-tree node after CreateNode, if any.
func (c *Context) Node() *Node {
	return c.node
}

// Value returns the frame's value slot.
func (c *Context) Value() interface{} {
	return c.value
}

// SetValue sets the frame's value slot; semantic actions use it to attach
// values to the node under construction.
func (c *Context) SetValue(v interface{}) {
	c.value = v
}

// IntTag returns the frame's scratch integer.
func (c *Context) IntTag() int {
	return c.intTag
}

// SetIntTag sets the frame's scratch integer, available to actions.
func (c *Context) SetIntTag(tag int) {
	c.intTag = tag
}

// Enforced is true if a failure of this frame is routed through the error
// handler for recovery.
func (c *Context) Enforced() bool {
	return c.enforced
}

// SetEnforced sets or clears the frame's enforcement flag.
func (c *Context) SetEnforced(enforced bool) {
	c.enforced = enforced
}

// IsBelowLeafLevel is true if the frame runs inside a leaf rule.
func (c *Context) IsBelowLeafLevel() bool {
	return c.belowLeaf
}

// AddParseError appends a parse error at the frame's cursor to the run's
// error list.
func (c *Context) AddParseError(msg string) {
	e := &ParseError{Location: c.current, Path: c.Path(), Message: msg}
	c.env.errors = append(c.env.errors, e)
	tracer().Infof("parse error: %s", e)
}

// ParseErrors returns the errors collected so far, in order of discovery.
func (c *Context) ParseErrors() []*ParseError {
	return c.env.errors
}

// LastNode returns the most recently committed parse-tree node of the run.
func (c *Context) LastNode() *Node {
	return c.env.lastNode
}

// Parser returns the opaque parser facade the run was started with.
func (c *Context) Parser() interface{} {
	return c.env.parser
}
