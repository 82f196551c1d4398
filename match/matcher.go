package match

// Matcher is an operator node in the grammar graph. Matchers are effectively
// immutable after grammar construction and may be shared between concurrent
// parse runs; all per-run state lives in the Context.
//
// Match executes the matcher against a context. A false return means the
// matcher did not match at the context's start location; the driver
// guarantees that in this case the parent's cursor is left untouched. A
// non-nil error is an action error: it is recorded as a parse error by the
// driver and treated as a match failure. Anything fatal (grammar defects,
// panics out of user code) travels as a *RuntimeError panic instead.
type Matcher interface {
	Match(ctx *Context) (bool, error)
	Label() string
	IsWithoutNode() bool
	IsLeaf() bool
	StarterChars() *Chars
}

// FollowMatcher is implemented by matchers which can describe the characters
// that may legally follow at their level of the context stack — the
// repetition and optional variants. The follower sets drive resynchronisation
// during error recovery, see Context.CurrentFollowerChars.
type FollowMatcher interface {
	Matcher
	FollowerChars(ctx *Context) *Chars
}

// --- Matcher decoration -----------------------------------------------------

// baseMatcher carries the decoration state shared by all matcher variants.
type baseMatcher struct {
	label       string
	withoutNode bool
	leaf        bool
}

func (m *baseMatcher) Label() string       { return m.label }
func (m *baseMatcher) IsWithoutNode() bool { return m.withoutNode }
func (m *baseMatcher) IsLeaf() bool        { return m.leaf }

func (m *baseMatcher) setLabel(l string) { m.label = l }
func (m *baseMatcher) setWithoutNode()   { m.withoutNode = true }
func (m *baseMatcher) setLeaf()          { m.leaf = true }

type decorable interface {
	setLabel(string)
	setWithoutNode()
	setLeaf()
}

// Named decorates a matcher with a display label, usually a rule name.
// Decoration is part of grammar construction; decorating a matcher of a
// grammar already in use by a parse run is not supported.
func Named(label string, m Matcher) Matcher {
	if d, ok := m.(decorable); ok {
		d.setLabel(label)
	}
	return m
}

// Suppressed decorates a matcher to not produce a parse-tree node of its own;
// its children are adopted by the parent instead.
func Suppressed(m Matcher) Matcher {
	if d, ok := m.(decorable); ok {
		d.setWithoutNode()
	}
	return m
}

// Leaf decorates a matcher to be a leaf rule: its descendants run below leaf
// level and produce no parse-tree nodes at all.
func Leaf(m Matcher) Matcher {
	if d, ok := m.(decorable); ok {
		d.setLeaf()
	}
	return m
}

// --- Proxy ------------------------------------------------------------------

// ProxyMatcher is a lazy indirection used to break cycles while a grammar
// graph is under construction: a rule may reference another rule before that
// one has been defined. Proxies are transparently unwrapped when a
// sub-context is bound, so they are never visible to Match.
type ProxyMatcher struct {
	baseMatcher
	target Matcher
}

// NewProxy creates an unarmed proxy.
func NewProxy() *ProxyMatcher {
	return &ProxyMatcher{}
}

// Arm resolves the proxy to its target matcher.
func (p *ProxyMatcher) Arm(target Matcher) {
	p.target = target
}

// Target returns the matcher the proxy resolves to, or nil if unarmed.
func (p *ProxyMatcher) Target() Matcher {
	return p.target
}

// Match is never called for proxies: binding a sub-context unwraps them.
// Executing an unarmed proxy is a grammar defect.
func (p *ProxyMatcher) Match(ctx *Context) (bool, error) {
	panic(unresolvedProxyFault(ctx, p))
}

func (p *ProxyMatcher) Label() string {
	if p.label != "" {
		return p.label
	}
	if p.target != nil {
		return p.target.Label()
	}
	return "proxy"
}

func (p *ProxyMatcher) StarterChars() *Chars {
	if p.target == nil {
		return NoChars()
	}
	return p.target.StarterChars()
}

// unwrap resolves chains of proxies down to the real matcher. It returns nil
// for an unarmed proxy.
func unwrap(m Matcher) Matcher {
	for {
		p, ok := m.(*ProxyMatcher)
		if !ok {
			return m
		}
		if p.target == nil {
			return nil
		}
		m = p.target
	}
}
