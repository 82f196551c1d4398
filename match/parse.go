package match

import (
	"github.com/npillmayer/pergo/input"
)

// Result carries the outcome of a parse run.
type Result struct {
	Matched bool
	Root    *Node           // root of the parse tree, nil if no node was produced
	Errors  []*ParseError   // parse errors in order of discovery
	End     *input.Location // cursor position after the root matcher
}

// Option configures a parse run.
type Option func(*run)

// WithErrorHandler installs an error-handler strategy for enforced failures.
// The default is ReportingHandler.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *run) {
		r.handler = h
	}
}

// WithParser attaches the grammar front end (or any other facade) to the
// run; matcher and action code may retrieve it via Context.Parser. The
// engine itself treats it as opaque.
func WithParser(parser interface{}) Option {
	return func(r *run) {
		r.parser = parser
	}
}

// Enforced makes the root frame run under enforcement: a failure of the
// root matcher itself is routed through the error handler for recovery.
func Enforced() Option {
	return func(r *run) {
		r.rootEnforced = true
	}
}

// Run drives a matcher against an input buffer. It creates the root context,
// executes the matcher graph and collects the outcome. Parser faults —
// grammar defects detected at runtime, or panics out of matcher/action code
// — terminate the run and are returned as a *RuntimeError.
//
// A grammar may serve concurrent Runs; each run owns its own context chain
// and error list.
func Run(m Matcher, buf *input.Buffer, opts ...Option) (result *Result, err error) {
	env := &run{buf: buf, handler: ReportingHandler{}}
	for _, opt := range opts {
		opt(env)
	}
	root := unwrap(m)
	if root == nil {
		return nil, &RuntimeError{Message: "root rule is an unresolved reference"}
	}
	ctx := &Context{
		env:      env,
		matcher:  root,
		start:    buf.Start(),
		current:  buf.Start(),
		enforced: env.rootEnforced,
	}
	defer func() {
		if r := recover(); r != nil {
			fault, ok := r.(*RuntimeError)
			if !ok {
				panic(r)
			}
			tracer().Errorf("parse run aborted: %v", fault)
			result = nil
			err = fault
		}
	}()
	tracer().Debugf("starting parse run with root rule '%s'", root.Label())
	matched := ctx.RunMatcher()
	result = &Result{
		Matched: matched,
		Root:    ctx.node,
		Errors:  env.errors,
		End:     ctx.current,
	}
	if result.Root == nil && len(ctx.subNodes) > 0 {
		// root matcher was suppressed; wrap its forwarded children
		result.Root = &Node{
			Label:    root.Label(),
			SubNodes: ctx.subNodes,
			Start:    ctx.start,
			End:      ctx.current,
		}
	}
	tracer().Debugf("parse run matched=%v with %d errors", matched, len(env.errors))
	return result, nil
}
