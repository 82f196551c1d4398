/*
Package grammar provides a builder front end for PEG grammars.

A grammar is assembled from named rules. Rules may reference each other
freely, including forward and cyclic references: a reference to a rule not
yet defined is represented by a proxy matcher, which is armed when the rule
arrives and transparently unwrapped by the matching engine. Building the
grammar fails if any reference remains unresolved.

Terminal matchers are interned: two occurrences of the same literal or
character set within one builder share a single node of the matcher graph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"fmt"
	"sort"

	"github.com/cnf/structhash"
	"github.com/npillmayer/pergo/input"
	"github.com/npillmayer/pergo/match"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'pergo.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("pergo.grammar")
}

// Builder collects rule definitions and assembles them into a Grammar.
// Create one with NewBuilder. Builders are not safe for concurrent use.
type Builder struct {
	name     string
	rules    map[string]match.Matcher
	order    []string
	proxies  map[string]*match.ProxyMatcher
	interned map[string]match.Matcher
	err      error
}

// NewBuilder creates a grammar builder.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:     name,
		rules:    make(map[string]match.Matcher),
		proxies:  make(map[string]*match.ProxyMatcher),
		interned: make(map[string]match.Matcher),
	}
}

// Rule defines a named rule. The rule name becomes the matcher's label and
// thus the label of the parse-tree nodes it produces. Defining a name twice
// is an error, reported by Grammar().
func (b *Builder) Rule(name string, m match.Matcher) *Builder {
	if _, ok := b.rules[name]; ok {
		if b.err == nil {
			b.err = fmt.Errorf("rule '%s' defined twice", name)
		}
		return b
	}
	m = match.Named(name, m)
	b.rules[name] = m
	b.order = append(b.order, name)
	if p, ok := b.proxies[name]; ok {
		p.Arm(m)
	}
	tracer().Debugf("rule %s defined", name)
	return b
}

// Ref returns a reference to a named rule, which may be defined later (or
// earlier). References to rules still undefined when Grammar() is called
// make grammar construction fail.
func (b *Builder) Ref(name string) match.Matcher {
	if m, ok := b.rules[name]; ok {
		return m
	}
	p, ok := b.proxies[name]
	if !ok {
		p = match.NewProxy()
		match.Named(name, p)
		b.proxies[name] = p
	}
	return p
}

// Grammar finalizes the builder. It verifies that every referenced rule has
// been defined and returns the assembled grammar.
func (b *Builder) Grammar() (*Grammar, error) {
	if b.err != nil {
		return nil, b.err
	}
	var unresolved []string
	for name, p := range b.proxies {
		if p.Target() == nil {
			unresolved = append(unresolved, name)
		}
	}
	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return nil, fmt.Errorf("grammar '%s' has unresolved rule references: %v", b.name, unresolved)
	}
	if len(b.rules) == 0 {
		return nil, fmt.Errorf("grammar '%s' defines no rules", b.name)
	}
	g := &Grammar{name: b.name, rules: b.rules, order: b.order}
	tracer().Infof("grammar %s built with %d rules", b.name, len(b.rules))
	return g, nil
}

// --- Interned terminals -----------------------------------------------------

// terminalKey is hashed for interning; identical terminals within one
// builder share a single matcher node.
type terminalKey struct {
	Kind string
	Lit  string
	Lo   rune
	Hi   rune
}

func (b *Builder) intern(key terminalKey, create func() match.Matcher) match.Matcher {
	hash, err := structhash.Hash(key, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	if m, ok := b.interned[hash]; ok {
		return m
	}
	m := create()
	b.interned[hash] = m
	return m
}

// Ch returns a matcher for a single character.
func (b *Builder) Ch(c rune) match.Matcher {
	return b.intern(terminalKey{Kind: "char", Lo: c}, func() match.Matcher {
		return match.NewChar(c)
	})
}

// Str returns a matcher for a literal string.
func (b *Builder) Str(s string) match.Matcher {
	return b.intern(terminalKey{Kind: "string", Lit: s}, func() match.Matcher {
		return match.NewString(s)
	})
}

// AnyOf returns a matcher for any single character of a set, given as a
// string of its members.
func (b *Builder) AnyOf(set string) match.Matcher {
	return b.intern(terminalKey{Kind: "anyof", Lit: set}, func() match.Matcher {
		return match.NewCharSet(match.CharsOf([]rune(set)...))
	})
}

// NoneOf returns a matcher for any single character not in the given set
// (and not EOI).
func (b *Builder) NoneOf(set string) match.Matcher {
	return b.intern(terminalKey{Kind: "noneof", Lit: set}, func() match.Matcher {
		return match.NewCharSet(match.AllBut([]rune(set)...))
	})
}

// CharRange returns a matcher for the character range lo..hi, inclusive.
func (b *Builder) CharRange(lo, hi rune) match.Matcher {
	return b.intern(terminalKey{Kind: "range", Lo: lo, Hi: hi}, func() match.Matcher {
		return match.NewCharRange(lo, hi)
	})
}

// Any returns a matcher consuming any single character except EOI.
func (b *Builder) Any() match.Matcher {
	return b.intern(terminalKey{Kind: "any"}, func() match.Matcher {
		return match.NewAny()
	})
}

// --- Grammar ----------------------------------------------------------------

// Grammar is an immutable set of named rules, ready for parsing. A grammar
// may serve concurrent parse runs.
type Grammar struct {
	name  string
	rules map[string]match.Matcher
	order []string
}

// Name returns the grammar's name.
func (g *Grammar) Name() string {
	return g.name
}

// Rule returns the matcher of a named rule, or nil.
func (g *Grammar) Rule(name string) match.Matcher {
	return g.rules[name]
}

// RuleNames lists all rule names in definition order.
func (g *Grammar) RuleNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Parse runs a named rule against an input buffer. The grammar is attached
// to the run as its parser facade. Options are passed through to match.Run.
func (g *Grammar) Parse(rule string, buf *input.Buffer, opts ...match.Option) (*match.Result, error) {
	m := g.Rule(rule)
	if m == nil {
		return nil, fmt.Errorf("grammar '%s' has no rule '%s'", g.name, rule)
	}
	opts = append([]match.Option{match.WithParser(g)}, opts...)
	return match.Run(m, buf, opts...)
}
