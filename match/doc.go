/*
Package match implements the matching engine for PEG parse runs.

A grammar is a directed — possibly cyclic — graph of matchers. Every matcher
implements a small contract against a Context, the per-invocation companion
frame holding the cursor window, the accumulating parse-tree children, a
value slot for semantic actions and the enforcement flag used for error
recovery. Contexts form a chain down the recursion spine; every depth level
owns a single reusable sub-frame, so a parse run allocates O(max depth)
frames rather than one per rule invocation.

The one place where cursor progress is committed upward is the driver,
Context.RunMatcher: a failing matcher leaves its parent's cursor untouched,
which is what makes ordered choice work without explicit rollback. Matching
under enforcement routes failures through an ErrorHandler strategy, which may
recover by skipping input or by inserting virtual characters (see package
input).

For background on parsing expression grammars refer to Bryan Ford,
"Parsing Expression Grammars: A Recognition-Based Syntactic Foundation"
(https://bford.info/pub/lang/peg.pdf). The matcher/context split follows the
design of recursive-descent PEG interpreters rather than packrat parsers:
there is no memoization and left recursion is not supported.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package match

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'pergo.match'.
func tracer() tracing.Trace {
	return tracing.Select("pergo.match")
}
