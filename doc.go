/*
Package pergo is a PEG parsing toolbox.

PERGO strives to be a smart and lightweight tool for building
recursive-descent parsers from parsing expression grammars (PEGs).
It focusses on scannerless character-level parsing with built-in
error recovery. Package structure is as follows:

■ input: Package input provides the input buffer and the cursor type used
by parse runs, including virtual (synthetic) input for error recovery.

■ match: Package match implements the matching engine: the matcher variants
(sequence, ordered choice, repetition, predicates, terminals, actions), the
matcher context stack and the driver which executes a grammar against an
input buffer, building a parse tree on the way.

■ grammar: Package grammar implements a builder front end for grammars,
resolving forward references and interning terminal matchers.

■ runtime: Package runtime provides value scopes and symbol tables for
semantic actions.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package pergo
