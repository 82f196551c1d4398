package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/pergo/grammar"
	"github.com/npillmayer/pergo/input"
	"github.com/npillmayer/pergo/match"
	"github.com/npillmayer/pergo/runtime"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

func tracer() tracing.Trace {
	return tracing.Select("pergo.match")
}

// We provide a simple expression grammar as a default for parsing and
// error-recovery experiments.
//
//  Stmt   ➞ Assign  |  Expr
//  Assign ➞ Ident '=' Expr
//  Expr   ➞ Term (SumOp Term)*
//  Term   ➞ Factor (ProdOp Factor)*
//  Factor ➞ Number  |  Ident  |  '(' Expr ')'
//  Number ➞ [0-9]+
//  Ident  ➞ [a-z]+
//
// Values are computed by semantic actions; identifiers live in the global
// scope of a runtime environment.
//
func makeExprGrammar(rt *runtime.Runtime) *grammar.Grammar {
	b := grammar.NewBuilder("Calc")
	digits := grammar.OneOrMore(b.CharRange('0', '9'))
	letters := grammar.OneOrMore(b.CharRange('a', 'z'))
	space := match.Suppressed(match.Leaf(grammar.ZeroOrMore(b.AnyOf(" \t"))))
	b.Rule("Number", match.Leaf(grammar.Seq(digits, grammar.Action(numberValue))))
	b.Rule("Ident", match.Leaf(letters))
	b.Rule("Factor", grammar.FirstOf(
		b.Ref("Number"),
		grammar.Seq(b.Ch('('), space, b.Ref("Expr"), space, b.Ch(')')),
		grammar.Seq(b.Ref("Ident"), grammar.Action(identValue(rt))),
	))
	b.Rule("Term", grammar.Seq(
		b.Ref("Factor"),
		match.Suppressed(grammar.ZeroOrMore(grammar.Seq(space, b.AnyOf("*/"), space, b.Ref("Factor")))),
		grammar.Action(foldChain),
	))
	b.Rule("Expr", grammar.Seq(
		b.Ref("Term"),
		match.Suppressed(grammar.ZeroOrMore(grammar.Seq(space, b.AnyOf("+-"), space, b.Ref("Term")))),
		grammar.Action(foldChain),
	))
	b.Rule("Assign", grammar.Seq(
		b.Ref("Ident"), space, b.Ch('='), grammar.Cut(), space, b.Ref("Expr"),
		grammar.Action(assignValue(rt)),
	))
	b.Rule("Stmt", grammar.Seq(
		space,
		grammar.FirstOf(b.Ref("Assign"), b.Ref("Expr")),
		space,
	))
	g, err := b.Grammar()
	if err != nil {
		panic(fmt.Errorf("error creating grammar: %s", err.Error()))
	}
	return g
}

// --- Semantic actions -------------------------------------------------------

func numberValue(ctx *match.Context) (bool, error) {
	text := ctx.InputBuffer().Extract(ctx.StartLocation().Index(), ctx.CurrentLocation().Index())
	n, err := strconv.Atoi(text)
	if err != nil {
		return false, fmt.Errorf("not a number: %q", text)
	}
	ctx.SetValue(n)
	return true, nil
}

func identValue(rt *runtime.Runtime) match.ActionFunc {
	return func(ctx *match.Context) (bool, error) {
		name := ctx.LastNode().Text(ctx.InputBuffer())
		tag, _ := rt.ScopeTree.Globals().ResolveTag(name)
		if tag == nil {
			return false, fmt.Errorf("variable '%s' is not defined", name)
		}
		ctx.SetValue(tag.Value)
		return true, nil
	}
}

func assignValue(rt *runtime.Runtime) match.ActionFunc {
	return func(ctx *match.Context) (bool, error) {
		subs := ctx.SubNodes()
		name := subs[0].Text(ctx.InputBuffer())
		value := subs[len(subs)-1].Value
		tag, _ := rt.ScopeTree.Globals().Tags().ResolveOrDefineTag(name)
		tag.Value = value
		ctx.SetValue(value)
		return true, nil
	}
}

// foldChain folds "operand (op operand)*" left to right. The frame's
// children are the first operand node plus one node per op/operand pair.
func foldChain(ctx *match.Context) (bool, error) {
	subs := ctx.SubNodes()
	if len(subs) == 0 {
		return false, nil
	}
	val, ok := subs[0].Value.(int)
	if !ok {
		return false, nil
	}
	buf := ctx.InputBuffer()
	for _, pair := range subs[1:] {
		if len(pair.SubNodes) < 2 {
			continue
		}
		op := pair.SubNodes[0].Text(buf)
		rhs, ok := pair.SubNodes[len(pair.SubNodes)-1].Value.(int)
		if !ok {
			return false, nil
		}
		switch op {
		case "+":
			val += rhs
		case "-":
			val -= rhs
		case "*":
			val *= rhs
		case "/":
			if rhs == 0 {
				return false, fmt.Errorf("division by zero")
			}
			val /= rhs
		}
	}
	ctx.SetValue(val)
	return true, nil
}

// --- REPL -------------------------------------------------------------------

// main() starts an interactive CLI, where users may enter arithmetic
// expressions and assignments. It is intended as a sandbox for experiments
// with PEG grammars and enforced error recovery.
func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	recoverOpt := flag.Bool("recover", false, "Recover from parse errors")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to the PERGO calculator REPL")
	//
	rt := runtime.NewRuntimeEnvironment()
	g := makeExprGrammar(rt)
	intp := &Intp{G: g, rt: rt}
	if *recoverOpt {
		intp.opts = append(intp.opts, match.WithErrorHandler(match.RecoveringHandler{}))
	}
	//
	repl, err := readline.New("pegrepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp.repl = repl
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	G       *grammar.Grammar
	rt      *runtime.Runtime
	repl    *readline.Instance
	opts    []match.Option
	lastBuf *input.Buffer
	last    *match.Result
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit := intp.Eval(line)
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Eval processes one input line: either a command (":tree", ":errors",
// ":quit") or an expression to parse and evaluate.
func (intp *Intp) Eval(line string) bool {
	switch line {
	case ":quit":
		return true
	case ":tree":
		if intp.last == nil || intp.last.Root == nil {
			pterm.Error.Println("no parse tree yet")
			return false
		}
		fmt.Print(match.Format(intp.last.Root, intp.lastBuf))
		return false
	case ":errors":
		if intp.last == nil || len(intp.last.Errors) == 0 {
			pterm.Info.Println("no parse errors")
			return false
		}
		for _, e := range intp.last.Errors {
			pterm.Error.Println(e.Error())
		}
		return false
	}
	buf := input.NewBuffer(line)
	result, err := intp.G.Parse("Stmt", buf, intp.opts...)
	if err != nil {
		pterm.Error.Println(err.Error())
		return false
	}
	intp.lastBuf, intp.last = buf, result
	if !result.Matched || !result.End.IsAtEnd() {
		pterm.Error.Println("input not understood")
		for _, e := range result.Errors {
			pterm.Error.Println(e.Error())
		}
		return false
	}
	if result.Root != nil {
		pterm.Info.Println(fmt.Sprintf("= %v", result.Root.Value))
	}
	return false
}

func traceLevel(l string) tracing.TraceLevel {
	switch strings.ToLower(l) {
	case "debug":
		return tracing.LevelDebug
	case "error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}
