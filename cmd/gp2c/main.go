package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"gp2c/internal/applygen"
	"gp2c/internal/errors"
	"gp2c/internal/exec"
	"gp2c/internal/hostgraph"
	"gp2c/internal/ir"
	"gp2c/internal/matchgen"
	"gp2c/internal/parser"
	"gp2c/internal/searchplan"
)

func usage() {
	fmt.Println("Usage: gp2c <file.rule> [-emit=go] [-run=fixture.json] [-apply]")
	fmt.Println()
	fmt.Println("  -emit=go         render matcher/applier Go source for every rule to stdout")
	fmt.Println("  -run=fixture.json  match (and, with -apply, apply) every rule against a host graph fixture")
	fmt.Println("  -apply           with -run, apply the first successful match instead of only reporting it")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	path := os.Args[1]
	var emitGo bool
	var fixturePath string
	var applyMatch bool

	for _, arg := range os.Args[2:] {
		switch {
		case arg == "-emit=go":
			emitGo = true
		case strings.HasPrefix(arg, "-run="):
			fixturePath = strings.TrimPrefix(arg, "-run=")
		case arg == "-apply":
			applyMatch = true
		default:
			color.Red("unrecognised flag: %s", arg)
			usage()
			os.Exit(1)
		}
	}

	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	file, err := parser.ParseString(path, string(source))
	if err != nil {
		// parser.ParseString already printed a caret-style report.
		os.Exit(1)
	}

	var fixture *hostgraph.Graph
	if fixturePath != "" {
		fixture, err = hostgraph.LoadFixture(fixturePath)
		if err != nil {
			color.Red("failed to load fixture %s: %s", fixturePath, err)
			os.Exit(1)
		}
	}

	builder := ir.NewBuilder()
	exitCode := 0

	if emitGo {
		emitGoHeader(os.Stdout)
	}

	for _, ruleAST := range file.Rules {
		rule, diags := builder.Build(ruleAST)
		reportDiagnostics(path, string(source), diags)
		if hasFatal(diags) {
			exitCode = 1
			continue
		}

		ops, err := searchplan.Generate(rule.LHS)
		if err != nil {
			color.Red("rule %s: searchplan: %s", rule.Name, err)
			exitCode = 1
			continue
		}

		if emitGo {
			if err := matchgen.Render(os.Stdout, matchgen.NewProgram(rule, ops)); err != nil {
				color.Red("rule %s: render match: %s", rule.Name, err)
				exitCode = 1
				continue
			}
			fmt.Println()
			if err := applygen.Render(os.Stdout, applygen.NewProgram(rule)); err != nil {
				color.Red("rule %s: render apply: %s", rule.Name, err)
				exitCode = 1
				continue
			}
			fmt.Println()
		}

		if fixture != nil {
			runAgainstFixture(rule, ops, fixture, applyMatch)
		}

		if !emitGo && fixture == nil {
			color.Green("rule %s: %d searchplan ops, %d predicate(s), isPredicate=%t",
				rule.Name, len(ops), len(rule.Predicates), rule.IsPredicate)
		}
	}

	os.Exit(exitCode)
}

// emitGoHeader writes the package clause and import block shared by every
// rule's rendered Match/Apply pair, mirroring genRule.c's single shared
// #include block emitted once ahead of the per-rule generated bodies
// (src/genRule.c's program-header emission, separate from per-rule
// generation).
func emitGoHeader(w *os.File) {
	fmt.Fprintln(w, "package main")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "import (")
	fmt.Fprintln(w, `	"gp2c/internal/exec"`)
	fmt.Fprintln(w, `	"gp2c/internal/hostgraph"`)
	fmt.Fprintln(w, `	"gp2c/internal/ir"`)
	fmt.Fprintln(w, `	"gp2c/internal/searchplan"`)
	fmt.Fprintln(w, ")")
	fmt.Fprintln(w)
}

func runAgainstFixture(rule *ir.Rule, ops []searchplan.Op, host *hostgraph.Graph, applyMatch bool) {
	m, ok := exec.MatchRule(rule, ops, host)
	if !ok {
		color.Yellow("rule %s: no match", rule.Name)
		return
	}
	color.Green("rule %s: matched (%d node(s), %d edge(s) bound)", rule.Name, len(m.NodeMap), len(m.EdgeMap))

	if !applyMatch || rule.IsPredicate {
		return
	}
	if err := exec.ApplyRule(rule, m, host, true); err != nil {
		color.Red("rule %s: apply: %s", rule.Name, err)
		return
	}
	color.Green("rule %s: applied; host now has %d node(s), %d edge(s)", rule.Name, host.NodeCount(), host.EdgeCount())
}

func hasFatal(diags []errors.CompilerError) bool {
	for _, d := range diags {
		if d.Level == errors.Error {
			return true
		}
	}
	return false
}

func reportDiagnostics(filename, source string, diags []errors.CompilerError) {
	if len(diags) == 0 {
		return
	}
	reporter := errors.NewErrorReporter(filename, source)
	for _, d := range diags {
		fmt.Print(reporter.FormatError(d))
	}
}
