package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"gp2c/internal/ast"
)

var ruleParser = participle.MustBuild[ast.RuleFile](
	participle.Lexer(RuleLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(4),
)

// ParseFile reads and parses a `.rule` source file.
func ParseFile(path string) (*ast.RuleFile, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseString(path, string(source))
}

// ParseString parses rule source already held in memory, tagging
// diagnostics with filename for caret-style reporting.
func ParseString(filename, source string) (*ast.RuleFile, error) {
	file, err := ruleParser.ParseString(filename, source)
	if err != nil {
		reportParseError(source, err)
		return nil, err
	}
	return file, nil
}

// reportParseError prints a caret-style parse error to stderr.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.New(color.FgRed).Fprintf(os.Stderr, "unexpected error: %s\n", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.New(color.FgRed).Fprintf(os.Stderr, "syntax error at unknown location: %s\n", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	color.New(color.FgRed).Fprintf(os.Stderr, "error: syntax error in %s at line %d, column %d:\n", pos.Filename, pos.Line, pos.Column)
	fmt.Fprintln(os.Stderr, line)
	color.New(color.FgHiRed).Fprintln(os.Stderr, caret)
	fmt.Fprintf(os.Stderr, "  %s\n", pe.Message())
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
