package errors

import (
	"fmt"
	"strings"

	"gp2c/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating semantic
// errors with suggestions.
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new semantic error builder.
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new semantic warning builder.
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *SemanticErrorBuilder) WithReplacement(message, replacement string, pos ast.Position, length int) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// Common rule-compiler error constructors with suggestions.

// UnresolvedInterfaceName creates an error for an interface entry that
// doesn't resolve to an item on both the LHS and the RHS.
func UnresolvedInterfaceName(name string, pos ast.Position, lhsNames, rhsNames []string) CompilerError {
	builder := NewSemanticError(ErrorUnresolvedInterfaceName,
		fmt.Sprintf("interface name '%s' does not resolve on both sides of the rule", name), pos).
		WithLength(len(name))

	similar := findSimilarNames(name, append(append([]string{}, lhsNames...), rhsNames...))
	if len(similar) > 0 {
		builder = builder.WithSuggestion(suggestNames(similar))
	} else {
		builder = builder.WithNote("every interface name must be declared as a node or edge on both lhs and rhs")
	}

	return builder.Build()
}

// UndefinedVariable creates an error for a label or condition reference to
// an undeclared variable.
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		builder = builder.WithSuggestion(suggestNames(similarNames))
	} else {
		builder = builder.WithSuggestion("declare the variable in the rule's vars block").
			WithNote("variables must be declared with a type: int, char, string, atom, or list")
	}

	return builder.Build()
}

// TypeMismatch creates an error for a comparison predicate whose operands
// have incompatible inferred categories.
func TypeMismatch(expected, actual string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorTypeMismatch,
		fmt.Sprintf("type mismatch: expected a %s-shaped label, found %s", expected, actual), pos).
		WithSuggestion("ordering comparisons (>, >=, <, <=) require both operands to be integer-shaped").
		WithNote("a label is integer-shaped when it holds exactly one integer-typed atom").
		Build()
}

// UnresolvedNodeName creates an error for an edge endpoint that doesn't
// name a node declared in the same graph.
func UnresolvedNodeName(name string, pos ast.Position, declaredNames []string) CompilerError {
	builder := NewSemanticError(ErrorUnresolvedNodeName,
		fmt.Sprintf("edge endpoint '%s' is not a node declared in this graph", name), pos).
		WithLength(len(name))

	similar := findSimilarNames(name, declaredNames)
	if len(similar) > 0 {
		builder = builder.WithSuggestion(suggestNames(similar))
	}

	return builder.Build()
}

// DuplicateDeclaration creates an error for a name declared twice within
// one graph or vars block.
func DuplicateDeclaration(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate declaration: %s", name), pos).
		WithSuggestion(fmt.Sprintf("rename the duplicate '%s' to a unique name", name)).
		WithNote("node, edge, and variable names must be unique within a rule").
		Build()
}

// InvalidAttribute creates an error for an RHS item whose label would
// carry the ANY wildcard mark, which is only meaningful for matching.
func InvalidAttribute(itemName string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidAttribute,
		fmt.Sprintf("rhs item '%s' cannot keep the wildcard mark 'any'", itemName), pos).
		WithHelp("the rhs must name a concrete mark: none, red, green, blue, grey, or dashed").
		WithSuggestion("replace <any> with the mark this item should carry after the rule applies").
		Build()
}

// MalformedCondition creates a defensive error for a condition-tree node
// kind the builder doesn't recognise.
func MalformedCondition(pos ast.Position) CompilerError {
	return NewSemanticError(ErrorMalformedCondition, "condition tree contains an unrecognised node kind", pos).
		WithNote("this should be unreachable from the grammar; please file a bug").
		Build()
}

// UnusedVariable creates a warning for a declared variable never
// referenced by any label or condition.
func UnusedVariable(name string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnusedVariable, fmt.Sprintf("variable '%s' is declared but never used", name), pos).
		WithLength(len(name)).
		WithSuggestion("remove the variable declaration if it's not needed").
		Build()
}

// UnusedDeclaration creates a warning for a node or edge that is never
// referenced outside its own declaration.
func UnusedDeclaration(name string, pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUnusedDeclaration, fmt.Sprintf("'%s' is never referenced", name), pos).
		WithLength(len(name)).
		Build()
}

func suggestNames(names []string) string {
	if len(names) == 1 {
		return fmt.Sprintf("did you mean '%s'?", names[0])
	}
	return fmt.Sprintf("did you mean one of: '%s'?", strings.Join(names, "', '"))
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 1 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// levenshteinDistance is a simple edit-distance implementation used to find
// similar identifiers for "did you mean" suggestions.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
