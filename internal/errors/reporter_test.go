package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gp2c/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	source := `rule test {
    lhs {
        node x [unknownVar];
    }
    rhs {
        node x [unknownVar];
    }
}`

	reporter := NewErrorReporter("test.rule", source)

	err := UndefinedVariable("unknownVar", ast.Position{Line: 3, Column: 17}, []string{"knownVar", "anotherVar"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable")
	assert.Contains(t, formatted, "unknownVar")
	assert.Contains(t, formatted, "test.rule:3:17")
	assert.Contains(t, formatted, "did you mean")
	assert.Contains(t, formatted, "knownVar")
}

func TestUndefinedVariableError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UndefinedVariable("balace", pos, []string{"balance"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Contains(t, err.Message, "balace")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'balance'")

	err = UndefinedVariable("xyz", pos, []string{})
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "declare the variable")
}

func TestUnresolvedInterfaceNameError(t *testing.T) {
	pos := ast.Position{Line: 2, Column: 3}

	err := UnresolvedInterfaceName("y", pos, []string{"x", "yy"}, []string{"x"})
	assert.Equal(t, ErrorUnresolvedInterfaceName, err.Code)
	assert.Contains(t, err.Message, "y")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "yy")
}

func TestTypeMismatchError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := TypeMismatch("integer", "list-shaped", pos)
	assert.Equal(t, ErrorTypeMismatch, err.Code)
	assert.Contains(t, err.Message, "expected a integer-shaped label, found list-shaped")
	assert.Len(t, err.Suggestions, 1)
}

func TestUnresolvedNodeNameError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UnresolvedNodeName("z", pos, []string{"x", "y"})
	assert.Equal(t, ErrorUnresolvedNodeName, err.Code)
	assert.Contains(t, err.Message, "'z'")
}

func TestInvalidAttributeError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}

	err := InvalidAttribute("x", pos)
	assert.Equal(t, ErrorInvalidAttribute, err.Code)
	assert.Contains(t, err.Message, "'x'")
	assert.Contains(t, err.HelpText, "concrete mark")
}

func TestWarningFormatting(t *testing.T) {
	source := `vars { int unused; }`
	reporter := NewErrorReporter("test.rule", source)

	err := UnusedVariable("unused", ast.Position{Line: 1, Column: 5})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning[W0001]")
	assert.Contains(t, formatted, "never used")
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `node variable [1];`
	reporter := NewErrorReporter("test.rule", source)

	marker := reporter.createMarker(5, 8, Error)

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"balance", "amount", "total", "balanceOf", "xyz"}

	similar := findSimilarNames("balace", candidates)
	assert.Contains(t, similar, "balance")
	assert.NotContains(t, similar, "xyz")

	similar = findSimilarNames("verydifferent", candidates)
	assert.Empty(t, similar)
}

func TestErrorLevels(t *testing.T) {
	source := `test`
	reporter := NewErrorReporter("test.rule", source)
	pos := ast.Position{Line: 1, Column: 1}

	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	warningErr := CompilerError{Level: Warning, Message: "test warning", Position: pos}

	errorFormatted := reporter.FormatError(errorErr)
	warningFormatted := reporter.FormatError(warningErr)

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}
