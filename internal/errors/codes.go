package errors

// Error codes for the gp2c rule compiler.
// These codes are used in error messages and documentation to provide
// consistent error identification across the toolchain.
//
// Error code ranges:
// E0001-E0099: IR builder errors (names, interfaces, declarations)
// E0100-E0199: Parser errors
// E0200-E0299: Condition / predicate type errors
// E0300-E0399: Searchplan errors
// E0400-E0499: Code generation errors
// E0800-E0899: Warning codes

const (
	// E0001: An interface entry names something that doesn't resolve on
	// both the LHS and the RHS.
	ErrorUnresolvedInterfaceName = "E0001"

	// E0002: A label or condition references a variable with no matching
	// vars{} declaration.
	ErrorUndefinedVariable = "E0002"

	// E0003: A comparison predicate's operands have incompatible inferred
	// categories (e.g. comparing a list-shaped atom against an integer).
	ErrorTypeMismatch = "E0003"

	// E0004: An edge declaration's source or target name doesn't resolve
	// to a node declared in the same graph.
	ErrorUnresolvedNodeName = "E0004"

	// E0009: The same name is declared twice within one graph or vars
	// block.
	ErrorDuplicateDeclaration = "E0009"

	// E0010: An RHS item's label would carry the wildcard ANY mark, which
	// is only valid for matching, never for the result of a rule.
	ErrorInvalidAttribute = "E0010"

	// Parser errors (reserved range: E0100-E0199); produced directly by
	// participle and reported via internal/parser, not through this table.

	// E0201: The condition tree contains a node kind the builder doesn't
	// recognise (defensive; should be unreachable from the grammar).
	ErrorMalformedCondition = "E0201"

	// E0301: A searchplan operation carries an unknown op kind (defensive;
	// should be unreachable given a correctly generated plan).
	ErrorUnknownSearchplanOp = "E0301"

	// E0302: An LHS edge has both endpoints unvisited at plan-render time
	// without ever being converted to a free-edge op.
	ErrorEmptySearchplanEdge = "E0302"

	// W0001: A declared variable is never referenced by any label or
	// condition.
	WarningUnusedVariable = "W0001"

	// W0002: A declared node or edge is neither read by the condition nor
	// present in the interface, LHS, or RHS role it was declared for.
	WarningUnusedDeclaration = "W0002"
)

// GetErrorDescription returns a human-readable description of the error code.
func GetErrorDescription(code string) string {
	switch code {
	case ErrorUnresolvedInterfaceName:
		return "Interface entry does not resolve to an item on both sides of the rule"
	case ErrorUndefinedVariable:
		return "Variable is used but not declared in the rule's vars block"
	case ErrorTypeMismatch:
		return "Comparison operands have incompatible inferred categories"
	case ErrorUnresolvedNodeName:
		return "Edge endpoint does not name a node declared in the same graph"
	case ErrorDuplicateDeclaration:
		return "Duplicate declaration found"
	case ErrorInvalidAttribute:
		return "Invalid or unsupported attribute"
	case ErrorMalformedCondition:
		return "Condition tree contains an unrecognised node kind"
	case ErrorUnknownSearchplanOp:
		return "Searchplan contains an unrecognised operation kind"
	case ErrorEmptySearchplanEdge:
		return "LHS edge was never assigned a searchplan operation"
	case WarningUnusedVariable:
		return "Variable is declared but never used"
	case WarningUnusedDeclaration:
		return "Declaration is never referenced"
	default:
		return "Unknown error code"
	}
}

// IsWarning returns true if the error code represents a warning rather than
// a fatal error.
func IsWarning(code string) bool {
	return (code >= "E0800" && code < "E0900") || (len(code) > 0 && code[0] == 'W')
}

// GetErrorCategory returns the category of the error based on its code.
func GetErrorCategory(code string) string {
	switch {
	case code >= "E0001" && code < "E0100":
		return "IR Builder"
	case code >= "E0100" && code < "E0200":
		return "Parser"
	case code >= "E0200" && code < "E0300":
		return "Condition"
	case code >= "E0300" && code < "E0400":
		return "Searchplan"
	case code >= "E0400" && code < "E0500":
		return "Code Generation"
	case code >= "E0800" && code < "E0900":
		return "Warning"
	case len(code) > 0 && code[0] == 'W':
		return "Warning"
	default:
		return "Unknown"
	}
}

// GetNextAvailableErrorCode returns the next available error code in a given
// range. Useful when adding a new error variant.
func GetNextAvailableErrorCode(category string) string {
	switch category {
	case "ir":
		return "E0005" // next available after E0004
	case "parser":
		return "E0100"
	case "condition":
		return "E0202" // next available after E0201
	case "searchplan":
		return "E0303" // next available after E0302
	case "codegen":
		return "E0400"
	case "warning":
		return "W0003"
	default:
		return "E0005"
	}
}
