package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"gp2c/internal/errors"
)

// parseErrorDiagnostic converts a participle parse failure into a single
// LSP diagnostic, caret-positioned the same way the CLI's stderr report is.
func parseErrorDiagnostic(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("gp2c-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	line := uint32(0)
	col := uint32(0)
	if pos.Line > 0 {
		line = uint32(pos.Line - 1)
	}
	if pos.Column > 0 {
		col = uint32(pos.Column - 1)
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("gp2c-parser"),
		Message:  pe.Message(),
	}}
}

// compilerErrorDiagnostics converts IR builder diagnostics into LSP
// diagnostics, mapping warnings to DiagnosticSeverityWarning.
func compilerErrorDiagnostics(diags []errors.CompilerError) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := protocol.DiagnosticSeverityError
		if errors.IsWarning(d.Code) || d.Level == errors.Warning {
			severity = protocol.DiagnosticSeverityWarning
		}
		length := d.Length
		if length <= 0 {
			length = 1
		}
		line := uint32(0)
		if d.Position.Line > 0 {
			line = uint32(d.Position.Line - 1)
		}
		col := uint32(0)
		if d.Position.Column > 0 {
			col = uint32(d.Position.Column - 1)
		}
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: col},
				End:   protocol.Position{Line: line, Character: col + uint32(length)},
			},
			Severity: ptrSeverity(severity),
			Source:   ptrString("gp2c"),
			Message:  "[" + d.Code + "] " + d.Message,
		})
	}
	return out
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                            { return &s }
