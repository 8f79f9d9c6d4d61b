// Package applygen turns a rule's paired LHS/RHS IR into a structured
// representation of the host-graph mutation procedure a successful match
// triggers, renderable as Go source text and directly interpretable by
// internal/exec against a hostgraph.Graph.
package applygen

import "gp2c/internal/ir"

// Program is the structured application-code IR for one rule.
type Program struct {
	RuleName string
	Rule     *ir.Rule
}

// NewProgram builds the application-code IR for rule.
func NewProgram(rule *ir.Rule) *Program {
	return &Program{RuleName: rule.Name, Rule: rule}
}
