// Package matchgen turns a rule's LHS IR and searchplan into a structured
// representation of the matching procedure, renderable as Go source text
// and directly interpretable by internal/exec against a hostgraph.Graph.
package matchgen

import (
	"gp2c/internal/ir"
	"gp2c/internal/searchplan"
)

// Program is the structured matching-code IR for one rule: the ordered
// searchplan operations plus the rule they were generated from. Unlike the
// original C compiler's genRule.c, which interleaves file-pointer prints
// with the planning logic, construction here is separate from rendering.
type Program struct {
	RuleName string
	Rule     *ir.Rule
	Ops      []searchplan.Op
}

// NewProgram builds the matching-code IR for rule using the given
// searchplan.
func NewProgram(rule *ir.Rule, ops []searchplan.Op) *Program {
	return &Program{RuleName: rule.Name, Rule: rule, Ops: ops}
}
