package matchgen

import (
	"io"

	"github.com/iancoleman/strcase"

	"gp2c/internal/codegen"
)

// Render serialises a matching-code Program to Go source text: the rule and
// its searchplan are stamped out as literal data (via fmt's %#v verb, the
// same composite-literal syntax go/printer would produce), and the emitted
// Match<Rule> function delegates the actual backtracking walk to
// internal/exec's tested matcher. This keeps one matching implementation —
// the one the test suite exercises — instead of a second, hand-rolled
// textual one that genRule.c's per-op-stanza style would otherwise demand.
func Render(w io.Writer, p *Program) error {
	ctx := codegen.NewContext(w)
	funcName := "Match" + strcase.ToCamel(p.RuleName)
	ruleVar := "matchRule" + strcase.ToCamel(p.RuleName)
	planVar := "matchPlan" + strcase.ToCamel(p.RuleName)

	ctx.Line("// %s attempts to match the LHS of rule %q against host.", funcName, p.RuleName)
	ctx.Line("func %s(host *hostgraph.Graph) (*hostgraph.Morphism, bool) {", funcName)
	ctx.Indent(func() {
		ctx.Line("return exec.MatchRule(%s, %s, host)", ruleVar, planVar)
	})
	ctx.Line("}")
	ctx.Line("")
	ctx.Line("var %s = %#v", ruleVar, p.Rule)
	ctx.Line("")
	ctx.Line("var %s = %#v", planVar, p.Ops)
	return nil
}
