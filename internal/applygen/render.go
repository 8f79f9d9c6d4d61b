package applygen

import (
	"io"

	"github.com/iancoleman/strcase"

	"gp2c/internal/codegen"
)

// Render serialises an application-code Program to Go source text: the rule
// is stamped out as a literal (via fmt's %#v verb), and the emitted
// Apply<Rule> function delegates the delete/relabel/remark/reroot/add
// mutation sequence to internal/exec's tested applier, which already
// resolves RHS-added-node vs RHS-preserved-node indices correctly. This
// keeps one application implementation instead of a second, hand-rolled
// textual one.
func Render(w io.Writer, p *Program) error {
	ctx := codegen.NewContext(w)
	funcName := "Apply" + strcase.ToCamel(p.RuleName)
	ruleVar := "applyRule" + strcase.ToCamel(p.RuleName)

	ctx.Line("// %s mutates host according to the matched morphism, per rule %q.", funcName, p.RuleName)
	ctx.Line("func %s(morphism *hostgraph.Morphism, host *hostgraph.Graph, recordChanges bool) error {", funcName)
	ctx.Indent(func() {
		ctx.Line("return exec.ApplyRule(%s, morphism, host, recordChanges)", ruleVar)
	})
	ctx.Line("}")
	ctx.Line("")
	ctx.Line("var %s = %#v", ruleVar, p.Rule)
	return nil
}
