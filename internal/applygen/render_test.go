package applygen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gp2c/internal/applygen"
	"gp2c/internal/ir"
	"gp2c/internal/parser"
)

func buildRule(t *testing.T, src string) *ir.Rule {
	t.Helper()
	file, err := parser.ParseString("test.rule", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rule, diags := ir.NewBuilder().Build(file.Rules[0])
	for _, d := range diags {
		if d.Level == "error" {
			t.Fatalf("build failed: %s", d.Message)
		}
	}
	return rule
}

func TestRenderDeleteLoopEmitsApplyCall(t *testing.T) {
	rule := buildRule(t, `
rule delete_loop {
    lhs { node x []; edge e: x -> x []; }
    rhs { node x []; }
    interface { x }
}`)

	var buf strings.Builder
	if err := applygen.Render(&buf, applygen.NewProgram(rule)); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := buf.String()
	assert.Contains(t, out, "func ApplyDeleteLoop(morphism *hostgraph.Morphism, host *hostgraph.Graph, recordChanges bool) error {")
	assert.Contains(t, out, "return exec.ApplyRule(applyRuleDeleteLoop, morphism, host, recordChanges)")
	assert.Contains(t, out, "var applyRuleDeleteLoop = ")
	assert.Contains(t, out, "Deleted:true")
}

func TestRenderAddEdgeEmitsAddedRuleData(t *testing.T) {
	rule := buildRule(t, `
rule add_edge {
    lhs { node a []; node b []; }
    rhs { node a []; node b []; edge e: a -> b [0]; }
    interface { a, b }
}`)

	var buf strings.Builder
	if err := applygen.Render(&buf, applygen.NewProgram(rule)); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	out := buf.String()
	assert.Contains(t, out, "var applyRuleAddEdge = ")
	assert.Contains(t, out, `Name:"e"`)
	assert.Contains(t, out, "Added:true")
}
