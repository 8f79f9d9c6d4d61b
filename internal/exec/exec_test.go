package exec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gp2c/internal/exec"
	"gp2c/internal/hostgraph"
	"gp2c/internal/ir"
	"gp2c/internal/parser"
	"gp2c/internal/searchplan"
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

// Scenario 1: delete_loop.
func TestScenarioDeleteLoop(t *testing.T) {
	rule := buildRule(t, `
rule delete_loop {
    lhs { node x []; edge e: x -> x [1]; }
    rhs { node x []; }
    interface { x }
}`)
	ops, err := searchplan.Generate(rule.LHS)
	if err != nil {
		t.Fatalf("searchplan: %v", err)
	}

	host := hostgraph.NewGraph()
	n0 := host.AddNode(nil, ir.MarkNone, false, false)
	e0 := host.AddEdge(n0, n0, false, hostgraph.List{hostgraph.IntValue(1)}, ir.MarkNone, false)

	m, ok := exec.MatchRule(rule, ops, host)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	assert.Equal(t, n0, m.NodeMap[0])
	assert.Equal(t, e0, m.EdgeMap[0])

	if err := exec.ApplyRule(rule, m, host, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	assert.Nil(t, host.Edge(e0))
	assert.NotNil(t, host.Node(n0))
}

// Scenario 2: add_edge.
func TestScenarioAddEdge(t *testing.T) {
	rule := buildRule(t, `
rule add_edge {
    lhs { node a []; node b []; }
    rhs { node a []; node b []; edge e: a -> b [0]; }
    interface { a, b }
}`)
	ops, err := searchplan.Generate(rule.LHS)
	if err != nil {
		t.Fatalf("searchplan: %v", err)
	}

	host := hostgraph.NewGraph()
	n0 := host.AddNode(nil, ir.MarkNone, false, false)
	n1 := host.AddNode(nil, ir.MarkNone, false, false)

	m, ok := exec.MatchRule(rule, ops, host)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	assert.Equal(t, n0, m.NodeMap[0])
	assert.Equal(t, n1, m.NodeMap[1])

	if err := exec.ApplyRule(rule, m, host, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	assert.Equal(t, 1, host.EdgeCount())
	added := host.Edge(0)
	if assert.NotNil(t, added) {
		assert.Equal(t, n0, added.Source)
		assert.Equal(t, n1, added.Target)
		assert.Equal(t, hostgraph.List{hostgraph.IntValue(0)}, added.Label)
	}
}

// Scenario 3: has_red predicate rule.
func TestScenarioHasRedPredicate(t *testing.T) {
	rule := buildRule(t, `
rule has_red {
    lhs { node root x <red> []; }
    rhs { node root x <red> []; }
    interface { x }
}`)
	assert.True(t, rule.IsPredicate)

	ops, err := searchplan.Generate(rule.LHS)
	if err != nil {
		t.Fatalf("searchplan: %v", err)
	}

	host := hostgraph.NewGraph()
	red := host.AddNode(nil, ir.MarkRed, true, false)
	host.AddNode(nil, ir.MarkBlue, true, false)

	m, ok := exec.MatchRule(rule, ops, host)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	assert.Equal(t, red, m.NodeMap[0])
	assert.Equal(t, 2, host.NodeCount())
}

// Scenario 4: conditional relabel_if_int.
func TestScenarioConditionalRelabel(t *testing.T) {
	rule := buildRule(t, `
rule relabel_if_int {
    vars { int x; }
    lhs { node n [x]; }
    rhs { node n [x+1]; }
    interface { n }
    where int(x);
}`)
	ops, err := searchplan.Generate(rule.LHS)
	if err != nil {
		t.Fatalf("searchplan: %v", err)
	}

	host := hostgraph.NewGraph()
	n0 := host.AddNode(hostgraph.List{hostgraph.IntValue(42)}, ir.MarkNone, false, false)

	m, ok := exec.MatchRule(rule, ops, host)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	assert.Equal(t, hostgraph.IntValue(42), m.Assignment["x"])

	if err := exec.ApplyRule(rule, m, host, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	assert.Equal(t, hostgraph.List{hostgraph.IntValue(43)}, host.Node(n0).Label)

	host2 := hostgraph.NewGraph()
	host2.AddNode(hostgraph.List{hostgraph.StrValue("hi")}, ir.MarkNone, false, false)
	_, ok = exec.MatchRule(rule, ops, host2)
	assert.False(t, ok)
	assert.Equal(t, hostgraph.List{hostgraph.StrValue("hi")}, host2.Node(0).Label)
}

// Scenario 5: dangling-condition rejection.
func TestScenarioDanglingCondition(t *testing.T) {
	rule := buildRule(t, `
rule dangle {
    lhs { node root a []; node b []; edge e: a -> b []; }
    rhs { node root a []; }
    interface { a }
}`)
	ops, err := searchplan.Generate(rule.LHS)
	if err != nil {
		t.Fatalf("searchplan: %v", err)
	}

	host := hostgraph.NewGraph()
	n0 := host.AddNode(nil, ir.MarkNone, true, false)
	n1 := host.AddNode(nil, ir.MarkNone, false, false)
	n2 := host.AddNode(nil, ir.MarkNone, false, false)
	host.AddEdge(n0, n1, false, nil, ir.MarkNone, false)
	host.AddEdge(n1, n2, false, nil, ir.MarkNone, false)

	_, ok := exec.MatchRule(rule, ops, host)
	assert.False(t, ok, "dangling check should reject n1 as the image of deleted node b")

	host2 := hostgraph.NewGraph()
	m0 := host2.AddNode(nil, ir.MarkNone, true, false)
	m1 := host2.AddNode(nil, ir.MarkNone, false, false)
	host2.AddEdge(m0, m1, false, nil, ir.MarkNone, false)

	morphism, ok := exec.MatchRule(rule, ops, host2)
	assert.True(t, ok, "without the dangling extra edge, the match should succeed")
	assert.Equal(t, m0, morphism.NodeMap[0])
	assert.Equal(t, m1, morphism.NodeMap[1])
}

// Scenario 6: variable-list label.
func TestScenarioVariableListLabel(t *testing.T) {
	rule := buildRule(t, `
rule shift_list {
    vars { list x; }
    lhs { node a []; node b []; edge e: a -> b [1, x]; }
    rhs { node a []; node b []; edge e: a -> b [x, 1]; }
    interface { a, b, e }
}`)
	ops, err := searchplan.Generate(rule.LHS)
	if err != nil {
		t.Fatalf("searchplan: %v", err)
	}

	host := hostgraph.NewGraph()
	n0 := host.AddNode(nil, ir.MarkNone, false, false)
	n1 := host.AddNode(nil, ir.MarkNone, false, false)
	e0 := host.AddEdge(n0, n1, false, hostgraph.List{
		hostgraph.IntValue(1), hostgraph.StrValue("a"), hostgraph.IntValue(2),
	}, ir.MarkNone, false)

	m, ok := exec.MatchRule(rule, ops, host)
	if !assert.True(t, ok) {
		t.FailNow()
	}
	assert.Equal(t, hostgraph.List{hostgraph.StrValue("a"), hostgraph.IntValue(2)}, m.ListAssign["x"])

	if err := exec.ApplyRule(rule, m, host, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	assert.Equal(t, hostgraph.List{
		hostgraph.StrValue("a"), hostgraph.IntValue(2), hostgraph.IntValue(1),
	}, host.Edge(e0).Label)
}
