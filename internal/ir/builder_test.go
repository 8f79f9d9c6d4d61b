package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gp2c/internal/ir"
	"gp2c/internal/parser"
)

func build(t *testing.T, src string) (*ir.Rule, []string) {
	t.Helper()
	file, err := parser.ParseString("test.rule", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rule, diags := ir.NewBuilder().Build(file.Rules[0])
	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return rule, codes
}

func TestDeleteLoopInterfaceAndDegrees(t *testing.T) {
	rule, codes := build(t, `
rule delete_loop {
    lhs {
        node x [1];
        edge e: x -> x [];
    }
    rhs {
        node x [1];
    }
    interface { x }
}`)
	assert.Empty(t, codes)
	assert.Len(t, rule.LHS.Nodes, 1)
	assert.False(t, rule.LHS.Nodes[0].Deleted)
	assert.Equal(t, 0, rule.LHS.Nodes[0].Interface)
	assert.Equal(t, 1, rule.LHS.Nodes[0].Indegree)
	assert.Equal(t, 1, rule.LHS.Nodes[0].Outdegree)
	assert.True(t, rule.LHS.Edges[0].Deleted)
	assert.False(t, rule.IsPredicate)
}

func TestAddEdgeMarksAndInterface(t *testing.T) {
	rule, codes := build(t, `
rule add_edge {
    lhs {
        node root a <red> [];
        node b <any> [];
    }
    rhs {
        node root a <red> [];
        node b <any> [];
        edge e: a -> b <green> [1, "x"];
    }
    interface { a, b }
}`)
	assert.Empty(t, codes)
	assert.True(t, rule.RHS.Edges[0].Added)
	assert.Equal(t, ir.MarkGreen, rule.RHS.Edges[0].Label.Mark)
	assert.Len(t, rule.RHS.Edges[0].Label.Atoms, 2)
	assert.False(t, rule.LHS.Nodes[0].Relabelled)
}

func TestRhsAnyMarkIsFatal(t *testing.T) {
	_, codes := build(t, `
rule bad {
    lhs {
        node x <any> [];
    }
    rhs {
        node x <any> [];
    }
    interface { x }
}`)
	assert.Contains(t, codes, "E0010")
}

func TestUnresolvedInterfaceName(t *testing.T) {
	_, codes := build(t, `
rule bad {
    lhs {
        node x [];
    }
    rhs {
        node y [];
    }
    interface { x }
}`)
	assert.Contains(t, codes, "E0001")
}

func TestUndefinedVariable(t *testing.T) {
	_, codes := build(t, `
rule bad {
    lhs {
        node x [y];
    }
    rhs {
        node x [y];
    }
    interface { x }
}`)
	assert.Contains(t, codes, "E0002")
}

func TestOrderingComparisonRequiresIntegerShape(t *testing.T) {
	_, codes := build(t, `
rule bad {
    vars { list l; }
    lhs {
        node x [l];
    }
    rhs {
        node x [l];
    }
    interface { x }
    where [#l] > [0];
}`)
	assert.NotContains(t, codes, "E0003")
}

func TestRelabelIfIntConditionAndBoolIDs(t *testing.T) {
	rule, codes := build(t, `
rule relabel_if_int {
    vars {
        int i;
    }
    lhs {
        node x [i];
    }
    rhs {
        node x [i + 1];
    }
    interface { x }
    where int(i) and [i] > [0];
}`)
	assert.Empty(t, codes)
	assert.True(t, rule.LHS.Nodes[0].Relabelled)
	assert.NotNil(t, rule.Condition)
	assert.Equal(t, ir.CondAnd, rule.Condition.Kind)
	assert.Len(t, rule.Predicates, 2)
	assert.Equal(t, 0, rule.Predicates[0].BoolID)
	assert.Equal(t, 1, rule.Predicates[1].BoolID)
	assert.False(t, rule.Predicates[0].Negated)
	assert.False(t, rule.Predicates[1].Negated)
}

func TestNotPushesDownThroughAnd(t *testing.T) {
	rule, codes := build(t, `
rule has_red {
    vars { int i; }
    lhs {
        node x [i];
    }
    rhs {
        node x [i];
    }
    interface { x }
    where not (int(i) and [i] > [0]);
}`)
	assert.Empty(t, codes)
	assert.Equal(t, ir.CondOr, rule.Condition.Kind)
	assert.True(t, rule.Predicates[0].Negated)
	assert.True(t, rule.Predicates[1].Negated)
}

func TestPredicateRuleHasNoStructuralChange(t *testing.T) {
	rule, codes := build(t, `
rule has_red {
    lhs {
        node x <red> [];
    }
    rhs {
        node x <red> [];
    }
    interface { x }
}`)
	assert.Empty(t, codes)
	assert.True(t, rule.IsPredicate)
}
