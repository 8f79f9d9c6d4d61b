package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gp2c/internal/parser"
)

func TestParseDeleteLoop(t *testing.T) {
	src := `
rule delete_loop {
    lhs {
        node x [1];
        edge e: x -> x [];
    }
    rhs {
        node x [1];
    }
    interface { x }
}
`
	file, err := parser.ParseString("delete_loop.rule", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	assert.Len(t, file.Rules, 1)
	rule := file.Rules[0]
	assert.Equal(t, "delete_loop", rule.Name)
	assert.Len(t, rule.LHS.Nodes, 1)
	assert.Len(t, rule.LHS.Edges, 1)
	assert.Len(t, rule.RHS.Nodes, 1)
	assert.Len(t, rule.RHS.Edges, 0)
	assert.NotNil(t, rule.Interface)
	assert.Equal(t, "x", rule.Interface.Names[0].Name)

	edge := rule.LHS.Edges[0]
	assert.Equal(t, "x", edge.Source.Name)
	assert.Equal(t, "x", edge.Target.Name)
	assert.False(t, edge.Bidi)
}

func TestParseConditionalRule(t *testing.T) {
	src := `
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
}
`
	file, err := parser.ParseString("relabel_if_int.rule", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	rule := file.Rules[0]
	assert.Len(t, rule.Vars, 1)
	assert.Equal(t, "int", rule.Vars[0].Type)
	assert.Equal(t, "i", rule.Vars[0].Name)
	assert.NotNil(t, rule.Where)

	and := rule.Where.Cond.Left
	assert.Len(t, and.Rest, 1)
	assert.NotNil(t, and.Left.Primary.IntCheck)
	assert.Equal(t, "i", and.Left.Primary.IntCheck.Name)

	cmp := and.Rest[0].Primary.Compare
	assert.NotNil(t, cmp)
	assert.Equal(t, ">", cmp.Operator)
}

func TestParseRootAndMarks(t *testing.T) {
	src := `
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
}
`
	file, err := parser.ParseString("add_edge.rule", src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	rule := file.Rules[0]
	assert.True(t, rule.LHS.Nodes[0].Root)
	assert.Equal(t, "red", *rule.LHS.Nodes[0].Mark)
	assert.Equal(t, "any", *rule.LHS.Nodes[1].Mark)

	e := rule.RHS.Edges[0]
	assert.Equal(t, "green", *e.Mark)
	assert.Len(t, e.Label.Atoms, 2)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := parser.ParseString("broken.rule", `rule broken { lhs { node } }`)
	assert.Error(t, err)
}
