package searchplan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gp2c/internal/ir"
	"gp2c/internal/parser"
	"gp2c/internal/searchplan"
)

func lhsOf(t *testing.T, src string) *ir.Graph {
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
	return rule.LHS
}

func TestGenerateSeedsFromRoot(t *testing.T) {
	lhs := lhsOf(t, `
rule r {
    lhs {
        node root a [];
        node b [];
        edge e: a -> b [];
    }
    rhs { node root a []; node b []; edge e: a -> b []; }
    interface { a, b, e }
}`)

	ops, err := searchplan.Generate(lhs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// root seed, edge-bind (source known), node-bind (outgoing discovery)
	assert.Len(t, ops, 3)
	assert.Equal(t, searchplan.OpRootNode, ops[0].Kind)
	assert.Equal(t, 0, ops[0].ItemIndex)
	assert.True(t, ops[0].IsNode)

	assert.Equal(t, searchplan.OpSourceKnown, ops[1].Kind)
	assert.False(t, ops[1].IsNode)
	assert.Equal(t, 0, ops[1].KnownNode)
	assert.Equal(t, 1, ops[1].OtherNode)

	assert.Equal(t, searchplan.OpNodeFromOutgoing, ops[2].Kind)
	assert.True(t, ops[2].IsNode)
	assert.Equal(t, 1, ops[2].ItemIndex)
}

func TestGenerateFreeNodeWhenNoRoot(t *testing.T) {
	lhs := lhsOf(t, `
rule r {
    lhs {
        node a [];
        node b [];
        edge e: a -> b [];
    }
    rhs { node a []; node b []; edge e: a -> b []; }
    interface { a, b, e }
}`)

	ops, err := searchplan.Generate(lhs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	assert.Equal(t, searchplan.OpFreeNode, ops[0].Kind)
	assert.Equal(t, byte('n'), ops[0].Letter)
}

func TestGenerateSelfLoop(t *testing.T) {
	lhs := lhsOf(t, `
rule r {
    lhs {
        node root a [];
        edge e: a -> a [];
    }
    rhs { node root a []; }
    interface { a }
}`)

	ops, err := searchplan.Generate(lhs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	assert.Len(t, ops, 2)
	assert.Equal(t, searchplan.OpSelfLoop, ops[1].Kind)
	assert.Equal(t, 0, ops[1].KnownNode)
	assert.Equal(t, 0, ops[1].OtherNode)
}

func TestGenerateMultiEdgeBothKnown(t *testing.T) {
	lhs := lhsOf(t, `
rule r {
    lhs {
        node root a [];
        node b [];
        edge e1: a -> b [];
        edge e2: a -> b [];
    }
    rhs { node root a []; node b []; edge e1: a -> b []; edge e2: a -> b []; }
    interface { a, b, e1, e2 }
}`)

	ops, err := searchplan.Generate(lhs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	// root seed, e1 edge-bind, b node-bind, e2 both-known verification
	assert.Len(t, ops, 4)
	assert.Equal(t, searchplan.OpEdgeBothKnown, ops[3].Kind)
	assert.Equal(t, 1, ops[3].ItemIndex)
	assert.False(t, ops[3].IsNode)
}

func TestGenerateBidirectionalFromSourceRole(t *testing.T) {
	lhs := lhsOf(t, `
rule r {
    lhs {
        node root a [];
        node b [];
        edge e: a <-> b [];
    }
    rhs { node root a []; node b []; edge e: a <-> b []; }
    interface { a, b, e }
}`)

	ops, err := searchplan.Generate(lhs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	assert.Len(t, ops, 3)
	assert.Equal(t, searchplan.OpSourceKnown, ops[1].Kind)
	assert.False(t, ops[1].IsNode)

	assert.Equal(t, searchplan.OpNodeFromBidi, ops[2].Kind)
	assert.Equal(t, byte('b'), ops[2].Letter)
	assert.True(t, ops[2].IsNode)
	assert.Equal(t, 1, ops[2].ItemIndex)
}

func TestGenerateDisconnectedComponents(t *testing.T) {
	lhs := lhsOf(t, `
rule r {
    lhs {
        node root a [];
        node c [];
    }
    rhs { node root a []; node c []; }
    interface { a, c }
}`)

	ops, err := searchplan.Generate(lhs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	assert.Len(t, ops, 2)
	assert.Equal(t, searchplan.OpRootNode, ops[0].Kind)
	assert.Equal(t, searchplan.OpFreeNode, ops[1].Kind)
	assert.Equal(t, 1, ops[1].ItemIndex)
}

func TestGenerateOneOpPerLHSNodeAndEdge(t *testing.T) {
	lhs := lhsOf(t, `
rule r {
    lhs {
        node root a [];
        node b [];
        node c [];
        edge e1: a -> b [];
        edge e2: b -> c [];
    }
    rhs { node root a []; node b []; node c []; edge e1: a -> b []; edge e2: b -> c []; }
    interface { a, b, c, e1, e2 }
}`)

	ops, err := searchplan.Generate(lhs)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	nodeOps := map[int]int{}
	edgeOps := map[int]int{}
	for _, op := range ops {
		if op.IsNode {
			nodeOps[op.ItemIndex]++
		} else {
			edgeOps[op.ItemIndex]++
		}
	}
	for _, n := range lhs.Nodes {
		assert.Equal(t, 1, nodeOps[n.Index], "node %s should have exactly one op", n.Name)
	}
	for _, e := range lhs.Edges {
		assert.Equal(t, 1, edgeOps[e.Index], "edge %s should have exactly one op", e.Name)
	}
}
