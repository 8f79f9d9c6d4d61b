package exec

import (
	"fmt"

	"gp2c/internal/hostgraph"
	"gp2c/internal/ir"
)

// ApplyRule mutates host according to the matched morphism, following
// genRule.c's mandated order: delete/relabel edges, then delete/relabel/
// reroot nodes, then add nodes, then add edges. Relabelling to an
// unchanged label is a no-op that pushes no journal entry.
func ApplyRule(rule *ir.Rule, m *hostgraph.Morphism, host *hostgraph.Graph, recordChanges bool) error {
	b := Bindings{Morphism: m, Host: host, Rule: rule}

	for _, e := range rule.LHS.Edges {
		hostIdx, ok := m.EdgeMap[e.Index]
		if !ok {
			return fmt.Errorf("applyRule: LHS edge %d not bound", e.Index)
		}
		if e.Deleted {
			host.RemoveEdge(hostIdx, recordChanges)
			continue
		}
		rhsEdge := rule.RHS.Edges[e.Interface]
		if rhsEdge.Relabelled {
			newLabel, _, err := EvaluateLabel(rhsEdge.Label, b)
			if err != nil {
				return err
			}
			if !hostgraph.EqualHostLabels(host.Edge(hostIdx).Label, newLabel) {
				host.RelabelEdge(hostIdx, newLabel, recordChanges)
			}
		} else if rhsEdge.Remarked {
			host.ChangeEdgeMark(hostIdx, rhsEdge.Label.Mark, recordChanges)
		}
	}

	for _, n := range rule.LHS.Nodes {
		hostIdx, ok := m.NodeMap[n.Index]
		if !ok {
			return fmt.Errorf("applyRule: LHS node %d not bound", n.Index)
		}
		if n.Deleted {
			host.RemoveNode(hostIdx, recordChanges)
			continue
		}
		rhsNode := rule.RHS.Nodes[n.Interface]
		if rhsNode.Relabelled {
			newLabel, _, err := EvaluateLabel(rhsNode.Label, b)
			if err != nil {
				return err
			}
			if !hostgraph.EqualHostLabels(host.Node(hostIdx).Label, newLabel) {
				host.RelabelNode(hostIdx, newLabel, recordChanges)
			}
		} else if rhsNode.Remarked {
			host.ChangeNodeMark(hostIdx, rhsNode.Label.Mark, recordChanges)
		}
		if rhsNode.RootChanged {
			host.ChangeRoot(hostIdx, rhsNode.Root, recordChanges)
		}
	}

	for _, n := range rule.RHS.Nodes {
		if !n.Added {
			continue
		}
		label, mark, err := EvaluateLabel(n.Label, b)
		if err != nil {
			return err
		}
		hostIdx := host.AddNode(label, mark, n.Root, recordChanges)
		m.BindNode(rhsNodeLHSPlaceholder(n.Index), hostIdx)
	}

	for _, e := range rule.RHS.Edges {
		if !e.Added {
			continue
		}
		srcHost, err := resolveRHSNode(rule, m, e.Source)
		if err != nil {
			return err
		}
		tgtHost, err := resolveRHSNode(rule, m, e.Target)
		if err != nil {
			return err
		}
		label, mark, err := EvaluateLabel(e.Label, b)
		if err != nil {
			return err
		}
		host.AddEdge(srcHost, tgtHost, e.Bidirectional, label, mark, recordChanges)
	}

	return nil
}

// addedNodeBase offsets RHS-only node indices so they don't collide with
// real LHS node indices in the morphism's node map, which is otherwise
// keyed by LHS index.
const addedNodeBase = 1 << 20

func rhsNodeLHSPlaceholder(rhsIndex int) int { return addedNodeBase + rhsIndex }

// resolveRHSNode finds the host index an RHS node (added or preserved)
// maps to.
func resolveRHSNode(rule *ir.Rule, m *hostgraph.Morphism, rhsIndex int) (int, error) {
	rhsNode := rule.RHS.Nodes[rhsIndex]
	if rhsNode.Added {
		hostIdx, ok := m.NodeMap[rhsNodeLHSPlaceholder(rhsIndex)]
		if !ok {
			return 0, fmt.Errorf("resolveRHSNode: added node %d not yet bound", rhsIndex)
		}
		return hostIdx, nil
	}
	lhsIdx := rhsNode.Interface
	hostIdx, ok := m.NodeMap[lhsIdx]
	if !ok {
		return 0, fmt.Errorf("resolveRHSNode: preserved node %d not bound", lhsIdx)
	}
	return hostIdx, nil
}
