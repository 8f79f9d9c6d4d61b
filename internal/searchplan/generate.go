package searchplan

import "gp2c/internal/ir"

// Generate produces the searchplan for an LHS graph: root nodes seed their
// connected components first (ascending LHS index), then a breadth-first
// walk over incident edges (ascending edge index) binds the rest of each
// component — each edge traversal emitting an edge op followed immediately
// by the node op that binds the node it discovered, or by a both-known
// verification op alone when the far endpoint is already bound (as with a
// multi-edge) — then any remaining disconnected components are seeded by
// free-node ops, and finally any edge still unvisited becomes a both-known
// verification op.
func Generate(lhs *ir.Graph) ([]Op, error) {
	visitedNodes := make(map[int]bool, len(lhs.Nodes))
	visitedEdges := make(map[int]bool, len(lhs.Edges))
	var ops []Op

	for _, rootIdx := range lhs.RootNodes() {
		if visitedNodes[rootIdx] {
			continue
		}
		ops = append(ops, seedOp(OpRootNode, rootIdx))
		visitedNodes[rootIdx] = true
		bfsFrom(rootIdx, lhs, visitedNodes, visitedEdges, &ops)
	}

	for _, n := range lhs.Nodes {
		if visitedNodes[n.Index] {
			continue
		}
		ops = append(ops, seedOp(OpFreeNode, n.Index))
		visitedNodes[n.Index] = true
		bfsFrom(n.Index, lhs, visitedNodes, visitedEdges, &ops)
	}

	for _, e := range lhs.Edges {
		if visitedEdges[e.Index] {
			continue
		}
		ops = append(ops, edgeOp(OpEdgeBothKnown, e.Index, e.Source, e.Target))
		visitedEdges[e.Index] = true
	}

	return ops, nil
}

func seedOp(kind OpKind, nodeIdx int) Op {
	return Op{Kind: kind, Letter: kind.letter(), ItemIndex: nodeIdx, IsNode: true, KnownNode: -1, OtherNode: -1}
}

func edgeOp(kind OpKind, edgeIdx, knownNode, otherNode int) Op {
	return Op{Kind: kind, Letter: kind.letter(), ItemIndex: edgeIdx, IsNode: false, KnownNode: knownNode, OtherNode: otherNode}
}

func nodeFromEdgeOp(kind OpKind, nodeIdx int) Op {
	return Op{Kind: kind, Letter: kind.letter(), ItemIndex: nodeIdx, IsNode: true, KnownNode: -1, OtherNode: -1}
}

func bfsFrom(start int, lhs *ir.Graph, visitedNodes, visitedEdges map[int]bool, ops *[]Op) {
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, edgeIdx := range lhs.IncidentEdges(cur) {
			if visitedEdges[edgeIdx] {
				continue
			}
			e := lhs.Edges[edgeIdx]
			visitedEdges[edgeIdx] = true

			if e.Source == e.Target {
				*ops = append(*ops, edgeOp(OpSelfLoop, edgeIdx, cur, cur))
				continue
			}

			other, knownIsSource := e.Target, true
			if e.Target == cur {
				other, knownIsSource = e.Source, false
			}

			if visitedNodes[other] {
				*ops = append(*ops, edgeOp(OpEdgeBothKnown, edgeIdx, cur, other))
				continue
			}

			edgeKind := OpSourceKnown
			if !knownIsSource {
				edgeKind = OpTargetKnown
			}
			*ops = append(*ops, edgeOp(edgeKind, edgeIdx, cur, other))

			nodeKind := OpNodeFromOutgoing
			switch {
			case e.Bidirectional:
				nodeKind = OpNodeFromBidi
			case !knownIsSource:
				nodeKind = OpNodeFromIncoming
			}
			*ops = append(*ops, nodeFromEdgeOp(nodeKind, other))

			visitedNodes[other] = true
			queue = append(queue, other)
		}
	}
}
