package exec

import (
	"gp2c/internal/hostgraph"
	"gp2c/internal/ir"
	"gp2c/internal/searchplan"
)

// MatchRule runs rule's searchplan against host and returns the first
// satisfying morphism, backtracking over injective node/edge choices and
// variable bindings. It never returns a Go error for an ordinary failed
// match — failure is reported via the bool, matching spec.md §7's
// "backtracking is runtime, modeled as plain bool returns" design.
func MatchRule(rule *ir.Rule, ops []searchplan.Op, host *hostgraph.Graph) (*hostgraph.Morphism, bool) {
	m := hostgraph.NewMorphism()
	if search(rule, ops, 0, -1, host, m) {
		if rule.Condition != nil {
			ok, err := EvaluateCondition(rule, Bindings{Morphism: m, Host: host, Rule: rule})
			if err != nil || !ok {
				return nil, false
			}
		}
		return m, true
	}
	return nil, false
}

// search walks the searchplan from op i. pendingHost carries the host node
// index an immediately preceding edge op (s/t) discovered but did not bind;
// the node op (o/i/b) that must follow such an edge op consumes it. It is
// -1 whenever no node bind is pending.
func search(rule *ir.Rule, ops []searchplan.Op, i, pendingHost int, host *hostgraph.Graph, m *hostgraph.Morphism) bool {
	if i == len(ops) {
		if rule.Condition == nil {
			return true
		}
		ok, err := EvaluateCondition(rule, Bindings{Morphism: m, Host: host, Rule: rule})
		return err == nil && ok
	}
	op := ops[i]
	nodeMark, edgeMark, varMark, listMark := m.Mark()
	tryNext := func() bool { return search(rule, ops, i+1, -1, host, m) }

	switch op.Kind {
	case searchplan.OpRootNode, searchplan.OpFreeNode:
		lhsNode := rule.LHS.Nodes[op.ItemIndex]
		for _, hn := range host.Nodes {
			if hn == nil {
				continue
			}
			if op.Kind == searchplan.OpRootNode && !hn.Root {
				continue
			}
			if m.NodeImageUsed(hn.Index) {
				continue
			}
			if !tryBindNode(rule, lhsNode, hn, host, m) {
				m.UndoTo(nodeMark, edgeMark, varMark, listMark)
				continue
			}
			if tryNext() {
				return true
			}
			m.UndoTo(nodeMark, edgeMark, varMark, listMark)
		}
		return false

	case searchplan.OpSourceKnown, searchplan.OpTargetKnown:
		lhsEdge := rule.LHS.Edges[op.ItemIndex]
		hostKnown := m.NodeMap[op.KnownNode]
		for _, he := range host.Edges {
			if he == nil || he.Bidirectional != lhsEdge.Bidirectional {
				continue
			}
			var otherHost int
			if op.Kind == searchplan.OpSourceKnown {
				if he.Source != hostKnown {
					continue
				}
				otherHost = he.Target
			} else {
				if he.Target != hostKnown {
					continue
				}
				otherHost = he.Source
			}
			if m.EdgeImageUsed(he.Index) || m.NodeImageUsed(otherHost) {
				continue
			}
			if !tryBindEdge(rule, lhsEdge, he, host, m) {
				m.UndoTo(nodeMark, edgeMark, varMark, listMark)
				continue
			}
			if search(rule, ops, i+1, otherHost, host, m) {
				return true
			}
			m.UndoTo(nodeMark, edgeMark, varMark, listMark)
		}
		return false

	case searchplan.OpNodeFromOutgoing, searchplan.OpNodeFromIncoming, searchplan.OpNodeFromBidi:
		lhsNode := rule.LHS.Nodes[op.ItemIndex]
		hn := host.Node(pendingHost)
		if tryBindNodeLabelOnly(rule, lhsNode, hn, host, m) {
			m.BindNode(op.ItemIndex, pendingHost)
			if tryNext() {
				return true
			}
		}
		m.UndoTo(nodeMark, edgeMark, varMark, listMark)
		return false

	case searchplan.OpEdgeBothKnown:
		lhsEdge := rule.LHS.Edges[op.ItemIndex]
		hostSrc := m.NodeMap[lhsEdge.Source]
		hostTgt := m.NodeMap[lhsEdge.Target]
		for _, he := range host.Edges {
			if he == nil || he.Bidirectional != lhsEdge.Bidirectional {
				continue
			}
			matches := (he.Source == hostSrc && he.Target == hostTgt) ||
				(he.Bidirectional && he.Source == hostTgt && he.Target == hostSrc)
			if !matches || m.EdgeImageUsed(he.Index) {
				continue
			}
			if !tryBindEdge(rule, lhsEdge, he, host, m) {
				m.UndoTo(nodeMark, edgeMark, varMark, listMark)
				continue
			}
			if tryNext() {
				return true
			}
			m.UndoTo(nodeMark, edgeMark, varMark, listMark)
		}
		return false

	case searchplan.OpSelfLoop:
		lhsEdge := rule.LHS.Edges[op.ItemIndex]
		hostKnown := m.NodeMap[op.KnownNode]
		for _, he := range host.Edges {
			if he == nil || he.Source != hostKnown || he.Target != hostKnown {
				continue
			}
			if he.Bidirectional != lhsEdge.Bidirectional || m.EdgeImageUsed(he.Index) {
				continue
			}
			if !tryBindEdge(rule, lhsEdge, he, host, m) {
				m.UndoTo(nodeMark, edgeMark, varMark, listMark)
				continue
			}
			if tryNext() {
				return true
			}
			m.UndoTo(nodeMark, edgeMark, varMark, listMark)
		}
		return false
	}
	return false
}

// tryBindNode checks mark/label/degree compatibility for lhsNode against hn,
// binding any fresh label variables, and records the node binding on
// success.
func tryBindNode(rule *ir.Rule, lhsNode *ir.Node, hn *hostgraph.Node, host *hostgraph.Graph, m *hostgraph.Morphism) bool {
	if !checkDegree(lhsNode, hn, host) {
		return false
	}
	if !unifyLabel(rule, lhsNode.Label, hn.Label, hn.Mark, m) {
		return false
	}
	m.BindNode(lhsNode.Index, hn.Index)
	return true
}

// tryBindNodeLabelOnly validates a node discovered via an edge op (mark,
// degree, label); the caller performs the actual index bind once this
// succeeds.
func tryBindNodeLabelOnly(rule *ir.Rule, lhsNode *ir.Node, hn *hostgraph.Node, host *hostgraph.Graph, m *hostgraph.Morphism) bool {
	if hn == nil {
		return false
	}
	if m.NodeImageUsed(hn.Index) {
		return false
	}
	if !checkDegree(lhsNode, hn, host) {
		return false
	}
	return unifyLabel(rule, lhsNode.Label, hn.Label, hn.Mark, m)
}

func checkDegree(lhsNode *ir.Node, hn *hostgraph.Node, host *hostgraph.Graph) bool {
	if !lhsNode.Deleted {
		return true
	}
	wantIn := lhsNode.Indegree + lhsNode.Bidegree
	wantOut := lhsNode.Outdegree + lhsNode.Bidegree
	return host.Indegree(hn.Index) == wantIn && host.Outdegree(hn.Index) == wantOut
}

func tryBindEdge(rule *ir.Rule, lhsEdge *ir.Edge, he *hostgraph.Edge, host *hostgraph.Graph, m *hostgraph.Morphism) bool {
	if !unifyLabel(rule, lhsEdge.Label, he.Label, he.Mark, m) {
		return false
	}
	m.BindEdge(lhsEdge.Index, he.Index)
	return true
}

// unifyLabel checks an LHS label against a concrete host list+mark,
// binding any as-yet-unbound variables it references. A list-typed
// variable consumes every remaining host atom; any other atom consumes
// exactly one. Scalar variables are constrained by their declared type:
// an integer variable accepts only an integer atom, a character variable
// accepts only a single-character string atom.
func unifyLabel(rule *ir.Rule, lbl *ir.Label, hostList hostgraph.List, hostMark hostgraph.Mark, m *hostgraph.Morphism) bool {
	if lbl == nil {
		return len(hostList) == 0
	}
	if lbl.Mark != ir.MarkAny && lbl.Mark != hostMark {
		return false
	}
	pos := 0
	for _, atom := range lbl.Atoms {
		if atom.Kind == ir.AtomVarRef {
			if v, ok := rule.Variables[atom.VarName]; ok && v.Type == ir.VarList {
				if _, bound := m.ListAssign[atom.VarName]; !bound {
					remaining := append(hostgraph.List{}, hostList[pos:]...)
					m.AssignList(atom.VarName, remaining)
					pos = len(hostList)
					continue
				}
			}
		}
		if pos >= len(hostList) {
			return false
		}
		want := hostList[pos]
		if atom.Kind == ir.AtomVarRef {
			if existing, ok := m.Assignment[atom.VarName]; ok {
				if !existing.Equal(want) {
					return false
				}
			} else {
				if v, ok := rule.Variables[atom.VarName]; ok && !variableAcceptsAtom(v.Type, want) {
					return false
				}
				m.AssignVar(atom.VarName, want)
			}
			pos++
			continue
		}
		b := Bindings{Morphism: m, Host: nil, Rule: rule}
		val, isList, list, err := evaluateAtom(atom, b)
		if err != nil {
			return false
		}
		if isList {
			for _, v := range list {
				if pos >= len(hostList) || !hostList[pos].Equal(v) {
					return false
				}
				pos++
			}
			continue
		}
		if !val.Equal(want) {
			return false
		}
		pos++
	}
	return pos == len(hostList)
}

// variableAcceptsAtom reports whether a freshly-bound host atom is
// compatible with a variable's declared type: integer variables accept
// only integer atoms, character variables accept only single-character
// string atoms. string/atom/list variables accept any scalar atom here
// (list variables are handled separately above, before any atom is
// consumed one at a time).
func variableAcceptsAtom(t ir.VarType, v hostgraph.Value) bool {
	switch t {
	case ir.VarInteger:
		return !v.IsString
	case ir.VarCharacter:
		return v.IsString && len([]rune(v.Str)) == 1
	default:
		return true
	}
}
