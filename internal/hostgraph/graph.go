package hostgraph

// Graph is the reference host graph implementation: an in-memory graph
// whose node/edge indices stay stable across deletion (a removed item
// becomes a "hole" rather than shifting every later index), matching the
// addressing scheme the rule IR assumes when it binds morphisms by index.
type Graph struct {
	Nodes   []*Node
	Edges   []*Edge
	Journal *Journal
}

// NewGraph creates an empty host graph with a fresh journal.
func NewGraph() *Graph {
	return &Graph{Journal: NewJournal()}
}

// Node returns the node at index i, or nil if the index is out of range or
// has been deleted.
func (g *Graph) Node(i int) *Node {
	if i < 0 || i >= len(g.Nodes) {
		return nil
	}
	n := g.Nodes[i]
	if n == nil || n.deleted {
		return nil
	}
	return n
}

// Edge returns the edge at index i, or nil if the index is out of range or
// has been deleted.
func (g *Graph) Edge(i int) *Edge {
	if i < 0 || i >= len(g.Edges) {
		return nil
	}
	e := g.Edges[i]
	if e == nil || e.deleted {
		return nil
	}
	return e
}

// NodeCount returns the number of live (non-deleted) nodes.
func (g *Graph) NodeCount() int {
	n := 0
	for _, node := range g.Nodes {
		if node != nil && !node.deleted {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of live (non-deleted) edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, e := range g.Edges {
		if e != nil && !e.deleted {
			n++
		}
	}
	return n
}

// RootNodes returns the indices of every live root-flagged node, in index
// order.
func (g *Graph) RootNodes() []int {
	var roots []int
	for _, n := range g.Nodes {
		if n != nil && !n.deleted && n.Root {
			roots = append(roots, n.Index)
		}
	}
	return roots
}

// Source returns the source node index of edge i.
func (g *Graph) Source(edgeIdx int) int { return g.Edges[edgeIdx].Source }

// Target returns the target node index of edge i.
func (g *Graph) Target(edgeIdx int) int { return g.Edges[edgeIdx].Target }

// Indegree counts live directed in-edges of node i (a bidirectional edge
// incident on i counts toward both Indegree and Outdegree).
func (g *Graph) Indegree(nodeIdx int) int {
	n := 0
	for _, e := range g.Edges {
		if e == nil || e.deleted {
			continue
		}
		if e.Target == nodeIdx && (!e.Bidirectional || e.Source != nodeIdx) {
			n++
		}
		if e.Bidirectional && e.Source == nodeIdx {
			n++
		}
	}
	return n
}

// Outdegree counts live directed out-edges of node i.
func (g *Graph) Outdegree(nodeIdx int) int {
	n := 0
	for _, e := range g.Edges {
		if e == nil || e.deleted {
			continue
		}
		if e.Source == nodeIdx && (!e.Bidirectional || e.Target != nodeIdx) {
			n++
		}
		if e.Bidirectional && e.Target == nodeIdx {
			n++
		}
	}
	return n
}

// NthInEdge returns the index of the n-th live in-edge of nodeIdx (0-based,
// in edge-index order), or -1 if there is no such edge.
func (g *Graph) NthInEdge(nodeIdx, n int) int {
	count := 0
	for _, e := range g.Edges {
		if e == nil || e.deleted {
			continue
		}
		if e.Target == nodeIdx || (e.Bidirectional && e.Source == nodeIdx) {
			if count == n {
				return e.Index
			}
			count++
		}
	}
	return -1
}

// NthOutEdge returns the index of the n-th live out-edge of nodeIdx.
func (g *Graph) NthOutEdge(nodeIdx, n int) int {
	count := 0
	for _, e := range g.Edges {
		if e == nil || e.deleted {
			continue
		}
		if e.Source == nodeIdx || (e.Bidirectional && e.Target == nodeIdx) {
			if count == n {
				return e.Index
			}
			count++
		}
	}
	return -1
}

// AddNode appends a new node and returns its index. record controls
// whether the addition is pushed to the journal for later rollback.
func (g *Graph) AddNode(label List, mark Mark, root bool, record bool) int {
	idx := len(g.Nodes)
	g.Nodes = append(g.Nodes, &Node{Index: idx, Label: label, Mark: mark, Root: root})
	if record {
		g.Journal.PushAddedNode(idx)
	}
	return idx
}

// AddEdge appends a new edge and returns its index.
func (g *Graph) AddEdge(source, target int, bidirectional bool, label List, mark Mark, record bool) int {
	idx := len(g.Edges)
	g.Edges = append(g.Edges, &Edge{Index: idx, Source: source, Target: target, Bidirectional: bidirectional, Label: label, Mark: mark})
	if record {
		g.Journal.PushAddedEdge(idx)
	}
	return idx
}

// RemoveNode marks node i deleted, journaling its before-image.
func (g *Graph) RemoveNode(i int, record bool) {
	n := g.Nodes[i]
	if record {
		g.Journal.PushRemovedNode(*n)
	}
	n.deleted = true
}

// RemoveEdge marks edge i deleted, journaling its before-image.
func (g *Graph) RemoveEdge(i int, record bool) {
	e := g.Edges[i]
	if record {
		g.Journal.PushRemovedEdge(*e)
	}
	e.deleted = true
}

// RelabelNode replaces node i's label, journaling the prior label.
func (g *Graph) RelabelNode(i int, newLabel List, record bool) {
	n := g.Nodes[i]
	if record {
		g.Journal.PushRelabelledNode(i, n.Label)
	}
	n.Label = newLabel
}

// RelabelEdge replaces edge i's label, journaling the prior label.
func (g *Graph) RelabelEdge(i int, newLabel List, record bool) {
	e := g.Edges[i]
	if record {
		g.Journal.PushRelabelledEdge(i, e.Label)
	}
	e.Label = newLabel
}

// ChangeNodeMark replaces node i's mark, journaling the prior mark.
func (g *Graph) ChangeNodeMark(i int, newMark Mark, record bool) {
	n := g.Nodes[i]
	if record {
		g.Journal.PushRemarkedNode(i, n.Mark)
	}
	n.Mark = newMark
}

// ChangeEdgeMark replaces edge i's mark, journaling the prior mark.
func (g *Graph) ChangeEdgeMark(i int, newMark Mark, record bool) {
	e := g.Edges[i]
	if record {
		g.Journal.PushRemarkedEdge(i, e.Mark)
	}
	e.Mark = newMark
}

// ChangeRoot replaces node i's root flag, journaling the prior flag.
func (g *Graph) ChangeRoot(i int, newRoot bool, record bool) {
	n := g.Nodes[i]
	if record {
		g.Journal.PushChangedRootNode(i, n.Root)
	}
	n.Root = newRoot
}

// BlankLabel is the distinguished empty label.
func BlankLabel() List { return nil }

// EqualLabels reports whether two labels hold the same atoms in the same
// order.
func EqualLabels(a, b List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// EqualHostLabels is EqualLabels specialised for comparing a host item's
// current label against a freshly evaluated one; kept as a distinct name
// because the two call sites (match-time vs apply-time comparison) read
// the emitted code more clearly with separate names, matching the runtime
// surface table.
func EqualHostLabels(a, b List) bool { return EqualLabels(a, b) }

// RemoveHostList removes the first occurrence of each atom of needle from
// haystack, in order, and reports whether every needle atom was found.
// The matcher in internal/exec does not call it; its list-variable binding
// is positional.
func RemoveHostList(haystack, needle List) (List, bool) {
	remaining := append(List{}, haystack...)
	for _, want := range needle {
		found := -1
		for i, have := range remaining {
			if have.Equal(want) {
				found = i
				break
			}
		}
		if found == -1 {
			return nil, false
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	return remaining, true
}
