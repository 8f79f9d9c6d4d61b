package hostgraph

// Morphism is the partial-then-total binding a matcher builds while
// walking the searchplan: LHS node/edge indices to host indices, and LHS
// variable names to the values assigned to satisfy them. Backtracking pops
// bindings in O(1) amortised per step rather than cloning the whole map.
type Morphism struct {
	NodeMap    map[int]int
	EdgeMap    map[int]int
	Assignment map[string]Value
	ListAssign map[string]List

	nodeOrder []int
	edgeOrder []int
	varOrder  []string
	listOrder []string
}

// NewMorphism creates an empty morphism.
func NewMorphism() *Morphism {
	return &Morphism{
		NodeMap:    make(map[int]int),
		EdgeMap:    make(map[int]int),
		Assignment: make(map[string]Value),
		ListAssign: make(map[string]List),
	}
}

// BindNode records that LHS node lhsIdx matched host node hostIdx.
func (m *Morphism) BindNode(lhsIdx, hostIdx int) {
	m.NodeMap[lhsIdx] = hostIdx
	m.nodeOrder = append(m.nodeOrder, lhsIdx)
}

// BindEdge records that LHS edge lhsIdx matched host edge hostIdx.
func (m *Morphism) BindEdge(lhsIdx, hostIdx int) {
	m.EdgeMap[lhsIdx] = hostIdx
	m.edgeOrder = append(m.edgeOrder, lhsIdx)
}

// AssignVar records a scalar variable assignment.
func (m *Morphism) AssignVar(name string, v Value) {
	m.Assignment[name] = v
	m.varOrder = append(m.varOrder, name)
}

// AssignList records a list-typed variable assignment.
func (m *Morphism) AssignList(name string, v List) {
	m.ListAssign[name] = v
	m.listOrder = append(m.listOrder, name)
}

// Mark returns the current undo depth for every binding kind, to be
// restored together by UndoTo.
func (m *Morphism) Mark() (nodes, edges, vars, lists int) {
	return len(m.nodeOrder), len(m.edgeOrder), len(m.varOrder), len(m.listOrder)
}

// UndoTo rolls back every binding made after the given mark, in O(k) where
// k is the number of bindings undone.
func (m *Morphism) UndoTo(nodes, edges, vars, lists int) {
	for len(m.nodeOrder) > nodes {
		last := m.nodeOrder[len(m.nodeOrder)-1]
		delete(m.NodeMap, last)
		m.nodeOrder = m.nodeOrder[:len(m.nodeOrder)-1]
	}
	for len(m.edgeOrder) > edges {
		last := m.edgeOrder[len(m.edgeOrder)-1]
		delete(m.EdgeMap, last)
		m.edgeOrder = m.edgeOrder[:len(m.edgeOrder)-1]
	}
	for len(m.varOrder) > vars {
		last := m.varOrder[len(m.varOrder)-1]
		delete(m.Assignment, last)
		m.varOrder = m.varOrder[:len(m.varOrder)-1]
	}
	for len(m.listOrder) > lists {
		last := m.listOrder[len(m.listOrder)-1]
		delete(m.ListAssign, last)
		m.listOrder = m.listOrder[:len(m.listOrder)-1]
	}
}

// HasNode reports whether LHS node lhsIdx is already bound.
func (m *Morphism) HasNode(lhsIdx int) bool {
	_, ok := m.NodeMap[lhsIdx]
	return ok
}

// HasEdge reports whether LHS edge lhsIdx is already bound.
func (m *Morphism) HasEdge(lhsIdx int) bool {
	_, ok := m.EdgeMap[lhsIdx]
	return ok
}

// NodeImageUsed reports whether hostIdx is already the image of some LHS
// node under this morphism, enforcing the injectivity requirement on node
// images.
func (m *Morphism) NodeImageUsed(hostIdx int) bool {
	for _, v := range m.NodeMap {
		if v == hostIdx {
			return true
		}
	}
	return false
}

// EdgeImageUsed reports whether hostIdx is already the image of some LHS
// edge under this morphism.
func (m *Morphism) EdgeImageUsed(hostIdx int) bool {
	for _, v := range m.EdgeMap {
		if v == hostIdx {
			return true
		}
	}
	return false
}

// Highlights reconstructs the predicate-rule highlight set from the final
// morphism: one entry per bound LHS node and edge, all nodes first and then
// all edges, each group in binding order.
func (m *Morphism) Highlights() []Highlight {
	var hs []Highlight
	for _, lhsIdx := range m.nodeOrder {
		hs = append(hs, Highlight{NodeIndex: m.NodeMap[lhsIdx], IsNode: true})
	}
	for _, lhsIdx := range m.edgeOrder {
		hs = append(hs, Highlight{EdgeIndex: m.EdgeMap[lhsIdx], IsNode: false})
	}
	return hs
}
