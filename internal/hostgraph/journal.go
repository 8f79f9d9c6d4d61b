package hostgraph

// entryKind distinguishes the journal entry variants recorded during rule
// application.
type entryKind int

const (
	entryRemovedNode entryKind = iota
	entryRemovedEdge
	entryAddedNode
	entryAddedEdge
	entryRelabelledNode
	entryRelabelledEdge
	entryRemarkedNode
	entryRemarkedEdge
	entryChangedRootNode
)

// entry is one before-image record. Only the fields relevant to kind are
// populated; the rest are zero.
type entry struct {
	kind     entryKind
	index    int
	node     Node
	edge     Edge
	label    List
	mark     Mark
	rootFlag bool
}

// Journal is an append-only stack of before-images recorded while applying
// a rule, so a failed or speculative application can be rolled back in
// O(entries) by replaying them in reverse.
type Journal struct {
	entries []entry
}

// NewJournal creates an empty journal.
func NewJournal() *Journal { return &Journal{} }

// Mark returns the current depth, to be passed to Rollback later.
func (j *Journal) Mark() int { return len(j.entries) }

// PushRemovedNode records a node's full state just before it was deleted.
func (j *Journal) PushRemovedNode(n Node) {
	j.entries = append(j.entries, entry{kind: entryRemovedNode, index: n.Index, node: n})
}

// PushRemovedEdge records an edge's full state just before it was deleted.
func (j *Journal) PushRemovedEdge(e Edge) {
	j.entries = append(j.entries, entry{kind: entryRemovedEdge, index: e.Index, edge: e})
}

// PushAddedNode records that a node was added, so rollback can re-delete it.
func (j *Journal) PushAddedNode(index int) {
	j.entries = append(j.entries, entry{kind: entryAddedNode, index: index})
}

// PushAddedEdge records that an edge was added, so rollback can re-delete it.
func (j *Journal) PushAddedEdge(index int) {
	j.entries = append(j.entries, entry{kind: entryAddedEdge, index: index})
}

// PushRelabelledNode records a node's prior label.
func (j *Journal) PushRelabelledNode(index int, oldLabel List) {
	j.entries = append(j.entries, entry{kind: entryRelabelledNode, index: index, label: oldLabel})
}

// PushRelabelledEdge records an edge's prior label.
func (j *Journal) PushRelabelledEdge(index int, oldLabel List) {
	j.entries = append(j.entries, entry{kind: entryRelabelledEdge, index: index, label: oldLabel})
}

// PushRemarkedNode records a node's prior mark.
func (j *Journal) PushRemarkedNode(index int, oldMark Mark) {
	j.entries = append(j.entries, entry{kind: entryRemarkedNode, index: index, mark: oldMark})
}

// PushRemarkedEdge records an edge's prior mark.
func (j *Journal) PushRemarkedEdge(index int, oldMark Mark) {
	j.entries = append(j.entries, entry{kind: entryRemarkedEdge, index: index, mark: oldMark})
}

// PushChangedRootNode records a node's prior root flag.
func (j *Journal) PushChangedRootNode(index int, oldRoot bool) {
	j.entries = append(j.entries, entry{kind: entryChangedRootNode, index: index, rootFlag: oldRoot})
}

// Rollback undoes every entry recorded since mark, in reverse order, and
// truncates the journal back to mark.
func (j *Journal) Rollback(g *Graph, mark int) {
	for i := len(j.entries) - 1; i >= mark; i-- {
		e := j.entries[i]
		switch e.kind {
		case entryRemovedNode:
			g.Nodes[e.index] = &e.node
		case entryRemovedEdge:
			g.Edges[e.index] = &e.edge
		case entryAddedNode:
			g.Nodes[e.index].deleted = true
		case entryAddedEdge:
			g.Edges[e.index].deleted = true
		case entryRelabelledNode:
			g.Nodes[e.index].Label = e.label
		case entryRelabelledEdge:
			g.Edges[e.index].Label = e.label
		case entryRemarkedNode:
			g.Nodes[e.index].Mark = e.mark
		case entryRemarkedEdge:
			g.Edges[e.index].Mark = e.mark
		case entryChangedRootNode:
			g.Nodes[e.index].Root = e.rootFlag
		}
	}
	j.entries = j.entries[:mark]
}

// Commit discards every entry recorded since mark without undoing it; used
// once a rule application is known to stick and its rollback window is no
// longer needed. Entries older than mark are kept.
func (j *Journal) Commit(mark int) {
	j.entries = j.entries[:mark]
}
