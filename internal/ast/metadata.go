package ast

// NodeID uniquely identifies a node within one parsed rule file. The parser
// does not assign it; a node's Metadata stays nil until SetMetadata is
// called. It lets the LSP and error reporter refer back to a node without
// holding a pointer into the tree.
type NodeID uint32

// Metadata carries bookkeeping that isn't part of the grammar itself: an
// identity for cross-referencing from diagnostics, and a parent link for
// upward traversal (condition leaves need to find their owning rule).
type Metadata struct {
	ID       NodeID
	ParentID NodeID
}
