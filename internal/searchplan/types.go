// Package searchplan generates the ordered sequence of matching operations
// a rule's matcher walks to bind host graph items to LHS items.
package searchplan

// OpKind enumerates every searchplan operation kind. The corpus's source
// material names these with single letters (r/n/e/l/s/t/i/o/b); Op.Letter
// carries that vocabulary alongside the descriptive Kind for readability.
//
// Binding a node discovered through an edge traversal is always two ops,
// not one: an edge op (s/t) that picks a candidate host edge from the
// already-known endpoint, followed immediately by a node op (i/o/b) that
// validates and binds the node the edge op discovered. This keeps the
// "exactly one op per LHS node, exactly one op per LHS edge" invariant
// literal instead of folding a node bind into its discovering edge op.
const (
	// OpRootNode seeds a new connected component at a root-flagged LHS node.
	OpRootNode OpKind = iota
	// OpFreeNode seeds a new connected component at a non-root LHS node,
	// used once every root has been consumed.
	OpFreeNode
	// OpEdgeBothKnown verifies an edge (directed or bidirectional) whose
	// endpoints are both already matched; it binds no new node.
	OpEdgeBothKnown
	// OpSelfLoop matches (or verifies) an edge whose source and target are
	// the same, already-bound LHS node; it binds no new node.
	OpSelfLoop
	// OpSourceKnown picks a candidate host edge using an already-bound
	// source; it binds the edge only. The node op that immediately follows
	// it (OpNodeFromOutgoing or OpNodeFromBidi) binds the target.
	OpSourceKnown
	// OpTargetKnown picks a candidate host edge using an already-bound
	// target; it binds the edge only. The node op that immediately follows
	// it (OpNodeFromIncoming or OpNodeFromBidi) binds the source.
	OpTargetKnown
	// OpNodeFromOutgoing binds the node discovered by an immediately
	// preceding OpSourceKnown on a directed edge.
	OpNodeFromOutgoing
	// OpNodeFromIncoming binds the node discovered by an immediately
	// preceding OpTargetKnown on a directed edge.
	OpNodeFromIncoming
	// OpNodeFromBidi binds the node discovered by an immediately preceding
	// OpSourceKnown or OpTargetKnown on a bidirectional edge, where the
	// known/unknown roles aren't directional.
	OpNodeFromBidi
)

type OpKind int

func (k OpKind) letter() byte {
	switch k {
	case OpRootNode:
		return 'r'
	case OpFreeNode:
		return 'n'
	case OpEdgeBothKnown:
		return 'e'
	case OpSelfLoop:
		return 'l'
	case OpSourceKnown:
		return 's'
	case OpTargetKnown:
		return 't'
	case OpNodeFromOutgoing:
		return 'o'
	case OpNodeFromIncoming:
		return 'i'
	case OpNodeFromBidi:
		return 'b'
	default:
		return '?'
	}
}

// Op is one step of a searchplan: a node seed, an edge traversal that binds
// only the edge, a node bind that consumes the edge traversal immediately
// before it, or an edge verification between two already-bound nodes.
type Op struct {
	Kind      OpKind
	Letter    byte
	ItemIndex int  // LHS node index (node ops) or LHS edge index (edge ops)
	IsNode    bool // true for OpRootNode/OpFreeNode/OpNodeFrom{Outgoing,Incoming,Bidi}
	KnownNode int  // already-matched endpoint node index (edge ops only), -1 otherwise
	OtherNode int  // other endpoint's LHS node index (edge ops only), -1 otherwise
}

// IsSeed reports whether this op binds a node with no incident-edge
// precondition.
func (o Op) IsSeed() bool {
	return o.Kind == OpRootNode || o.Kind == OpFreeNode
}

// BindsNewNode reports whether this op binds a node that was not already
// matched. This is exactly the node ops: seeds bind unconditionally, and
// the three node-from-edge kinds always bind the node their preceding edge
// op discovered.
func (o Op) BindsNewNode() bool {
	return o.IsNode
}
