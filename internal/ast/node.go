package ast

//go:generate stringer -type=NodeType

// NodeType classifies a Node for diagnostics and LSP hover text without a
// type switch at every call site.
type NodeType int

const (
	ILLEGAL NodeType = iota
	RULE_FILE
	RULE
	VAR_DECL
	GRAPH_BLOCK
	NODE_DECL
	EDGE_DECL
	LABEL_LIT
	ATOM_EXPR
	INTERFACE_BLOCK
	WHERE_CLAUSE
	COND_OR
	COND_AND
	COND_NOT
	COND_PRIMARY
	IDENT_REF
)

// Node is implemented by every AST type that participates in diagnostics:
// it can report its own source span and look itself up by identity.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
	GetMetadata() *Metadata
	SetMetadata(*Metadata)
}

// base is embedded by every concrete node to satisfy the metadata half of
// the Node interface without repeating the same three lines everywhere.
type base struct {
	meta *Metadata
}

func (b *base) GetMetadata() *Metadata { return b.meta }
func (b *base) SetMetadata(m *Metadata) { b.meta = m }
