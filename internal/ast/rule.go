package ast

// RuleFile is the root of a parsed `.rule` source file: zero or more rule
// declarations, each independently compilable.
type RuleFile struct {
	base
	Pos    Position
	EndPos Position
	Rules  []*Rule `@@*`
}

func (f *RuleFile) NodePos() Position    { return f.Pos }
func (f *RuleFile) NodeEndPos() Position { return f.EndPos }
func (f *RuleFile) NodeType() NodeType   { return RULE_FILE }
func (f *RuleFile) String() string       { return printRuleFile(f) }

// Rule is one GP2 graph-transformation rule: a typed variable list, an LHS
// and RHS graph, the interface pairing preserved items between them, and an
// optional applicability condition.
type Rule struct {
	base
	Pos       Position
	EndPos    Position
	Name      string          `"rule" @Ident "{"`
	Vars      []*VarDecl      `[ "vars" "{" @@* "}" ]`
	LHS       *GraphBlock     `"lhs" "{" @@ "}"`
	RHS       *GraphBlock     `"rhs" "{" @@ "}"`
	Interface *InterfaceBlock `[ @@ ]`
	Where     *WhereClause    `[ @@ ]`
	CloseTok  string          `"}"`
}

func (r *Rule) NodePos() Position    { return r.Pos }
func (r *Rule) NodeEndPos() Position { return r.EndPos }
func (r *Rule) NodeType() NodeType   { return RULE }
func (r *Rule) String() string       { return printRule(r) }

// VarDecl declares one rule-scoped variable and its type. Labels and
// condition predicates reference variables by name; the IR builder resolves
// those references against this declaration list.
type VarDecl struct {
	base
	Pos, EndPos Position
	Type        string `@("int"|"char"|"string"|"atom"|"list")`
	Name        string `@Ident ";"`
}

func (v *VarDecl) NodePos() Position    { return v.Pos }
func (v *VarDecl) NodeEndPos() Position { return v.EndPos }
func (v *VarDecl) NodeType() NodeType   { return VAR_DECL }
func (v *VarDecl) String() string       { return v.Type + " " + v.Name }

// GraphBlock is the body of an `lhs { ... }` or `rhs { ... }` section: an
// unordered mix of node and edge declarations.
type GraphBlock struct {
	base
	Pos, EndPos Position
	Nodes       []*NodeDecl `( @@`
	Edges       []*EdgeDecl `| @@ )*`
}

func (g *GraphBlock) NodePos() Position    { return g.Pos }
func (g *GraphBlock) NodeEndPos() Position { return g.EndPos }
func (g *GraphBlock) NodeType() NodeType   { return GRAPH_BLOCK }
func (g *GraphBlock) String() string       { return printGraphBlock(g) }

// IdentRef is a position-tracked identifier reference, used anywhere a name
// names something declared elsewhere (a node in an edge endpoint, a
// variable in a predicate).
type IdentRef struct {
	base
	Pos, EndPos Position
	Name        string `@Ident`
}

func (i *IdentRef) NodePos() Position    { return i.Pos }
func (i *IdentRef) NodeEndPos() Position { return i.EndPos }
func (i *IdentRef) NodeType() NodeType   { return IDENT_REF }
func (i *IdentRef) String() string       { return i.Name }

// NodeDecl declares one node of a graph, with an optional root flag,
// optional mark, and optional label (a blank node has neither).
type NodeDecl struct {
	base
	Pos, EndPos Position
	Root        bool      `"node" [ @"root" ]`
	Name        string    `@Ident`
	Mark        *string   `[ "<" @("none"|"red"|"green"|"blue"|"grey"|"dashed"|"any") ">" ]`
	Label       *LabelLit `[ @@ ] ";"`
}

func (n *NodeDecl) NodePos() Position    { return n.Pos }
func (n *NodeDecl) NodeEndPos() Position { return n.EndPos }
func (n *NodeDecl) NodeType() NodeType   { return NODE_DECL }
func (n *NodeDecl) String() string       { return printNodeDecl(n) }

// EdgeDecl declares one edge between two previously-declared nodes of the
// same graph, directed unless marked bidirectional.
type EdgeDecl struct {
	base
	Pos, EndPos Position
	Name        string    `"edge" @Ident ":"`
	Source      *IdentRef `@@`
	Bidi        bool      `( @"<->" | "->" )`
	Target      *IdentRef `@@`
	Mark        *string   `[ "<" @("none"|"red"|"green"|"blue"|"grey"|"dashed"|"any") ">" ]`
	Label       *LabelLit `[ @@ ] ";"`
}

func (e *EdgeDecl) NodePos() Position    { return e.Pos }
func (e *EdgeDecl) NodeEndPos() Position { return e.EndPos }
func (e *EdgeDecl) NodeType() NodeType   { return EDGE_DECL }
func (e *EdgeDecl) String() string       { return printEdgeDecl(e) }

// InterfaceBlock lists the names shared between the LHS and RHS graphs of a
// rule: every name here must resolve to a node (or edge) on both sides.
// Anything declared on only one side is implicitly deleted or added.
type InterfaceBlock struct {
	base
	Pos, EndPos Position
	Names       []*IdentRef `"interface" "{" @@ ( "," @@ )* "}"`
}

func (i *InterfaceBlock) NodePos() Position    { return i.Pos }
func (i *InterfaceBlock) NodeEndPos() Position { return i.EndPos }
func (i *InterfaceBlock) NodeType() NodeType   { return INTERFACE_BLOCK }
func (i *InterfaceBlock) String() string       { return printInterfaceBlock(i) }

// LabelLit is a comma-separated list of atom expressions; an empty list is
// the blank label.
type LabelLit struct {
	base
	Pos, EndPos Position
	Atoms       []*AtomExpr `"[" ( @@ ( "," @@ )* )? "]"`
}

func (l *LabelLit) NodePos() Position    { return l.Pos }
func (l *LabelLit) NodeEndPos() Position { return l.EndPos }
func (l *LabelLit) NodeType() NodeType   { return LABEL_LIT }
func (l *LabelLit) String() string       { return printLabelLit(l) }

// AtomExpr is a left-associative chain of additive/multiplicative/
// concatenation operators over unary atoms, mirroring the flat BinOp chain
// style used for binary expressions elsewhere in the corpus.
type AtomExpr struct {
	base
	Pos, EndPos Position
	Left        *UnaryAtom `@@`
	Ops         []*AtomOp  `@@*`
}

func (a *AtomExpr) NodePos() Position    { return a.Pos }
func (a *AtomExpr) NodeEndPos() Position { return a.EndPos }
func (a *AtomExpr) NodeType() NodeType   { return ATOM_EXPR }
func (a *AtomExpr) String() string       { return printAtomExpr(a) }

// AtomOp is one link in an AtomExpr's operator chain.
type AtomOp struct {
	base
	Pos, EndPos Position
	Operator    string     `@("+"|"-"|"*"|"/"|".")`
	Right       *UnaryAtom `@@`
}

// UnaryAtom is a PrimaryAtom with an optional leading arithmetic negation.
type UnaryAtom struct {
	base
	Pos, EndPos Position
	Neg         bool         `[ @"-" ]`
	Value       *PrimaryAtom `@@`
}

// PrimaryAtom is one indivisible atom expression: a literal, a variable
// reference, a degree/length query, or a parenthesised sub-expression.
type PrimaryAtom struct {
	base
	Pos, EndPos Position
	Indeg       *IdentRef    `(   "indeg" "(" @@ ")"`
	Outdeg      *IdentRef    `  | "outdeg" "(" @@ ")"`
	Length      *PrimaryAtom `  | "#" @@`
	Int         *string      `  | @Int`
	Str         *string      `  | @String`
	Var         *string      `  | @Ident`
	Paren       *AtomExpr    `  | "(" @@ ")" )`
}

func (p *PrimaryAtom) NodePos() Position    { return p.Pos }
func (p *PrimaryAtom) NodeEndPos() Position { return p.EndPos }
func (p *PrimaryAtom) NodeType() NodeType   { return ATOM_EXPR }
func (p *PrimaryAtom) String() string       { return printPrimaryAtom(p) }
