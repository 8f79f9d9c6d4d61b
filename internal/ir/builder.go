package ir

import (
	"strconv"

	"gp2c/internal/ast"
	"gp2c/internal/errors"
)

// Builder converts a parsed ast.Rule into the rule IR. A Builder is reused
// across rules in one file; every per-rule counter is reset at the start of
// Build, mirroring the reset-per-compilation-unit discipline of the
// corpus's own IR builders.
type Builder struct {
	boolCount int
	diags     []errors.CompilerError
	varPos    map[string]ast.Position
}

// NewBuilder creates a Builder ready to build any number of rules.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build converts one parsed rule into its IR. The returned diagnostics list
// may contain both fatal errors and warnings (see errors.IsWarning); the
// caller should treat the *Rule as unusable for code generation if any
// diagnostic has Level == errors.Error.
func (b *Builder) Build(ruleAST *ast.Rule) (*Rule, []errors.CompilerError) {
	b.boolCount = 0
	b.diags = nil
	b.varPos = map[string]ast.Position{}

	rule := &Rule{Name: ruleAST.Name, Variables: map[string]*Variable{}}

	for _, vd := range ruleAST.Vars {
		if _, exists := rule.Variables[vd.Name]; exists {
			b.addError(errors.DuplicateDeclaration(vd.Name, vd.Pos))
			continue
		}
		rule.Variables[vd.Name] = &Variable{Name: vd.Name, Type: varTypeFromString(vd.Type)}
		rule.VarOrder = append(rule.VarOrder, vd.Name)
		b.varPos[vd.Name] = vd.Pos
	}

	rule.LHS = b.buildGraph(ruleAST.LHS, rule, false)
	rule.RHS = b.buildGraph(ruleAST.RHS, rule, true)
	computeDegrees(rule.LHS)

	b.pairInterface(ruleAST, rule)
	finalizeInterface(rule)

	b.buildCondition(ruleAST.Where, rule)
	rule.IsPredicate = computeIsPredicate(rule)

	for _, name := range rule.VarOrder {
		v := rule.Variables[name]
		if !v.Used {
			b.addError(errors.UnusedVariable(name, b.varPos[name]))
		}
	}

	return rule, b.diags
}

func (b *Builder) addError(e errors.CompilerError) {
	b.diags = append(b.diags, e)
}

func (b *Builder) nextBoolID() int {
	id := b.boolCount
	b.boolCount++
	return id
}

// --- graphs -----------------------------------------------------------

func (b *Builder) buildGraph(gb *ast.GraphBlock, rule *Rule, isRHS bool) *Graph {
	g := newGraph()
	if gb == nil {
		return g
	}

	for _, nd := range gb.Nodes {
		if _, exists := g.NodeIndex[nd.Name]; exists {
			b.addError(errors.DuplicateDeclaration(nd.Name, nd.Pos))
			continue
		}
		idx := len(g.Nodes)
		label := b.buildLabel(nd.Label, nd.Mark, rule, isRHS, nd.Name, nd.Pos)
		g.Nodes = append(g.Nodes, &Node{Index: idx, Name: nd.Name, Root: nd.Root, Label: label, Interface: -1})
		g.NodeIndex[nd.Name] = idx
	}

	for _, ed := range gb.Edges {
		if _, exists := g.EdgeIndex[ed.Name]; exists {
			b.addError(errors.DuplicateDeclaration(ed.Name, ed.Pos))
			continue
		}
		srcIdx, srcOk := g.NodeIndex[ed.Source.Name]
		if !srcOk {
			b.addError(errors.UnresolvedNodeName(ed.Source.Name, ed.Source.Pos, g.nodeNames()))
		}
		tgtIdx, tgtOk := g.NodeIndex[ed.Target.Name]
		if !tgtOk {
			b.addError(errors.UnresolvedNodeName(ed.Target.Name, ed.Target.Pos, g.nodeNames()))
		}
		if !srcOk || !tgtOk {
			continue
		}
		idx := len(g.Edges)
		label := b.buildLabel(ed.Label, ed.Mark, rule, isRHS, ed.Name, ed.Pos)
		g.Edges = append(g.Edges, &Edge{
			Index: idx, Name: ed.Name, Source: srcIdx, Target: tgtIdx,
			Bidirectional: ed.Bidi, Label: label, Interface: -1,
		})
		g.EdgeIndex[ed.Name] = idx
	}

	return g
}

func (g *Graph) nodeNames() []string {
	names := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		names[i] = n.Name
	}
	return names
}

func computeDegrees(g *Graph) {
	for _, e := range g.Edges {
		if e.Bidirectional {
			g.Nodes[e.Source].Bidegree++
			g.Nodes[e.Target].Bidegree++
		} else {
			g.Nodes[e.Source].Outdegree++
			g.Nodes[e.Target].Indegree++
		}
	}
}

// --- interface ----------------------------------------------------------

func (b *Builder) pairInterface(ruleAST *ast.Rule, rule *Rule) {
	if ruleAST.Interface == nil {
		return
	}
	for _, ref := range ruleAST.Interface.Names {
		name := ref.Name

		lhsNodeIdx, lhsNodeOk := rule.LHS.NodeIndex[name]
		rhsNodeIdx, rhsNodeOk := rule.RHS.NodeIndex[name]
		if lhsNodeOk && rhsNodeOk {
			rule.LHS.Nodes[lhsNodeIdx].Interface = rhsNodeIdx
			rule.RHS.Nodes[rhsNodeIdx].Interface = lhsNodeIdx
			continue
		}

		lhsEdgeIdx, lhsEdgeOk := rule.LHS.EdgeIndex[name]
		rhsEdgeIdx, rhsEdgeOk := rule.RHS.EdgeIndex[name]
		if lhsEdgeOk && rhsEdgeOk {
			rule.LHS.Edges[lhsEdgeIdx].Interface = rhsEdgeIdx
			rule.RHS.Edges[rhsEdgeIdx].Interface = lhsEdgeIdx
			continue
		}

		b.addError(errors.UnresolvedInterfaceName(name, ref.Pos, rule.LHS.nodeNames(), rule.RHS.nodeNames()))
	}
}

func finalizeInterface(rule *Rule) {
	for _, n := range rule.LHS.Nodes {
		if n.Interface == -1 {
			n.Deleted = true
			continue
		}
		rhs := rule.RHS.Nodes[n.Interface]
		n.Relabelled = !atomsEqualList(n.Label.Atoms, rhs.Label.Atoms)
		n.Remarked = n.Label.Mark != rhs.Label.Mark
		n.RootChanged = n.Root != rhs.Root
		rhs.Relabelled, rhs.Remarked, rhs.RootChanged = n.Relabelled, n.Remarked, n.RootChanged
	}
	for _, n := range rule.RHS.Nodes {
		if n.Interface == -1 {
			n.Added = true
		}
	}

	for _, e := range rule.LHS.Edges {
		if e.Interface == -1 {
			e.Deleted = true
			continue
		}
		rhs := rule.RHS.Edges[e.Interface]
		e.Relabelled = !atomsEqualList(e.Label.Atoms, rhs.Label.Atoms)
		e.Remarked = e.Label.Mark != rhs.Label.Mark
		rhs.Relabelled, rhs.Remarked = e.Relabelled, e.Remarked
	}
	for _, e := range rule.RHS.Edges {
		if e.Interface == -1 {
			e.Added = true
		}
	}
}

func computeIsPredicate(rule *Rule) bool {
	if len(rule.LHS.Nodes) == 0 {
		return false
	}
	for _, n := range rule.LHS.Nodes {
		if n.Deleted || n.Relabelled || n.Remarked || n.RootChanged {
			return false
		}
	}
	for _, n := range rule.RHS.Nodes {
		if n.Added {
			return false
		}
	}
	for _, e := range rule.LHS.Edges {
		if e.Deleted || e.Relabelled || e.Remarked {
			return false
		}
	}
	for _, e := range rule.RHS.Edges {
		if e.Added {
			return false
		}
	}
	return true
}

// --- labels & atoms -------------------------------------------------------

func (b *Builder) buildLabel(lit *ast.LabelLit, markTok *string, rule *Rule, isRHS bool, itemName string, pos ast.Position) *Label {
	var atoms []*Atom
	if lit != nil {
		for _, a := range lit.Atoms {
			atoms = append(atoms, b.buildAtomExpr(a, rule))
		}
	}
	mark := MarkNone
	if markTok != nil {
		mark = markFromString(*markTok)
	}
	if isRHS && mark == MarkAny {
		b.addError(errors.InvalidAttribute(itemName, pos))
	}
	return &Label{Atoms: atoms, Mark: mark}
}

func (b *Builder) buildAtomExpr(e *ast.AtomExpr, rule *Rule) *Atom {
	left := b.buildUnaryAtom(e.Left, rule)
	for _, op := range e.Ops {
		right := b.buildUnaryAtom(op.Right, rule)
		kind := atomOpKind(op.Operator)
		category := CategoryInteger
		if kind == AtomConcat {
			category = CategoryString
		}
		left = &Atom{Kind: kind, Left: left, Right: right, Category: category}
	}
	return left
}

func atomOpKind(op string) AtomKind {
	switch op {
	case "+":
		return AtomAdd
	case "-":
		return AtomSub
	case "*":
		return AtomMul
	case "/":
		return AtomDiv
	default:
		return AtomConcat
	}
}

func (b *Builder) buildUnaryAtom(u *ast.UnaryAtom, rule *Rule) *Atom {
	v := b.buildPrimaryAtom(u.Value, rule)
	if u.Neg {
		return &Atom{Kind: AtomNeg, Operand: v, Category: CategoryInteger}
	}
	return v
}

func (b *Builder) buildPrimaryAtom(p *ast.PrimaryAtom, rule *Rule) *Atom {
	switch {
	case p.Indeg != nil:
		return &Atom{Kind: AtomIndegree, NodeName: p.Indeg.Name, Category: CategoryInteger}
	case p.Outdeg != nil:
		return &Atom{Kind: AtomOutdegree, NodeName: p.Outdeg.Name, Category: CategoryInteger}
	case p.Length != nil:
		operand := b.buildPrimaryAtom(p.Length, rule)
		kind := AtomStringLength
		if operand.Kind == AtomVarRef {
			if v, ok := rule.Variables[operand.VarName]; ok && v.Type == VarList {
				kind = AtomListLength
			}
		}
		return &Atom{Kind: kind, Operand: operand, Category: CategoryInteger}
	case p.Int != nil:
		iv, _ := strconv.ParseInt(*p.Int, 10, 64)
		return &Atom{Kind: AtomIntConst, IntValue: iv, Category: CategoryInteger}
	case p.Str != nil:
		return &Atom{Kind: AtomStrConst, StrValue: unquoteString(*p.Str), Category: CategoryString}
	case p.Var != nil:
		name := *p.Var
		category := CategoryString
		if v, ok := rule.Variables[name]; ok {
			v.Used = true
			switch v.Type {
			case VarInteger:
				category = CategoryInteger
			case VarList:
				category = CategoryListShaped
			default:
				category = CategoryString
			}
		} else {
			b.addError(errors.UndefinedVariable(name, p.Pos, similarVarNames(rule, name)))
		}
		return &Atom{Kind: AtomVarRef, VarName: name, Category: category}
	case p.Paren != nil:
		return b.buildAtomExpr(p.Paren, rule)
	}
	return &Atom{Kind: AtomIntConst, Category: CategoryInteger}
}

func similarVarNames(rule *Rule, name string) []string {
	_ = name
	return append([]string{}, rule.VarOrder...)
}

func unquoteString(lit string) string {
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return lit
}

func atomsEqualList(a, b []*Atom) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !atomsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func atomsEqual(a, bb *Atom) bool {
	if a == nil || bb == nil {
		return a == bb
	}
	if a.Kind != bb.Kind {
		return false
	}
	switch a.Kind {
	case AtomIntConst:
		return a.IntValue == bb.IntValue
	case AtomStrConst:
		return a.StrValue == bb.StrValue
	case AtomVarRef:
		return a.VarName == bb.VarName
	case AtomIndegree, AtomOutdegree:
		return a.NodeName == bb.NodeName
	case AtomNeg, AtomListLength, AtomStringLength:
		return atomsEqual(a.Operand, bb.Operand)
	default:
		return atomsEqual(a.Left, bb.Left) && atomsEqual(a.Right, bb.Right)
	}
}

// --- conditions -----------------------------------------------------------

func (b *Builder) buildCondition(where *ast.WhereClause, rule *Rule) {
	if where == nil {
		return
	}
	rule.Condition = b.convertOr(where.Cond, false, rule)
}

func (b *Builder) convertOr(oc *ast.OrCond, negate bool, rule *Rule) *Condition {
	terms := append([]*ast.AndCond{oc.Left}, oc.Rest...)
	var result *Condition
	for _, t := range terms {
		c := b.convertAnd(t, negate, rule)
		if result == nil {
			result = c
			continue
		}
		kind := CondOr
		if negate {
			kind = CondAnd
		}
		result = &Condition{Kind: kind, Left: result, Right: c}
	}
	return result
}

func (b *Builder) convertAnd(ac *ast.AndCond, negate bool, rule *Rule) *Condition {
	terms := append([]*ast.NotCond{ac.Left}, ac.Rest...)
	var result *Condition
	for _, t := range terms {
		c := b.convertNot(t, negate, rule)
		if result == nil {
			result = c
			continue
		}
		kind := CondAnd
		if negate {
			kind = CondOr
		}
		result = &Condition{Kind: kind, Left: result, Right: c}
	}
	return result
}

func (b *Builder) convertNot(nc *ast.NotCond, negate bool, rule *Rule) *Condition {
	effective := negate
	if nc.Negated {
		effective = !effective
	}
	return b.convertPrimary(nc.Primary, effective, rule)
}

func (b *Builder) convertPrimary(p *ast.CondPrimary, negate bool, rule *Rule) *Condition {
	if p.Paren != nil {
		return b.convertOr(p.Paren, negate, rule)
	}

	pred := b.buildPredicate(p, rule)
	pred.Negated = negate
	pred.BoolID = b.nextBoolID()
	idx := len(rule.Predicates)
	rule.Predicates = append(rule.Predicates, pred)
	b.linkPredicate(rule, idx, pred)
	return &Condition{Kind: CondLeaf, PredicateIndex: idx}
}

func (b *Builder) buildPredicate(p *ast.CondPrimary, rule *Rule) *Predicate {
	switch {
	case p.IntCheck != nil:
		return &Predicate{Kind: PredIntCheck, VarName: p.IntCheck.Name}
	case p.CharCheck != nil:
		return &Predicate{Kind: PredCharCheck, VarName: p.CharCheck.Name}
	case p.StringCheck != nil:
		return &Predicate{Kind: PredStringCheck, VarName: p.StringCheck.Name}
	case p.AtomCheck != nil:
		return &Predicate{Kind: PredAtomCheck, VarName: p.AtomCheck.Name}
	case p.EdgePred != nil:
		srcIdx, srcOk := rule.LHS.NodeIndex[p.EdgePred.Source.Name]
		if !srcOk {
			b.addError(errors.UnresolvedNodeName(p.EdgePred.Source.Name, p.EdgePred.Source.Pos, rule.LHS.nodeNames()))
		}
		tgtIdx, tgtOk := rule.LHS.NodeIndex[p.EdgePred.Target.Name]
		if !tgtOk {
			b.addError(errors.UnresolvedNodeName(p.EdgePred.Target.Name, p.EdgePred.Target.Pos, rule.LHS.nodeNames()))
		}
		var lbl *Label
		if p.EdgePred.Label != nil {
			lbl = b.buildLabel(p.EdgePred.Label, nil, rule, false, "", p.EdgePred.Pos)
		}
		return &Predicate{Kind: PredEdge, SourceNode: srcIdx, TargetNode: tgtIdx, EdgeLabel: lbl}
	case p.Compare != nil:
		left := b.buildLabel(p.Compare.Left, nil, rule, false, "", p.Compare.Pos)
		right := b.buildLabel(p.Compare.Right, nil, rule, false, "", p.Compare.Pos)
		kind := comparisonKind(p.Compare.Operator)
		if kind != PredEqual && kind != PredNotEqual {
			if !left.IsIntegerShaped() || !right.IsIntegerShaped() {
				actual := "list-shaped"
				if len(left.Atoms) == 1 {
					actual = left.Atoms[0].Category.String()
				}
				if left.IsIntegerShaped() && len(right.Atoms) == 1 {
					actual = right.Atoms[0].Category.String()
				}
				b.addError(errors.TypeMismatch("integer", actual, p.Compare.Pos))
			}
		}
		return &Predicate{Kind: kind, LeftLabel: left, RightLabel: right}
	}
	b.addError(errors.MalformedCondition(p.Pos))
	return &Predicate{Kind: PredEqual}
}

func comparisonKind(op string) PredKind {
	switch op {
	case "=":
		return PredEqual
	case "!=":
		return PredNotEqual
	case ">":
		return PredGreater
	case ">=":
		return PredGreaterEqual
	case "<":
		return PredLess
	case "<=":
		return PredLessEqual
	default:
		return PredEqual
	}
}

func (b *Builder) linkPredicate(rule *Rule, idx int, pred *Predicate) {
	switch pred.Kind {
	case PredIntCheck, PredCharCheck, PredStringCheck, PredAtomCheck:
		b.linkVar(rule, pred.VarName, idx)
	case PredEdge:
		if pred.SourceNode >= 0 && pred.SourceNode < len(rule.LHS.Nodes) {
			rule.LHS.Nodes[pred.SourceNode].Predicates = append(rule.LHS.Nodes[pred.SourceNode].Predicates, idx)
		}
		if pred.TargetNode >= 0 && pred.TargetNode < len(rule.LHS.Nodes) {
			rule.LHS.Nodes[pred.TargetNode].Predicates = append(rule.LHS.Nodes[pred.TargetNode].Predicates, idx)
		}
		for _, name := range collectVarRefs(pred.EdgeLabel) {
			b.linkVar(rule, name, idx)
		}
	default:
		for _, name := range collectVarRefs(pred.LeftLabel) {
			b.linkVar(rule, name, idx)
		}
		for _, name := range collectVarRefs(pred.RightLabel) {
			b.linkVar(rule, name, idx)
		}
	}
}

func (b *Builder) linkVar(rule *Rule, name string, idx int) {
	if v, ok := rule.Variables[name]; ok {
		v.Predicates = append(v.Predicates, idx)
	}
}

func collectVarRefs(l *Label) []string {
	if l == nil {
		return nil
	}
	var names []string
	var walk func(a *Atom)
	walk = func(a *Atom) {
		if a == nil {
			return
		}
		switch a.Kind {
		case AtomVarRef:
			names = append(names, a.VarName)
		case AtomNeg, AtomListLength, AtomStringLength:
			walk(a.Operand)
		case AtomIndegree, AtomOutdegree, AtomIntConst, AtomStrConst:
		default:
			walk(a.Left)
			walk(a.Right)
		}
	}
	for _, a := range l.Atoms {
		walk(a)
	}
	return names
}
