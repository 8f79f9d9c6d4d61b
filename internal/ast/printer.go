package ast

import (
	"fmt"
	"strings"
)

// indent mirrors the four-space indentation unit used throughout the
// corpus's pretty-printers.
func indent(level int) string {
	return strings.Repeat("    ", level)
}

func printRuleFile(f *RuleFile) string {
	var parts []string
	for _, r := range f.Rules {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, "\n\n")
}

func printRule(r *Rule) string {
	var b strings.Builder
	fmt.Fprintf(&b, "rule %s {\n", r.Name)
	if len(r.Vars) > 0 {
		b.WriteString(indent(1) + "vars {\n")
		for _, v := range r.Vars {
			fmt.Fprintf(&b, "%s%s;\n", indent(2), v.String())
		}
		b.WriteString(indent(1) + "}\n")
	}
	fmt.Fprintf(&b, "%slhs {\n%s\n%s}\n", indent(1), indentBlock(r.LHS.String(), 2), indent(1))
	fmt.Fprintf(&b, "%srhs {\n%s\n%s}\n", indent(1), indentBlock(r.RHS.String(), 2), indent(1))
	if r.Interface != nil {
		fmt.Fprintf(&b, "%s%s\n", indent(1), r.Interface.String())
	}
	if r.Where != nil {
		fmt.Fprintf(&b, "%s%s\n", indent(1), r.Where.String())
	}
	b.WriteString("}")
	return b.String()
}

func indentBlock(s string, level int) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = indent(level) + l
	}
	return strings.Join(lines, "\n")
}

func printGraphBlock(g *GraphBlock) string {
	var parts []string
	for _, n := range g.Nodes {
		parts = append(parts, n.String())
	}
	for _, e := range g.Edges {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "\n")
}

func printNodeDecl(n *NodeDecl) string {
	var b strings.Builder
	b.WriteString("node ")
	if n.Root {
		b.WriteString("root ")
	}
	b.WriteString(n.Name)
	if n.Mark != nil {
		fmt.Fprintf(&b, " <%s>", *n.Mark)
	}
	if n.Label != nil {
		b.WriteString(" " + n.Label.String())
	}
	b.WriteString(";")
	return b.String()
}

func printEdgeDecl(e *EdgeDecl) string {
	var b strings.Builder
	arrow := "->"
	if e.Bidi {
		arrow = "<->"
	}
	fmt.Fprintf(&b, "edge %s: %s %s %s", e.Name, e.Source.String(), arrow, e.Target.String())
	if e.Mark != nil {
		fmt.Fprintf(&b, " <%s>", *e.Mark)
	}
	if e.Label != nil {
		b.WriteString(" " + e.Label.String())
	}
	b.WriteString(";")
	return b.String()
}

func printInterfaceBlock(i *InterfaceBlock) string {
	names := make([]string, len(i.Names))
	for idx, n := range i.Names {
		names[idx] = n.Name
	}
	return fmt.Sprintf("interface { %s }", strings.Join(names, ", "))
}

func printLabelLit(l *LabelLit) string {
	atoms := make([]string, len(l.Atoms))
	for i, a := range l.Atoms {
		atoms[i] = a.String()
	}
	return "[" + strings.Join(atoms, ", ") + "]"
}

func printAtomExpr(a *AtomExpr) string {
	var b strings.Builder
	b.WriteString(printUnaryAtom(a.Left))
	for _, op := range a.Ops {
		fmt.Fprintf(&b, " %s %s", op.Operator, printUnaryAtom(op.Right))
	}
	return b.String()
}

func printUnaryAtom(u *UnaryAtom) string {
	if u.Neg {
		return "-" + u.Value.String()
	}
	return u.Value.String()
}

func printPrimaryAtom(p *PrimaryAtom) string {
	switch {
	case p.Indeg != nil:
		return "indeg(" + p.Indeg.Name + ")"
	case p.Outdeg != nil:
		return "outdeg(" + p.Outdeg.Name + ")"
	case p.Length != nil:
		return "#" + p.Length.String()
	case p.Int != nil:
		return *p.Int
	case p.Str != nil:
		return *p.Str
	case p.Var != nil:
		return *p.Var
	case p.Paren != nil:
		return "(" + p.Paren.String() + ")"
	}
	return "<bad-atom>"
}

func printOrCond(o *OrCond) string {
	parts := []string{o.Left.String()}
	for _, r := range o.Rest {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " or ")
}

func printAndCond(a *AndCond) string {
	parts := []string{a.Left.String()}
	for _, r := range a.Rest {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, " and ")
}

func printNotCond(n *NotCond) string {
	if n.Negated {
		return "not " + n.Primary.String()
	}
	return n.Primary.String()
}

func printCondPrimary(c *CondPrimary) string {
	switch {
	case c.IntCheck != nil:
		return "int(" + c.IntCheck.Name + ")"
	case c.CharCheck != nil:
		return "char(" + c.CharCheck.Name + ")"
	case c.StringCheck != nil:
		return "string(" + c.StringCheck.Name + ")"
	case c.AtomCheck != nil:
		return "atom(" + c.AtomCheck.Name + ")"
	case c.EdgePred != nil:
		if c.EdgePred.Label != nil {
			return fmt.Sprintf("edge(%s, %s, %s)", c.EdgePred.Source.Name, c.EdgePred.Target.Name, c.EdgePred.Label.String())
		}
		return fmt.Sprintf("edge(%s, %s)", c.EdgePred.Source.Name, c.EdgePred.Target.Name)
	case c.Compare != nil:
		return fmt.Sprintf("%s %s %s", c.Compare.Left.String(), c.Compare.Operator, c.Compare.Right.String())
	case c.Paren != nil:
		return "(" + c.Paren.String() + ")"
	}
	return "<bad-condition>"
}
