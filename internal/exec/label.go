// Package exec interprets a rule's IR and searchplan directly against a
// hostgraph.Graph, calling exactly the hostgraph methods that the matchgen/
// applygen text renderers describe in generated source. This lets the test
// suite assert end-to-end matching and application behaviour without
// shelling out to a second Go compiler pass.
package exec

import (
	"fmt"

	"gp2c/internal/hostgraph"
	"gp2c/internal/ir"
)

// Bindings is the evaluation environment available while evaluating atoms:
// the morphism's variable assignments plus the host graph, needed for
// indegree/outdegree queries.
type Bindings struct {
	Morphism *hostgraph.Morphism
	Host     *hostgraph.Graph
	Rule     *ir.Rule
}

// EvaluateLabel evaluates every atom of an IR label against bindings,
// producing the concrete host list and mark it denotes.
func EvaluateLabel(lbl *ir.Label, b Bindings) (hostgraph.List, hostgraph.Mark, error) {
	if lbl == nil {
		return nil, ir.MarkNone, nil
	}
	var out hostgraph.List
	for _, atom := range lbl.Atoms {
		v, isList, list, err := evaluateAtom(atom, b)
		if err != nil {
			return nil, 0, err
		}
		if isList {
			out = append(out, list...)
		} else {
			out = append(out, v)
		}
	}
	return out, lbl.Mark, nil
}

// evaluateAtom evaluates one atom. When the atom is a list-typed variable
// reference, isList is true and list holds its bound sequence; otherwise v
// holds a single scalar value.
func evaluateAtom(a *ir.Atom, b Bindings) (v hostgraph.Value, isList bool, list hostgraph.List, err error) {
	switch a.Kind {
	case ir.AtomIntConst:
		return hostgraph.IntValue(a.IntValue), false, nil, nil
	case ir.AtomStrConst:
		return hostgraph.StrValue(a.StrValue), false, nil, nil
	case ir.AtomVarRef:
		if l, ok := b.Morphism.ListAssign[a.VarName]; ok {
			return hostgraph.Value{}, true, l, nil
		}
		if val, ok := b.Morphism.Assignment[a.VarName]; ok {
			return val, false, nil, nil
		}
		return hostgraph.Value{}, false, nil, fmt.Errorf("unbound variable %q", a.VarName)
	case ir.AtomIndegree:
		idx, ok := lookupNodeByName(b, a.NodeName)
		if !ok {
			return hostgraph.Value{}, false, nil, fmt.Errorf("indeg: node %q not bound", a.NodeName)
		}
		return hostgraph.IntValue(int64(b.Host.Indegree(idx))), false, nil, nil
	case ir.AtomOutdegree:
		idx, ok := lookupNodeByName(b, a.NodeName)
		if !ok {
			return hostgraph.Value{}, false, nil, fmt.Errorf("outdeg: node %q not bound", a.NodeName)
		}
		return hostgraph.IntValue(int64(b.Host.Outdegree(idx))), false, nil, nil
	case ir.AtomListLength:
		_, isList, list, err := evaluateAtom(a.Operand, b)
		if err != nil {
			return hostgraph.Value{}, false, nil, err
		}
		if isList {
			return hostgraph.IntValue(int64(len(list))), false, nil, nil
		}
		return hostgraph.IntValue(1), false, nil, nil
	case ir.AtomStringLength:
		val, _, _, err := evaluateAtom(a.Operand, b)
		if err != nil {
			return hostgraph.Value{}, false, nil, err
		}
		return hostgraph.IntValue(int64(len(val.Str))), false, nil, nil
	case ir.AtomNeg:
		val, _, _, err := evaluateAtom(a.Operand, b)
		if err != nil {
			return hostgraph.Value{}, false, nil, err
		}
		return hostgraph.IntValue(-val.Int), false, nil, nil
	case ir.AtomAdd, ir.AtomSub, ir.AtomMul, ir.AtomDiv:
		l, _, _, err := evaluateAtom(a.Left, b)
		if err != nil {
			return hostgraph.Value{}, false, nil, err
		}
		r, _, _, err := evaluateAtom(a.Right, b)
		if err != nil {
			return hostgraph.Value{}, false, nil, err
		}
		return hostgraph.IntValue(applyArith(a.Kind, l.Int, r.Int)), false, nil, nil
	case ir.AtomConcat:
		l, _, _, err := evaluateAtom(a.Left, b)
		if err != nil {
			return hostgraph.Value{}, false, nil, err
		}
		r, _, _, err := evaluateAtom(a.Right, b)
		if err != nil {
			return hostgraph.Value{}, false, nil, err
		}
		return hostgraph.StrValue(l.Str + r.Str), false, nil, nil
	default:
		return hostgraph.Value{}, false, nil, fmt.Errorf("unknown atom kind %d", a.Kind)
	}
}

func applyArith(kind ir.AtomKind, l, r int64) int64 {
	switch kind {
	case ir.AtomAdd:
		return l + r
	case ir.AtomSub:
		return l - r
	case ir.AtomMul:
		return l * r
	case ir.AtomDiv:
		if r == 0 {
			return 0
		}
		return l / r
	default:
		return 0
	}
}

func lookupNodeByName(b Bindings, name string) (int, bool) {
	lhsIdx, ok := b.Rule.LHS.NodeIndex[name]
	if !ok {
		return 0, false
	}
	hostIdx, ok := b.Morphism.NodeMap[lhsIdx]
	return hostIdx, ok
}
