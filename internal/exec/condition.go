package exec

import (
	"fmt"

	"gp2c/internal/hostgraph"
	"gp2c/internal/ir"
)

// EvaluateCondition evaluates a rule's condition tree against bindings. A
// rule with no condition is vacuously satisfied.
func EvaluateCondition(rule *ir.Rule, b Bindings) (bool, error) {
	if rule.Condition == nil {
		return true, nil
	}
	return evalCond(rule.Condition, rule, b)
}

func evalCond(c *ir.Condition, rule *ir.Rule, b Bindings) (bool, error) {
	switch c.Kind {
	case ir.CondLeaf:
		pred := rule.Predicates[c.PredicateIndex]
		v, err := evalPredicate(pred, b)
		if err != nil {
			return false, err
		}
		if pred.Negated {
			v = !v
		}
		return v, nil
	case ir.CondAnd:
		l, err := evalCond(c.Left, rule, b)
		if err != nil {
			return false, err
		}
		if !l {
			return false, nil
		}
		return evalCond(c.Right, rule, b)
	case ir.CondOr:
		l, err := evalCond(c.Left, rule, b)
		if err != nil {
			return false, err
		}
		if l {
			return true, nil
		}
		return evalCond(c.Right, rule, b)
	default:
		return false, fmt.Errorf("malformed condition node kind %d", c.Kind)
	}
}

func evalPredicate(p *ir.Predicate, b Bindings) (bool, error) {
	switch p.Kind {
	case ir.PredIntCheck:
		v, ok := scalarOf(p.VarName, b)
		return ok && !v.IsString, nil
	case ir.PredCharCheck:
		v, ok := scalarOf(p.VarName, b)
		return ok && v.IsString && len(v.Str) == 1, nil
	case ir.PredStringCheck:
		v, ok := scalarOf(p.VarName, b)
		return ok && v.IsString, nil
	case ir.PredAtomCheck:
		_, ok := scalarOf(p.VarName, b)
		return ok, nil
	case ir.PredEdge:
		return evalEdgePredicate(p, b)
	case ir.PredEqual, ir.PredNotEqual, ir.PredGreater, ir.PredGreaterEqual, ir.PredLess, ir.PredLessEqual:
		return evalComparison(p, b)
	default:
		return false, fmt.Errorf("unknown predicate kind %d", p.Kind)
	}
}

func scalarOf(name string, b Bindings) (hostgraph.Value, bool) {
	v, ok := b.Morphism.Assignment[name]
	return v, ok
}

func evalEdgePredicate(p *ir.Predicate, b Bindings) (bool, error) {
	srcHost, ok := b.Morphism.NodeMap[p.SourceNode]
	if !ok {
		return false, fmt.Errorf("edge predicate: source node not bound")
	}
	tgtHost, ok := b.Morphism.NodeMap[p.TargetNode]
	if !ok {
		return false, fmt.Errorf("edge predicate: target node not bound")
	}
	var wantLabel hostgraph.List
	var wantMark hostgraph.Mark
	haveLabel := p.EdgeLabel != nil
	if haveLabel {
		var err error
		wantLabel, wantMark, err = EvaluateLabel(p.EdgeLabel, b)
		if err != nil {
			return false, err
		}
	}
	for _, e := range b.Host.Edges {
		if e == nil {
			continue
		}
		matchesEndpoints := (e.Source == srcHost && e.Target == tgtHost) ||
			(e.Bidirectional && e.Source == tgtHost && e.Target == srcHost)
		if !matchesEndpoints {
			continue
		}
		if !haveLabel {
			return true, nil
		}
		if hostgraph.EqualLabels(e.Label, wantLabel) && e.Mark == wantMark {
			return true, nil
		}
	}
	return false, nil
}

func evalComparison(p *ir.Predicate, b Bindings) (bool, error) {
	left, _, err := EvaluateLabel(p.LeftLabel, b)
	if err != nil {
		return false, err
	}
	right, _, err := EvaluateLabel(p.RightLabel, b)
	if err != nil {
		return false, err
	}
	switch p.Kind {
	case ir.PredEqual:
		return hostgraph.EqualLabels(left, right), nil
	case ir.PredNotEqual:
		return !hostgraph.EqualLabels(left, right), nil
	}
	if len(left) != 1 || len(right) != 1 {
		return false, fmt.Errorf("ordering comparison requires single-atom operands")
	}
	l, r := left[0].Int, right[0].Int
	switch p.Kind {
	case ir.PredGreater:
		return l > r, nil
	case ir.PredGreaterEqual:
		return l >= r, nil
	case ir.PredLess:
		return l < r, nil
	case ir.PredLessEqual:
		return l <= r, nil
	default:
		return false, fmt.Errorf("unexpected comparison kind %d", p.Kind)
	}
}
