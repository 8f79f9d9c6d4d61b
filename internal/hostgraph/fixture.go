package hostgraph

import (
	"encoding/json"
	"fmt"
	"os"

	"gp2c/internal/ir"
)

// fixtureAtom is one JSON label atom: a bare JSON number decodes as an
// integer value, a bare JSON string decodes as a string value.
type fixtureAtom struct {
	raw json.RawMessage
}

func (a *fixtureAtom) UnmarshalJSON(b []byte) error {
	a.raw = append(json.RawMessage{}, b...)
	return nil
}

func (a fixtureAtom) toValue() (Value, error) {
	var n int64
	if err := json.Unmarshal(a.raw, &n); err == nil {
		return IntValue(n), nil
	}
	var s string
	if err := json.Unmarshal(a.raw, &s); err == nil {
		return StrValue(s), nil
	}
	return Value{}, fmt.Errorf("fixture atom %s is neither a number nor a string", string(a.raw))
}

type fixtureNode struct {
	Label []fixtureAtom `json:"label"`
	Mark  string        `json:"mark"`
	Root  bool          `json:"root"`
}

type fixtureEdge struct {
	Source        int           `json:"source"`
	Target        int           `json:"target"`
	Bidirectional bool          `json:"bidirectional"`
	Label         []fixtureAtom `json:"label"`
	Mark          string        `json:"mark"`
}

type fixture struct {
	Nodes []fixtureNode `json:"nodes"`
	Edges []fixtureEdge `json:"edges"`
}

// LoadFixture reads a JSON host graph fixture from path and builds a Graph
// from it, for `gp2c run`'s direct-execution mode. Nothing is journalled
// while building (record=false), so the fixture's nodes/edges aren't
// themselves undoable.
func LoadFixture(path string) (*Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	g := NewGraph()
	for i, n := range f.Nodes {
		label, err := atomsToList(n.Label)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		g.AddNode(label, markFromString(n.Mark), n.Root, false)
	}
	for i, e := range f.Edges {
		label, err := atomsToList(e.Label)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if e.Source < 0 || e.Source >= len(f.Nodes) || e.Target < 0 || e.Target >= len(f.Nodes) {
			return nil, fmt.Errorf("edge %d: source/target out of range", i)
		}
		g.AddEdge(e.Source, e.Target, e.Bidirectional, label, markFromString(e.Mark), false)
	}
	return g, nil
}

func atomsToList(atoms []fixtureAtom) (List, error) {
	if len(atoms) == 0 {
		return nil, nil
	}
	out := make(List, 0, len(atoms))
	for _, a := range atoms {
		v, err := a.toValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func markFromString(s string) Mark {
	switch s {
	case "red":
		return ir.MarkRed
	case "green":
		return ir.MarkGreen
	case "blue":
		return ir.MarkBlue
	case "grey":
		return ir.MarkGrey
	case "dashed":
		return ir.MarkDashed
	default:
		return ir.MarkNone
	}
}
