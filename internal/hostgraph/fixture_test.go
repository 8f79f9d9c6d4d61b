package hostgraph_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gp2c/internal/hostgraph"
	"gp2c/internal/ir"
)

func TestLoadFixtureBuildsGraph(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json")
	content := `{
		"nodes": [
			{"label": [1], "mark": "none", "root": true},
			{"label": ["hi"], "mark": "red"}
		],
		"edges": [
			{"source": 0, "target": 1, "label": [1, "a"]}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	g, err := hostgraph.LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())

	n0 := g.Node(0)
	if assert.NotNil(t, n0) {
		assert.True(t, n0.Root)
		assert.Equal(t, hostgraph.List{hostgraph.IntValue(1)}, n0.Label)
	}

	n1 := g.Node(1)
	if assert.NotNil(t, n1) {
		assert.Equal(t, ir.MarkRed, n1.Mark)
		assert.Equal(t, hostgraph.List{hostgraph.StrValue("hi")}, n1.Label)
	}

	e0 := g.Edge(0)
	if assert.NotNil(t, e0) {
		assert.Equal(t, 0, e0.Source)
		assert.Equal(t, 1, e0.Target)
		assert.Equal(t, hostgraph.List{hostgraph.IntValue(1), hostgraph.StrValue("a")}, e0.Label)
	}
}

func TestLoadFixtureRejectsOutOfRangeEdge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json")
	content := `{"nodes": [{"label": []}], "edges": [{"source": 0, "target": 5}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := hostgraph.LoadFixture(path)
	assert.Error(t, err)
}
