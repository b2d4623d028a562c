package path

import (
	"math"
	"testing"

	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNavigator(t *testing.T) {
	g := mustGraph(t, graphFmi)
	for _, name := range []string{"astar", "dijkstra"} {
		navigator, err := NewNavigator(name, g, graph.Length)
		require.NoError(t, err)
		assert.Equal(t, g, navigator.GetGraph())
	}
	_, err := NewNavigator("ch", g, graph.Length)
	assert.ErrorIs(t, err, ErrUnknownNavigator)
}

func TestNavigators(t *testing.T) {
	g := mustGraph(t, graphFmi)
	for _, name := range []string{"astar", "dijkstra"} {
		t.Run(name, func(t *testing.T) {
			navigator, err := NewNavigator(name, g, graph.Length)
			require.NoError(t, err)

			length, err := navigator.ComputeShortestPath(0, 9)
			require.NoError(t, err)
			assert.Equal(t, 640.0, length)
			path := navigator.GetPath(0, 9)
			require.Len(t, path, 6)
			assert.Equal(t, graph.NodeId(0), path[0])
			assert.Equal(t, graph.NodeId(9), path[5])
			assert.Empty(t, navigator.GetPath(0, 8))

			searchSpace := navigator.GetSearchSpace()
			assert.Equal(t, graph.NodeId(0), searchSpace[0])
			assert.Equal(t, graph.NodeId(9), searchSpace[len(searchSpace)-1])
			assert.Equal(t, len(searchSpace), navigator.GetPqPops()-staleEntries(navigator))
			assert.Greater(t, navigator.GetEdgeRelaxations(), 0)
			assert.GreaterOrEqual(t, navigator.GetRelaxationAttempts(), navigator.GetEdgeRelaxations())
			assert.GreaterOrEqual(t, navigator.GetPqUpdates(), navigator.GetEdgeRelaxations())
		})
	}
}

func TestNavigatorsWithoutPath(t *testing.T) {
	g := mustGraph(t, disconnectedFmi)
	for _, name := range []string{"astar", "dijkstra"} {
		t.Run(name, func(t *testing.T) {
			navigator, err := NewNavigator(name, g, graph.Length)
			require.NoError(t, err)

			length, err := navigator.ComputeShortestPath(1, 5)
			require.NoError(t, err)
			assert.Equal(t, -1.0, length)
			assert.Empty(t, navigator.GetPath(1, 5))
			assert.ElementsMatch(t, []graph.NodeId{1, 2, 3}, navigator.GetSearchSpace())

			_, err = navigator.ComputeShortestPath(1, 42)
			assert.ErrorIs(t, err, graph.ErrNodeNotFound)
		})
	}
}

// infiniteArcGraph reports an infinite length for the arc 4 -> 5
type infiniteArcGraph struct {
	graph.Graph
}

func (g infiniteArcGraph) GetParallelArcs(from, to graph.NodeId) []graph.Arc {
	if from == 4 && to == 5 {
		return []graph.Arc{graph.MakeArc(5, graph.Attributes{graph.Length: math.Inf(1)})}
	}
	return g.Graph.GetParallelArcs(from, to)
}

func TestNavigatorsSkipInfiniteArcs(t *testing.T) {
	g := infiniteArcGraph{mustGraph(t, disconnectedFmi)}
	for _, name := range []string{"astar", "dijkstra"} {
		t.Run(name, func(t *testing.T) {
			navigator, err := NewNavigator(name, g, graph.Length)
			require.NoError(t, err)

			length, err := navigator.ComputeShortestPath(4, 5)
			require.NoError(t, err)
			assert.Equal(t, -1.0, length)
			assert.Empty(t, navigator.GetPath(4, 5))
			assert.Equal(t, []graph.NodeId{4}, navigator.GetSearchSpace())
		})
	}
}

func TestAStarSettlesLessThanDijkstra(t *testing.T) {
	g := mustGraph(t, graphFmi)
	astar := NewAStar(g, graph.Length)
	dijkstra := NewDijkstra(g, graph.Length)

	_, err := astar.ComputeShortestPath(0, 9)
	require.NoError(t, err)
	_, err = dijkstra.ComputeShortestPath(0, 9)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(astar.GetSearchSpace()), len(dijkstra.GetSearchSpace()))
}

func staleEntries(n Navigator) int {
	if a, ok := n.(*AStar); ok {
		return a.kpis.StaleEntries
	}
	return 0
}
