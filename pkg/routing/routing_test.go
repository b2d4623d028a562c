package routing

import (
	"testing"

	"github.com/natevvv/osm-path-finder/pkg/geometry"
	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/graph/path"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a few streets in Berlin and one unconnected node in Munich.
// 2 -> 4 is a footpath without travel time.
const streetFmi = `5
6
1 52.5200 13.4050
2 52.5210 13.4050
3 52.5220 13.4050
4 52.5220 13.4070
5 48.1000 11.5000
1 2 length=120 travel_time=10
2 1 length=120 travel_time=10
2 3 length=120 travel_time=10
3 4 length=140 travel_time=12
2 4 length=200
4 3 length=140 travel_time=12`

var (
	nearOne  = geometry.MakePoint(52.52001, 13.40502)
	nearFour = geometry.MakePoint(52.52205, 13.40698)
	nearFive = geometry.MakePoint(48.1001, 11.5001)
)

func newRouter(t *testing.T, config RouteConfig, navigator string) *Router {
	t.Helper()
	g, err := graph.NewAdjacencyArrayFromFmiString(streetFmi)
	require.NoError(t, err)
	r, err := NewRouter(g, config, navigator)
	require.NoError(t, err)
	return r
}

func TestNewRouterDefaults(t *testing.T) {
	r := newRouter(t, RouteConfig{}, "astar")
	assert.Equal(t, graph.TravelTime, r.Config().Weight)
	assert.Equal(t, path.DefaultMaxSpeed, r.Config().MaxSpeed)
	assert.Equal(t, "astar", r.Navigator())
	assert.NotNil(t, r.Heuristic())
}

func TestNewRouterErrors(t *testing.T) {
	g, err := graph.NewAdjacencyArrayFromFmiString(streetFmi)
	require.NoError(t, err)

	_, err = NewRouter(g, RouteConfig{}, "contraction-hierarchies")
	assert.ErrorIs(t, err, path.ErrUnknownNavigator)

	_, err = NewRouter(g, RouteConfig{Heuristic: "manhattan"}, "astar")
	assert.Error(t, err)
}

func TestSnap(t *testing.T) {
	r := newRouter(t, RouteConfig{}, "astar")
	for point, expected := range map[geometry.Point]graph.NodeId{nearOne: 1, nearFour: 4, nearFive: 5} {
		id, err := r.Snap(point)
		require.NoError(t, err)
		assert.Equal(t, expected, id)
	}
}

func TestComputeRoute(t *testing.T) {
	tests := []struct {
		weight string
		path   []graph.NodeId
		cost   float64
		length float64
	}{
		{graph.TravelTime, []graph.NodeId{1, 2, 3, 4}, 32, 380},
		{graph.Length, []graph.NodeId{1, 2, 4}, 320, 320},
	}
	for _, tt := range tests {
		for _, navigator := range []string{"astar", "dijkstra"} {
			t.Run(tt.weight+"/"+navigator, func(t *testing.T) {
				r := newRouter(t, RouteConfig{Weight: tt.weight}, navigator)
				route, err := r.ComputeRoute(nearOne, nearFour)
				require.NoError(t, err)

				assert.True(t, route.Exists)
				assert.Equal(t, graph.NodeId(1), route.OriginNode)
				assert.Equal(t, graph.NodeId(4), route.DestinationNode)
				assert.Equal(t, tt.path, route.Path)
				assert.Len(t, route.Waypoints, len(tt.path))
				assert.Equal(t, tt.cost, route.Cost)
				assert.Equal(t, tt.length, route.Length)
				assert.NotEmpty(t, r.GetSearchSpace())
			})
		}
	}
}

func TestComputeRouteWithoutPath(t *testing.T) {
	r := newRouter(t, RouteConfig{}, "astar")
	route, err := r.ComputeRoute(nearOne, nearFive)
	require.NoError(t, err)
	assert.False(t, route.Exists)
	assert.Empty(t, route.Path)
	assert.Empty(t, route.Waypoints)
	assert.Equal(t, graph.NodeId(5), route.DestinationNode)
}

func TestSetNavigator(t *testing.T) {
	r := newRouter(t, RouteConfig{}, "astar")
	require.NoError(t, r.SetNavigator("dijkstra"))
	assert.Equal(t, "dijkstra", r.Navigator())

	assert.ErrorIs(t, r.SetNavigator("bidirectional-dijkstra"), path.ErrUnknownNavigator)
	assert.Equal(t, "dijkstra", r.Navigator())
}

func TestExploration(t *testing.T) {
	r := newRouter(t, RouteConfig{Weight: graph.TravelTime}, "astar")
	search, err := r.NewExploration(nearOne, nearFour)
	require.NoError(t, err)
	assert.Equal(t, graph.NodeId(1), search.Origin())
	assert.Equal(t, graph.NodeId(4), search.Destination())

	var last path.Snapshot
	for snapshot := range search.All() {
		last = snapshot
	}
	require.NoError(t, search.Err())
	assert.Equal(t, path.GoalFinalized, last.State)
	assert.Equal(t, []graph.NodeId{1, 2, 3, 4}, last.Path)
	assert.Equal(t, 32.0, last.Cost)

	_, err = r.NewExplorationBetween(1, 42)
	assert.ErrorIs(t, err, graph.ErrNodeNotFound)
}

func TestPathLengthFallsBackToDistance(t *testing.T) {
	g := graph.NewAdjacencyListGraph()
	require.NoError(t, g.AddNode(1, geometry.MakePoint(0, 0)))
	require.NoError(t, g.AddNode(2, geometry.MakePoint(0, 0.001)))
	require.NoError(t, g.AddArc(1, 2, graph.Attributes{graph.TravelTime: 5}))
	r, err := NewRouter(g, RouteConfig{}, "astar")
	require.NoError(t, err)

	assert.InDelta(t, 111.19, r.PathLength([]graph.NodeId{1, 2}), 0.1)
	assert.Zero(t, r.PathLength([]graph.NodeId{1}))
}

func TestGetNodes(t *testing.T) {
	r := newRouter(t, RouteConfig{}, "astar")
	nodes := r.GetNodes()
	require.Len(t, nodes, 5)
	assert.Equal(t, geometry.MakePoint(52.52, 13.405), nodes[0])
}
