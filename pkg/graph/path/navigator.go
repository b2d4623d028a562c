package path

import (
	"errors"
	"fmt"

	"github.com/natevvv/osm-path-finder/pkg/graph"
)

var ErrUnknownNavigator = errors.New("unknown navigator")

type Navigator interface {
	ComputeShortestPath(origin, destination graph.NodeId) (float64, error) // Compute the shortest path from the origin to the destination. Returns -1 if there is no path
	GetPath(origin, destination graph.NodeId) []graph.NodeId               // Get the path of a previous computation. This contains the nodeIds which lie on the path from source to destination
	GetSearchSpace() []graph.NodeId                                        // Returns the search space of a previous computation. This contains all nodes which were settled, in settle order.
	GetPqPops() int                                                        // Returns the amount of priority queue/heap pops which were performed during the search
	GetPqUpdates() int                                                     // Get the number of pq pushes and updates
	GetEdgeRelaxations() int                                               // Get the number of relaxed edges
	GetRelaxationAttempts() int                                            // Get the number of attempted edge relaxations (some may early terminated)
	GetGraph() graph.Graph                                                 // Get the used graph
}

// NewNavigator creates the navigator with the given name ("astar" or "dijkstra")
func NewNavigator(name string, g graph.Graph, weight string, options ...Option) (Navigator, error) {
	switch name {
	case "astar":
		return NewAStar(g, weight, options...), nil
	case "dijkstra":
		return NewDijkstra(g, weight), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNavigator, name)
}

// AStar runs a Search to the end.
// Implements the Navigator Interface.
type AStar struct {
	g       graph.Graph
	weight  string
	options []Option

	origin      graph.NodeId
	destination graph.NodeId
	path        []graph.NodeId
	searchSpace []graph.NodeId
	kpis        SearchKPIs
}

func NewAStar(g graph.Graph, weight string, options ...Option) *AStar {
	return &AStar{g: g, weight: weight, options: options}
}

func (a *AStar) ComputeShortestPath(origin, destination graph.NodeId) (float64, error) {
	a.origin, a.destination = origin, destination
	a.path = make([]graph.NodeId, 0)
	a.searchSpace = make([]graph.NodeId, 0)
	a.kpis = SearchKPIs{}

	search, err := NewSearch(a.g, origin, destination, a.weight, a.options...)
	if err != nil {
		return -1, err
	}

	length := -1.0 // by default a non-existing path has length -1
	for snapshot := range search.All() {
		if snapshot.Failed() {
			break
		}
		a.searchSpace = append(a.searchSpace, snapshot.Current)
		if snapshot.State == GoalFinalized {
			a.path = snapshot.Path
			length = snapshot.Cost
		}
	}
	a.kpis = search.Stats()
	return length, search.Err()
}

func (a *AStar) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	if origin != a.origin || destination != a.destination {
		return make([]graph.NodeId, 0)
	}
	return a.path
}

func (a *AStar) GetSearchSpace() []graph.NodeId { return a.searchSpace }
func (a *AStar) GetPqPops() int                 { return a.kpis.PqPops }
func (a *AStar) GetPqUpdates() int              { return a.kpis.PqPushes }
func (a *AStar) GetEdgeRelaxations() int        { return a.kpis.RelaxedEdges }
func (a *AStar) GetRelaxationAttempts() int     { return a.kpis.RelaxationAttempts }
func (a *AStar) GetGraph() graph.Graph          { return a.g }
