package path

import (
	"fmt"

	"github.com/natevvv/osm-path-finder/pkg/graph"
)

// DefaultMaxSpeed is the speed (km/h) assumed by the travel time heuristic if nothing else is configured
const DefaultMaxSpeed = 130.0

// Heuristic estimates the remaining cost from one node to another.
// It has to be admissible and consistent for the search to return optimal paths.
// It fails with graph.ErrNodeNotFound if one of the nodes has no coordinates.
type Heuristic func(g graph.Graph, from, to graph.NodeId) (float64, error)

// GreatCircle returns the great-circle distance between the nodes in meters.
// It is a lower bound for the length attribute.
func GreatCircle(g graph.Graph, from, to graph.NodeId) (float64, error) {
	a, err := g.GetNode(from)
	if err != nil {
		return 0, err
	}
	b, err := g.GetNode(to)
	if err != nil {
		return 0, err
	}
	return a.Haversine(b), nil
}

// TravelTime returns a heuristic for the travel time attribute (seconds).
// No arc can be traveled faster than maxSpeed (km/h), so distance / maxSpeed is a lower bound.
func TravelTime(maxSpeed float64) Heuristic {
	if maxSpeed <= 0 {
		panic(fmt.Sprintf("max speed has to be positive, is %v", maxSpeed))
	}
	metersPerSecond := maxSpeed / 3.6
	return func(g graph.Graph, from, to graph.NodeId) (float64, error) {
		distance, err := GreatCircle(g, from, to)
		if err != nil {
			return 0, err
		}
		return distance / metersPerSecond, nil
	}
}

// Zero turns A* into plain Dijkstra
func Zero(g graph.Graph, from, to graph.NodeId) (float64, error) {
	for _, id := range []graph.NodeId{from, to} {
		if !g.HasNode(id) {
			return 0, fmt.Errorf("%w: %v", graph.ErrNodeNotFound, id)
		}
	}
	return 0, nil
}

// HeuristicFor returns an admissible heuristic for the given weight attribute.
// Attributes without a known geometric lower bound get the zero heuristic.
func HeuristicFor(weight string, maxSpeed float64) Heuristic {
	switch weight {
	case graph.Length:
		return GreatCircle
	case graph.TravelTime:
		return TravelTime(maxSpeed)
	default:
		return Zero
	}
}

// HeuristicByName resolves the heuristic names used in configuration files.
// "auto" (or an empty name) picks the heuristic matching the weight.
func HeuristicByName(name, weight string, maxSpeed float64) (Heuristic, error) {
	switch name {
	case "", "auto":
		return HeuristicFor(weight, maxSpeed), nil
	case "great_circle":
		return GreatCircle, nil
	case "travel_time":
		return TravelTime(maxSpeed), nil
	case "zero":
		return Zero, nil
	}
	return nil, fmt.Errorf("unknown heuristic %q", name)
}
