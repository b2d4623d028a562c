package routing

import (
	"fmt"
	"log"

	"github.com/natevvv/osm-path-finder/pkg/geometry"
	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/graph/path"
)

// RouteConfig selects what a route is optimized for
type RouteConfig struct {
	Weight     string  // arc attribute used as cost
	Heuristic  string  // heuristic name, see path.HeuristicByName
	MaxSpeed   float64 // fastest speed on the map in km/h, bounds the travel time heuristic
	DebugLevel int
}

// Route is the result of a route computation between two coordinates
type Route struct {
	Origin          geometry.Point // requested origin
	Destination     geometry.Point // requested destination
	OriginNode      graph.NodeId   // node the origin was snapped to
	DestinationNode graph.NodeId   // node the destination was snapped to
	Exists          bool           // whether a path exists
	Path            []graph.NodeId // nodes on the path
	Waypoints       []geometry.Point
	Cost            float64 // sum of the weight attribute along the path
	Length          float64 // length of the path in meters
}

// Router snaps coordinates to the graph and runs searches on it
type Router struct {
	graph         graph.Graph
	index         *graph.NearestIndex
	config        RouteConfig
	heuristic     path.Heuristic
	navigator     path.Navigator
	navigatorName string
}

// NewRouter creates a router on the given graph which uses the named navigator ("astar" or "dijkstra") for routes
func NewRouter(g graph.Graph, config RouteConfig, navigator string) (*Router, error) {
	if config.Weight == "" {
		config.Weight = graph.TravelTime
	}
	if config.MaxSpeed <= 0 {
		config.MaxSpeed = path.DefaultMaxSpeed
	}
	heuristic, err := path.HeuristicByName(config.Heuristic, config.Weight, config.MaxSpeed)
	if err != nil {
		return nil, err
	}
	index, err := graph.NewNearestIndex(g)
	if err != nil {
		return nil, err
	}

	r := &Router{
		graph:     g,
		index:     index,
		config:    config,
		heuristic: heuristic,
	}
	if err := r.SetNavigator(navigator); err != nil {
		return nil, err
	}
	return r, nil
}

// SetNavigator switches the navigator used by ComputeRoute
func (r *Router) SetNavigator(name string) error {
	navigator, err := path.NewNavigator(name, r.graph, r.config.Weight, r.searchOptions()...)
	if err != nil {
		return err
	}
	r.navigator = navigator
	r.navigatorName = name
	if r.config.DebugLevel >= 1 {
		log.Printf("Using navigator %v\n", name)
	}
	return nil
}

func (r *Router) searchOptions() []path.Option {
	return []path.Option{path.WithHeuristic(r.heuristic), path.WithDebugLevel(r.config.DebugLevel)}
}

// Snap returns the node closest to the given coordinates
func (r *Router) Snap(point geometry.Point) (graph.NodeId, error) {
	return r.index.Nearest(point)
}

// NewExploration snaps both coordinates and prepares a step-wise search between them
func (r *Router) NewExploration(origin, destination geometry.Point) (*path.Search, error) {
	originNode, err := r.Snap(origin)
	if err != nil {
		return nil, fmt.Errorf("snap origin: %w", err)
	}
	destinationNode, err := r.Snap(destination)
	if err != nil {
		return nil, fmt.Errorf("snap destination: %w", err)
	}
	return r.NewExplorationBetween(originNode, destinationNode)
}

// NewExplorationBetween prepares a step-wise search between two nodes
func (r *Router) NewExplorationBetween(origin, destination graph.NodeId) (*path.Search, error) {
	return path.NewSearch(r.graph, origin, destination, r.config.Weight, r.searchOptions()...)
}

// ComputeRoute snaps both coordinates and computes the route between them with the current navigator
func (r *Router) ComputeRoute(origin, destination geometry.Point) (Route, error) {
	route := Route{Origin: origin, Destination: destination, Path: []graph.NodeId{}, Waypoints: []geometry.Point{}}

	var err error
	if route.OriginNode, err = r.Snap(origin); err != nil {
		return route, fmt.Errorf("snap origin: %w", err)
	}
	if route.DestinationNode, err = r.Snap(destination); err != nil {
		return route, fmt.Errorf("snap destination: %w", err)
	}

	cost, err := r.navigator.ComputeShortestPath(route.OriginNode, route.DestinationNode)
	if err != nil {
		return route, err
	}
	if cost < 0 {
		if r.config.DebugLevel >= 1 {
			log.Printf("No route %v -> %v\n", route.OriginNode, route.DestinationNode)
		}
		return route, nil
	}

	route.Exists = true
	route.Cost = cost
	route.Path = r.navigator.GetPath(route.OriginNode, route.DestinationNode)
	route.Waypoints = r.Waypoints(route.Path)
	route.Length = r.PathLength(route.Path)
	return route, nil
}

// PathLength returns the length of a path in meters.
// Pairs without a length attribute count with the great-circle distance of their end points.
func (r *Router) PathLength(nodes []graph.NodeId) float64 {
	length := 0.0
	for i := 0; i+1 < len(nodes); i++ {
		if l, ok := graph.MinAttribute(r.graph.GetParallelArcs(nodes[i], nodes[i+1]), graph.Length); ok {
			length += l
			continue
		}
		if d, err := path.GreatCircle(r.graph, nodes[i], nodes[i+1]); err == nil {
			length += d
		}
	}
	return length
}

// Waypoints returns the coordinates of the given nodes, unknown nodes are left out
func (r *Router) Waypoints(nodes []graph.NodeId) []geometry.Point {
	waypoints := make([]geometry.Point, 0, len(nodes))
	for _, id := range nodes {
		if point, err := r.graph.GetNode(id); err == nil {
			waypoints = append(waypoints, point)
		}
	}
	return waypoints
}

// GetNodes returns the coordinates of all nodes
func (r *Router) GetNodes() []geometry.Point {
	return r.Waypoints(r.graph.GetNodeIds())
}

// GetSearchSpace returns the coordinates of the nodes settled by the last ComputeRoute
func (r *Router) GetSearchSpace() []geometry.Point {
	return r.Waypoints(r.navigator.GetSearchSpace())
}

func (r *Router) Graph() graph.Graph        { return r.graph }
func (r *Router) Config() RouteConfig       { return r.config }
func (r *Router) Navigator() string         { return r.navigatorName }
func (r *Router) Heuristic() path.Heuristic { return r.heuristic }
