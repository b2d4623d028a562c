package graph

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	geo "github.com/natevvv/osm-path-finder/pkg/geometry"
	"github.com/paulmach/osm"
)

// Node ids are the OSM ids of the nodes the graph was built from
type NodeId = osm.NodeID

var (
	ErrNodeNotFound   = errors.New("graph: node not found")
	ErrDuplicateNode  = errors.New("graph: node already exists")
	ErrNegativeWeight = errors.New("graph: arc attribute is not a finite non-negative number")
	ErrInvalidFmi     = errors.New("graph: invalid fmi data")
)

// Graph is the read-only view the path finding works on.
// Implementations must not be mutated while a search runs on them.
type Graph interface {
	GetNode(id NodeId) (geo.Point, error)   // coordinates of the node, ErrNodeNotFound if unknown
	HasNode(id NodeId) bool                 // whether the node is part of the graph
	GetNodeIds() []NodeId                   // all node ids in insertion order
	GetArcsFrom(id NodeId) []Arc            // all outgoing arcs, parallel arcs included
	GetParallelArcs(from, to NodeId) []Arc  // all arcs from -> to (the weight records of this pair)
	Successors(id NodeId) []NodeId          // distinct arc destinations in first-seen order
	NodeCount() int                         // number of nodes
	ArcCount() int                          // number of arcs, parallel arcs counted individually
	AsString() string                       // human readable fmi representation
}

type DynamicGraph interface {
	Graph
	AddNode(id NodeId, p geo.Point) error
	AddArc(from, to NodeId, attributes Attributes) error
}

// Return the arcs of the list which lead to the given node
func arcsTo(arcs []Arc, to NodeId) []Arc {
	var parallel []Arc
	for _, arc := range arcs {
		if arc.To == to {
			parallel = append(parallel, arc)
		}
	}
	return parallel
}

// Return the distinct destinations of the arcs, keeping the order of their first occurrence
func distinctDestinations(arcs []Arc) []NodeId {
	successors := make([]NodeId, 0, len(arcs))
	seen := make(map[NodeId]struct{}, len(arcs))
	for _, arc := range arcs {
		if _, ok := seen[arc.To]; ok {
			continue
		}
		seen[arc.To] = struct{}{}
		successors = append(successors, arc.To)
	}
	return successors
}

// GraphAsString writes the graph in fmi format.
// Attributes of an arc are written as name=value pairs sorted by name.
func GraphAsString(g Graph) string {
	var sb strings.Builder

	// write number of nodes and number of edges
	sb.WriteString(fmt.Sprintf("%v\n", g.NodeCount()))
	sb.WriteString(fmt.Sprintf("%v\n", g.ArcCount()))

	sb.WriteString("#Nodes\n")
	// list all nodes structured as "id lat lon"
	ids := g.GetNodeIds()
	for _, id := range ids {
		node, _ := g.GetNode(id)
		sb.WriteString(fmt.Sprintf("%d %v %v\n", id, formatFloat(node.Lat()), formatFloat(node.Lon())))
	}

	sb.WriteString("#Edges\n")
	// list all edges structured as "fromId targetId name=value..."
	for _, id := range ids {
		for _, arc := range g.GetArcsFrom(id) {
			sb.WriteString(fmt.Sprintf("%d %d", id, arc.To))
			names := make([]string, 0, len(arc.Attributes))
			for name := range arc.Attributes {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				sb.WriteString(fmt.Sprintf(" %v=%v", name, formatFloat(arc.Attributes[name])))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
