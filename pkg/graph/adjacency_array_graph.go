package graph

import (
	"fmt"

	geo "github.com/natevvv/osm-path-finder/pkg/geometry"
)

// Implementation for static graphs
type AdjacencyArrayGraph struct {
	Nodes   []geo.Point
	arcs    []Arc
	Offsets []int
	ids     []NodeId
	index   map[NodeId]int
}

// Create an AdjacencyArrayGraph from the given graph
func NewAdjacencyArrayFromGraph(g Graph) *AdjacencyArrayGraph {
	ids := g.GetNodeIds()
	nodes := make([]geo.Point, 0, len(ids))
	arcs := make([]Arc, 0, g.ArcCount())
	offsets := make([]int, len(ids)+1)
	index := make(map[NodeId]int, len(ids))

	for i, id := range ids {
		// add node
		node, err := g.GetNode(id)
		if err != nil {
			panic(fmt.Sprintf("NodeId %d is listed but not contained in the graph.", id))
		}
		nodes = append(nodes, node)
		index[id] = i

		// add all edges of node
		arcs = append(arcs, g.GetArcsFrom(id)...)

		// set stop-offset
		offsets[i+1] = len(arcs)
	}

	copiedIds := make([]NodeId, len(ids))
	copy(copiedIds, ids)

	return &AdjacencyArrayGraph{Nodes: nodes, arcs: arcs, Offsets: offsets, ids: copiedIds, index: index}
}

// Get the coordinates for the given node id
func (aag *AdjacencyArrayGraph) GetNode(id NodeId) (geo.Point, error) {
	i, ok := aag.index[id]
	if !ok {
		return geo.Point{}, fmt.Errorf("%w: %v", ErrNodeNotFound, id)
	}
	return aag.Nodes[i], nil
}

func (aag *AdjacencyArrayGraph) HasNode(id NodeId) bool {
	_, ok := aag.index[id]
	return ok
}

// get all node ids of the graph
func (aag *AdjacencyArrayGraph) GetNodeIds() []NodeId {
	return aag.ids
}

// Get the Arcs for the given node id
func (aag *AdjacencyArrayGraph) GetArcsFrom(id NodeId) []Arc {
	i, ok := aag.index[id]
	if !ok {
		return nil
	}
	return aag.arcs[aag.Offsets[i]:aag.Offsets[i+1]]
}

func (aag *AdjacencyArrayGraph) GetParallelArcs(from, to NodeId) []Arc {
	return arcsTo(aag.GetArcsFrom(from), to)
}

func (aag *AdjacencyArrayGraph) Successors(id NodeId) []NodeId {
	return distinctDestinations(aag.GetArcsFrom(id))
}

// Returns the number of Nodes in the graph
func (aag *AdjacencyArrayGraph) NodeCount() int {
	return len(aag.Nodes)
}

// Returns the total number of arcs in the graph
func (aag *AdjacencyArrayGraph) ArcCount() int {
	return len(aag.arcs)
}

// Returns a human readable string of the graph
func (aag *AdjacencyArrayGraph) AsString() string {
	return GraphAsString(aag)
}
