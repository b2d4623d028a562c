package graph

import (
	"fmt"

	geo "github.com/natevvv/osm-path-finder/pkg/geometry"
)

// Implementation for dynamic graphs.
// Parallel arcs between the same pair of nodes are kept as separate weight records.
type AdjacencyListGraph struct {
	Nodes    []geo.Point    // The coordinates of the nodes, in insertion order
	Edges    [][]Arc        // The Arcs of the graph. The first slice specifies to which node (by index) the arc belongs
	ids      []NodeId       // node id for each index
	index    map[NodeId]int // index for each node id
	arcCount int            // the number of arcs in the graph
}

var _ DynamicGraph = (*AdjacencyListGraph)(nil)

func NewAdjacencyListGraph() *AdjacencyListGraph {
	return &AdjacencyListGraph{
		Nodes: make([]geo.Point, 0),
		Edges: make([][]Arc, 0),
		ids:   make([]NodeId, 0),
		index: make(map[NodeId]int),
	}
}

// Return the coordinates of the node with the given id
func (alg *AdjacencyListGraph) GetNode(id NodeId) (geo.Point, error) {
	i, ok := alg.index[id]
	if !ok {
		return geo.Point{}, fmt.Errorf("%w: %v", ErrNodeNotFound, id)
	}
	return alg.Nodes[i], nil
}

func (alg *AdjacencyListGraph) HasNode(id NodeId) bool {
	_, ok := alg.index[id]
	return ok
}

// Return all node ids of the graph
func (alg *AdjacencyListGraph) GetNodeIds() []NodeId {
	return alg.ids
}

// Get the arcs for the given node. Unknown nodes have no arcs.
func (alg *AdjacencyListGraph) GetArcsFrom(id NodeId) []Arc {
	i, ok := alg.index[id]
	if !ok {
		return nil
	}
	return alg.Edges[i]
}

func (alg *AdjacencyListGraph) GetParallelArcs(from, to NodeId) []Arc {
	return arcsTo(alg.GetArcsFrom(from), to)
}

func (alg *AdjacencyListGraph) Successors(id NodeId) []NodeId {
	return distinctDestinations(alg.GetArcsFrom(id))
}

// Return the number of total nodes
func (alg *AdjacencyListGraph) NodeCount() int {
	return len(alg.Nodes)
}

// Return the number of total arcs
func (alg *AdjacencyListGraph) ArcCount() int {
	return alg.arcCount
}

// Return a human readable string of the graph
func (alg *AdjacencyListGraph) AsString() string {
	return GraphAsString(alg)
}

// Add a node to the graph
func (alg *AdjacencyListGraph) AddNode(id NodeId, p geo.Point) error {
	if _, exists := alg.index[id]; exists {
		return fmt.Errorf("%w: %v", ErrDuplicateNode, id)
	}
	alg.index[id] = len(alg.Nodes)
	alg.ids = append(alg.ids, id)
	alg.Nodes = append(alg.Nodes, p)
	alg.Edges = append(alg.Edges, make([]Arc, 0))
	return nil
}

// Add an arc to the graph, going from source to target with the given attributes.
// Arcs to an already connected target are added as parallel arcs.
func (alg *AdjacencyListGraph) AddArc(from, to NodeId, attributes Attributes) error {
	i, ok := alg.index[from]
	if !ok {
		return fmt.Errorf("%w: arc source %v", ErrNodeNotFound, from)
	}
	if !alg.HasNode(to) {
		return fmt.Errorf("%w: arc target %v", ErrNodeNotFound, to)
	}
	if name, valid := attributes.validate(); !valid {
		return fmt.Errorf("%w: %v -> %v %v=%v", ErrNegativeWeight, from, to, name, attributes[name])
	}

	alg.Edges[i] = append(alg.Edges[i], MakeArc(to, attributes.Clone()))
	alg.arcCount++
	return nil
}
