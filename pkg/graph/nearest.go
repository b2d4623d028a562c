package graph

import (
	"fmt"
	"math"

	"github.com/dhconnelly/rtreego"
	geo "github.com/natevvv/osm-path-finder/pkg/geometry"
)

// number of tree candidates which are compared by their great-circle distance
const nearestCandidates = 8

// nodeEntry wraps a node for R-tree storage
type nodeEntry struct {
	id    NodeId
	point geo.Point
	bbox  rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// NearestIndex maps arbitrary coordinates to the closest node of a graph.
// The tree is built on web-mercator coordinates, the final choice uses the great-circle distance.
type NearestIndex struct {
	tree *rtreego.Rtree
	size int
}

func NewNearestIndex(g Graph) (*NearestIndex, error) {
	tree := rtreego.NewTree(2, 25, 50)
	for _, id := range g.GetNodeIds() {
		point, err := g.GetNode(id)
		if err != nil {
			return nil, err
		}
		x, y := point.Mercator()
		bbox, err := rtreego.NewRect(rtreego.Point{x, y}, []float64{1e-6, 1e-6})
		if err != nil {
			return nil, fmt.Errorf("index node %v: %w", id, err)
		}
		tree.Insert(&nodeEntry{id: id, point: point, bbox: bbox})
	}
	return &NearestIndex{tree: tree, size: g.NodeCount()}, nil
}

// Nearest returns the id of the node closest to the given point
func (ni *NearestIndex) Nearest(point geo.Point) (NodeId, error) {
	if ni.size == 0 {
		return 0, fmt.Errorf("%w: graph is empty", ErrNodeNotFound)
	}

	x, y := point.Mercator()
	candidates := ni.tree.NearestNeighbors(nearestCandidates, rtreego.Point{x, y})

	var nearest NodeId
	minDist := math.Inf(1)
	for _, candidate := range candidates {
		entry, ok := candidate.(*nodeEntry)
		if !ok || entry == nil {
			continue
		}
		if dist := point.Haversine(entry.point); dist < minDist || (dist == minDist && entry.id < nearest) {
			minDist = dist
			nearest = entry.id
		}
	}
	if math.IsInf(minDist, 1) {
		return 0, fmt.Errorf("%w: no node near %v", ErrNodeNotFound, point)
	}
	return nearest, nil
}
