package graph

import (
	geo "github.com/natevvv/osm-path-finder/pkg/geometry"
)

// Clip returns the subgraph induced by the nodes inside the bound.
// Arcs are kept when both of their end points are inside.
func Clip(g Graph, bound geo.Bound) *AdjacencyListGraph {
	clipped := NewAdjacencyListGraph()
	for _, id := range g.GetNodeIds() {
		point, err := g.GetNode(id)
		if err != nil || !bound.Contains(point) {
			continue
		}
		// ids of g are unique, so this cannot fail
		clipped.AddNode(id, point)
	}

	for _, id := range clipped.GetNodeIds() {
		for _, arc := range g.GetArcsFrom(id) {
			if !clipped.HasNode(arc.To) {
				continue
			}
			clipped.AddArc(id, arc.To, arc.Attributes)
		}
	}
	return clipped
}

// ClipAround returns the subgraph of all nodes within distance meters (by bounding box) of center
func ClipAround(g Graph, center geo.Point, distance float64) *AdjacencyListGraph {
	return Clip(g, geo.BoundAround(center, distance))
}
