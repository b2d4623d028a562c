package path

import (
	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/slice"
)

// reconstructPath follows the predecessors from node back to the origin.
// The returned path starts at the origin and ends at node.
func reconstructPath(cameFrom map[graph.NodeId]graph.NodeId, origin, node graph.NodeId) []graph.NodeId {
	path := []graph.NodeId{node}
	for current := node; current != origin; {
		predecessor, ok := cameFrom[current]
		if !ok {
			break
		}
		path = append(path, predecessor)
		current = predecessor
	}
	// reverse path (to create the correct direction)
	slice.ReverseInPlace(path)
	return path
}
