package path

import (
	"fmt"

	"github.com/natevvv/osm-path-finder/pkg/graph"
)

// implements queue.Priorizable
type frontierItem struct {
	nodeId    graph.NodeId // node id of this item in the graph
	distance  float64      // distance to origin of this node when the item was pushed
	heuristic float64      // estimated distance from node to destination
}

func newFrontierItem(nodeId graph.NodeId, distance, heuristic float64) *frontierItem {
	return &frontierItem{nodeId: nodeId, distance: distance, heuristic: heuristic}
}

func (item *frontierItem) Priority() float64 { return item.distance + item.heuristic }
func (item *frontierItem) String() string {
	return fmt.Sprintf("%v, %v\n", item.nodeId, item.Priority())
}
