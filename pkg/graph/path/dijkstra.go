package path

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/queue"
)

// Dijkstra is a plain Dijkstra with an indexed priority queue (decrease-key instead of stale entries).
// It serves as a reference for the A* search.
type Dijkstra struct {
	g                  graph.Graph
	weight             string
	dijkstraItems      map[graph.NodeId]*queue.Item[graph.NodeId]
	predecessors       map[graph.NodeId]graph.NodeId
	origin             graph.NodeId
	destination        graph.NodeId
	searchSpace        []graph.NodeId
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
	relaxedEdges       int
}

func NewDijkstra(g graph.Graph, weight string) *Dijkstra {
	return &Dijkstra{g: g, weight: weight}
}

func (d *Dijkstra) ComputeShortestPath(origin, destination graph.NodeId) (float64, error) {
	d.origin, d.destination = origin, destination
	d.dijkstraItems = make(map[graph.NodeId]*queue.Item[graph.NodeId])
	d.predecessors = make(map[graph.NodeId]graph.NodeId)
	d.searchSpace = make([]graph.NodeId, 0)
	d.pqPops = 0
	d.pqUpdates = 0
	d.relaxationAttempts = 0
	d.relaxedEdges = 0

	for _, id := range []graph.NodeId{origin, destination} {
		if !d.g.HasNode(id) {
			return -1, fmt.Errorf("%w: %v", graph.ErrNodeNotFound, id)
		}
	}

	originItem := queue.NewQueueItem(origin, 0)
	d.dijkstraItems[origin] = originItem
	pq := queue.NewQueue(originItem)
	settled := make(map[graph.NodeId]bool)

	for pq.Len() > 0 {
		currentPqItem := heap.Pop(pq).(*queue.Item[graph.NodeId])
		currentNodeId := currentPqItem.ItemId
		d.pqPops++
		settled[currentNodeId] = true
		d.searchSpace = append(d.searchSpace, currentNodeId)

		if currentNodeId == destination {
			return currentPqItem.Priority, nil
		}

		for _, successor := range d.g.Successors(currentNodeId) {
			d.relaxationAttempts++
			if settled[successor] {
				continue
			}
			cost, ok := graph.MinAttribute(d.g.GetParallelArcs(currentNodeId, successor), d.weight)
			if !ok {
				continue
			}

			newPriority := currentPqItem.Priority + cost
			if math.IsInf(newPriority, 1) {
				continue
			}
			if pqItem, exists := d.dijkstraItems[successor]; !exists {
				pqItem = queue.NewQueueItem(successor, newPriority)
				d.dijkstraItems[successor] = pqItem
				heap.Push(pq, pqItem)
			} else if newPriority < pqItem.Priority {
				pq.Update(pqItem, newPriority)
			} else {
				continue
			}
			d.predecessors[successor] = currentNodeId
			d.pqUpdates++
			d.relaxedEdges++
		}
	}

	return -1, nil // by default a non-existing path has length -1
}

func (d *Dijkstra) GetPath(origin, destination graph.NodeId) []graph.NodeId {
	if origin != d.origin || destination != d.destination || len(d.searchSpace) == 0 ||
		d.searchSpace[len(d.searchSpace)-1] != destination {
		// by default, a non-existing path is an empty slice
		return make([]graph.NodeId, 0)
	}
	return reconstructPath(d.predecessors, origin, destination)
}

func (d *Dijkstra) GetSearchSpace() []graph.NodeId { return d.searchSpace }
func (d *Dijkstra) GetPqPops() int                 { return d.pqPops }
func (d *Dijkstra) GetPqUpdates() int              { return d.pqUpdates }
func (d *Dijkstra) GetEdgeRelaxations() int        { return d.relaxedEdges }
func (d *Dijkstra) GetRelaxationAttempts() int     { return d.relaxationAttempts }
func (d *Dijkstra) GetGraph() graph.Graph          { return d.g }
