package path

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"math"

	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/queue"
)

// SearchKPIs count the work done by a search so far
type SearchKPIs struct {
	PqPops             int // pops from the frontier, stale entries included
	PqPushes           int // pushes to the frontier
	StaleEntries       int // popped entries of nodes which were settled before
	RelaxationAttempts int // successors looked at
	RelaxedEdges       int // successors whose distance improved
	SettledNodes       int // nodes emitted as current
}

// Option configures a Search
type Option func(*Search)

// WithHeuristic replaces the heuristic derived from the weight attribute
func WithHeuristic(h Heuristic) Option {
	return func(s *Search) { s.heuristic = h }
}

// Set the debug level to show different debug messages.
// If it is 0, no debug messages are printed
func WithDebugLevel(level int) Option {
	return func(s *Search) { s.debugLevel = level }
}

// Search is an A* search which can be advanced one settled node at a time.
//
// Every call to Next settles at most one node and makes a Snapshot of the progress available.
// All state is kept between the calls, so the caller decides the pace and may stop at any time.
// A Search is not safe for concurrent use, but any number of searches may share one graph
// as long as the graph is not modified.
//
//	s, err := path.NewSearch(g, origin, destination, graph.TravelTime)
//	if err != nil {
//		return err
//	}
//	for s.Next() {
//		render(s.Snapshot())
//	}
//	return s.Err()
type Search struct {
	g           graph.Graph
	origin      graph.NodeId // the origin of the search
	destination graph.NodeId // the destination of the search
	weight      string       // arc attribute used as cost
	heuristic   Heuristic

	frontier *queue.MinHeap[*frontierItem]
	gScore   map[graph.NodeId]float64      // best known distance from the origin, missing means +Inf
	cameFrom map[graph.NodeId]graph.NodeId // predecessor on the best known path
	visited  NodeSet                       // settled nodes

	state    State
	snapshot Snapshot
	pending  bool // the arcs of the last settled node still need to be relaxed
	err      error

	kpis       SearchKPIs
	debugLevel int // debug level for logging purpose
}

// NewSearch prepares a search from origin to destination which uses the given arc attribute as cost.
// It fails with graph.ErrNodeNotFound if one of the end points is not part of the graph.
// Without WithHeuristic, the heuristic is chosen by HeuristicFor with DefaultMaxSpeed.
func NewSearch(g graph.Graph, origin, destination graph.NodeId, weight string, options ...Option) (*Search, error) {
	s := &Search{
		g:           g,
		origin:      origin,
		destination: destination,
		weight:      weight,
		frontier:    queue.NewMinHeap[*frontierItem](nil),
		gScore:      make(map[graph.NodeId]float64),
		cameFrom:    make(map[graph.NodeId]graph.NodeId),
		visited:     make(NodeSet),
		state:       Initialized,
	}
	for _, option := range options {
		option(s)
	}
	if s.heuristic == nil {
		s.heuristic = HeuristicFor(weight, DefaultMaxSpeed)
	}

	if !g.HasNode(origin) {
		return nil, fmt.Errorf("%w: origin %v", graph.ErrNodeNotFound, origin)
	}
	if !g.HasNode(destination) {
		return nil, fmt.Errorf("%w: destination %v", graph.ErrNodeNotFound, destination)
	}
	heuristic, err := s.heuristic(g, origin, destination)
	if err != nil {
		return nil, err
	}

	if s.debugLevel >= 1 {
		log.Printf("New search: %v -> %v, weight: %v\n", origin, destination, weight)
	}

	s.gScore[origin] = 0
	s.frontier.Push(newFrontierItem(origin, 0, heuristic))
	s.kpis.PqPushes++
	return s, nil
}

// Next settles the next node and reports whether a new snapshot is available.
// It returns false once the search finished (after the GoalFinalized or Exhausted snapshot)
// or if an error occurred.
func (s *Search) Next() bool {
	if s.err != nil || s.state == GoalFinalized || s.state == Exhausted {
		return false
	}

	if s.pending {
		s.pending = false
		if err := s.relaxArcs(s.snapshot.Current); err != nil {
			s.err = err
			return false
		}
	}

	for s.frontier.Len() > 0 {
		item := s.frontier.Pop()
		s.kpis.PqPops++
		s.state = Expanding

		if s.visited.Contains(item.nodeId) {
			// stale entry, the node was settled with a better or equal distance before
			s.kpis.StaleEntries++
			continue
		}

		s.settleNode(item.nodeId)

		if item.nodeId == s.destination {
			s.state = GoalFinalized
			s.snapshot.State = GoalFinalized
			if s.debugLevel >= 1 {
				log.Printf("Found path %v -> %v with cost %v, settled %v nodes\n", s.origin, s.destination, s.snapshot.Cost, s.kpis.SettledNodes)
			}
			return true
		}

		s.pending = true
		return true
	}

	s.state = Exhausted
	s.snapshot = Snapshot{
		Step:    s.kpis.SettledNodes,
		State:   Exhausted,
		Visited: maps.Clone(s.visited),
		Path:    []graph.NodeId{},
	}
	if s.debugLevel >= 1 {
		log.Printf("Finished search, no path found, settled %v nodes\n", s.kpis.SettledNodes)
	}
	return true
}

// Settle the given node and make a snapshot of it
func (s *Search) settleNode(nodeId graph.NodeId) {
	s.visited[nodeId] = struct{}{}
	if s.debugLevel >= 2 {
		log.Printf("Settling node %v, distance %v\n", nodeId, s.gScore[nodeId])
	}

	s.snapshot = Snapshot{
		Step:    s.kpis.SettledNodes,
		State:   Expanding,
		Current: nodeId,
		Cost:    s.gScore[nodeId],
		Visited: maps.Clone(s.visited),
		Path:    reconstructPath(s.cameFrom, s.origin, nodeId),
	}
	s.kpis.SettledNodes++
}

// Relax the arcs of the given node and add the improved successors to the frontier
func (s *Search) relaxArcs(nodeId graph.NodeId) error {
	distance := s.gScore[nodeId]
	for _, successor := range s.g.Successors(nodeId) {
		s.kpis.RelaxationAttempts++
		if s.visited.Contains(successor) {
			continue
		}

		cost, ok := graph.MinAttribute(s.g.GetParallelArcs(nodeId, successor), s.weight)
		if !ok {
			if s.debugLevel >= 3 {
				log.Printf("Ignore Edge %v -> %v (no %v)\n", nodeId, successor, s.weight)
			}
			continue
		}

		tentative := distance + cost
		if tentative >= s.distance(successor) {
			continue
		}

		heuristic, err := s.heuristic(s.g, successor, s.destination)
		if err != nil {
			return err
		}
		if s.debugLevel >= 3 {
			log.Printf("Relax Edge %v -> %v, distance %v\n", nodeId, successor, tentative)
		}
		s.cameFrom[successor] = nodeId
		s.gScore[successor] = tentative
		s.frontier.Push(newFrontierItem(successor, tentative, heuristic))
		s.kpis.PqPushes++
		s.kpis.RelaxedEdges++
	}
	return nil
}

// distance returns the best known distance from the origin, +Inf for undiscovered nodes
func (s *Search) distance(nodeId graph.NodeId) float64 {
	if d, ok := s.gScore[nodeId]; ok {
		return d
	}
	return math.Inf(1)
}

// Snapshot returns the snapshot made by the last successful call to Next.
// The snapshot is a copy, changing it does not affect the search.
func (s *Search) Snapshot() Snapshot {
	snapshot := s.snapshot
	snapshot.Visited = maps.Clone(s.snapshot.Visited)
	snapshot.Path = append([]graph.NodeId(nil), s.snapshot.Path...)
	if snapshot.Path == nil {
		snapshot.Path = []graph.NodeId{}
	}
	return snapshot
}

// All returns the remaining snapshots as an iterator.
// Stopping the iteration early leaves the search where it is.
func (s *Search) All() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for s.Next() {
			if !yield(s.Snapshot()) {
				return
			}
		}
	}
}

// Err returns the error which stopped the search, if any
func (s *Search) Err() error { return s.err }

func (s *Search) State() State              { return s.state }
func (s *Search) Stats() SearchKPIs         { return s.kpis }
func (s *Search) Origin() graph.NodeId      { return s.origin }
func (s *Search) Destination() graph.NodeId { return s.destination }
func (s *Search) Weight() string            { return s.weight }
func (s *Search) GetGraph() graph.Graph     { return s.g }
