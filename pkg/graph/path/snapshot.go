package path

import (
	"maps"
	"slices"

	"github.com/natevvv/osm-path-finder/pkg/graph"
)

// State of a Search
type State int

const (
	Initialized   State = iota // frontier holds only the origin, nothing popped yet
	Expanding                  // nodes are being settled
	GoalFinalized              // the destination was settled, the search succeeded
	Exhausted                  // the frontier ran empty before the destination was settled
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "INITIALIZED"
	case Expanding:
		return "EXPANDING"
	case GoalFinalized:
		return "GOAL_FINALIZED"
	case Exhausted:
		return "EXHAUSTED"
	}
	return "INVALID"
}

// NodeSet is a set of node ids. Snapshots hold their own copy.
type NodeSet map[graph.NodeId]struct{}

func (ns NodeSet) Contains(id graph.NodeId) bool {
	_, ok := ns[id]
	return ok
}

func (ns NodeSet) Len() int { return len(ns) }

// Sorted returns the ids in ascending order
func (ns NodeSet) Sorted() []graph.NodeId {
	return slices.Sorted(maps.Keys(ns))
}

// Snapshot is the observable progress of one search step.
//
// For every settled node, Current is that node, Cost its distance from the origin and Path
// the optimal path from the origin to it. The last snapshot of a failed search has the
// state Exhausted, no current node and an empty path.
type Snapshot struct {
	Step    int          // number of the snapshot, starting at 0
	State   State        // Expanding, GoalFinalized or Exhausted
	Current graph.NodeId // the settled node, meaningless if Failed()
	Cost    float64      // cost from the origin to Current
	Visited NodeSet      // all settled nodes, Current included
	Path    []graph.NodeId
}

// Failed reports whether this is the terminal snapshot of a search which did not reach its destination
func (s Snapshot) Failed() bool {
	return s.State == Exhausted
}

// Done reports whether no further snapshot follows
func (s Snapshot) Done() bool {
	return s.State == GoalFinalized || s.State == Exhausted
}
