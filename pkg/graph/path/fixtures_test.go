package path

import (
	"testing"

	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/stretchr/testify/require"
)

// 3x3 grid with a diagonal arc to node 9, about 111 m between neighbors
const graphFmi = `10
26
# nodes
0 0 0
1 0 0.001
2 0 0.002
3 0.001 0
4 0.001 0.001
5 0.001 0.002
6 0.002 0
7 0.002 0.001
8 0.002 0.002
9 0.003 0.003
# edges
0 1 120
0 3 120
1 0 120
1 2 120
1 4 120
2 1 120
2 5 120
3 0 120
3 4 120
3 6 120
4 1 120
4 3 120
4 5 120
4 7 120
5 2 120
5 4 120
5 8 120
6 3 120
6 7 120
7 4 120
7 6 120
7 8 120
8 5 120
8 7 120
8 9 160
9 8 160`

// two components: 1-2-3 and 4-5
const disconnectedFmi = `5
4
1 0 0
2 0 0.001
3 0 0.002
4 1 1
5 1 1.001
1 2 length=10
2 3 length=10
3 1 length=10
4 5 length=10`

// the direct arc to 4 is worse than the detour over 2, so 4 gets pushed twice
const staleFmi = `5
5
1 0 0
2 0 0
3 0 0
4 0 0
5 0 0
1 2 length=1
1 4 length=5
2 4 length=1
4 5 length=10
2 3 length=20`

func mustGraph(t *testing.T, fmi string) graph.Graph {
	t.Helper()
	g, err := graph.NewAdjacencyArrayFromFmiString(fmi)
	require.NoError(t, err)
	return g
}

func collect(t *testing.T, s *Search) []Snapshot {
	t.Helper()
	var snapshots []Snapshot
	for s.Next() {
		snapshots = append(snapshots, s.Snapshot())
	}
	require.NoError(t, s.Err())
	return snapshots
}
