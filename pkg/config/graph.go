package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/natevvv/osm-path-finder/pkg/graph"
)

// LoadGraph reads the graph file and clips it to the configured area.
// The returned graph is static and may be shared by any number of searches.
func (s Settings) LoadGraph() (graph.Graph, error) {
	if s.GraphFile == "" {
		return nil, fmt.Errorf("%w: graph_file is not set", ErrInvalidConfig)
	}

	start := time.Now()
	if s.MapDistance == 0 {
		aag, err := graph.NewAdjacencyArrayFromFmiFile(s.GraphFile)
		if err != nil {
			return nil, err
		}
		if s.DebugLevel >= 1 {
			log.Printf("[TIME-Import] = %s, %v nodes, %v arcs\n", time.Since(start), aag.NodeCount(), aag.ArcCount())
		}
		return aag, nil
	}

	alg, err := graph.NewAdjacencyListFromFmiFile(s.GraphFile)
	if err != nil {
		return nil, err
	}
	clipped := graph.ClipAround(alg, s.MapCenterPoint.Point(), s.MapDistance)
	if s.DebugLevel >= 1 {
		log.Printf("[TIME-Import] = %s, clipped to %vm around %v: %v of %v nodes, %v arcs\n", time.Since(start), s.MapDistance, s.MapCenterPoint.Point(), clipped.NodeCount(), alg.NodeCount(), clipped.ArcCount())
	}
	if clipped.NodeCount() == 0 {
		return nil, errors.New("no node within map_distance of map_center_point")
	}
	return graph.NewAdjacencyArrayFromGraph(clipped), nil
}
