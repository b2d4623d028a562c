// SPDX-License-Identifier: MIT

package openapi_server

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/graph/path"
)

// Frame is one step of a search session.
// The last frame of a search has Done set, a failed search ends with the state EXHAUSTED,
// no current node and an empty path.
// The GeoJSON holds the visited nodes, the path and the current node with an OSM feature id ("node/<id>").
type Frame struct {
	SearchId        string                     `json:"searchId"`
	Step            int                        `json:"step"`
	State           string                     `json:"state"`
	Current         *int64                     `json:"current,omitempty"`
	Cost            float64                    `json:"cost"`
	Done            bool                       `json:"done"`
	Visited         []int64                    `json:"visited"`
	Path            []int64                    `json:"path"`
	VisitedMercator [][2]float64               `json:"visitedMercator"`
	PathMercator    [][2]float64               `json:"pathMercator"`
	GeoJSON         *geojson.FeatureCollection `json:"geojson"`
}

type Frames struct {
	Frames []Frame `json:"frames"`
}

// FrameStyle is handed to clients for drawing the frames
type FrameStyle struct {
	AnimationInterval int
	VisitedColor      string
	CurrentColor      string
}

func DefaultFrameStyle() FrameStyle {
	return FrameStyle{AnimationInterval: 300, VisitedColor: "blue", CurrentColor: "red"}
}

func nodeIds(ids []graph.NodeId) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

// makeFrame converts a snapshot. Nodes without coordinates are left out of the geometries.
func makeFrame(searchId string, snapshot path.Snapshot, g graph.Graph, style FrameStyle) Frame {
	frame := Frame{
		SearchId:        searchId,
		Step:            snapshot.Step,
		State:           snapshot.State.String(),
		Cost:            snapshot.Cost,
		Done:            snapshot.Done(),
		Visited:         nodeIds(snapshot.Visited.Sorted()),
		Path:            nodeIds(snapshot.Path),
		VisitedMercator: make([][2]float64, 0, snapshot.Visited.Len()),
		PathMercator:    make([][2]float64, 0, len(snapshot.Path)),
	}
	if !snapshot.Failed() {
		current := int64(snapshot.Current)
		frame.Current = &current
	}

	visited := make(orb.MultiPoint, 0, snapshot.Visited.Len())
	for _, id := range snapshot.Visited.Sorted() {
		if point, err := g.GetNode(id); err == nil {
			x, y := point.Mercator()
			frame.VisitedMercator = append(frame.VisitedMercator, [2]float64{x, y})
			visited = append(visited, point.Orb())
		}
	}
	line := make(orb.LineString, 0, len(snapshot.Path))
	for _, id := range snapshot.Path {
		if point, err := g.GetNode(id); err == nil {
			x, y := point.Mercator()
			frame.PathMercator = append(frame.PathMercator, [2]float64{x, y})
			line = append(line, point.Orb())
		}
	}

	fc := geojson.NewFeatureCollection()
	visitedFeature := geojson.NewFeature(visited)
	visitedFeature.Properties["role"] = "visited"
	visitedFeature.Properties["color"] = style.VisitedColor
	fc.Append(visitedFeature)
	pathFeature := geojson.NewFeature(line)
	pathFeature.Properties["role"] = "path"
	pathFeature.Properties["color"] = style.CurrentColor
	fc.Append(pathFeature)
	if !snapshot.Failed() {
		if point, err := g.GetNode(snapshot.Current); err == nil {
			currentFeature := geojson.NewFeature(point.Orb())
			currentFeature.ID = snapshot.Current.FeatureID().String()
			currentFeature.Properties["role"] = "current"
			currentFeature.Properties["color"] = style.CurrentColor
			currentFeature.Properties["cost"] = snapshot.Cost
			fc.Append(currentFeature)
		}
	}
	frame.GeoJSON = fc
	return frame
}

// routeGeoJSON returns the waypoints of a route as a single line feature
func routeGeoJSON(waypoints []Point, cost float64, color string) *geojson.FeatureCollection {
	line := make(orb.LineString, 0, len(waypoints))
	for _, waypoint := range waypoints {
		line = append(line, orb.Point{waypoint.Lon, waypoint.Lat})
	}
	feature := geojson.NewFeature(line)
	feature.Properties["role"] = "route"
	feature.Properties["color"] = color
	feature.Properties["cost"] = cost
	return geojson.NewFeatureCollection().Append(feature)
}
