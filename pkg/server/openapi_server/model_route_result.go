// SPDX-License-Identifier: MIT

package openapi_server

import "github.com/paulmach/orb/geojson"

type RouteResult struct {
	Origin      Point `json:"origin"`
	Destination Point `json:"destination"`
	Reachable   bool  `json:"reachable"`
	Path        *Path `json:"path,omitempty"`
}

type Path struct {
	Nodes     []int64                    `json:"nodes"`
	Waypoints []Point                    `json:"waypoints"`
	Cost      float64                    `json:"cost"`
	Length    float64                    `json:"length"`
	Weight    string                     `json:"weight"`
	GeoJSON   *geojson.FeatureCollection `json:"geojson"`
}
