// SPDX-License-Identifier: MIT

package openapi_server

import (
	"fmt"

	"github.com/natevvv/osm-path-finder/pkg/geometry"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func makePoint(p geometry.Point) Point {
	return Point{Lat: p.Lat(), Lon: p.Lon()}
}

func (p Point) toGeometry() geometry.Point {
	return geometry.MakePoint(p.Lat, p.Lon)
}

// AssertPointRequired checks if the coordinates are in range.
// Zero is a valid latitude and longitude, so no field is required to be non-zero.
func AssertPointRequired(obj Point) error {
	if !obj.toGeometry().Valid() {
		return &ParsingError{Err: fmt.Errorf("coordinates %v out of range", obj.toGeometry())}
	}
	return nil
}
