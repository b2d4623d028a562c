package geometry

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/project"
)

// Point is a geographic coordinate in degrees (WGS84).
// It is comparable and can be used as a map key.
type Point struct {
	lat float64
	lon float64
}

func MakePoint(lat, lon float64) Point {
	return Point{lat: lat, lon: lon}
}

// Create a point from an orb point, which stores the coordinates as [lon, lat]
func FromOrb(p orb.Point) Point {
	return Point{lat: p.Lat(), lon: p.Lon()}
}

func (p Point) Lat() float64 { return p.lat }
func (p Point) Lon() float64 { return p.lon }

// Orb returns the point in orb's [lon, lat] order
func (p Point) Orb() orb.Point {
	return orb.Point{p.lon, p.lat}
}

// Haversine returns the great-circle distance to q in meters
func (p Point) Haversine(q Point) float64 {
	return geo.DistanceHaversine(p.Orb(), q.Orb())
}

// MaxMercatorLatitude is the latitude limit of the web-mercator projection
const MaxMercatorLatitude = 85.05112878

// Mercator returns the planar web-mercator (EPSG:3857) coordinates of the point in meters.
// Latitudes beyond MaxMercatorLatitude are clamped, the poles would be projected to infinity.
func (p Point) Mercator() (x, y float64) {
	lat := math.Max(-MaxMercatorLatitude, math.Min(MaxMercatorLatitude, p.lat))
	m := project.WGS84.ToMercator(orb.Point{p.lon, lat})
	return m[0], m[1]
}

// Valid reports whether the point lies within the WGS84 coordinate ranges
func (p Point) Valid() bool {
	if math.IsNaN(p.lat) || math.IsNaN(p.lon) {
		return false
	}
	return p.lat >= -90 && p.lat <= 90 && p.lon >= -180 && p.lon <= 180
}

func (p Point) String() string {
	return fmt.Sprintf("(%v, %v)", p.lat, p.lon)
}
