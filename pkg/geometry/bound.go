package geometry

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Bound is an axis aligned lat/lon rectangle
type Bound struct {
	b orb.Bound
}

// BoundAround returns the rectangle that contains every point within distance meters of center
func BoundAround(center Point, distance float64) Bound {
	return Bound{b: geo.NewBoundAroundPoint(center.Orb(), distance)}
}

func (b Bound) Contains(p Point) bool {
	return b.b.Contains(p.Orb())
}

func (b Bound) Min() Point { return FromOrb(b.b.Min) }
func (b Bound) Max() Point { return FromOrb(b.b.Max) }
