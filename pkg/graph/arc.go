package graph

import "math"

// Well known arc attributes
const (
	Length     = "length"      // meters
	TravelTime = "travel_time" // seconds
)

// Attributes are the numeric weight records of an arc, e.g. length or travel time
type Attributes map[string]float64

func (a Attributes) Clone() Attributes {
	c := make(Attributes, len(a))
	for name, v := range a {
		c[name] = v
	}
	return c
}

// validate returns the name of the first attribute which is negative, NaN or infinite
func (a Attributes) validate() (string, bool) {
	for name, v := range a {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return name, false
		}
	}
	return "", true
}

// Arc is a directed connection to another node.
// A multigraph may hold several arcs with the same destination.
type Arc struct {
	To         NodeId
	Attributes Attributes
}

func MakeArc(to NodeId, attributes Attributes) Arc {
	return Arc{To: to, Attributes: attributes}
}

func (a Arc) Destination() NodeId {
	return a.To
}

// Cost returns the value of the named attribute, or +Inf if the arc does not carry it
func (a Arc) Cost(attribute string) float64 {
	if v, ok := a.Attributes[attribute]; ok {
		return v
	}
	return math.Inf(1)
}

// MinAttribute returns the smallest value of the named attribute among the given arcs.
// Arcs without the attribute are ignored. If no arc carries it, ok is false.
func MinAttribute(arcs []Arc, attribute string) (min float64, ok bool) {
	min = math.Inf(1)
	for _, arc := range arcs {
		if v, has := arc.Attributes[attribute]; has {
			ok = true
			if v < min {
				min = v
			}
		}
	}
	return min, ok
}
