// SPDX-License-Identifier: MIT

package openapi_server

type Nodes struct {
	Waypoints []Point `json:"waypoints"`
}

type Node struct {
	Id       int64   `json:"id"`
	Point    Point   `json:"point"`
	Distance float64 `json:"distance"` // meters from the requested coordinates
}
