// SPDX-License-Identifier: MIT

package openapi_server

import (
	"errors"
)

// SearchRequest starts a search either between two coordinates, which are snapped to the closest nodes,
// or between two node ids.
type SearchRequest struct {
	Origin          *Point `json:"origin,omitempty"`
	Destination     *Point `json:"destination,omitempty"`
	OriginNode      *int64 `json:"originNode,omitempty"`
	DestinationNode *int64 `json:"destinationNode,omitempty"`
}

// AssertSearchRequestRequired checks that exactly one kind of end points is given
func AssertSearchRequestRequired(obj SearchRequest) error {
	byPoint := obj.Origin != nil || obj.Destination != nil
	byNode := obj.OriginNode != nil || obj.DestinationNode != nil
	if byPoint && byNode {
		return &ParsingError{Err: errors.New("either coordinates or node ids, not both")}
	}
	if byNode {
		if obj.OriginNode == nil {
			return &RequiredError{Field: "originNode"}
		}
		if obj.DestinationNode == nil {
			return &RequiredError{Field: "destinationNode"}
		}
		return nil
	}
	if obj.Origin == nil {
		return &RequiredError{Field: "origin"}
	}
	if obj.Destination == nil {
		return &RequiredError{Field: "destination"}
	}
	if err := AssertPointRequired(*obj.Origin); err != nil {
		return err
	}
	return AssertPointRequired(*obj.Destination)
}

// Search describes a started search session
type Search struct {
	Id                string `json:"id"`
	OriginNode        int64  `json:"originNode"`
	DestinationNode   int64  `json:"destinationNode"`
	Weight            string `json:"weight"`
	AnimationInterval int    `json:"animationInterval"` // ms between frames
	VisitedColor      string `json:"visitedColor"`
	CurrentColor      string `json:"currentColor"`
}
