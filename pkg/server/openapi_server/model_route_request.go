// SPDX-License-Identifier: MIT

package openapi_server

type RouteRequest struct {
	Origin      Point `json:"origin"`
	Destination Point `json:"destination"`
}

// AssertRouteRequestRequired checks if the required fields are not zero-ed
func AssertRouteRequestRequired(obj RouteRequest) error {
	if err := AssertPointRequired(obj.Origin); err != nil {
		return err
	}
	if err := AssertPointRequired(obj.Destination); err != nil {
		return err
	}
	return nil
}
