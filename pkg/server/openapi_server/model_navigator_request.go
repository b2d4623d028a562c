// SPDX-License-Identifier: MIT

package openapi_server

import "strings"

// NavigatorRequest selects the navigator used by ComputeRoute, "astar" or "dijkstra"
type NavigatorRequest struct {
	Navigator string `json:"navigator"`
}

// AssertNavigatorRequestRequired checks if the required fields are not blank
func AssertNavigatorRequestRequired(obj NavigatorRequest) error {
	if strings.TrimSpace(obj.Navigator) == "" {
		return &RequiredError{Field: "navigator"}
	}
	return nil
}
