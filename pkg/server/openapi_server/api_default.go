// SPDX-License-Identifier: MIT

package openapi_server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"ComputeRoute",
			strings.ToUpper("Post"),
			"/routes",
			c.ComputeRoute,
		},
		{
			"GetNodes",
			strings.ToUpper("Get"),
			"/nodes",
			c.GetNodes,
		},
		{
			"GetNearestNode",
			strings.ToUpper("Get"),
			"/nodes/nearest",
			c.GetNearestNode,
		},
		{
			"GetSearchSpace",
			strings.ToUpper("Get"),
			"/searchSpace",
			c.GetSearchSpace,
		},
		{
			"SetNavigator",
			strings.ToUpper("Post"),
			"/navigator",
			c.SetNavigator,
		},
		{
			"StartSearch",
			strings.ToUpper("Post"),
			"/searches",
			c.StartSearch,
		},
		{
			"NextFrame",
			strings.ToUpper("Get"),
			"/searches/{searchId}/next",
			c.NextFrame,
		},
		{
			"GetFrames",
			strings.ToUpper("Get"),
			"/searches/{searchId}/frames",
			c.GetFrames,
		},
		{
			"CancelSearch",
			strings.ToUpper("Delete"),
			"/searches/{searchId}",
			c.CancelSearch,
		},
	}
}

// ComputeRoute - Compute a new route
func (c *DefaultApiController) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	routeRequestParam := RouteRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&routeRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertRouteRequestRequired(routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.ComputeRoute(r.Context(), routeRequestParam)
	c.respond(w, r, result, err, "POST")
}

// GetNodes - Get all nodes of the graph
func (c *DefaultApiController) GetNodes(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetNodes(r.Context())
	c.respond(w, r, result, err, "GET")
}

// GetNearestNode - Get the node closest to the coordinates given by the lat and lon query parameters
func (c *DefaultApiController) GetNearestNode(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	lat, err := parseFloat64Parameter("lat", query.Get("lat"))
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	lon, err := parseFloat64Parameter("lon", query.Get("lon"))
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	pointParam := Point{Lat: lat, Lon: lon}
	if err := AssertPointRequired(pointParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.GetNearestNode(r.Context(), pointParam)
	c.respond(w, r, result, err, "GET")
}

// GetSearchSpace - Get the nodes settled by the last route computation
func (c *DefaultApiController) GetSearchSpace(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetSearchSpace(r.Context())
	c.respond(w, r, result, err, "GET")
}

// SetNavigator - Select the navigator used for routes
func (c *DefaultApiController) SetNavigator(w http.ResponseWriter, r *http.Request) {
	navigatorRequestParam := NavigatorRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&navigatorRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertNavigatorRequestRequired(navigatorRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.SetNavigator(r.Context(), navigatorRequestParam)
	c.respond(w, r, result, err, "POST")
}

// StartSearch - Start a search session
func (c *DefaultApiController) StartSearch(w http.ResponseWriter, r *http.Request) {
	searchRequestParam := SearchRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&searchRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertSearchRequestRequired(searchRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.StartSearch(r.Context(), searchRequestParam)
	c.respond(w, r, result, err, "POST")
}

// NextFrame - Advance a search session by one step
func (c *DefaultApiController) NextFrame(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	result, err := c.service.NextFrame(r.Context(), params["searchId"])
	c.respond(w, r, result, err, "GET")
}

// GetFrames - Advance a search session by up to limit steps
func (c *DefaultApiController) GetFrames(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	limitParam, err := parseInt32Parameter(r.URL.Query().Get("limit"), 100)
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.GetFrames(r.Context(), params["searchId"], limitParam)
	c.respond(w, r, result, err, "GET")
}

// CancelSearch - Drop a search session
func (c *DefaultApiController) CancelSearch(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	result, err := c.service.CancelSearch(r.Context(), params["searchId"])
	c.respond(w, r, result, err, "DELETE")
}

func (c *DefaultApiController) respond(w http.ResponseWriter, r *http.Request, result ImplResponse, err error, method string) {
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	EncodeJSONResponse(result.Body, &result.Code, w)
}
