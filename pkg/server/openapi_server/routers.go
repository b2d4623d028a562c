// SPDX-License-Identifier: MIT

package openapi_server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// A Route defines the parameters for an api endpoint
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Routes are a collection of defined api endpoints
type Routes []Route

// Router defines the required methods for retrieving api routes
type Router interface {
	Routes() Routes
}

// NewRouter creates a new router for any number of api routers
func NewRouter(routers ...Router) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, api := range routers {
		for _, route := range api.Routes() {
			var handler http.Handler
			handler = route.HandlerFunc
			handler = Logger(handler, route.Name)

			router.
				Methods(route.Method).
				Path(route.Pattern).
				Name(route.Name).
				Handler(handler)
		}
	}

	return router
}

// EncodeJSONResponse uses the json encoder to write an interface to the http response with an optional status code
func EncodeJSONResponse(i interface{}, status *int, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if status != nil {
		w.WriteHeader(*status)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	if i == nil || (status != nil && *status == http.StatusNoContent) {
		return nil
	}
	return json.NewEncoder(w).Encode(i)
}

// parseInt32Parameter parses a string parameter to an int32, an empty string yields the fallback
func parseInt32Parameter(param string, fallback int32) (int32, error) {
	if param == "" {
		return fallback, nil
	}
	val, err := strconv.ParseInt(param, 10, 32)
	if err != nil {
		return -1, err
	}
	return int32(val), nil
}

// parseFloat64Parameter parses a required string parameter to a float64
func parseFloat64Parameter(name, param string) (float64, error) {
	if param == "" {
		return 0, &RequiredError{Field: name}
	}
	val, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return 0, &ParsingError{Err: err}
	}
	return val, nil
}
