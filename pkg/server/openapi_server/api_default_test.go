// SPDX-License-Identifier: MIT

package openapi_server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// a few streets in Berlin and one unconnected node in Munich
const streetFmi = `5
6
1 52.5200 13.4050
2 52.5210 13.4050
3 52.5220 13.4050
4 52.5220 13.4070
5 48.1000 11.5000
1 2 length=120 travel_time=10
2 1 length=120 travel_time=10
2 3 length=120 travel_time=10
3 4 length=140 travel_time=12
2 4 length=200
4 3 length=140 travel_time=12`

func newTestServer(t *testing.T, opts ...DefaultApiServiceOption) *httptest.Server {
	t.Helper()
	g, err := graph.NewAdjacencyArrayFromFmiString(streetFmi)
	require.NoError(t, err)
	router, err := routing.NewRouter(g, routing.RouteConfig{Weight: graph.TravelTime}, "astar")
	require.NoError(t, err)

	service := NewDefaultApiService(router, opts...)
	server := httptest.NewServer(NewRouter(NewDefaultApiController(service), NewMetricsController()))
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

const berlinRoute = `{"origin": {"lat": 52.52001, "lon": 13.40502}, "destination": {"lat": 52.52205, "lon": 13.40698}}`

func TestComputeRoute(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/routes", berlinRoute)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	result := decode[RouteResult](t, resp)
	assert.True(t, result.Reachable)
	require.NotNil(t, result.Path)
	assert.Equal(t, []int64{1, 2, 3, 4}, result.Path.Nodes)
	assert.Len(t, result.Path.Waypoints, 4)
	assert.Equal(t, 32.0, result.Path.Cost)
	assert.Equal(t, 380.0, result.Path.Length)
	assert.Equal(t, graph.TravelTime, result.Path.Weight)
	require.NotNil(t, result.Path.GeoJSON)
	require.Len(t, result.Path.GeoJSON.Features, 1)
	assert.Equal(t, "LineString", result.Path.GeoJSON.Features[0].Geometry.GeoJSONType())

	resp = do(t, http.MethodGet, server.URL+"/searchSpace", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode[Nodes](t, resp).Waypoints)
}

func TestComputeRouteUnreachable(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/routes", `{"origin": {"lat": 52.52, "lon": 13.405}, "destination": {"lat": 48.1, "lon": 11.5}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decode[RouteResult](t, resp)
	assert.False(t, result.Reachable)
	assert.Nil(t, result.Path)
}

func TestComputeRouteBadRequest(t *testing.T) {
	server := newTestServer(t)

	for name, body := range map[string]string{
		"malformed":     `{"origin": `,
		"unknown field": `{"origin": {"lat": 1, "lon": 1}, "vehicle": "car"}`,
		"out of range":  `{"origin": {"lat": 100, "lon": 1}, "destination": {"lat": 1, "lon": 1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := do(t, http.MethodPost, server.URL+"/routes", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode[ErrorResponse](t, resp).Message)
		})
	}
}

func TestGetNodes(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodGet, server.URL+"/nodes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	nodes := decode[Nodes](t, resp)
	require.Len(t, nodes.Waypoints, 5)
	assert.Equal(t, Point{Lat: 52.52, Lon: 13.405}, nodes.Waypoints[0])
}

func TestGetNearestNode(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodGet, server.URL+"/nodes/nearest?lat=48.1001&lon=11.5001", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	node := decode[Node](t, resp)
	assert.Equal(t, int64(5), node.Id)
	assert.Equal(t, Point{Lat: 48.1, Lon: 11.5}, node.Point)
	assert.InDelta(t, 13.4, node.Distance, 0.5)

	tests := map[string]int{
		"?lat=48.1":          http.StatusUnprocessableEntity,
		"?lat=north&lon=1":   http.StatusBadRequest,
		"?lat=91&lon=11.5":   http.StatusBadRequest,
		"?lat=48.1&lon=-181": http.StatusBadRequest,
	}
	for query, status := range tests {
		resp := do(t, http.MethodGet, server.URL+"/nodes/nearest"+query, "")
		assert.Equal(t, status, resp.StatusCode, query)
	}
}

func TestSetNavigator(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/navigator", `{"navigator": "dijkstra"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dijkstra", decode[NavigatorRequest](t, resp).Navigator)

	resp = do(t, http.MethodPost, server.URL+"/routes", berlinRoute)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 32.0, decode[RouteResult](t, resp).Path.Cost)

	resp = do(t, http.MethodPost, server.URL+"/navigator", `{"navigator": "contraction-hierarchies"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPost, server.URL+"/navigator", `{"navigator": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSearchSession(t *testing.T) {
	server := newTestServer(t, WithFrameStyle(FrameStyle{AnimationInterval: 50, VisitedColor: "green", CurrentColor: "orange"}))

	resp := do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	search := decode[Search](t, resp)
	assert.Equal(t, int64(1), search.OriginNode)
	assert.Equal(t, int64(4), search.DestinationNode)
	assert.Equal(t, graph.TravelTime, search.Weight)
	assert.Equal(t, 50, search.AnimationInterval)
	assert.Equal(t, "green", search.VisitedColor)
	base := server.URL + "/searches/" + search.Id

	resp = do(t, http.MethodGet, base+"/next", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode[Frame](t, resp)
	assert.Equal(t, search.Id, first.SearchId)
	assert.Equal(t, 0, first.Step)
	assert.Equal(t, "EXPANDING", first.State)
	require.NotNil(t, first.Current)
	assert.Equal(t, int64(1), *first.Current)
	assert.Equal(t, []int64{1}, first.Visited)
	assert.Equal(t, []int64{1}, first.Path)
	assert.Len(t, first.VisitedMercator, 1)
	assert.Len(t, first.PathMercator, 1)
	require.NotNil(t, first.GeoJSON)
	require.Len(t, first.GeoJSON.Features, 3)
	assert.Equal(t, "green", first.GeoJSON.Features[0].Properties["color"])
	assert.Equal(t, "orange", first.GeoJSON.Features[1].Properties["color"])
	current := first.GeoJSON.Features[2]
	assert.Equal(t, "node/1", current.ID)
	assert.Equal(t, "current", current.Properties["role"])

	resp = do(t, http.MethodGet, base+"/frames?limit=10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	frames := decode[Frames](t, resp).Frames
	require.Len(t, frames, 3)
	for i, frame := range frames {
		assert.Equal(t, i+1, frame.Step)
		assert.Len(t, frame.Visited, i+2)
	}
	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.Equal(t, "GOAL_FINALIZED", last.State)
	assert.Equal(t, []int64{1, 2, 3, 4}, last.Path)
	assert.Equal(t, 32.0, last.Cost)

	resp = do(t, http.MethodGet, base+"/next", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, http.MethodGet, base+"/next", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSearchWithoutPath(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/searches", `{"origin": {"lat": 52.52, "lon": 13.405}, "destination": {"lat": 48.1, "lon": 11.5}}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	search := decode[Search](t, resp)
	assert.Equal(t, int64(5), search.DestinationNode)

	resp = do(t, http.MethodGet, server.URL+"/searches/"+search.Id+"/frames", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	frames := decode[Frames](t, resp).Frames
	require.Len(t, frames, 5)
	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.Equal(t, "EXHAUSTED", last.State)
	assert.Nil(t, last.Current)
	assert.Empty(t, last.Path)
	assert.Equal(t, []int64{1, 2, 3, 4}, last.Visited)
	require.NotNil(t, last.GeoJSON)
	assert.Len(t, last.GeoJSON.Features, 2)
}

func TestStartSearchErrors(t *testing.T) {
	server := newTestServer(t)

	tests := map[string]int{
		`{"originNode": 1, "destinationNode": 42}`:                    http.StatusNotFound,
		`{"originNode": 1}`:                                           http.StatusUnprocessableEntity,
		`{"origin": {"lat": 1, "lon": 1}}`:                            http.StatusUnprocessableEntity,
		`{}`:                                                          http.StatusUnprocessableEntity,
		`{"originNode": 1, "destination": {"lat": 1, "lon": 1}}`:      http.StatusBadRequest,
		`{"originNode": 1, "destinationNode": 4, "weight": "length"}`: http.StatusBadRequest,
	}
	for body, status := range tests {
		resp := do(t, http.MethodPost, server.URL+"/searches", body)
		assert.Equal(t, status, resp.StatusCode, body)
	}
}

func TestSearchLimits(t *testing.T) {
	server := newTestServer(t, WithMaxSearches(1))

	resp := do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	search := decode[Search](t, resp)

	resp = do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 3}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	for _, limit := range []string{"0", "-1", "100000", "many"} {
		resp = do(t, http.MethodGet, server.URL+"/searches/"+search.Id+"/frames?limit="+limit, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, limit)
	}

	resp = do(t, http.MethodDelete, server.URL+"/searches/"+search.Id, "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 3}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestFinishedSearchFreesSlot(t *testing.T) {
	server := newTestServer(t, WithMaxSearches(1))

	resp := do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 1}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decode[Search](t, resp)

	resp = do(t, http.MethodGet, server.URL+"/searches/"+first.Id+"/next", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decode[Frame](t, resp).Done)
	resp = do(t, http.MethodGet, server.URL+"/searches/"+first.Id+"/next", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decode[Search](t, resp)
	assert.NotEqual(t, first.Id, second.Id)

	resp = do(t, http.MethodGet, server.URL+"/searches/"+first.Id+"/next", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, http.MethodGet, server.URL+"/searches/"+second.Id+"/next", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAbandonedSearchExpires(t *testing.T) {
	server := newTestServer(t, WithMaxSearches(1), WithIdleTimeout(10*time.Millisecond))

	resp := do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 4}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	abandoned := decode[Search](t, resp)
	resp = do(t, http.MethodGet, server.URL+"/searches/"+abandoned.Id+"/next", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	time.Sleep(20 * time.Millisecond)

	resp = do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = do(t, http.MethodGet, server.URL+"/searches/"+abandoned.Id+"/next", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	server := newTestServer(t)

	resp := do(t, http.MethodPost, server.URL+"/searches", `{"originNode": 1, "destinationNode": 2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, server.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "path_finder_searches_started_total")
	assert.Contains(t, string(body), "path_finder_frames_served_total")
	assert.Contains(t, string(body), "path_finder_searches_open")
}
