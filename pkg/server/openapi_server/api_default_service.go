// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/natevvv/osm-path-finder/pkg/geometry"
	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/graph/path"
	"github.com/natevvv/osm-path-finder/pkg/routing"
)

// DefaultMaxSearches is the number of search sessions which may be open at the same time
const DefaultMaxSearches = 128

// DefaultMaxFrames limits the frames returned by one GetFrames call
const DefaultMaxFrames = 10000

// DefaultIdleTimeout is the time after which an untouched session may be dropped for a new one
const DefaultIdleTimeout = 10 * time.Minute

// searchSession is a search pulled by a client frame by frame.
// The search is released as soon as the last frame was served.
type searchSession struct {
	mu         sync.Mutex
	search     *path.Search
	done       bool
	lastAccess time.Time
}

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	router *routing.Router
	style  FrameStyle

	routeMu sync.Mutex // the navigator of the router keeps the state of the last route

	mu          sync.Mutex
	sessions    map[string]*searchSession
	lastId      uint64
	maxSearches int
	idleTimeout time.Duration
}

// DefaultApiServiceOption for how the service is set up.
type DefaultApiServiceOption func(*DefaultApiService)

func WithFrameStyle(style FrameStyle) DefaultApiServiceOption {
	return func(s *DefaultApiService) { s.style = style }
}

func WithMaxSearches(n int) DefaultApiServiceOption {
	return func(s *DefaultApiService) { s.maxSearches = n }
}

func WithIdleTimeout(d time.Duration) DefaultApiServiceOption {
	return func(s *DefaultApiService) { s.idleTimeout = d }
}

// NewDefaultApiService creates a default api service
func NewDefaultApiService(router *routing.Router, opts ...DefaultApiServiceOption) DefaultApiServicer {
	s := &DefaultApiService{
		router:      router,
		style:       DefaultFrameStyle(),
		sessions:    make(map[string]*searchSession),
		maxSearches: DefaultMaxSearches,
		idleTimeout: DefaultIdleTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ComputeRoute - Compute a new route
func (s *DefaultApiService) ComputeRoute(ctx context.Context, routeRequest RouteRequest) (ImplResponse, error) {
	s.routeMu.Lock()
	route, err := s.router.ComputeRoute(routeRequest.Origin.toGeometry(), routeRequest.Destination.toGeometry())
	settled := len(s.router.GetSearchSpace())
	s.routeMu.Unlock()
	if err != nil {
		return Response(statusFor(err), nil), err
	}
	settledNodes.Observe(float64(settled))

	routeResult := RouteResult{Origin: routeRequest.Origin, Destination: routeRequest.Destination, Reachable: route.Exists}
	if route.Exists {
		waypoints := make([]Point, 0, len(route.Waypoints))
		for _, waypoint := range route.Waypoints {
			waypoints = append(waypoints, makePoint(waypoint))
		}
		routeResult.Path = &Path{
			Nodes:     nodeIds(route.Path),
			Waypoints: waypoints,
			Cost:      route.Cost,
			Length:    route.Length,
			Weight:    s.router.Config().Weight,
			GeoJSON:   routeGeoJSON(waypoints, route.Cost, s.style.CurrentColor),
		}
	}

	return Response(http.StatusOK, routeResult), nil
}

func (s *DefaultApiService) GetNodes(ctx context.Context) (ImplResponse, error) {
	return Response(http.StatusOK, makeNodes(s.router.GetNodes())), nil
}

func (s *DefaultApiService) GetNearestNode(ctx context.Context, point Point) (ImplResponse, error) {
	id, err := s.router.Snap(point.toGeometry())
	if err != nil {
		return Response(statusFor(err), nil), err
	}
	nodePoint, err := s.router.Graph().GetNode(id)
	if err != nil {
		return Response(statusFor(err), nil), err
	}
	node := Node{Id: int64(id), Point: makePoint(nodePoint), Distance: point.toGeometry().Haversine(nodePoint)}
	return Response(http.StatusOK, node), nil
}

func (s *DefaultApiService) GetSearchSpace(ctx context.Context) (ImplResponse, error) {
	s.routeMu.Lock()
	points := s.router.GetSearchSpace()
	s.routeMu.Unlock()
	return Response(http.StatusOK, makeNodes(points)), nil
}

func (s *DefaultApiService) SetNavigator(ctx context.Context, navigatorRequest NavigatorRequest) (ImplResponse, error) {
	s.routeMu.Lock()
	err := s.router.SetNavigator(navigatorRequest.Navigator)
	s.routeMu.Unlock()

	if err != nil {
		return Response(http.StatusBadRequest, nil), err
	}
	return Response(http.StatusOK, navigatorRequest), nil
}

// StartSearch - Start a search session which is advanced by NextFrame and GetFrames
func (s *DefaultApiService) StartSearch(ctx context.Context, searchRequest SearchRequest) (ImplResponse, error) {
	var search *path.Search
	var err error
	if searchRequest.OriginNode != nil {
		search, err = s.router.NewExplorationBetween(graph.NodeId(*searchRequest.OriginNode), graph.NodeId(*searchRequest.DestinationNode))
	} else {
		search, err = s.router.NewExploration(searchRequest.Origin.toGeometry(), searchRequest.Destination.toGeometry())
	}
	if err != nil {
		return Response(statusFor(err), nil), err
	}

	s.mu.Lock()
	if len(s.sessions) >= s.maxSearches {
		s.evict(time.Now())
	}
	if len(s.sessions) >= s.maxSearches {
		s.mu.Unlock()
		return Response(http.StatusTooManyRequests, nil), ErrTooManySearches
	}
	s.lastId++
	id := strconv.FormatUint(s.lastId, 10)
	s.sessions[id] = &searchSession{search: search, lastAccess: time.Now()}
	searchesOpen.Inc()
	s.mu.Unlock()

	searchesStarted.Inc()

	return Response(http.StatusCreated, Search{
		Id:                id,
		OriginNode:        int64(search.Origin()),
		DestinationNode:   int64(search.Destination()),
		Weight:            search.Weight(),
		AnimationInterval: s.style.AnimationInterval,
		VisitedColor:      s.style.VisitedColor,
		CurrentColor:      s.style.CurrentColor,
	}), nil
}

// NextFrame - Advance a search by one step. A finished search answers with no content.
func (s *DefaultApiService) NextFrame(ctx context.Context, id string) (ImplResponse, error) {
	frames, err := s.advance(ctx, id, 1)
	if err != nil {
		return Response(statusFor(err), nil), err
	}
	if len(frames) == 0 {
		return Response(http.StatusNoContent, nil), nil
	}
	return Response(http.StatusOK, frames[0]), nil
}

// GetFrames - Advance a search by up to limit steps
func (s *DefaultApiService) GetFrames(ctx context.Context, id string, limit int32) (ImplResponse, error) {
	if limit < 1 || limit > DefaultMaxFrames {
		return Response(http.StatusBadRequest, nil), &ParsingError{Err: fmt.Errorf("limit has to be between 1 and %d", DefaultMaxFrames)}
	}
	frames, err := s.advance(ctx, id, int(limit))
	if err != nil {
		return Response(statusFor(err), nil), err
	}
	return Response(http.StatusOK, Frames{Frames: frames}), nil
}

// CancelSearch - Drop a search session
func (s *DefaultApiService) CancelSearch(ctx context.Context, id string) (ImplResponse, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return Response(http.StatusNotFound, nil), fmt.Errorf("%w: %v", ErrSearchNotFound, id)
	}

	session.mu.Lock()
	session.close()
	session.mu.Unlock()
	return Response(http.StatusNoContent, nil), nil
}

// evict drops finished sessions and sessions which were not advanced within the idle timeout.
// Sessions which are advanced right now are kept. s.mu has to be held.
func (s *DefaultApiService) evict(now time.Time) {
	for id, session := range s.sessions {
		if !session.mu.TryLock() {
			continue
		}
		if session.done || now.Sub(session.lastAccess) >= s.idleTimeout {
			session.close()
			delete(s.sessions, id)
			if s.router.Config().DebugLevel >= 2 {
				log.Printf("Evicted search %v\n", id)
			}
		}
		session.mu.Unlock()
	}
}

// close marks the session as done and releases its search. session.mu has to be held.
func (session *searchSession) close() {
	if session.done {
		return
	}
	session.done = true
	session.search = nil
	searchesOpen.Dec()
}

// advance pulls up to n frames from a session. Sessions are advanced by one request at a time.
func (s *DefaultApiService) advance(ctx context.Context, id string, n int) ([]Frame, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrSearchNotFound, id)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	session.lastAccess = time.Now()

	frames := make([]Frame, 0)
	for len(frames) < n && !session.done {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !session.search.Next() {
			err := session.search.Err()
			session.close()
			if err != nil {
				return nil, err
			}
			break
		}
		snapshot := session.search.Snapshot()
		frames = append(frames, makeFrame(id, snapshot, s.router.Graph(), s.style))
		if snapshot.Done() {
			s.finished(id, session.search)
			session.close()
		}
	}
	framesServed.Add(float64(len(frames)))
	return frames, nil
}

func (s *DefaultApiService) finished(id string, search *path.Search) {
	kpis := search.Stats()
	searchesFinished.WithLabelValues(search.State().String()).Inc()
	settledNodes.Observe(float64(kpis.SettledNodes))
	staleEntries.Observe(float64(kpis.StaleEntries))
	if s.router.Config().DebugLevel >= 1 {
		log.Printf("Search %v finished: %v, %+v\n", id, search.State(), kpis)
	}
}

func makeNodes(points []geometry.Point) Nodes {
	vertices := make([]Point, 0, len(points))
	for _, point := range points {
		vertices = append(vertices, makePoint(point))
	}
	return Nodes{Waypoints: vertices}
}

// statusFor maps service errors to http status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSearchNotFound), errors.Is(err, graph.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManySearches):
		return http.StatusTooManyRequests
	case errors.Is(err, path.ErrUnknownNavigator):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
