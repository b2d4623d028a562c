// SPDX-License-Identifier: MIT

package openapi_server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "path_finder",
		Name:      "http_requests_total",
		Help:      "Number of handled requests by route and status code",
	}, []string{"route", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "path_finder",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of handled requests by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	searchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "path_finder",
		Name:      "searches_started_total",
		Help:      "Number of started search sessions",
	})

	searchesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "path_finder",
		Name:      "searches_finished_total",
		Help:      "Number of finished search sessions by final state",
	}, []string{"state"})

	searchesOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "path_finder",
		Name:      "searches_open",
		Help:      "Number of search sessions which did not finish yet",
	})

	framesServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "path_finder",
		Name:      "frames_served_total",
		Help:      "Number of search frames sent to clients",
	})

	settledNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "path_finder",
		Name:      "search_settled_nodes",
		Help:      "Number of nodes settled by finished searches and routes",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	staleEntries = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "path_finder",
		Name:      "search_stale_entries",
		Help:      "Number of discarded stale frontier entries per finished search",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})
)

// MetricsController exposes the prometheus metrics of the process
type MetricsController struct {
	handler http.Handler
}

func NewMetricsController() Router {
	return &MetricsController{handler: promhttp.Handler()}
}

// Routes returns all of the api route for the MetricsController
func (c *MetricsController) Routes() Routes {
	return Routes{
		{
			"Metrics",
			strings.ToUpper("Get"),
			"/metrics",
			c.handler.ServeHTTP,
		},
	}
}
