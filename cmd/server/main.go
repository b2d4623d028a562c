// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natevvv/osm-path-finder/pkg/config"
	"github.com/natevvv/osm-path-finder/pkg/routing"
	openapi "github.com/natevvv/osm-path-finder/pkg/server/openapi_server"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Settings file")
	graphFile := flag.String("graph", "", "Graph file (fmi), overrides graph_file of the settings")
	listen := flag.String("listen", "", "Listen address, overrides listen of the settings")
	maxSearches := flag.Int("max-searches", openapi.DefaultMaxSearches, "Maximum number of open search sessions")
	flag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *graphFile != "" {
		settings.GraphFile = *graphFile
	}
	if *listen != "" {
		settings.Listen = *listen
	}

	g, err := settings.LoadGraph()
	if err != nil {
		log.Fatal(err)
	}
	router, err := routing.NewRouter(g, settings.RouteConfig(), settings.Navigator)
	if err != nil {
		log.Fatal(err)
	}

	style := openapi.FrameStyle{
		AnimationInterval: settings.AnimationInterval,
		VisitedColor:      settings.VisitedRouteColor,
		CurrentColor:      settings.CurrentRouteColor,
	}
	DefaultApiService := openapi.NewDefaultApiService(router, openapi.WithFrameStyle(style), openapi.WithMaxSearches(*maxSearches))
	DefaultApiController := openapi.NewDefaultApiController(DefaultApiService)

	server := &http.Server{
		Addr:    settings.Listen,
		Handler: openapi.NewRouter(DefaultApiController, openapi.NewMetricsController()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v\n", err)
		}
	}()

	log.Printf("Server started on %v with %v nodes\n", settings.Listen, g.NodeCount())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
