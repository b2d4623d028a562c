package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/natevvv/osm-path-finder/pkg/config"
	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/graph/path"
	"github.com/natevvv/osm-path-finder/pkg/routing"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Settings file")
	graphFile := flag.String("graph", "", "Graph file (fmi), overrides graph_file of the settings")
	debugLevel := flag.Int("debug", -1, "Set the debug level, overrides debug_level of the settings")
	every := flag.Int("every", 100, "Log every n-th step of the search")
	geojsonFile := flag.String("geojson", "", "Write the route and the search space as GeoJSON to this file")
	graphOut := flag.String("write-graph", "", "Write the (clipped) graph in fmi format to this file")
	flag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *graphFile != "" {
		settings.GraphFile = *graphFile
	}
	if *debugLevel >= 0 {
		settings.DebugLevel = *debugLevel
	}
	if settings.StartCoords == nil || settings.EndCoords == nil {
		log.Fatal("start_coords and end_coords have to be set")
	}

	start := time.Now()
	g, err := settings.LoadGraph()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))
	if *graphOut != "" {
		if err := graph.WriteFmi(g, *graphOut); err != nil {
			log.Fatal(err)
		}
	}

	router, err := routing.NewRouter(g, settings.RouteConfig(), settings.Navigator)
	if err != nil {
		log.Fatal(err)
	}
	search, err := router.NewExploration(settings.StartCoords.Point(), settings.EndCoords.Point())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Searching %v -> %v (weight %v)\n", search.Origin(), search.Destination(), search.Weight())

	start = time.Now()
	var last path.Snapshot
	for snapshot := range search.All() {
		last = snapshot
		if *every > 0 && snapshot.Step%*every == 0 && !snapshot.Done() {
			fmt.Printf("[%6v] current: %v, cost: %.1f, visited: %v, path: %v nodes\n", snapshot.Step, snapshot.Current, snapshot.Cost, snapshot.Visited.Len(), len(snapshot.Path))
		}
	}
	if err := search.Err(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME-Search] = %s\n", time.Since(start))

	kpis := search.Stats()
	fmt.Printf("Settled nodes: %v, pq pops: %v, pq pushes: %v, stale entries: %v, relaxed edges: %v\n", kpis.SettledNodes, kpis.PqPops, kpis.PqPushes, kpis.StaleEntries, kpis.RelaxedEdges)

	if last.Failed() {
		fmt.Printf("No path found after visiting %v nodes\n", last.Visited.Len())
	} else {
		fmt.Printf("Path with %v nodes, %v: %.1f, length: %.1fm\n", len(last.Path), search.Weight(), last.Cost, router.PathLength(last.Path))
	}

	if *geojsonFile != "" {
		if err := writeGeoJSON(*geojsonFile, router, last, settings); err != nil {
			log.Fatal(err)
		}
	}
}

func writeGeoJSON(filename string, router *routing.Router, snapshot path.Snapshot, settings config.Settings) error {
	visited := make(orb.MultiPoint, 0, snapshot.Visited.Len())
	for _, point := range router.Waypoints(snapshot.Visited.Sorted()) {
		visited = append(visited, point.Orb())
	}
	route := make(orb.LineString, 0, len(snapshot.Path))
	for _, point := range router.Waypoints(snapshot.Path) {
		route = append(route, point.Orb())
	}

	visitedFeature := geojson.NewFeature(visited)
	visitedFeature.Properties["color"] = settings.VisitedRouteColor
	routeFeature := geojson.NewFeature(route)
	routeFeature.Properties["color"] = settings.CurrentRouteColor
	routeFeature.Properties["cost"] = snapshot.Cost
	routeFeature.Properties["state"] = snapshot.State.String()

	data, err := json.MarshalIndent(geojson.NewFeatureCollection().Append(visitedFeature).Append(routeFeature), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
