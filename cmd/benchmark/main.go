package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/natevvv/osm-path-finder/pkg/config"
	"github.com/natevvv/osm-path-finder/pkg/graph"
	p "github.com/natevvv/osm-path-finder/pkg/graph/path"
	"github.com/natevvv/osm-path-finder/pkg/slice"
)

// target of a benchmark run, the cost and hops are computed by the reference Dijkstra
type target struct {
	origin      graph.NodeId
	destination graph.NodeId
	cost        float64
	hops        int
}

func main() {
	configFile := flag.String("config", "config.yaml", "Settings file")
	graphFile := flag.String("graph", "", "Graph file (fmi), overrides graph_file of the settings")
	useRandomTargets := flag.Bool("random", false, "Create (new) random targets")
	amountTargets := flag.Int("n", 100, "How many new targets should get created")
	storeTargets := flag.Bool("store", false, "Store targets (when newly generated)")
	targetFile := flag.String("targets", "targets.txt", "File with the targets")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Seed for random targets")
	algorithm := flag.String("search", "astar", "Select the search algorithm (astar, dijkstra)")
	cpuProfile := flag.String("cpu", "", "write cpu profile to file")
	flag.Parse()

	settings, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *graphFile != "" {
		settings.GraphFile = *graphFile
	}

	start := time.Now()
	g, err := settings.LoadGraph()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("[TIME-Import] = %s\n", time.Since(start))
	if g.NodeCount() == 0 {
		log.Fatal("empty graph")
	}

	routeConfig := settings.RouteConfig()
	heuristic, err := p.HeuristicByName(routeConfig.Heuristic, routeConfig.Weight, routeConfig.MaxSpeed)
	if err != nil {
		log.Fatal(err)
	}
	navigator, err := p.NewNavigator(*algorithm, g, routeConfig.Weight, p.WithHeuristic(heuristic))
	if err != nil {
		log.Fatal(err)
	}
	referenceDijkstra := p.NewDijkstra(g, routeConfig.Weight)

	var targets []target
	if *useRandomTargets {
		targets = createTargets(*amountTargets, referenceDijkstra, rand.New(rand.NewSource(*seed)))
		if *storeTargets {
			if err := writeTargets(targets, *targetFile); err != nil {
				log.Fatal(err)
			}
		}
	} else {
		targets, err = readTargets(*targetFile)
		if err != nil {
			log.Fatal(err)
		}
		if *amountTargets < len(targets) {
			targets = targets[0:*amountTargets]
		}
	}
	if len(targets) == 0 {
		log.Fatal("No targets")
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	benchmark(navigator, targets, referenceDijkstra)
}

func readTargets(filename string) ([]target, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	targets := make([]target, 0)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}
		var t target
		if _, err := fmt.Sscanf(line, "%d %d %g %d", &t.origin, &t.destination, &t.cost, &t.hops); err != nil {
			return nil, fmt.Errorf("target %q: %w", line, err)
		}
		targets = append(targets, t)
	}
	return targets, scanner.Err()
}

// createTargets picks random pairs of nodes which are connected
func createTargets(n int, referenceNavigator *p.Dijkstra, rng *rand.Rand) []target {
	ids := referenceNavigator.GetGraph().GetNodeIds()
	targets := make([]target, 0, n)
	if len(ids) == 0 {
		return targets
	}
	for attempts := 0; len(targets) < n && attempts < 100*n; attempts++ {
		origin := ids[rng.Intn(len(ids))]
		destination := ids[rng.Intn(len(ids))]
		cost, err := referenceNavigator.ComputeShortestPath(origin, destination)
		if err != nil {
			log.Fatal(err)
		}
		if cost < 0 {
			continue
		}
		hops := len(referenceNavigator.GetPath(origin, destination))
		targets = append(targets, target{origin, destination, cost, hops})
	}
	if len(targets) < n {
		log.Printf("Only found %v of %v connected targets\n", len(targets), n)
	}
	return targets
}

func writeTargets(targets []target, targetFile string) error {
	var sb strings.Builder
	sb.WriteString("# origin destination cost hops\n")
	for _, t := range targets {
		sb.WriteString(fmt.Sprintf("%d %d %v %d\n", int64(t.origin), int64(t.destination), t.cost, t.hops))
	}
	return os.WriteFile(targetFile, []byte(sb.String()), 0o644)
}

// Run benchmarks on the provided graph and targets
func benchmark(navigator p.Navigator, targets []target, referenceDijkstra *p.Dijkstra) {
	var runtime time.Duration = 0
	var runtimeWithPathExtraction time.Duration = 0
	completed := 0

	pqPops := 0
	pqUpdates := 0
	settledNodes := 0
	edgeRelaxations := 0
	relaxationAttempts := 0
	differentPaths := 0

	invalidCosts := make([]int, 0)
	invalidResults := make([]int, 0)
	invalidHops := make([]int, 0)

	showResults := func() {
		if completed == 0 {
			return
		}
		fmt.Printf("Average runtime: %.3fms, %.3fms\n", float64(runtime.Microseconds())/float64(completed)/1000, float64(runtimeWithPathExtraction.Microseconds())/float64(completed)/1000)
		fmt.Printf("Average pq pops: %d\n", pqPops/completed)
		fmt.Printf("Average pq updates: %d\n", pqUpdates/completed)
		fmt.Printf("Average settled nodes: %d\n", settledNodes/completed)
		fmt.Printf("Average relaxations attempts: %d\n", relaxationAttempts/completed)
		fmt.Printf("Average edge relaxations: %d\n", edgeRelaxations/completed)
		fmt.Printf("%v/%v paths differ from the reference path (with equal cost).\n", differentPaths, completed)

		fmt.Printf("%v/%v invalid Result (source/target).\n", len(invalidResults), completed)
		for i, testcase := range invalidResults {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid result\n", i, testcase, targets[testcase].origin, targets[testcase].destination)
		}

		fmt.Printf("%v/%v invalid path costs.\n", len(invalidCosts), completed)
		for i, testcase := range invalidCosts {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid cost. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].cost)
		}

		fmt.Printf("%v/%v invalid hops number.\n", len(invalidHops), completed)
		for i, testcase := range invalidHops {
			fmt.Printf("%v: Case %v (%v -> %v) has invalid #hops. Reference: %v\n", i, testcase, targets[testcase].origin, targets[testcase].destination, targets[testcase].hops)
		}
	}

	// catch interrupt to still show already calculated results
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		showResults()
		os.Exit(0)
	}()

	for i, t := range targets {
		start := time.Now()
		cost, err := navigator.ComputeShortestPath(t.origin, t.destination)
		elapsed := time.Since(start)
		if err != nil {
			log.Fatalf("Case %v: %v", i, err)
		}

		pqPops += navigator.GetPqPops()
		pqUpdates += navigator.GetPqUpdates()
		settledNodes += len(navigator.GetSearchSpace())
		edgeRelaxations += navigator.GetEdgeRelaxations()
		relaxationAttempts += navigator.GetRelaxationAttempts()

		path := navigator.GetPath(t.origin, t.destination)
		elapsedPath := time.Since(start)

		fmt.Printf("[%3v TIME-Navigate, TIME-Path, PQ Pops, PQ Updates, relaxed Edges, relax attempts] = %12s, %12s, %7d, %7d, %7d, %7d\n", i, elapsed, elapsedPath, navigator.GetPqPops(), navigator.GetPqUpdates(), navigator.GetEdgeRelaxations(), navigator.GetRelaxationAttempts())

		if math.Abs(cost-t.cost) > 1e-6*math.Max(1, t.cost) {
			invalidCosts = append(invalidCosts, i)
		}
		if cost > -1 && (path[0] != t.origin || path[len(path)-1] != t.destination) {
			invalidResults = append(invalidResults, i)
		}
		if t.hops != len(path) {
			invalidHops = append(invalidHops, i)
		}
		if cost > -1 {
			referenceDijkstra.ComputeShortestPath(t.origin, t.destination)
			if slice.Compare(path, referenceDijkstra.GetPath(t.origin, t.destination)) != 0 {
				differentPaths++
			}
		}

		runtime += elapsed
		runtimeWithPathExtraction += elapsedPath
		completed++
	}
	// normal termination, show results
	showResults()
}
