package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/natevvv/osm-path-finder/pkg/geometry"
	"github.com/natevvv/osm-path-finder/pkg/graph"
	"github.com/natevvv/osm-path-finder/pkg/graph/path"
	"github.com/natevvv/osm-path-finder/pkg/routing"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("config: invalid settings")

// Coordinates are written as [lat, lng] in the settings file
type Coordinates struct {
	Lat float64
	Lng float64
}

func (c *Coordinates) UnmarshalYAML(value *yaml.Node) error {
	var pair []float64
	if err := value.Decode(&pair); err != nil {
		return fmt.Errorf("line %d: coordinates: %w", value.Line, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: line %d: coordinates need [lat, lng], got %d values", ErrInvalidConfig, value.Line, len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

func (c Coordinates) MarshalYAML() (interface{}, error) {
	return []float64{c.Lat, c.Lng}, nil
}

func (c Coordinates) Point() geometry.Point {
	return geometry.MakePoint(c.Lat, c.Lng)
}

// Settings of the path finder applications
type Settings struct {
	GraphFile      string       `yaml:"graph_file"`       // fmi file of the road graph
	MapCenterPoint *Coordinates `yaml:"map_center_point"` // center of the area the graph is clipped to
	MapDistance    float64      `yaml:"map_distance"`     // clip radius in meters, 0 keeps the whole graph
	NetworkType    string       `yaml:"network_type"`     // informational, the graph file is already filtered
	StartCoords    *Coordinates `yaml:"start_coords"`
	EndCoords      *Coordinates `yaml:"end_coords"`

	Weight    string  `yaml:"weight"`    // arc attribute to minimize
	MaxSpeed  float64 `yaml:"max_speed"` // km/h
	Heuristic string  `yaml:"heuristic"` // auto, great_circle, travel_time or zero
	Navigator string  `yaml:"navigator"` // astar or dijkstra

	AnimationInterval int    `yaml:"animation_interval"` // ms between frames, for clients
	VisitedRouteColor string `yaml:"visited_route_color"`
	CurrentRouteColor string `yaml:"current_route_color"`

	Listen     string `yaml:"listen"`
	DebugLevel int    `yaml:"debug_level"`
}

func Default() Settings {
	return Settings{
		NetworkType:       "drive",
		Weight:            graph.TravelTime,
		MaxSpeed:          path.DefaultMaxSpeed,
		Heuristic:         "auto",
		Navigator:         "astar",
		AnimationInterval: 300,
		VisitedRouteColor: "blue",
		CurrentRouteColor: "red",
		Listen:            ":8081",
	}
}

// Load reads the settings file at the given path.
// A missing file is not an error, the defaults are used instead.
func Load(filename string) (Settings, error) {
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: config file %v not found, using defaults\n", filename)
		return Default(), nil
	} else if err != nil {
		return Settings{}, err
	}
	settings, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%v: %w", filename, err)
	}
	return settings, nil
}

// Parse decodes YAML settings on top of the defaults and validates them
func Parse(data []byte) (Settings, error) {
	settings := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		if errors.Is(err, ErrInvalidConfig) {
			return Settings{}, err
		}
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

func (s Settings) Validate() error {
	for name, c := range map[string]*Coordinates{"map_center_point": s.MapCenterPoint, "start_coords": s.StartCoords, "end_coords": s.EndCoords} {
		if c != nil && !c.Point().Valid() {
			return fmt.Errorf("%w: %v %v out of range", ErrInvalidConfig, name, c.Point())
		}
	}
	if s.MapDistance < 0 {
		return fmt.Errorf("%w: map_distance must not be negative", ErrInvalidConfig)
	}
	if s.MapDistance > 0 && s.MapCenterPoint == nil {
		return fmt.Errorf("%w: map_distance needs map_center_point", ErrInvalidConfig)
	}
	if s.Weight == "" {
		return fmt.Errorf("%w: weight must not be empty", ErrInvalidConfig)
	}
	if s.MaxSpeed <= 0 {
		return fmt.Errorf("%w: max_speed must be positive", ErrInvalidConfig)
	}
	if _, err := path.HeuristicByName(s.Heuristic, s.Weight, s.MaxSpeed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if s.Navigator != "astar" && s.Navigator != "dijkstra" {
		return fmt.Errorf("%w: unknown navigator %q", ErrInvalidConfig, s.Navigator)
	}
	if s.AnimationInterval < 0 {
		return fmt.Errorf("%w: animation_interval must not be negative", ErrInvalidConfig)
	}
	if s.DebugLevel < 0 {
		return fmt.Errorf("%w: debug_level must not be negative", ErrInvalidConfig)
	}
	return nil
}

// RouteConfig returns the part of the settings the router needs
func (s Settings) RouteConfig() routing.RouteConfig {
	return routing.RouteConfig{
		Weight:     s.Weight,
		Heuristic:  s.Heuristic,
		MaxSpeed:   s.MaxSpeed,
		DebugLevel: s.DebugLevel,
	}
}

func (s Settings) String() string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%+v", s.RouteConfig())
	}
	return string(out)
}
