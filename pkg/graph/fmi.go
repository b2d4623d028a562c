package graph

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	geo "github.com/natevvv/osm-path-finder/pkg/geometry"
)

// fmi parse states
const (
	PARSE_NODE_COUNT = iota
	PARSE_EDGE_COUNT = iota
	PARSE_NODES      = iota
	PARSE_EDGES      = iota
)

func WriteFmi(g Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(g.AsString()); err != nil {
		return err
	}
	return writer.Flush()
}

// NewAdjacencyListFromFmiString parses a graph in fmi format.
//
// The format consists of the node count, the arc count, one "id lat lon" line per node
// and one "from to [name=value ...]" line per arc. A bare number as third column of an arc
// is read as its length. Empty lines and lines starting with '#' are skipped.
func NewAdjacencyListFromFmiString(fmi string) (*AdjacencyListGraph, error) {
	scanner := bufio.NewScanner(strings.NewReader(fmi))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	numNodes, numEdges := 0, 0
	numParsedEdges := 0
	lineNumber := 0

	alg := NewAdjacencyListGraph()

	parseState := PARSE_NODE_COUNT
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if len(line) < 1 {
			// skip empty lines
			continue
		} else if line[0] == '#' {
			// skip comments
			continue
		}

		switch parseState {
		case PARSE_NODE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil || val < 0 {
				return nil, fmt.Errorf("%w: line %d: node count %q", ErrInvalidFmi, lineNumber, line)
			}
			numNodes = val
			parseState = PARSE_EDGE_COUNT
		case PARSE_EDGE_COUNT:
			val, err := strconv.Atoi(line)
			if err != nil || val < 0 {
				return nil, fmt.Errorf("%w: line %d: arc count %q", ErrInvalidFmi, lineNumber, line)
			}
			numEdges = val
			parseState = PARSE_NODES
			if numNodes == 0 {
				parseState = PARSE_EDGES
			}
		case PARSE_NODES:
			id, point, err := parseNode(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFmi, lineNumber, err)
			}
			if err := alg.AddNode(id, point); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			if alg.NodeCount() == numNodes {
				parseState = PARSE_EDGES
			}
		case PARSE_EDGES:
			from, to, attributes, err := parseArc(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFmi, lineNumber, err)
			}
			if err := alg.AddArc(from, to, attributes); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			numParsedEdges++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if alg.NodeCount() != numNodes {
		return nil, fmt.Errorf("%w: expected %d nodes, parsed %d", ErrInvalidFmi, numNodes, alg.NodeCount())
	}
	if numParsedEdges != numEdges {
		return nil, fmt.Errorf("%w: expected %d arcs, parsed %d", ErrInvalidFmi, numEdges, numParsedEdges)
	}

	return alg, nil
}

func parseNode(line string) (NodeId, geo.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, geo.Point{}, fmt.Errorf("node needs 3 fields, got %d", len(fields))
	}
	id, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, geo.Point{}, err
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, geo.Point{}, err
	}
	lon, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return 0, geo.Point{}, err
	}
	point := geo.MakePoint(lat, lon)
	if !point.Valid() {
		return 0, geo.Point{}, fmt.Errorf("coordinates %v out of range", point)
	}
	return NodeId(id), point, nil
}

func parseArc(line string) (NodeId, NodeId, Attributes, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, nil, fmt.Errorf("arc needs at least 2 fields, got %d", len(fields))
	}
	from, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, 0, nil, err
	}
	to, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, nil, err
	}

	attributes := make(Attributes, len(fields)-2)
	for i, field := range fields[2:] {
		name, value, found := strings.Cut(field, "=")
		if !found {
			if i != 0 {
				return 0, 0, nil, fmt.Errorf("attribute %q is not of the form name=value", field)
			}
			// plain fmi: the third column is the distance
			name, value = Length, field
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, 0, nil, fmt.Errorf("attribute %q: %v", name, err)
		}
		attributes[name] = v
	}
	return NodeId(from), NodeId(to), attributes, nil
}

func NewAdjacencyListFromFmiFile(filename string) (*AdjacencyListGraph, error) {
	fmi, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewAdjacencyListFromFmiString(string(fmi))
}

func NewAdjacencyArrayFromFmiString(fmi string) (*AdjacencyArrayGraph, error) {
	alg, err := NewAdjacencyListFromFmiString(fmi)
	if err != nil {
		return nil, err
	}
	return NewAdjacencyArrayFromGraph(alg), nil
}

func NewAdjacencyArrayFromFmiFile(filename string) (*AdjacencyArrayGraph, error) {
	fmi, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewAdjacencyArrayFromFmiString(string(fmi))
}
