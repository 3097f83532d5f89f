package topo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nettrace-lab/ppmtrace/state"
)

// Load reads a topology from a plain-text edge list. Each line is a
// "parent child" pair; blank lines and lines starting with '#' are
// ignored.
func Load(path string) (*Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topology file: %w", err)
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads an edge list from r and builds the topology.
func Parse(r io.Reader) (*Topology, error) {
	var edges []Edge
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"parent child\", got %q", lineNo, line)
		}
		parent, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid parent id %q", lineNo, fields[0])
		}
		child, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid child id %q", lineNo, fields[1])
		}
		edges = append(edges, Edge{Parent: state.RouterID(parent), Child: state.RouterID(child)})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return New(edges)
}
