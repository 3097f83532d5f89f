package ppm

import (
	"slices"

	"github.com/nettrace-lab/ppmtrace/state"
)

// ReconstructionGraph is the victim's mutable scratch graph for the edge
// sampling scheme. It is rebuilt from the observation buffer on every
// reconstruction attempt and is entirely separate from the ground-truth
// Topology. Edges are oriented from the farther node toward the victim,
// each carrying the distance its bucket claims for its End node.
type ReconstructionGraph struct {
	victim state.RouterID
	edges  map[Edge]int
}

// BuildGraph assembles the graph from bucketed candidate edges. If the
// same edge was observed under several distances the smallest claim wins,
// deterministically.
func BuildGraph(buckets map[int][]Edge, victim state.RouterID) *ReconstructionGraph {
	g := &ReconstructionGraph{
		victim: victim,
		edges:  make(map[Edge]int),
	}
	for d, edges := range buckets {
		for _, e := range edges {
			if cur, ok := g.edges[e]; !ok || d < cur {
				g.edges[e] = d
			}
		}
	}
	return g
}

// distances returns BFS hop counts from the victim, walking candidate
// edges in reverse. Nodes with no observed route to the victim are
// absent.
func (g *ReconstructionGraph) distances() map[state.RouterID]int {
	preds := make(map[state.RouterID][]state.RouterID)
	for e := range g.edges {
		preds[e.End] = append(preds[e.End], e.Start)
	}
	dist := map[state.RouterID]int{g.victim: 0}
	queue := []state.RouterID{g.victim}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, farther := range preds[cur] {
			if _, ok := dist[farther]; !ok {
				dist[farther] = dist[cur] + 1
				queue = append(queue, farther)
			}
		}
	}
	return dist
}

// Prune removes candidate edges that are geometrically inconsistent with
// the rest of the observed structure: the claimed distance must match the
// distance actually realized in the current graph, and the edge must
// advance exactly one hop toward the victim. Removals can invalidate
// other edges, so the pass repeats until a fixed point.
func (g *ReconstructionGraph) Prune() {
	for {
		dist := g.distances()
		removed := false
		for e, claimed := range g.edges {
			endDist, endOk := dist[e.End]
			startDist, startOk := dist[e.Start]
			if !endOk || !startOk || endDist != claimed || startDist != endDist+1 {
				delete(g.edges, e)
				removed = true
			}
		}
		if !removed {
			return
		}
	}
}

// Sources returns the candidate attackers: every node with in-degree
// zero, excluding the victim. No observation places anything upstream of
// these nodes. The predicate is in-degree, not out-degree; with edges
// oriented toward the victim, out-degree-zero would instead select the
// victim's neighbourhood.
func (g *ReconstructionGraph) Sources() []state.RouterID {
	inDegree := make(map[state.RouterID]int)
	for e := range g.edges {
		if _, ok := inDegree[e.Start]; !ok {
			inDegree[e.Start] = 0
		}
		inDegree[e.End]++
	}
	var sources []state.RouterID
	for n, deg := range inDegree {
		if n != g.victim && deg == 0 {
			sources = append(sources, n)
		}
	}
	slices.Sort(sources)
	return sources
}

// FarthestSource returns the in-degree-zero node with the greatest
// realized distance from the victim, for the single-attacker case. Ties
// and unreachable candidates resolve toward the smaller id. Returns false
// when the graph has no sources.
func (g *ReconstructionGraph) FarthestSource() (state.RouterID, bool) {
	sources := g.Sources()
	if len(sources) == 0 {
		return 0, false
	}
	dist := g.distances()
	best := sources[0]
	bestDist := -1
	if d, ok := dist[best]; ok {
		bestDist = d
	}
	for _, s := range sources[1:] {
		d, ok := dist[s]
		if !ok {
			d = -1
		}
		if d > bestDist {
			best, bestDist = s, d
		}
	}
	return best, true
}

// Edges returns the remaining candidate edges sorted by (Start, End).
func (g *ReconstructionGraph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, compareEdges)
	return edges
}

// EdgeCount returns the number of remaining candidate edges.
func (g *ReconstructionGraph) EdgeCount() int {
	return len(g.edges)
}
