package ppm

import (
	"cmp"
	"slices"

	"github.com/nettrace-lab/ppmtrace/state"
)

// BucketByDistance converts raw edge samples into deduplicated candidate
// edges grouped by distance from the victim. A sample at distance 0 is an
// edge directly incident to the victim and is synthesized as
// (start, victim); farther samples need a completed End and are discarded
// otherwise. Buckets are sorted by (Start, End) so every later step is
// deterministic.
func BucketByDistance(samples []EdgeMark, victim state.RouterID) map[int][]Edge {
	seen := make(map[int]map[Edge]bool)
	for _, s := range samples {
		if !s.HasStart {
			continue
		}
		var e Edge
		if s.Distance == 0 {
			e = Edge{Start: s.Start, End: victim}
		} else {
			if !s.HasEnd {
				continue
			}
			e = Edge{Start: s.Start, End: s.End}
		}
		if seen[s.Distance] == nil {
			seen[s.Distance] = make(map[Edge]bool)
		}
		seen[s.Distance][e] = true
	}

	buckets := make(map[int][]Edge, len(seen))
	for d, edges := range seen {
		bucket := make([]Edge, 0, len(edges))
		for e := range edges {
			bucket = append(bucket, e)
		}
		slices.SortFunc(bucket, compareEdges)
		buckets[d] = bucket
	}
	return buckets
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.Start, b.Start); c != 0 {
		return c
	}
	return cmp.Compare(a.End, b.End)
}

// ChainPath reconstructs a single path by chaining distance-indexed
// edges: start from the smallest-id distance-0 edge, then at each
// distance d pick the smallest-id start whose end matches the current
// node. The chain stops at the first gap. The result is reversed so index
// 0 is the farthest (attacker-side) router; it is empty until a
// distance-0 edge has been observed.
func ChainPath(buckets map[int][]Edge, victim state.RouterID) []state.RouterID {
	d0 := buckets[0]
	if len(d0) == 0 {
		return nil
	}
	cur := d0[0].Start
	path := []state.RouterID{cur}
	for d := 1; ; d++ {
		edges, ok := buckets[d]
		if !ok {
			break
		}
		found := false
		for _, e := range edges {
			if e.End == cur {
				cur = e.Start
				path = append(path, cur)
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	slices.Reverse(path)
	return path
}

// GuessAttackerFromChain returns the farthest router of the chained path.
// Returns false while the chain is empty.
func GuessAttackerFromChain(buckets map[int][]Edge, victim state.RouterID) (state.RouterID, bool) {
	path := ChainPath(buckets, victim)
	if len(path) == 0 {
		return 0, false
	}
	return path[0], true
}
