package ppm

import (
	"math/rand/v2"

	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/nettrace-lab/ppmtrace/topo"
)

// newRand builds the private random stream owned by one sampler. Streams
// are never shared between samplers or trials, so the same seed and call
// order always reproduce the same packets.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NodeSampler simulates the node sampling scheme: every router on the
// path overwrites the packet's node field with probability p. The packet
// arrives carrying the last router that happened to mark it, which biases
// marks toward routers near the victim.
type NodeSampler struct {
	p   float64
	rng *rand.Rand
}

func NewNodeSampler(p float64, seed uint64) *NodeSampler {
	return &NodeSampler{p: p, rng: newRand(seed)}
}

// Forward sends one packet from leaf to the victim and returns it as the
// victim observes it.
func (s *NodeSampler) Forward(t *topo.Topology, leaf state.RouterID) NodePacket {
	var pkt NodePacket
	for _, router := range t.PathToRoot(leaf) {
		stampNode(&pkt, router, s.rng.Float64() < s.p)
	}
	return pkt
}

// stampNode is the per-router transition of the node sampling scheme.
// Last writer wins.
func stampNode(pkt *NodePacket, router state.RouterID, mark bool) {
	if mark {
		pkt.Node = router
		pkt.Marked = true
	}
}

// EdgeSampler simulates the edge sampling scheme: a marking router
// restarts the mark, the next non-marking router completes the edge, and
// every non-marking router increments the distance counter.
type EdgeSampler struct {
	p   float64
	rng *rand.Rand
}

func NewEdgeSampler(p float64, seed uint64) *EdgeSampler {
	return &EdgeSampler{p: p, rng: newRand(seed)}
}

// Forward sends one packet from leaf to the victim and returns it as the
// victim observes it.
func (s *EdgeSampler) Forward(t *topo.Topology, leaf state.RouterID) EdgeMark {
	var pkt EdgeMark
	for _, router := range t.PathToRoot(leaf) {
		stampEdge(&pkt, router, s.rng.Float64() < s.p)
	}
	return pkt
}

// stampEdge is the per-router transition of the edge sampling scheme.
// Restarting a mark clears any previously completed End, so a sample with
// Distance == 0 never exposes a stale edge endpoint.
func stampEdge(pkt *EdgeMark, router state.RouterID, mark bool) {
	if mark {
		pkt.Start = router
		pkt.HasStart = true
		pkt.End = 0
		pkt.HasEnd = false
		pkt.Distance = 0
		return
	}
	if pkt.Distance == 0 {
		pkt.End = router
		pkt.HasEnd = true
	}
	pkt.Distance++
}
