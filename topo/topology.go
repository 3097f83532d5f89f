package topo

import (
	"fmt"
	"slices"

	"github.com/nettrace-lab/ppmtrace/state"
	"github.com/samber/lo"
)

// Edge is one parent -> child link of the input edge list.
type Edge struct {
	Parent state.RouterID
	Child  state.RouterID
}

// Topology is the ground-truth tree, rooted at the victim. It is built
// once and is query-only afterwards; reconstruction never touches it.
// Depth and branch-root tables are precomputed so the per-packet path
// walks do not chase the tree structure.
type Topology struct {
	parent     map[state.RouterID]state.RouterID
	children   map[state.RouterID][]state.RouterID
	depth      map[state.RouterID]int
	branchRoot map[state.RouterID]state.RouterID
	leaves     []state.RouterID
	nodes      []state.RouterID
}

// New builds a topology from an edge list. It fails if the edges do not
// form an arborescence rooted at the victim: duplicate edges, nodes with
// two parents, a missing victim, or parts not reachable from the victim
// are all rejected here, before any trial runs.
func New(edges []Edge) (*Topology, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("topology has no edges")
	}

	t := &Topology{
		parent:     make(map[state.RouterID]state.RouterID),
		children:   make(map[state.RouterID][]state.RouterID),
		depth:      make(map[state.RouterID]int),
		branchRoot: make(map[state.RouterID]state.RouterID),
	}

	seen := make(map[Edge]bool)
	for _, e := range edges {
		if seen[e] {
			return nil, fmt.Errorf("duplicate edge %d -> %d", e.Parent, e.Child)
		}
		seen[e] = true
		if e.Parent == e.Child {
			return nil, fmt.Errorf("self-loop on node %d", e.Parent)
		}
		if e.Child == state.Victim {
			return nil, fmt.Errorf("victim %d must be the root, but has parent %d", state.Victim, e.Parent)
		}
		if p, ok := t.parent[e.Child]; ok {
			return nil, fmt.Errorf("node %d has two parents: %d and %d", e.Child, p, e.Parent)
		}
		t.parent[e.Child] = e.Parent
		t.children[e.Parent] = append(t.children[e.Parent], e.Child)
	}

	if len(t.children[state.Victim]) == 0 {
		return nil, fmt.Errorf("victim %d is not present in the topology", state.Victim)
	}

	// deterministic child order for subtree walks and tie-breaks
	for _, kids := range t.children {
		slices.Sort(kids)
	}

	// BFS from the victim fills the depth and branch-root tables and
	// doubles as the connectivity check: a node with a parent chain that
	// never reaches the victim (disconnected or cyclic) stays unvisited.
	t.depth[state.Victim] = 0
	queue := []state.RouterID{state.Victim}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range t.children[cur] {
			t.depth[child] = t.depth[cur] + 1
			if cur == state.Victim {
				t.branchRoot[child] = child
			} else {
				t.branchRoot[child] = t.branchRoot[cur]
			}
			queue = append(queue, child)
		}
	}

	for child, parent := range t.parent {
		if _, ok := t.depth[child]; !ok {
			return nil, fmt.Errorf("node %d (child of %d) is not reachable from the victim", child, parent)
		}
	}

	t.nodes = lo.Keys(t.depth)
	slices.Sort(t.nodes)
	t.leaves = lo.Filter(t.nodes, func(n state.RouterID, _ int) bool {
		return n != state.Victim && len(t.children[n]) == 0
	})
	return t, nil
}

// PathToRoot returns the router sequence from leaf to the victim, leaf
// first and victim excluded. Returns nil for the victim itself or an
// unknown node.
func (t *Topology) PathToRoot(leaf state.RouterID) []state.RouterID {
	d, ok := t.depth[leaf]
	if !ok || leaf == state.Victim {
		return nil
	}
	path := make([]state.RouterID, 0, d)
	for cur := leaf; cur != state.Victim; cur = t.parent[cur] {
		path = append(path, cur)
	}
	return path
}

// Leaves returns all nodes with no children, excluding the victim, in
// ascending id order.
func (t *Topology) Leaves() []state.RouterID {
	return slices.Clone(t.leaves)
}

// BranchRoot returns the victim's direct child whose subtree contains
// node. The victim itself has no branch.
func (t *Topology) BranchRoot(node state.RouterID) (state.RouterID, bool) {
	br, ok := t.branchRoot[node]
	return br, ok
}

// Branches returns the victim's direct children in ascending id order.
func (t *Topology) Branches() []state.RouterID {
	return slices.Clone(t.children[state.Victim])
}

// SubtreeLeaves returns the leaves of the subtree rooted at node, in
// ascending id order. A leaf node returns itself.
func (t *Topology) SubtreeLeaves(node state.RouterID) []state.RouterID {
	if _, ok := t.depth[node]; !ok {
		return nil
	}
	var leaves []state.RouterID
	stack := []state.RouterID{node}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		kids := t.children[cur]
		if len(kids) == 0 && cur != state.Victim {
			leaves = append(leaves, cur)
		}
		stack = append(stack, kids...)
	}
	slices.Sort(leaves)
	return leaves
}

// Depth returns the hop count from the victim to node.
func (t *Topology) Depth(node state.RouterID) (int, bool) {
	d, ok := t.depth[node]
	return d, ok
}

// MaxDepth returns the largest root-to-leaf hop count.
func (t *Topology) MaxDepth() int {
	return lo.Max(lo.Values(t.depth))
}

// Nodes returns every node including the victim, in ascending id order.
func (t *Topology) Nodes() []state.RouterID {
	return slices.Clone(t.nodes)
}

// RouterCount returns the number of nodes excluding the victim.
func (t *Topology) RouterCount() int {
	return len(t.nodes) - 1
}
