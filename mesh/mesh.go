// Package mesh implements the undirected peer graph: construction,
// adjacency queries, and shortest-path routing support.
package mesh

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trumanellis/indras-sim/peer"
)

// Edge is an unordered pair of distinct peer ids.
type Edge struct {
	A, B peer.ID
}

// Mesh is an undirected graph of peers and edges. The peer set is
// fixed after construction (invariant i); edge endpoints are always
// members of the peer set (invariant ii); there are no self-loops
// (invariant iii); edges are undirected (invariant iv).
type Mesh struct {
	order     []peer.ID // insertion order, for Peers()
	members   map[peer.ID]bool
	adjacency map[peer.ID]map[peer.ID]bool
}

// FromEdges builds a Mesh from explicit edge pairs. Peers mentioned
// only as edge endpoints are added to the peer set in first-seen
// order. Self-loops are rejected.
func FromEdges(edges []Edge) (*Mesh, error) {
	m := newEmpty()
	for _, e := range edges {
		if e.A == e.B {
			return nil, fmt.Errorf("mesh: self-loop on peer %q", e.A)
		}
		m.addPeer(e.A)
		m.addPeer(e.B)
		m.connect(e.A, e.B)
	}
	return m, nil
}

func newEmpty() *Mesh {
	return &Mesh{
		order:     make([]peer.ID, 0),
		members:   make(map[peer.ID]bool),
		adjacency: make(map[peer.ID]map[peer.ID]bool),
	}
}

func (m *Mesh) addPeer(p peer.ID) {
	if m.members[p] {
		return
	}
	m.members[p] = true
	m.order = append(m.order, p)
	m.adjacency[p] = make(map[peer.ID]bool)
}

func (m *Mesh) connect(a, b peer.ID) {
	m.adjacency[a][b] = true
	m.adjacency[b][a] = true
}

// Peers returns all peers in insertion order.
func (m *Mesh) Peers() []peer.ID {
	out := make([]peer.ID, len(m.order))
	copy(out, m.order)
	return out
}

// PeerCount returns the number of peers in the mesh.
func (m *Mesh) PeerCount() int {
	return len(m.order)
}

// EdgeCount returns the number of undirected edges in the mesh.
func (m *Mesh) EdgeCount() int {
	count := 0
	for _, neighbors := range m.adjacency {
		count += len(neighbors)
	}
	return count / 2
}

// Neighbors returns p's neighbors, ordered by peer id. Unknown peers
// yield an empty slice — queries never fail.
func (m *Mesh) Neighbors(p peer.ID) []peer.ID {
	set, ok := m.adjacency[p]
	if !ok {
		return nil
	}
	out := make([]peer.ID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// AreConnected reports whether a and b share an edge. Unknown peers
// report false.
func (m *Mesh) AreConnected(a, b peer.ID) bool {
	set, ok := m.adjacency[a]
	if !ok {
		return false
	}
	return set[b]
}

// MutualPeers returns the peers adjacent to both a and b, ordered by
// peer id.
func (m *Mesh) MutualPeers(a, b peer.ID) []peer.ID {
	as, aok := m.adjacency[a]
	bs, bok := m.adjacency[b]
	if !aok || !bok {
		return nil
	}
	out := make([]peer.ID, 0)
	for n := range as {
		if bs[n] {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// ShortestPath returns the shortest path from a to b as a sequence of
// peers including both endpoints, using BFS with ties broken by peer
// id order. Returns the single-element path [a] when a and b are the
// same peer, and an empty slice when either is unknown or when b is
// unreachable from a.
func (m *Mesh) ShortestPath(a, b peer.ID) []peer.ID {
	if !m.members[a] || !m.members[b] {
		return nil
	}
	if a == b {
		return []peer.ID{a}
	}

	prev := map[peer.ID]peer.ID{}
	visited := map[peer.ID]bool{a: true}
	queue := []peer.ID{a}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, n := range m.Neighbors(cur) {
			if visited[n] {
				continue
			}
			visited[n] = true
			prev[n] = cur
			if n == b {
				return reconstruct(prev, a, b)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func reconstruct(prev map[peer.ID]peer.ID, a, b peer.ID) []peer.ID {
	path := []peer.ID{b}
	cur := b
	for cur != a {
		cur = prev[cur]
		path = append(path, cur)
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ReachableFrom returns the connected component containing p: every
// peer reachable from p by following edges, via BFS, including p
// itself. Topology-only; does not consider online state. Used by the
// routing core to decide whether a packet has exhausted every peer it
// could possibly reach.
func (m *Mesh) ReachableFrom(p peer.ID) []peer.ID {
	if !m.members[p] {
		return nil
	}
	visited := map[peer.ID]bool{p: true}
	queue := []peer.ID{p}
	out := []peer.ID{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range m.Neighbors(cur) {
			if visited[n] {
				continue
			}
			visited[n] = true
			out = append(out, n)
			queue = append(queue, n)
		}
	}
	return out
}

// Visualize renders a human-readable adjacency-list summary of the
// mesh, for debugging.
func (m *Mesh) Visualize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "mesh: %d peers, %d edges\n", m.PeerCount(), m.EdgeCount())
	for _, p := range m.order {
		neighbors := m.Neighbors(p)
		names := make([]string, len(neighbors))
		for i, n := range neighbors {
			names[i] = n.String()
		}
		fmt.Fprintf(&b, "  %s -> [%s]\n", p, strings.Join(names, ", "))
	}
	return b.String()
}
