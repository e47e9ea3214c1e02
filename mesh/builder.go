package mesh

import (
	"math/rand"

	"github.com/trumanellis/indras-sim/peer"
)

// Builder constructs a Mesh from a peer count and a topology
// generator. Each method returns a new immutable Mesh value; the
// builder pattern never mutates in place.
type Builder struct {
	peers []peer.ID
}

// NewBuilder seeds a Builder with n peers named by peer.RangeTo-style
// single letters when n <= 26, else "P" followed by a letter and the
// index (e.g. "PA0", "PB1").
func NewBuilder(n int) *Builder {
	peers := make([]peer.ID, n)
	for i := 0; i < n; i++ {
		if n <= 26 {
			peers[i] = peer.New(string(rune('A' + i)))
		} else {
			peers[i] = peer.New(nameFor(i))
		}
	}
	return &Builder{peers: peers}
}

func nameFor(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return "P" + string(letters[i%len(letters)]) + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

// Line builds a Mesh where peers are connected A-B-C-… in sequence.
func (b *Builder) Line() *Mesh {
	edges := make([]Edge, 0, len(b.peers)-1)
	for i := 0; i+1 < len(b.peers); i++ {
		edges = append(edges, Edge{A: b.peers[i], B: b.peers[i+1]})
	}
	m, _ := FromEdges(edges)
	return withIsolatedPeers(m, b.peers)
}

// FullMesh builds a Mesh where every pair of peers is connected.
func (b *Builder) FullMesh() *Mesh {
	edges := make([]Edge, 0)
	for i := 0; i < len(b.peers); i++ {
		for j := i + 1; j < len(b.peers); j++ {
			edges = append(edges, Edge{A: b.peers[i], B: b.peers[j]})
		}
	}
	m, _ := FromEdges(edges)
	return withIsolatedPeers(m, b.peers)
}

// Random builds a Mesh where each unordered pair is independently
// included with probability p, drawn from source. Callers seed source
// independently from the simulation's own RNG so topology generation
// stays reproducible without perturbing the simulation's draw sequence.
func (b *Builder) Random(p float64, source *rand.Rand) *Mesh {
	edges := make([]Edge, 0)
	for i := 0; i < len(b.peers); i++ {
		for j := i + 1; j < len(b.peers); j++ {
			if source.Float64() < p {
				edges = append(edges, Edge{A: b.peers[i], B: b.peers[j]})
			}
		}
	}
	m, _ := FromEdges(edges)
	return withIsolatedPeers(m, b.peers)
}

// withIsolatedPeers ensures every peer the builder was seeded with
// appears in the mesh, even peers left with no edges (e.g. a Random
// mesh where a peer drew no connections, or a single-peer Line).
func withIsolatedPeers(m *Mesh, all []peer.ID) *Mesh {
	if m == nil {
		m = newEmpty()
	}
	for _, p := range all {
		m.addPeer(p)
	}
	return m
}
