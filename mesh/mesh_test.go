package mesh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trumanellis/indras-sim/peer"
)

func ids(tags ...string) []peer.ID {
	out := make([]peer.ID, len(tags))
	for i, tag := range tags {
		out[i] = peer.New(tag)
	}
	return out
}

func TestFromEdges_Basic(t *testing.T) {
	m, err := FromEdges([]Edge{
		{A: peer.New("A"), B: peer.New("B")},
		{A: peer.New("B"), B: peer.New("C")},
		{A: peer.New("A"), B: peer.New("C")},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, m.PeerCount())
	assert.Equal(t, 3, m.EdgeCount())
	assert.Equal(t, ids("A", "B", "C"), m.Peers())
}

func TestFromEdges_RejectsSelfLoop(t *testing.T) {
	_, err := FromEdges([]Edge{{A: peer.New("A"), B: peer.New("A")}})
	assert.Error(t, err)
}

func TestMesh_Symmetry(t *testing.T) {
	m, err := FromEdges([]Edge{{A: peer.New("A"), B: peer.New("B")}})
	require.NoError(t, err)

	a, b := peer.New("A"), peer.New("B")
	assert.Equal(t, m.AreConnected(a, b), m.AreConnected(b, a))
	assert.Contains(t, m.Neighbors(a), b)
	assert.Contains(t, m.Neighbors(b), a)
}

func TestMesh_UnknownPeerQueriesNeverFail(t *testing.T) {
	m, _ := FromEdges([]Edge{{A: peer.New("A"), B: peer.New("B")}})
	unknown := peer.New("Z")

	assert.Empty(t, m.Neighbors(unknown))
	assert.False(t, m.AreConnected(unknown, peer.New("A")))
	assert.Empty(t, m.MutualPeers(unknown, peer.New("A")))
	assert.Empty(t, m.ShortestPath(unknown, peer.New("A")))
}

func TestMesh_MutualPeers(t *testing.T) {
	// A-B, A-C, B-C, B-D: mutual peers of A and B is {C}
	m, _ := FromEdges([]Edge{
		{A: peer.New("A"), B: peer.New("B")},
		{A: peer.New("A"), B: peer.New("C")},
		{A: peer.New("B"), B: peer.New("C")},
		{A: peer.New("B"), B: peer.New("D")},
	})
	got := m.MutualPeers(peer.New("A"), peer.New("B"))
	assert.Equal(t, ids("C"), got)
}

func TestMesh_ShortestPath_Line(t *testing.T) {
	m := NewBuilder(5).Line() // A-B-C-D-E
	path := m.ShortestPath(peer.New("A"), peer.New("E"))
	assert.Equal(t, ids("A", "B", "C", "D", "E"), path)
}

func TestMesh_ShortestPath_Unreachable(t *testing.T) {
	m, _ := FromEdges([]Edge{{A: peer.New("A"), B: peer.New("B")}})
	m.addPeer(peer.New("Z")) // isolated peer
	assert.Empty(t, m.ShortestPath(peer.New("A"), peer.New("Z")))
}

func TestMesh_ShortestPath_SamePeer(t *testing.T) {
	m := NewBuilder(3).Line()
	assert.Equal(t, ids("A"), m.ShortestPath(peer.New("A"), peer.New("A")))
}

func TestBuilder_FullMesh(t *testing.T) {
	m := NewBuilder(4).FullMesh()
	assert.Equal(t, 4, m.PeerCount())
	assert.Equal(t, 6, m.EdgeCount()) // C(4,2)
	for _, p := range m.Peers() {
		assert.Len(t, m.Neighbors(p), 3)
	}
}

func TestBuilder_Line(t *testing.T) {
	m := NewBuilder(3).Line()
	assert.Equal(t, 2, m.EdgeCount())
	assert.True(t, m.AreConnected(peer.New("A"), peer.New("B")))
	assert.False(t, m.AreConnected(peer.New("A"), peer.New("C")))
}

func TestBuilder_Random_Deterministic(t *testing.T) {
	m1 := NewBuilder(6).Random(0.5, rand.New(rand.NewSource(42)))
	m2 := NewBuilder(6).Random(0.5, rand.New(rand.NewSource(42)))
	assert.Equal(t, m1.EdgeCount(), m2.EdgeCount())
	assert.Equal(t, m1.Peers(), m2.Peers())
	for _, p := range m1.Peers() {
		assert.Equal(t, m1.Neighbors(p), m2.Neighbors(p))
	}
}

func TestBuilder_Random_IncludesIsolatedPeers(t *testing.T) {
	m := NewBuilder(5).Random(0.0, rand.New(rand.NewSource(1)))
	assert.Equal(t, 5, m.PeerCount())
	assert.Equal(t, 0, m.EdgeCount())
}

func TestMesh_Visualize_NonEmpty(t *testing.T) {
	m := NewBuilder(3).Line()
	out := m.Visualize()
	assert.Contains(t, out, "3 peers")
	assert.Contains(t, out, "A ->")
}

func TestMesh_ReachableFrom_ConnectedComponent(t *testing.T) {
	m := NewBuilder(5).Line() // A-B-C-D-E
	assert.ElementsMatch(t, ids("A", "B", "C", "D", "E"), m.ReachableFrom(peer.New("C")))
}

func TestMesh_ReachableFrom_ExcludesOtherComponents(t *testing.T) {
	m, err := FromEdges([]Edge{
		{A: peer.New("A"), B: peer.New("B")},
		{A: peer.New("C"), B: peer.New("D")},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, ids("A", "B"), m.ReachableFrom(peer.New("A")))
	assert.ElementsMatch(t, ids("C", "D"), m.ReachableFrom(peer.New("C")))
}

func TestMesh_ReachableFrom_UnknownPeer(t *testing.T) {
	m := NewBuilder(3).Line()
	assert.Nil(t, m.ReachableFrom(peer.New("Z")))
}
