// Package churn implements the per-tick online/offline transition
// model driving peer availability.
package churn

import (
	"math/rand"
	"sort"

	"github.com/trumanellis/indras-sim/peer"
)

// Transition records a single peer's online-state change, either from
// a probabilistic tick or a forced call.
type Transition struct {
	Peer   peer.ID
	Online bool // true: PeerOnline, false: PeerOffline
}

// Model tracks online/offline state for a fixed peer set.
type Model struct {
	cfg    Config
	online map[peer.ID]bool
}

// New creates a Model with every peer initially offline; call
// Initialize to draw the configured initial online state.
func New(cfg Config) *Model {
	return &Model{cfg: cfg, online: make(map[peer.ID]bool)}
}

// Initialize assigns initial online state from InitialOnlineProbability,
// drawing per-peer bits in peer order.
// Manual mode leaves every peer offline and draws nothing.
func (m *Model) Initialize(peers []peer.ID, source *rand.Rand) []Transition {
	ordered := sortedCopy(peers)
	transitions := make([]Transition, 0)
	for _, p := range ordered {
		m.online[p] = false
		if m.cfg.Manual {
			continue
		}
		if source.Float64() < m.cfg.InitialOnlineProbability {
			m.online[p] = true
			transitions = append(transitions, Transition{Peer: p, Online: true})
		}
	}
	return transitions
}

// Step advances churn by one tick: for every peer, online peers flip
// to offline with SleepProbability and offline peers flip to online
// with WakeProbability, drawn in peer order. Manual mode never
// transitions peers probabilistically.
func (m *Model) Step(peers []peer.ID, source *rand.Rand) []Transition {
	if m.cfg.Manual {
		return nil
	}
	transitions := make([]Transition, 0)
	for _, p := range sortedCopy(peers) {
		if m.online[p] {
			if source.Float64() < m.cfg.SleepProbability {
				m.online[p] = false
				transitions = append(transitions, Transition{Peer: p, Online: false})
			}
		} else {
			if source.Float64() < m.cfg.WakeProbability {
				m.online[p] = true
				transitions = append(transitions, Transition{Peer: p, Online: true})
			}
		}
	}
	return transitions
}

// ForceOnline forces p online regardless of probabilities. Returns
// true if this changed p's state (and thus should emit a record).
func (m *Model) ForceOnline(p peer.ID) bool {
	if m.online[p] {
		return false
	}
	m.online[p] = true
	return true
}

// ForceOffline forces p offline regardless of probabilities. Returns
// true if this changed p's state.
func (m *Model) ForceOffline(p peer.ID) bool {
	if !m.online[p] {
		return false
	}
	m.online[p] = false
	return true
}

// IsOnline reports whether p is currently online. Unknown peers report
// false.
func (m *Model) IsOnline(p peer.ID) bool {
	return m.online[p]
}

// OnlinePeers returns the online subset of all, sorted by peer id.
func (m *Model) OnlinePeers(all []peer.ID) []peer.ID {
	return m.filter(all, true)
}

// OfflinePeers returns the offline subset of all, sorted by peer id.
func (m *Model) OfflinePeers(all []peer.ID) []peer.ID {
	return m.filter(all, false)
}

func (m *Model) filter(all []peer.ID, wantOnline bool) []peer.ID {
	out := make([]peer.ID, 0, len(all))
	for _, p := range all {
		if m.online[p] == wantOnline {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

func sortedCopy(peers []peer.ID) []peer.ID {
	out := make([]peer.ID, len(peers))
	copy(out, peers)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
