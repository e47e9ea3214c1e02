// Package engine ties the mesh, churn, routing, crypto accounting,
// event log, and stats subsystems into a single-threaded, cooperative
// Simulation.
package engine

import (
	"math/rand"

	"github.com/trumanellis/indras-sim/churn"
	"github.com/trumanellis/indras-sim/correlation"
	"github.com/trumanellis/indras-sim/crypto"
	"github.com/trumanellis/indras-sim/eventlog"
	"github.com/trumanellis/indras-sim/mesh"
	"github.com/trumanellis/indras-sim/peer"
	"github.com/trumanellis/indras-sim/rng"
	"github.com/trumanellis/indras-sim/routing"
	"github.com/trumanellis/indras-sim/stats"
)

// PeerState summarizes one peer's online status and hold-buffer
// occupancy for StateSummary.
type PeerState struct {
	Online    bool
	HoldCount int
}

// StateSummary is a structured snapshot of the simulation's current
// state, independent of the full event log: a typed map keyed by peer
// id rather than a loose map[string]interface{}.
type StateSummary struct {
	Tick  int64
	Peers map[peer.ID]PeerState
}

// Simulation is the top-level orchestrator. It is single-threaded and
// not safe for concurrent use: Step and every driver method run to
// completion with no suspension points.
type Simulation struct {
	mesh    *mesh.Mesh
	members map[peer.ID]bool
	config  SimConfig

	churnModel *churn.Model
	routing    *routing.Core
	crypto     *crypto.Accounting

	log   *eventlog.Log
	stats *stats.Stats

	rngKey      rng.SimulationKey
	idGen       *correlation.IDGenerator
	churnSource *rand.Rand

	tick        int64
	nextPacket  int64
	initialized bool
}

// New constructs a Simulation over m with the given config, failing
// fast with a ConfigError on invalid settings.
func New(m *mesh.Mesh, config SimConfig) (*Simulation, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	members := make(map[peer.ID]bool)
	for _, p := range m.Peers() {
		members[p] = true
	}

	key := rng.NewSimulationKey(config.RngSeed)
	prng := rng.New(key)
	idGen := correlation.NewIDGenerator(prng.ForSubsystem(rng.SubsystemIdentity))

	s := &Simulation{
		mesh:        m,
		members:     members,
		config:      config,
		churnModel:  churn.New(config.churnConfig()),
		log:         eventlog.New(),
		stats:       stats.New(),
		rngKey:      key,
		idGen:       idGen,
		churnSource: prng.ForSubsystem(rng.SubsystemChurn),
	}
	s.routing = routing.NewCore(m, config.RoutingMode, config.TTL, idGen)
	s.crypto = crypto.New(func(p peer.ID) bool { return members[p] })
	return s, nil
}

// Initialize assigns initial online state from
// InitialOnlineProbability, drawing per-peer bits in peer order (spec
// §5 RNG order step 1), and records PeerOnline for every peer that
// started online.
func (s *Simulation) Initialize() {
	transitions := s.churnModel.Initialize(s.mesh.Peers(), s.churnSource)
	s.recordChurnTransitions(transitions)
	s.initialized = true
}

// Step advances the simulation by one tick, in a fixed order:
// (1) churn transitions, (2) routing pass, (3) PRoPHET decay (if
// enabled), (4) tick counter increment.
func (s *Simulation) Step() {
	transitions := s.churnModel.Step(s.mesh.Peers(), s.churnSource)
	s.recordChurnTransitions(transitions)

	s.routing.ProcessTick(s.tick, s, s.churnModel.IsOnline)
	s.routing.DecayProphet(s.tick)

	s.tick++
}

// RunTicks calls Step n times.
func (s *Simulation) RunTicks(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

func (s *Simulation) recordChurnTransitions(transitions []churn.Transition) {
	ctx := correlation.NewRoot(s.idGen)
	for _, t := range transitions {
		if t.Online {
			s.log.Append(eventlog.Record{
				Kind: eventlog.PeerOnline, Tick: s.tick,
				TraceID: ctx.TraceID, SpanID: ctx.SpanID, ParentSpanID: ctx.ParentSpanIDOrNil(),
				Peer: t.Peer,
			})
		} else {
			s.log.Append(eventlog.Record{
				Kind: eventlog.PeerOffline, Tick: s.tick,
				TraceID: ctx.TraceID, SpanID: ctx.SpanID, ParentSpanID: ctx.ParentSpanIDOrNil(),
				Peer: t.Peer,
			})
		}
	}
}

// SendMessage injects a new packet from src to dst. Rejected with
// InvalidSend for src==dst, or NotAMember if src is not in the mesh.
func (s *Simulation) SendMessage(src, dst peer.ID, payload []byte) error {
	if src == dst {
		return &InvalidSend{Reason: "source and destination are the same peer"}
	}
	if !s.members[src] {
		return &NotAMember{Op: "send_message", Peer: src.String()}
	}
	s.nextPacket++
	ctx := correlation.NewRoot(s.idGen)
	if s.config.TraceRouting {
		ctx = ctx.WithTag("trace_routing", "true")
	}
	pkt := routing.NewPacket(packetID(s.nextPacket), src, dst, payload, peer.Normal, s.tick, ctx)
	s.routing.EnqueueSend(pkt)
	return nil
}

func packetID(n int64) string {
	const digits = "0123456789"
	if n == 0 {
		return "pkt-0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{digits[n%10]}, b...)
		n /= 10
	}
	return "pkt-" + string(b)
}

// ForceOnline forces p online. Returns NotAMember if p is not in the
// mesh.
func (s *Simulation) ForceOnline(p peer.ID) error {
	if !s.members[p] {
		return &NotAMember{Op: "force_online", Peer: p.String()}
	}
	if s.churnModel.ForceOnline(p) {
		s.recordChurnTransitions([]churn.Transition{{Peer: p, Online: true}})
	}
	return nil
}

// ForceOffline forces p offline. Returns NotAMember if p is not in the
// mesh.
func (s *Simulation) ForceOffline(p peer.ID) error {
	if !s.members[p] {
		return &NotAMember{Op: "force_offline", Peer: p.String()}
	}
	if s.churnModel.ForceOffline(p) {
		s.recordChurnTransitions([]churn.Transition{{Peer: p, Online: false}})
	}
	return nil
}

// IsOnline reports whether p is currently online.
func (s *Simulation) IsOnline(p peer.ID) bool {
	return s.churnModel.IsOnline(p)
}

// OnlinePeers returns the currently online peers, sorted by peer id.
func (s *Simulation) OnlinePeers() []peer.ID {
	return s.churnModel.OnlinePeers(s.mesh.Peers())
}

// OfflinePeers returns the currently offline peers, sorted by peer id.
func (s *Simulation) OfflinePeers() []peer.ID {
	return s.churnModel.OfflinePeers(s.mesh.Peers())
}

// Tick returns the current tick counter.
func (s *Simulation) Tick() int64 {
	return s.tick
}

// Stats returns the live stats view.
func (s *Simulation) Stats() *stats.Stats {
	return s.stats
}

// EventLog returns the simulation's live, append-only event log; its
// Records method returns a copy of the record sequence.
func (s *Simulation) EventLog() *eventlog.Log {
	return s.log
}

// Crypto returns the crypto accounting layer, exposing the seven
// Record* operations.
func (s *Simulation) Crypto() *crypto.Accounting {
	return s.crypto
}

// CryptoCtx derives a fresh root correlation context for an
// independent crypto accounting call (each call is its own trace, not
// a child of any packet's context).
func (s *Simulation) CryptoCtx() correlation.Context {
	return correlation.NewRoot(s.idGen)
}

// CryptoSink returns the EventSink the crypto accounting layer should
// record events through.
func (s *Simulation) CryptoSink() crypto.EventSink {
	return s
}

// StateSummary returns a structured snapshot of per-peer online state
// and hold-buffer occupancy.
func (s *Simulation) StateSummary() StateSummary {
	held := s.routing.HoldBufferSizes()
	peers := make(map[peer.ID]PeerState, len(s.mesh.Peers()))
	for _, p := range s.mesh.Peers() {
		peers[p] = PeerState{
			Online:    s.churnModel.IsOnline(p),
			HoldCount: held[p],
		}
	}
	return StateSummary{Tick: s.tick, Peers: peers}
}
