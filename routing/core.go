package routing

import (
	"github.com/trumanellis/indras-sim/correlation"
	"github.com/trumanellis/indras-sim/mesh"
	"github.com/trumanellis/indras-sim/peer"
)

// Mode selects between default shortest-path routing and the optional
// PRoPHET probabilistic routing mode.
type Mode string

const (
	ModeDefault Mode = "default"
	ModeProphet Mode = "prophet"
)

// Drop reasons.
const (
	DropReasonTTLExceeded         = "ttl_exceeded"
	DropReasonVisitedAllReachable = "visited_all_reachable"
)

// EventSink receives routing decisions to record in the event log and
// fold into Stats. The routing core never touches the event log or
// stats directly; the engine implements EventSink to keep those
// concerns separate.
type EventSink interface {
	EmitSend(tick int64, from, to peer.ID, packetID string, ctx correlation.Context)
	EmitRelay(tick int64, from, via, to peer.ID, packetID string, ctx correlation.Context)
	EmitDelivered(tick int64, to, via peer.ID, packetID string, latencyTicks int64, hopCount int, ctx correlation.Context)
	EmitDropped(tick int64, packetID string, reason string, ctx correlation.Context)
	EmitHold(tick int64, at peer.ID, packetID string, reason string, ctx correlation.Context)
}

// OnlineChecker reports whether a peer is currently online. The
// routing core consults the churn model through this narrow interface
// rather than depending on the churn package directly.
type OnlineChecker func(peer.ID) bool

// Core implements direct delivery, multi-hop relay, store-and-forward,
// and optional PRoPHET routing over a fixed Mesh.
type Core struct {
	mesh    *mesh.Mesh
	mode    Mode
	ttl     int64 // 0 = unbounded
	idGen   *correlation.IDGenerator
	prophet *ProphetTable

	holdBuffers  map[peer.ID][]*Entry
	pendingSends []*Packet
}

// NewCore creates a routing core over m. ttl <= 0 means unbounded.
func NewCore(m *mesh.Mesh, mode Mode, ttl int64, idGen *correlation.IDGenerator) *Core {
	c := &Core{
		mesh:        m,
		mode:        mode,
		ttl:         ttl,
		idGen:       idGen,
		holdBuffers: make(map[peer.ID][]*Entry),
	}
	if mode == ModeProphet {
		c.prophet = NewProphetTable()
	}
	return c
}

// Prophet returns the PRoPHET table, or nil if the core is not running
// in PRoPHET mode.
func (c *Core) Prophet() *ProphetTable {
	return c.prophet
}

// EnqueueSend stages a packet for injection on the next ProcessTick
// call.
func (c *Core) EnqueueSend(pkt *Packet) {
	c.pendingSends = append(c.pendingSends, pkt)
}

// HoldCount returns the number of packets currently buffered at p.
func (c *Core) HoldCount(p peer.ID) int {
	return len(c.holdBuffers[p])
}

// HoldBufferSizes returns the current hold-buffer occupancy for every
// peer that holds at least one packet.
func (c *Core) HoldBufferSizes() map[peer.ID]int {
	out := make(map[peer.ID]int, len(c.holdBuffers))
	for p, entries := range c.holdBuffers {
		if len(entries) > 0 {
			out[p] = len(entries)
		}
	}
	return out
}

// ProcessTick runs one tick of the routing pass: inject pending sends,
// then process every peer's hold buffer in peer-id order, attempting
// to forward each held packet.
func (c *Core) ProcessTick(tick int64, sink EventSink, isOnline OnlineChecker) {
	for _, pkt := range c.pendingSends {
		sink.EmitSend(tick, pkt.Source, pkt.Destination, pkt.ID, pkt.Ctx)
		c.holdBuffers[pkt.Source] = append(c.holdBuffers[pkt.Source], &Entry{
			Packet:      pkt,
			Custodian:   pkt.Source,
			EnteredTick: tick,
			Reason:      ReasonAwaitingNextHop,
		})
	}
	c.pendingSends = nil

	order := peer.SortIDs(c.mesh.Peers())
	forwarded := make(map[peer.ID][]*Entry)

	for _, custodian := range order {
		entries := c.holdBuffers[custodian]
		if len(entries) == 0 {
			continue
		}
		survivors := make([]*Entry, 0, len(entries))
		for _, entry := range entries {
			outcome, nextHop := c.attemptForward(tick, custodian, entry, sink, isOnline)
			switch outcome {
			case outcomeForwarded:
				entry.Custodian = nextHop
				entry.EnteredTick = tick
				entry.Reason = ReasonAwaitingNextHop
				entry.holdEmitted = false
				forwarded[nextHop] = append(forwarded[nextHop], entry)
			case outcomeHeld:
				survivors = append(survivors, entry)
			// outcomeDelivered, outcomeDropped: entry is gone
			}
		}
		if len(survivors) == 0 {
			delete(c.holdBuffers, custodian)
		} else {
			c.holdBuffers[custodian] = survivors
		}
	}

	for target, entries := range forwarded {
		c.holdBuffers[target] = append(c.holdBuffers[target], entries...)
	}
}

type forwardOutcome int

const (
	outcomeDelivered forwardOutcome = iota
	outcomeForwarded
	outcomeDropped
	outcomeHeld
)

func (c *Core) attemptForward(tick int64, custodian peer.ID, entry *Entry, sink EventSink, isOnline OnlineChecker) (forwardOutcome, peer.ID) {
	pkt := entry.Packet
	destination := pkt.Destination

	if custodian == destination {
		latency := tick - pkt.CreationTick
		// via is the last custodian before the destination: the hand-off
		// into the destination never marks it visited.
		via := pkt.visited[len(pkt.visited)-1]
		sink.EmitDelivered(tick, destination, via, pkt.ID, latency, pkt.HopCount, pkt.Ctx)
		return outcomeDelivered, ""
	}

	// Destination is online and directly adjacent: hand the packet
	// straight to it with no Relay record and no hop_count increment.
	// Next-tick processing at the destination delivers it, so a
	// genuinely one-hop send yields an empty Relay prefix.
	if isOnline(destination) && c.mesh.AreConnected(custodian, destination) {
		if c.mode == ModeProphet {
			c.prophet.RecordEncounter(custodian, destination, tick)
		}
		return outcomeForwarded, destination
	}

	if next, ok := c.computeNextHop(custodian, destination, pkt, isOnline); ok {
		pkt.markVisited(next)
		pkt.HopCount++
		pkt.Ctx = pkt.Ctx.Child(c.idGen)
		sink.EmitRelay(tick, custodian, next, destination, pkt.ID, pkt.Ctx)
		if c.mode == ModeProphet {
			c.prophet.RecordEncounter(custodian, next, tick)
		}
		return outcomeForwarded, next
	}

	if c.shouldDrop(tick, pkt, custodian) {
		sink.EmitDropped(tick, pkt.ID, c.dropReason(tick, pkt, custodian), pkt.Ctx)
		return outcomeDropped, ""
	}

	if !entry.holdEmitted {
		entry.Reason = c.holdReason(custodian, destination, isOnline)
		sink.EmitHold(tick, custodian, pkt.ID, string(entry.Reason), pkt.Ctx)
		entry.holdEmitted = true
	}
	return outcomeHeld, ""
}

// computeNextHop picks the next custodian for a packet at custodian
// bound for destination, among peers other than an adjacent online
// destination (attemptForward handles that case as a silent hand-off
// before ever calling this).
func (c *Core) computeNextHop(custodian, destination peer.ID, pkt *Packet, isOnline OnlineChecker) (peer.ID, bool) {
	if c.mode == ModeProphet {
		if next, ok := c.prophetNextHop(custodian, destination, pkt, isOnline); ok {
			return next, true
		}
	}
	return c.shortestPathNextHop(custodian, destination, pkt, isOnline)
}

func (c *Core) shortestPathNextHop(custodian, destination peer.ID, pkt *Packet, isOnline OnlineChecker) (peer.ID, bool) {
	path := c.mesh.ShortestPath(custodian, destination)
	if len(path) < 2 {
		return "", false
	}
	next := path[1]
	if pkt.HasVisited(next) || !isOnline(next) {
		return "", false
	}
	return next, true
}

func (c *Core) prophetNextHop(custodian, destination peer.ID, pkt *Packet, isOnline OnlineChecker) (peer.ID, bool) {
	best := peer.ID("")
	bestProb := 0.0
	found := false
	for _, n := range c.mesh.Neighbors(custodian) {
		if !isOnline(n) || pkt.HasVisited(n) {
			continue
		}
		p := c.prophet.Direct(n, destination)
		if p > bestProb {
			bestProb = p
			best = n
			found = true
		}
	}
	if found && bestProb > 0 {
		return best, true
	}
	return "", false
}

func (c *Core) shouldDrop(tick int64, pkt *Packet, custodian peer.ID) bool {
	if c.ttl > 0 && tick-pkt.CreationTick > c.ttl {
		return true
	}
	reachable := c.mesh.ReachableFrom(custodian)
	return pkt.VisitedCount() >= len(reachable)
}

func (c *Core) dropReason(tick int64, pkt *Packet, custodian peer.ID) string {
	if c.ttl > 0 && tick-pkt.CreationTick > c.ttl {
		return DropReasonTTLExceeded
	}
	return DropReasonVisitedAllReachable
}

func (c *Core) holdReason(custodian, destination peer.ID, isOnline OnlineChecker) HoldReason {
	path := c.mesh.ShortestPath(custodian, destination)
	if len(path) == 0 {
		return ReasonNoRoute
	}
	if !isOnline(destination) {
		return ReasonDestinationOffline
	}
	return ReasonAwaitingNextHop
}

// DecayProphet applies PRoPHET decay for the tick, if PRoPHET mode is
// enabled. Called once per tick, after the routing pass.
func (c *Core) DecayProphet(tick int64) {
	if c.prophet != nil {
		c.prophet.Decay(tick)
	}
}
