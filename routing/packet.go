// Package routing implements the packet routing subsystem: direct
// delivery, multi-hop relay, store-and-forward, and the optional
// PRoPHET probabilistic routing mode.
package routing

import (
	"github.com/trumanellis/indras-sim/correlation"
	"github.com/trumanellis/indras-sim/peer"
)

// Packet is an in-flight message. Hop count is non-decreasing; the
// visited-peer set prevents routing cycles.
type Packet struct {
	ID           string
	Source       peer.ID
	Destination  peer.ID
	Payload      []byte
	Priority     peer.Priority
	CreationTick int64
	HopCount     int

	// Ctx is the correlation context active for the most recent event
	// emitted about this packet. Each relay hop derives a child
	// context from it, so hop_count on the context mirrors the
	// packet's own HopCount: one child derivation per relay, each
	// incrementing by exactly one.
	Ctx correlation.Context

	visited []peer.ID
	seen    map[peer.ID]bool
}

// NewPacket constructs a packet with the source already marked
// visited (the source is the initial custodian).
func NewPacket(id string, source, destination peer.ID, payload []byte, priority peer.Priority, creationTick int64, ctx correlation.Context) *Packet {
	p := &Packet{
		ID:           id,
		Source:       source,
		Destination:  destination,
		Payload:      payload,
		Priority:     priority,
		CreationTick: creationTick,
		Ctx:          ctx,
	}
	p.markVisited(source)
	return p
}

func (p *Packet) markVisited(id peer.ID) {
	if p.seen == nil {
		p.seen = make(map[peer.ID]bool)
	}
	if p.seen[id] {
		return
	}
	p.seen[id] = true
	p.visited = append(p.visited, id)
}

// HasVisited reports whether id has already custodied this packet.
func (p *Packet) HasVisited(id peer.ID) bool {
	return p.seen[id]
}

// VisitedPath returns the ordered sequence of custodians this packet
// has passed through, starting with its source.
func (p *Packet) VisitedPath() []peer.ID {
	out := make([]peer.ID, len(p.visited))
	copy(out, p.visited)
	return out
}

// VisitedCount returns how many distinct peers this packet has
// visited.
func (p *Packet) VisitedCount() int {
	return len(p.visited)
}
