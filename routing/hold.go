package routing

import "github.com/trumanellis/indras-sim/peer"

// HoldReason explains why a packet could not be forwarded this tick.
type HoldReason string

const (
	ReasonDestinationOffline HoldReason = "destination_offline"
	ReasonNoRoute            HoldReason = "no_route"
	ReasonAwaitingNextHop    HoldReason = "awaiting_next_hop"
)

// Entry is a packet retained by a custodian peer, tagged with the tick
// it entered the hold buffer and why. It is created when the packet is
// injected at its source, moves to the next custodian's buffer on a
// successful forward, and is destroyed on delivery or drop.
type Entry struct {
	Packet      *Packet
	Custodian   peer.ID
	EnteredTick int64
	Reason      HoldReason

	// holdEmitted tracks whether the Hold event for this sojourn in
	// the buffer has already been recorded, so re-evaluating a
	// stationary packet doesn't re-emit it every tick.
	holdEmitted bool
}
