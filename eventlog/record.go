// Package eventlog implements the append-only, typed event record
// sequence every simulator decision is written to.
package eventlog

import "github.com/trumanellis/indras-sim/peer"

// Type tags the variant of an EventRecord. Consumers pattern-match on
// Type; the log is a tagged variant with one case per event kind
// rather than a hierarchy of event interfaces.
type Type string

const (
	Send             Type = "Send"
	Relay            Type = "Relay"
	Delivered        Type = "Delivered"
	Dropped          Type = "Dropped"
	Hold             Type = "Hold"
	PeerOnline       Type = "PeerOnline"
	PeerOffline      Type = "PeerOffline"
	PqSignature      Type = "PqSignature"
	PqVerification   Type = "PqVerification"
	KemEncapsulation Type = "KemEncapsulation"
	KemDecapsulation Type = "KemDecapsulation"
	InviteCreated    Type = "InviteCreated"
	InviteAccepted   Type = "InviteAccepted"
	InviteFailed     Type = "InviteFailed"
)

// Record is a single append-only event. It carries the correlation
// fields active at emission plus a per-type field set. Only the fields
// relevant to Kind are populated; the rest are zero values.
type Record struct {
	Kind Type
	Tick int64

	TraceID      string
	SpanID       string
	ParentSpanID *string // nil for events emitted under a root context
	Tags         map[string]string

	// Routing fields
	From         peer.ID
	To           peer.ID
	Via          peer.ID
	At           peer.ID
	PacketID     string
	Reason       string
	LatencyTicks int64
	HopCount     int

	// Churn fields
	Peer peer.ID

	// Crypto accounting fields
	Signer       peer.ID
	Verifier     peer.ID
	Initiator    peer.ID
	Target       peer.ID
	LatencyUs    int64
	Success      *bool
	MessageBytes int
}
