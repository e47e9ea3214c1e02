// Package crypto implements record-only bookkeeping for post-quantum
// signature, KEM, and invite operations. No cryptography is performed
// here — callers have already done the real work and report its
// outcome and latency.
package crypto

import (
	"fmt"

	"github.com/trumanellis/indras-sim/correlation"
	"github.com/trumanellis/indras-sim/peer"
)

// AccountingError reports a rejected accounting call: negative latency
// or an unknown peer.
type AccountingError struct {
	Op     string
	Reason string
}

func (e *AccountingError) Error() string {
	return fmt.Sprintf("crypto: %s: %s", e.Op, e.Reason)
}

// EventSink receives accounting events to append to the event log. The
// accounting layer never touches the log or Stats directly; the engine
// implements this interface.
type EventSink interface {
	EmitPqSignature(tick int64, signer peer.ID, latencyUs int64, messageBytes int, ctx correlation.Context)
	EmitPqVerification(tick int64, verifier, signer peer.ID, latencyUs int64, success bool, ctx correlation.Context)
	EmitKemEncapsulation(tick int64, initiator, target peer.ID, latencyUs int64, ctx correlation.Context)
	EmitKemDecapsulation(tick int64, target, initiator peer.ID, latencyUs int64, success bool, ctx correlation.Context)
	EmitInviteCreated(tick int64, initiator peer.ID, ctx correlation.Context)
	EmitInviteAccepted(tick int64, initiator, target peer.ID, ctx correlation.Context)
	EmitInviteFailed(tick int64, initiator peer.ID, reason string, ctx correlation.Context)
}

// MembershipChecker reports whether a peer id belongs to the mesh.
type MembershipChecker func(peer.ID) bool

// Accounting validates and records crypto-adjacent events. It holds no
// cryptographic material and performs no cryptography; it is pure
// bookkeeping independent of routing and peer online state.
type Accounting struct {
	isMember MembershipChecker
}

// New creates an Accounting layer that validates peer ids against
// isMember.
func New(isMember MembershipChecker) *Accounting {
	return &Accounting{isMember: isMember}
}

func (a *Accounting) checkPeer(op string, p peer.ID) error {
	if !a.isMember(p) {
		return &AccountingError{Op: op, Reason: fmt.Sprintf("unknown peer %q", p)}
	}
	return nil
}

func checkLatency(op string, latencyUs int64) error {
	if latencyUs < 0 {
		return &AccountingError{Op: op, Reason: "negative latency"}
	}
	return nil
}

// RecordPqSignature records a signature-creation event.
func (a *Accounting) RecordPqSignature(tick int64, signer peer.ID, latencyUs int64, messageBytes int, ctx correlation.Context, sink EventSink) error {
	const op = "record_pq_signature"
	if err := a.checkPeer(op, signer); err != nil {
		return err
	}
	if err := checkLatency(op, latencyUs); err != nil {
		return err
	}
	sink.EmitPqSignature(tick, signer, latencyUs, messageBytes, ctx)
	return nil
}

// RecordPqVerification records a signature-verification event and its
// success/failure outcome.
func (a *Accounting) RecordPqVerification(tick int64, verifier, signer peer.ID, latencyUs int64, success bool, ctx correlation.Context, sink EventSink) error {
	const op = "record_pq_verification"
	if err := a.checkPeer(op, verifier); err != nil {
		return err
	}
	if err := a.checkPeer(op, signer); err != nil {
		return err
	}
	if err := checkLatency(op, latencyUs); err != nil {
		return err
	}
	sink.EmitPqVerification(tick, verifier, signer, latencyUs, success, ctx)
	return nil
}

// RecordKemEncapsulation records a KEM encapsulation event.
func (a *Accounting) RecordKemEncapsulation(tick int64, initiator, target peer.ID, latencyUs int64, ctx correlation.Context, sink EventSink) error {
	const op = "record_kem_encapsulation"
	if err := a.checkPeer(op, initiator); err != nil {
		return err
	}
	if err := a.checkPeer(op, target); err != nil {
		return err
	}
	if err := checkLatency(op, latencyUs); err != nil {
		return err
	}
	sink.EmitKemEncapsulation(tick, initiator, target, latencyUs, ctx)
	return nil
}

// RecordKemDecapsulation records a KEM decapsulation event and its
// success/failure outcome.
func (a *Accounting) RecordKemDecapsulation(tick int64, target, initiator peer.ID, latencyUs int64, success bool, ctx correlation.Context, sink EventSink) error {
	const op = "record_kem_decapsulation"
	if err := a.checkPeer(op, target); err != nil {
		return err
	}
	if err := a.checkPeer(op, initiator); err != nil {
		return err
	}
	if err := checkLatency(op, latencyUs); err != nil {
		return err
	}
	sink.EmitKemDecapsulation(tick, target, initiator, latencyUs, success, ctx)
	return nil
}

// RecordInviteCreated records the creation of an invite by initiator.
func (a *Accounting) RecordInviteCreated(tick int64, initiator peer.ID, ctx correlation.Context, sink EventSink) error {
	const op = "record_invite_created"
	if err := a.checkPeer(op, initiator); err != nil {
		return err
	}
	sink.EmitInviteCreated(tick, initiator, ctx)
	return nil
}

// RecordInviteAccepted records target's acceptance of initiator's
// invite.
func (a *Accounting) RecordInviteAccepted(tick int64, initiator, target peer.ID, ctx correlation.Context, sink EventSink) error {
	const op = "record_invite_accepted"
	if err := a.checkPeer(op, initiator); err != nil {
		return err
	}
	if err := a.checkPeer(op, target); err != nil {
		return err
	}
	sink.EmitInviteAccepted(tick, initiator, target, ctx)
	return nil
}

// RecordInviteFailed records a failed invite attempt by initiator.
func (a *Accounting) RecordInviteFailed(tick int64, initiator peer.ID, reason string, ctx correlation.Context, sink EventSink) error {
	const op = "record_invite_failed"
	if err := a.checkPeer(op, initiator); err != nil {
		return err
	}
	sink.EmitInviteFailed(tick, initiator, reason, ctx)
	return nil
}
