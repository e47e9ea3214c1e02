package engine

import "github.com/trumanellis/indras-sim/peer"

// The driver-facing crypto accounting API: each call is independent of
// routing and peer online state, and derives a fresh root correlation
// context rather than attaching to any in-flight packet's trace.

func (s *Simulation) RecordPqSignature(signer peer.ID, latencyUs int64, messageBytes int) error {
	return s.crypto.RecordPqSignature(s.tick, signer, latencyUs, messageBytes, s.CryptoCtx(), s)
}

func (s *Simulation) RecordPqVerification(verifier, signer peer.ID, latencyUs int64, success bool) error {
	return s.crypto.RecordPqVerification(s.tick, verifier, signer, latencyUs, success, s.CryptoCtx(), s)
}

func (s *Simulation) RecordKemEncapsulation(initiator, target peer.ID, latencyUs int64) error {
	return s.crypto.RecordKemEncapsulation(s.tick, initiator, target, latencyUs, s.CryptoCtx(), s)
}

func (s *Simulation) RecordKemDecapsulation(target, initiator peer.ID, latencyUs int64, success bool) error {
	return s.crypto.RecordKemDecapsulation(s.tick, target, initiator, latencyUs, success, s.CryptoCtx(), s)
}

func (s *Simulation) RecordInviteCreated(initiator peer.ID) error {
	return s.crypto.RecordInviteCreated(s.tick, initiator, s.CryptoCtx(), s)
}

func (s *Simulation) RecordInviteAccepted(initiator, target peer.ID) error {
	return s.crypto.RecordInviteAccepted(s.tick, initiator, target, s.CryptoCtx(), s)
}

func (s *Simulation) RecordInviteFailed(initiator peer.ID, reason string) error {
	return s.crypto.RecordInviteFailed(s.tick, initiator, reason, s.CryptoCtx(), s)
}
