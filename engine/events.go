package engine

import (
	"github.com/trumanellis/indras-sim/correlation"
	"github.com/trumanellis/indras-sim/eventlog"
	"github.com/trumanellis/indras-sim/peer"
)

// The methods below implement routing.EventSink and crypto.EventSink:
// the only place routing decisions and crypto accounting calls turn
// into event log records and stats updates. Routing and
// crypto never touch the log or stats directly.

func (s *Simulation) appendCorrelated(r eventlog.Record, ctx correlation.Context) {
	r.TraceID = ctx.TraceID
	r.SpanID = ctx.SpanID
	r.ParentSpanID = ctx.ParentSpanIDOrNil()
	if tags := ctx.Tags(); len(tags) > 0 {
		r.Tags = tags
	}
	s.log.Append(r)
}

// -- routing.EventSink --

func (s *Simulation) EmitSend(tick int64, from, to peer.ID, packetID string, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.Send, Tick: tick,
		From: from, To: to, PacketID: packetID,
	}, ctx)
	s.stats.RecordSend()
}

func (s *Simulation) EmitRelay(tick int64, from, via, to peer.ID, packetID string, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.Relay, Tick: tick,
		From: from, Via: via, To: to, PacketID: packetID,
	}, ctx)
}

func (s *Simulation) EmitDelivered(tick int64, to, via peer.ID, packetID string, latencyTicks int64, hopCount int, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.Delivered, Tick: tick,
		To: to, Via: via, PacketID: packetID,
		LatencyTicks: latencyTicks, HopCount: hopCount,
	}, ctx)
	s.stats.RecordDelivered(hopCount, latencyTicks)
}

func (s *Simulation) EmitDropped(tick int64, packetID string, reason string, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.Dropped, Tick: tick,
		PacketID: packetID, Reason: reason,
	}, ctx)
	s.stats.RecordDropped()
}

func (s *Simulation) EmitHold(tick int64, at peer.ID, packetID string, reason string, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.Hold, Tick: tick,
		At: at, PacketID: packetID, Reason: reason,
	}, ctx)
}

// -- crypto.EventSink --

func (s *Simulation) EmitPqSignature(tick int64, signer peer.ID, latencyUs int64, messageBytes int, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.PqSignature, Tick: tick,
		Signer: signer, LatencyUs: latencyUs, MessageBytes: messageBytes,
	}, ctx)
	s.stats.RecordPqSignature(latencyUs)
}

func (s *Simulation) EmitPqVerification(tick int64, verifier, signer peer.ID, latencyUs int64, success bool, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.PqVerification, Tick: tick,
		Verifier: verifier, Signer: signer, LatencyUs: latencyUs, Success: &success,
	}, ctx)
	s.stats.RecordPqVerification(latencyUs, success)
}

func (s *Simulation) EmitKemEncapsulation(tick int64, initiator, target peer.ID, latencyUs int64, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.KemEncapsulation, Tick: tick,
		Initiator: initiator, Target: target, LatencyUs: latencyUs,
	}, ctx)
	s.stats.RecordKemEncapsulation(latencyUs)
}

func (s *Simulation) EmitKemDecapsulation(tick int64, target, initiator peer.ID, latencyUs int64, success bool, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.KemDecapsulation, Tick: tick,
		Target: target, Initiator: initiator, LatencyUs: latencyUs, Success: &success,
	}, ctx)
	s.stats.RecordKemDecapsulation(latencyUs, success)
}

func (s *Simulation) EmitInviteCreated(tick int64, initiator peer.ID, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.InviteCreated, Tick: tick,
		Initiator: initiator,
	}, ctx)
	s.stats.RecordInviteCreated()
}

func (s *Simulation) EmitInviteAccepted(tick int64, initiator, target peer.ID, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.InviteAccepted, Tick: tick,
		Initiator: initiator, Target: target,
	}, ctx)
	s.stats.RecordInviteAccepted()
}

func (s *Simulation) EmitInviteFailed(tick int64, initiator peer.ID, reason string, ctx correlation.Context) {
	s.appendCorrelated(eventlog.Record{
		Kind: eventlog.InviteFailed, Tick: tick,
		Initiator: initiator, Reason: reason,
	}, ctx)
	s.stats.RecordInviteFailed()
}
