package crypto

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trumanellis/indras-sim/correlation"
	"github.com/trumanellis/indras-sim/peer"
)

type fakeSink struct {
	signatures     int
	verifications  int
	verifySuccess  []bool
	encapsulations int
	decapsulations int
	decapSuccess   []bool
	invitesCreated int
	invitesOK      int
	invitesFailed  int
}

func (f *fakeSink) EmitPqSignature(tick int64, signer peer.ID, latencyUs int64, messageBytes int, ctx correlation.Context) {
	f.signatures++
}
func (f *fakeSink) EmitPqVerification(tick int64, verifier, signer peer.ID, latencyUs int64, success bool, ctx correlation.Context) {
	f.verifications++
	f.verifySuccess = append(f.verifySuccess, success)
}
func (f *fakeSink) EmitKemEncapsulation(tick int64, initiator, target peer.ID, latencyUs int64, ctx correlation.Context) {
	f.encapsulations++
}
func (f *fakeSink) EmitKemDecapsulation(tick int64, target, initiator peer.ID, latencyUs int64, success bool, ctx correlation.Context) {
	f.decapsulations++
	f.decapSuccess = append(f.decapSuccess, success)
}
func (f *fakeSink) EmitInviteCreated(tick int64, initiator peer.ID, ctx correlation.Context) {
	f.invitesCreated++
}
func (f *fakeSink) EmitInviteAccepted(tick int64, initiator, target peer.ID, ctx correlation.Context) {
	f.invitesOK++
}
func (f *fakeSink) EmitInviteFailed(tick int64, initiator peer.ID, reason string, ctx correlation.Context) {
	f.invitesFailed++
}

func knownPeers(ids ...peer.ID) MembershipChecker {
	set := make(map[peer.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return func(p peer.ID) bool { return set[p] }
}

func testCtx() correlation.Context {
	gen := correlation.NewIDGenerator(rand.New(rand.NewSource(7)))
	return correlation.NewRoot(gen)
}

func TestAccounting_RecordPqSignature(t *testing.T) {
	a := New(knownPeers(peer.New("A")))
	sink := &fakeSink{}

	err := a.RecordPqSignature(0, peer.New("A"), 500, 128, testCtx(), sink)

	require.NoError(t, err)
	assert.Equal(t, 1, sink.signatures)
}

func TestAccounting_RecordPqSignature_UnknownPeer(t *testing.T) {
	a := New(knownPeers(peer.New("A")))
	sink := &fakeSink{}

	err := a.RecordPqSignature(0, peer.New("Z"), 500, 128, testCtx(), sink)

	require.Error(t, err)
	assert.Equal(t, 0, sink.signatures)
	var acctErr *AccountingError
	require.ErrorAs(t, err, &acctErr)
}

func TestAccounting_RecordPqSignature_NegativeLatency(t *testing.T) {
	a := New(knownPeers(peer.New("A")))
	sink := &fakeSink{}

	err := a.RecordPqSignature(0, peer.New("A"), -1, 128, testCtx(), sink)

	require.Error(t, err)
	assert.Equal(t, 0, sink.signatures)
}

func TestAccounting_RecordPqVerification_SuccessAndFailure(t *testing.T) {
	a := New(knownPeers(peer.New("A"), peer.New("B")))
	sink := &fakeSink{}

	require.NoError(t, a.RecordPqVerification(0, peer.New("B"), peer.New("A"), 300, true, testCtx(), sink))
	require.NoError(t, a.RecordPqVerification(1, peer.New("B"), peer.New("A"), 300, false, testCtx(), sink))

	assert.Equal(t, 2, sink.verifications)
	assert.Equal(t, []bool{true, false}, sink.verifySuccess)
}

func TestAccounting_RecordKemEncapsulationAndDecapsulation(t *testing.T) {
	a := New(knownPeers(peer.New("A"), peer.New("B")))
	sink := &fakeSink{}

	require.NoError(t, a.RecordKemEncapsulation(0, peer.New("A"), peer.New("B"), 200, testCtx(), sink))
	require.NoError(t, a.RecordKemDecapsulation(0, peer.New("B"), peer.New("A"), 210, true, testCtx(), sink))

	assert.Equal(t, 1, sink.encapsulations)
	assert.Equal(t, 1, sink.decapsulations)
	assert.Equal(t, []bool{true}, sink.decapSuccess)
}

func TestAccounting_RecordKemDecapsulation_UnknownPeerRejected(t *testing.T) {
	a := New(knownPeers(peer.New("A")))
	sink := &fakeSink{}

	err := a.RecordKemDecapsulation(0, peer.New("A"), peer.New("Z"), 210, true, testCtx(), sink)

	require.Error(t, err)
	assert.Equal(t, 0, sink.decapsulations)
}

func TestAccounting_InviteLifecycle(t *testing.T) {
	a := New(knownPeers(peer.New("A"), peer.New("B")))
	sink := &fakeSink{}

	require.NoError(t, a.RecordInviteCreated(0, peer.New("A"), testCtx(), sink))
	require.NoError(t, a.RecordInviteAccepted(1, peer.New("A"), peer.New("B"), testCtx(), sink))
	require.NoError(t, a.RecordInviteFailed(2, peer.New("A"), "expired", testCtx(), sink))

	assert.Equal(t, 1, sink.invitesCreated)
	assert.Equal(t, 1, sink.invitesOK)
	assert.Equal(t, 1, sink.invitesFailed)
}

func TestAccounting_IndependentOfOnlineState(t *testing.T) {
	// Accounting takes no online-state argument at all: its signature
	// can't even express peer online/offline, which is the point.
	a := New(knownPeers(peer.New("A")))
	sink := &fakeSink{}

	err := a.RecordPqSignature(0, peer.New("A"), 50, 16, testCtx(), sink)

	require.NoError(t, err)
}
