// Package stats implements the rolling counters and latency sums
// derived from the event log.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats is incrementally updated inside the engine/routing methods
// that emit events — it is never recomputed by re-scanning the event
// log, so the cost of recording an event is O(1).
type Stats struct {
	MessagesSent      int64
	MessagesDelivered int64
	MessagesDropped   int64
	DirectDeliveries  int64
	RelayedDeliveries int64
	TotalHops         int64
	SummedLatencyTicks int64

	PqSignaturesCreated   int64
	PqSignaturesVerified  int64
	PqSignatureFailures   int64
	PqKemEncapsulations   int64
	PqKemDecapsulations   int64
	PqKemFailures         int64

	InvitesCreated  int64
	InvitesAccepted int64
	InvitesFailed   int64

	SummedSignLatencyUs   int64
	SignLatencyCount      int64
	SummedVerifyLatencyUs int64
	VerifyLatencyCount    int64
	SummedEncapLatencyUs  int64
	EncapLatencyCount     int64
	SummedDecapLatencyUs  int64
	DecapLatencyCount     int64

	// deliveredLatencies retains the per-delivery latency samples so
	// percentile queries can be served without re-scanning the event
	// log.
	deliveredLatencies []float64
}

// New creates a zeroed Stats.
func New() *Stats {
	return &Stats{}
}

// RecordSend increments the sent counter.
func (s *Stats) RecordSend() {
	s.MessagesSent++
}

// RecordDelivered updates delivery counters and latency/hop sums for
// a packet delivered after hopCount hops, with the given end-to-end
// latency in ticks.
func (s *Stats) RecordDelivered(hopCount int, latencyTicks int64) {
	s.MessagesDelivered++
	if hopCount == 0 {
		s.DirectDeliveries++
	} else {
		s.RelayedDeliveries++
	}
	s.TotalHops += int64(hopCount)
	s.SummedLatencyTicks += latencyTicks
	s.deliveredLatencies = append(s.deliveredLatencies, float64(latencyTicks))
}

// RecordDropped increments the dropped counter.
func (s *Stats) RecordDropped() {
	s.MessagesDropped++
}

// RecordPqSignature records a signature-creation event's latency.
func (s *Stats) RecordPqSignature(latencyUs int64) {
	s.PqSignaturesCreated++
	s.SummedSignLatencyUs += latencyUs
	s.SignLatencyCount++
}

// RecordPqVerification records a verification event's latency and
// success/failure outcome.
func (s *Stats) RecordPqVerification(latencyUs int64, success bool) {
	if success {
		s.PqSignaturesVerified++
	} else {
		s.PqSignatureFailures++
	}
	s.SummedVerifyLatencyUs += latencyUs
	s.VerifyLatencyCount++
}

// RecordKemEncapsulation records a KEM encapsulation event's latency.
func (s *Stats) RecordKemEncapsulation(latencyUs int64) {
	s.PqKemEncapsulations++
	s.SummedEncapLatencyUs += latencyUs
	s.EncapLatencyCount++
}

// RecordKemDecapsulation records a KEM decapsulation event's latency
// and success/failure outcome.
func (s *Stats) RecordKemDecapsulation(latencyUs int64, success bool) {
	s.PqKemDecapsulations++
	if !success {
		s.PqKemFailures++
	}
	s.SummedDecapLatencyUs += latencyUs
	s.DecapLatencyCount++
}

// RecordInviteCreated, RecordInviteAccepted, RecordInviteFailed
// increment the corresponding invite counters.
func (s *Stats) RecordInviteCreated()  { s.InvitesCreated++ }
func (s *Stats) RecordInviteAccepted() { s.InvitesAccepted++ }
func (s *Stats) RecordInviteFailed()   { s.InvitesFailed++ }

// DeliveryRate returns delivered/sent, or 0 if nothing has been sent.
func (s *Stats) DeliveryRate() float64 {
	if s.MessagesSent == 0 {
		return 0
	}
	return float64(s.MessagesDelivered) / float64(s.MessagesSent)
}

// AverageLatency returns the mean end-to-end delivery latency in
// ticks, computed with gonum's stat.Mean, or 0 if nothing has been
// delivered.
func (s *Stats) AverageLatency() float64 {
	if len(s.deliveredLatencies) == 0 {
		return 0
	}
	return stat.Mean(s.deliveredLatencies, nil)
}

// LatencyPercentile returns the p-th percentile (0-100) of delivered
// packet latencies, using gonum's empirical-CDF quantile estimator.
// Returns 0 if nothing has been delivered.
func (s *Stats) LatencyPercentile(p float64) float64 {
	if len(s.deliveredLatencies) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.deliveredLatencies))
	copy(sorted, s.deliveredLatencies)
	sort.Float64s(sorted)
	return stat.Quantile(p/100.0, stat.Empirical, sorted, nil)
}

// AverageHops returns total_hops/delivered, or 0 if nothing has been
// delivered.
func (s *Stats) AverageHops() float64 {
	if s.MessagesDelivered == 0 {
		return 0
	}
	return float64(s.TotalHops) / float64(s.MessagesDelivered)
}

// SignatureFailureRate returns the fraction of verification attempts
// that failed.
func (s *Stats) SignatureFailureRate() float64 {
	total := s.PqSignaturesVerified + s.PqSignatureFailures
	if total == 0 {
		return 0
	}
	return float64(s.PqSignatureFailures) / float64(total)
}

// KemFailureRate returns the fraction of decapsulation attempts that
// failed.
func (s *Stats) KemFailureRate() float64 {
	if s.PqKemDecapsulations == 0 {
		return 0
	}
	return float64(s.PqKemFailures) / float64(s.PqKemDecapsulations)
}

// AverageSignLatencyUs, AverageVerifyLatencyUs, AverageEncapLatencyUs,
// AverageDecapLatencyUs return per-operation mean latencies in
// microseconds, or 0 if the operation has never been recorded.
func (s *Stats) AverageSignLatencyUs() float64 {
	return ratio(s.SummedSignLatencyUs, s.SignLatencyCount)
}

func (s *Stats) AverageVerifyLatencyUs() float64 {
	return ratio(s.SummedVerifyLatencyUs, s.VerifyLatencyCount)
}

func (s *Stats) AverageEncapLatencyUs() float64 {
	return ratio(s.SummedEncapLatencyUs, s.EncapLatencyCount)
}

func (s *Stats) AverageDecapLatencyUs() float64 {
	return ratio(s.SummedDecapLatencyUs, s.DecapLatencyCount)
}

func ratio(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
