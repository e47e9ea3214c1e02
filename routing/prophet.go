package routing

import (
	"math"

	"github.com/trumanellis/indras-sim/peer"
)

// PRoPHET tuning constants.
const (
	prophetAlpha = 0.5  // encounter update weight
	prophetBeta  = 0.98 // per-tick decay
	prophetGamma = 0.5  // transitivity scaling
	prophetCap   = 0.95 // maximum direct probability
)

type prophetEntry struct {
	direct         float64
	lastEncounter  int64
	encounterCount int
}

// ProphetTable tracks direct encounter probabilities between peer
// pairs for PRoPHET-style routing. The transitive probability is
// deliberately not stored: it is always derived on demand from the
// (already-decayed) direct table, so decay never needs to be applied
// twice across both tables.
type ProphetTable struct {
	direct map[peer.ID]map[peer.ID]*prophetEntry
}

// NewProphetTable creates an empty table.
func NewProphetTable() *ProphetTable {
	return &ProphetTable{direct: make(map[peer.ID]map[peer.ID]*prophetEntry)}
}

func (t *ProphetTable) entry(a, b peer.ID) *prophetEntry {
	row, ok := t.direct[a]
	if !ok {
		row = make(map[peer.ID]*prophetEntry)
		t.direct[a] = row
	}
	e, ok := row[b]
	if !ok {
		e = &prophetEntry{}
		row[b] = e
	}
	return e
}

// RecordEncounter updates the direct probability symmetrically between
// a and b following a Relay or direct delivery exchange at the given
// tick.
func (t *ProphetTable) RecordEncounter(a, b peer.ID, tick int64) {
	t.bump(a, b, tick)
	t.bump(b, a, tick)
}

func (t *ProphetTable) bump(from, to peer.ID, tick int64) {
	e := t.entry(from, to)
	e.direct = e.direct + (1-e.direct)*prophetAlpha
	if e.direct > prophetCap {
		e.direct = prophetCap
	}
	e.lastEncounter = tick
	e.encounterCount++
}

// Decay applies exponential decay to every pair with a prior encounter,
// proportional to ticks elapsed since their last encounter.
func (t *ProphetTable) Decay(tick int64) {
	for _, row := range t.direct {
		for _, e := range row {
			if e.encounterCount == 0 {
				continue
			}
			elapsed := tick - e.lastEncounter
			if elapsed <= 0 {
				continue
			}
			e.direct *= math.Pow(prophetBeta, float64(elapsed))
			e.lastEncounter = tick
		}
	}
}

// Direct returns the direct encounter probability from a to b, or 0 if
// no encounter has ever been recorded.
func (t *ProphetTable) Direct(a, b peer.ID) float64 {
	row, ok := t.direct[a]
	if !ok {
		return 0
	}
	e, ok := row[b]
	if !ok {
		return 0
	}
	return e.direct
}

// Transitive returns the best transitive probability from a to c
// through any of the given intermediates: max over i of
// direct[a][i]*direct[i][c]*gamma.
func (t *ProphetTable) Transitive(a, c peer.ID, intermediates []peer.ID) float64 {
	best := 0.0
	for _, i := range intermediates {
		if i == a || i == c {
			continue
		}
		v := t.Direct(a, i) * t.Direct(i, c) * prophetGamma
		if v > best {
			best = v
		}
	}
	return best
}
