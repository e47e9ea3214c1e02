// Package correlation provides the trace/span correlation context
// threaded through every recorded event.
package correlation

import (
	"math/rand"

	"github.com/google/uuid"
)

// IDGenerator mints deterministic, uuid-shaped trace/span identifiers
// from a caller-supplied RNG stream. Two generators built from
// identically-seeded RNGs produce identical id sequences: byte-identical
// event logs for a fixed seed. Plain crypto-random uuid.New() would
// break that, so ids are derived from the simulation's own partitioned
// RNG instead (see the rng package's SubsystemIdentity stream).
type IDGenerator struct {
	source *rand.Rand
}

// NewIDGenerator wraps an RNG stream as a deterministic id source.
func NewIDGenerator(source *rand.Rand) *IDGenerator {
	return &IDGenerator{source: source}
}

func (g *IDGenerator) next() string {
	var b [16]byte
	_, _ = g.source.Read(b[:])
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		// uuid.FromBytes only fails on wrong-length input; 16 bytes is
		// always valid, so this is unreachable.
		panic(err)
	}
	return id.String()
}

// Context carries trace/span identifiers through the API. Functions
// take a Context by value and may derive children; tags are
// copy-on-write so a derived context never mutates its parent's tag
// map.
type Context struct {
	TraceID      string
	SpanID       string
	ParentSpanID string // empty for a root context
	HopCount     int
	tags         map[string]string
}

// NewRoot creates a root correlation context: trace and span share a
// fresh id, there is no parent span, and hop count is zero.
func NewRoot(gen *IDGenerator) Context {
	id := gen.next()
	return Context{
		TraceID: id,
		SpanID:  id,
	}
}

// Child derives a new context from c: the trace id is inherited, a
// fresh span id is minted, the parent span id becomes c's span id, and
// hop count is the parent's plus one.
func (c Context) Child(gen *IDGenerator) Context {
	return Context{
		TraceID:      c.TraceID,
		SpanID:       gen.next(),
		ParentSpanID: c.SpanID,
		HopCount:     c.HopCount + 1,
		tags:         c.tags, // copy-on-write: child shares until WithTag mutates
	}
}

// WithTag returns a derived context with an added tag. The parent's
// tag map is never mutated.
func (c Context) WithTag(key, value string) Context {
	derived := make(map[string]string, len(c.tags)+1)
	for k, v := range c.tags {
		derived[k] = v
	}
	derived[key] = value
	c.tags = derived
	return c
}

// Tags returns a copy of the context's tag map.
func (c Context) Tags() map[string]string {
	out := make(map[string]string, len(c.tags))
	for k, v := range c.tags {
		out[k] = v
	}
	return out
}

// ParentSpanIDOrNil returns a pointer to ParentSpanID, or nil for a
// root context, matching the nullable `parent_span_id` serialization
// key in event records.
func (c Context) ParentSpanIDOrNil() *string {
	if c.ParentSpanID == "" {
		return nil
	}
	id := c.ParentSpanID
	return &id
}
