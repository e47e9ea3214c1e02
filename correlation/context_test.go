package correlation

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRoot(t *testing.T) {
	gen := NewIDGenerator(rand.New(rand.NewSource(1)))
	root := NewRoot(gen)

	assert.Equal(t, root.TraceID, root.SpanID)
	assert.Empty(t, root.ParentSpanID)
	assert.Equal(t, 0, root.HopCount)
	assert.Nil(t, root.ParentSpanIDOrNil())
}

func TestChild_InheritsTraceAndIncrementsHop(t *testing.T) {
	gen := NewIDGenerator(rand.New(rand.NewSource(1)))
	root := NewRoot(gen)
	child := root.Child(gen)

	assert.Equal(t, root.TraceID, child.TraceID)
	assert.NotEqual(t, root.SpanID, child.SpanID)
	assert.Equal(t, root.SpanID, child.ParentSpanID)
	assert.Equal(t, root.HopCount+1, child.HopCount)
	assert.Equal(t, &child.ParentSpanID, child.ParentSpanIDOrNil())

	grandchild := child.Child(gen)
	assert.Equal(t, root.TraceID, grandchild.TraceID)
	assert.Equal(t, child.SpanID, grandchild.ParentSpanID)
	assert.Equal(t, 2, grandchild.HopCount)
}

func TestWithTag_DoesNotMutateParent(t *testing.T) {
	gen := NewIDGenerator(rand.New(rand.NewSource(1)))
	root := NewRoot(gen)

	derived := root.WithTag("peer", "A")
	assert.Empty(t, root.Tags())
	assert.Equal(t, map[string]string{"peer": "A"}, derived.Tags())

	derived2 := derived.WithTag("peer", "B")
	assert.Equal(t, map[string]string{"peer": "A"}, derived.Tags(), "earlier derived context must be unaffected")
	assert.Equal(t, map[string]string{"peer": "B"}, derived2.Tags())
}

func TestIDGenerator_Deterministic(t *testing.T) {
	genA := NewIDGenerator(rand.New(rand.NewSource(99)))
	genB := NewIDGenerator(rand.New(rand.NewSource(99)))

	rootA := NewRoot(genA)
	rootB := NewRoot(genB)
	assert.Equal(t, rootA.TraceID, rootB.TraceID)

	childA := rootA.Child(genA)
	childB := rootB.Child(genB)
	assert.Equal(t, childA.SpanID, childB.SpanID)
}
