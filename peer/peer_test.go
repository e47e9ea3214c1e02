package peer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID_Equality(t *testing.T) {
	a := New("A")
	b := New("A")
	assert.Equal(t, a, b)
	assert.False(t, a.Less(b))
	assert.True(t, a.LessOrEqual(b))
}

func TestID_Ordering_Totality(t *testing.T) {
	a, b := New("A"), New("B")
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	c := New("A")
	assert.False(t, a.Less(c))
	assert.False(t, c.Less(a))
}

func TestID_String(t *testing.T) {
	assert.Equal(t, "hello-peer", New("hello-peer").String())
}

func TestRangeTo(t *testing.T) {
	got := RangeTo('D')
	want := []ID{New("A"), New("B"), New("C"), New("D")}
	assert.Equal(t, want, got)
	assert.Len(t, got, 4)
}

func TestRangeTo_SingleLetter(t *testing.T) {
	assert.Equal(t, []ID{New("A")}, RangeTo('A'))
}

func TestSortIDs(t *testing.T) {
	in := []ID{New("C"), New("A"), New("B")}
	got := SortIDs(in)
	assert.Equal(t, []ID{New("A"), New("B"), New("C")}, got)
	// original slice untouched
	assert.Equal(t, []ID{New("C"), New("A"), New("B")}, in)
}

func TestPriority_String_RoundTrip(t *testing.T) {
	cases := map[Priority]string{
		Low:      "low",
		Normal:   "normal",
		High:     "high",
		Critical: "critical",
	}
	for p, want := range cases {
		assert.Equal(t, want, p.String())
	}
}

func TestPriority_Ordering(t *testing.T) {
	assert.True(t, Low.Less(Normal))
	assert.True(t, Normal.Less(High))
	assert.True(t, High.Less(Critical))
	assert.False(t, Critical.Less(Low))
}
