package eventlog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trumanellis/indras-sim/peer"
)

func TestLog_AppendAndLen(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.Len())
	l.Append(Record{Kind: Send, Tick: 0})
	l.Append(Record{Kind: Delivered, Tick: 1})
	assert.Equal(t, 2, l.Len())
}

func TestLog_RecordsIsDefensiveCopy(t *testing.T) {
	l := New()
	l.Append(Record{Kind: Send})

	snapshot := l.Records()
	snapshot[0].Kind = Dropped

	assert.Equal(t, Send, l.Records()[0].Kind, "mutating a snapshot must not affect the log")
}

func TestLog_FilterAndCount(t *testing.T) {
	l := New()
	l.Append(Record{Kind: Send})
	l.Append(Record{Kind: Relay})
	l.Append(Record{Kind: Send})

	sends := l.Filter(func(r Record) bool { return r.Kind == Send })
	assert.Len(t, sends, 2)
	assert.Equal(t, 2, l.CountByType(Send))
	assert.Equal(t, 1, l.CountByType(Relay))
	assert.Equal(t, 0, l.CountByType(Dropped))
}

func TestLog_PreservesAppendOrder(t *testing.T) {
	l := New()
	l.Append(Record{Kind: Send, Peer: peer.New("A")})
	l.Append(Record{Kind: Relay, Peer: peer.New("B")})

	records := l.Records()
	assert.Equal(t, peer.New("A"), records[0].Peer)
	assert.Equal(t, peer.New("B"), records[1].Peer)
}
