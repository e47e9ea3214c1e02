package eventlog

// Log is an append-only, tick-monotone sequence of event records. It
// is immutable to consumers: Records returns a defensive copy, never
// the backing slice.
type Log struct {
	records []Record
}

// New creates an empty event log.
func New() *Log {
	return &Log{records: make([]Record, 0)}
}

// Append adds a record to the end of the log.
func (l *Log) Append(r Record) {
	l.records = append(l.records, r)
}

// Len returns the number of records in the log.
func (l *Log) Len() int {
	return len(l.records)
}

// Records returns an immutable snapshot of the log's contents, in
// append order.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Filter returns the records for which pred returns true, in append
// order.
func (l *Log) Filter(pred func(Record) bool) []Record {
	out := make([]Record, 0)
	for _, r := range l.records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// CountByType returns the number of records of the given kind.
func (l *Log) CountByType(kind Type) int {
	count := 0
	for _, r := range l.records {
		if r.Kind == kind {
			count++
		}
	}
	return count
}
