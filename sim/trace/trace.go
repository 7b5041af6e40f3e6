package trace

// Recorder collects event-resolution records during a run. With a positive
// limit it keeps only the first limit records, so long runs can be traced
// without unbounded memory growth.
type Recorder struct {
	limit   int
	records []Record
	dropped int
}

// NewRecorder creates a Recorder. limit <= 0 means unlimited.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Append stores one record, counting instead of storing once the limit is
// reached.
func (r *Recorder) Append(rec Record) {
	if r.limit > 0 && len(r.records) >= r.limit {
		r.dropped++
		return
	}
	r.records = append(r.records, rec)
}

// Records returns the stored records in resolution order.
func (r *Recorder) Records() []Record {
	return r.records
}

// Dropped returns how many records were discarded due to the limit.
func (r *Recorder) Dropped() int {
	return r.dropped
}
