package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_Unlimited(t *testing.T) {
	r := NewRecorder(0)
	for i := 0; i < 100; i++ {
		r.Append(Record{Time: float64(i), Kind: "tick"})
	}
	assert.Len(t, r.Records(), 100)
	assert.Zero(t, r.Dropped())
}

func TestRecorder_LimitDropsExcess(t *testing.T) {
	// GIVEN a recorder capped at 3 records
	r := NewRecorder(3)

	// WHEN five records arrive
	for i := 0; i < 5; i++ {
		r.Append(Record{Time: float64(i), Kind: "tick"})
	}

	// THEN the first three are kept and the rest counted as dropped
	assert.Len(t, r.Records(), 3)
	assert.Equal(t, 2, r.Dropped())
	assert.Equal(t, 0.0, r.Records()[0].Time)
	assert.Equal(t, 2.0, r.Records()[2].Time)
}

func TestSummarize(t *testing.T) {
	r := NewRecorder(0)
	r.Append(Record{Time: 0.5, Kind: "generation"})
	r.Append(Record{Time: 1.0, Kind: "swap"})
	r.Append(Record{Time: 2.5, Kind: "generation"})

	s := Summarize(r)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Counts["generation"])
	assert.Equal(t, 1, s.Counts["swap"])
	assert.Equal(t, 0.5, s.FirstTime)
	assert.Equal(t, 2.5, s.LastTime)
	assert.Zero(t, s.Dropped)
}

func TestSummary_String(t *testing.T) {
	r := NewRecorder(1)
	r.Append(Record{Time: 0.5, Kind: "generation"})
	r.Append(Record{Time: 1.0, Kind: "swap"})

	out := Summarize(r).String()

	assert.True(t, strings.HasPrefix(out, "1 events in [0.5, 0.5]"), out)
	assert.Contains(t, out, "generation")
	assert.Contains(t, out, "1 records dropped by limit")
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(NewRecorder(0))
	assert.Zero(t, s.Total)
	assert.Empty(t, s.Counts)
}
