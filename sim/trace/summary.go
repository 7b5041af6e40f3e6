package trace

import (
	"fmt"
	"sort"
	"strings"
)

// Summary aggregates a recorded trace: per-kind counts and the time span
// covered.
type Summary struct {
	Counts    map[string]int
	FirstTime float64
	LastTime  float64
	Total     int
	Dropped   int
}

// Summarize builds a Summary from a recorder's contents.
func Summarize(r *Recorder) Summary {
	s := Summary{Counts: make(map[string]int), Dropped: r.Dropped()}
	for i, rec := range r.Records() {
		s.Counts[rec.Kind]++
		s.Total++
		if i == 0 {
			s.FirstTime = rec.Time
		}
		s.LastTime = rec.Time
	}
	return s
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d events in [%g, %g]", s.Total, s.FirstTime, s.LastTime)
	kinds := make([]string, 0, len(s.Counts))
	for kind := range s.Counts {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(&sb, "\n  %-40s %d", kind, s.Counts[kind])
	}
	if s.Dropped > 0 {
		fmt.Fprintf(&sb, "\n  (%d records dropped by limit)", s.Dropped)
	}
	return sb.String()
}
