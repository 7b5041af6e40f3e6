package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/repeater-sim/repeater-sim/sim/trace"
)

func TestSimulator_Run_CollectsTargetLongRangePairs(t *testing.T) {
	// GIVEN a 5-station chain with deterministic one-second trials
	w, p := buildChain(5, 2, 1)
	if err := p.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	s := NewSimulator(w, p)

	// WHEN the loop is driven until 100 long-range pairs are measured
	if err := s.Run(func() bool { return p.Metrics.Len() >= 100 }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// THEN all four logs are aligned at 100 entries and the time log is
	// non-decreasing
	assert.GreaterOrEqual(t, p.Metrics.Len(), 100)
	n := p.Metrics.Len()
	assert.Len(t, p.Metrics.StateList, n)
	assert.Len(t, p.Metrics.ResourceCostMaxList, n)
	assert.Len(t, p.Metrics.ResourceCostAddList, n)
	for i := 1; i < n; i++ {
		if p.Metrics.TimeList[i] < p.Metrics.TimeList[i-1] {
			t.Fatalf("time log decreased at %d: %g after %g", i, p.Metrics.TimeList[i], p.Metrics.TimeList[i-1])
		}
	}
}

func TestSimulator_Run_NoPairOutlivesDestructionInvariant(t *testing.T) {
	// GIVEN a short driven run
	w, p := buildChain(4, 1, 1)
	if err := p.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	s := NewSimulator(w, p)
	if err := s.Run(func() bool { return p.Metrics.Len() >= 10 }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// THEN every live pair holds exactly two live qubits owned by it, and
	// the qubit registry holds exactly the pairs' qubits
	for _, pair := range w.Pairs() {
		for _, q := range pair.Qubits {
			if q.Destroyed() || q.Pair != pair {
				t.Fatalf("pair %d holds bad qubit %d", pair.ID(), q.ID())
			}
		}
	}
	assert.Equal(t, 2*len(w.Pairs()), len(w.Qubits()))
}

func TestSimulator_Run_EmptyQueueEndsNaturally(t *testing.T) {
	// GIVEN a protocol that never schedules anything
	w := NewWorld()
	s := NewSimulator(w, idleProtocol{})

	// WHEN the loop runs with a never-true stop predicate
	err := s.Run(func() bool { return false })

	// THEN the drained queue ends the run without error
	assert.NoError(t, err)
}

func TestSimulator_Run_RecordsTrace(t *testing.T) {
	w, p := buildChain(5, 2, 1)
	if err := p.Setup(); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	s := NewSimulator(w, p)
	s.Recorder = trace.NewRecorder(0)

	if err := s.Run(func() bool { return p.Metrics.Len() >= 5 }); err != nil {
		t.Fatalf("Run: %v", err)
	}

	summary := trace.Summarize(s.Recorder)
	assert.Positive(t, summary.Total)
	assert.Positive(t, summary.Counts["*sim.SourceEvent"])
	assert.Positive(t, summary.Counts["*sim.EntanglementSwappingEvent"])
}

// idleProtocol satisfies Protocol without ever touching the world.
type idleProtocol struct{}

func (idleProtocol) Setup() error { return nil }
func (idleProtocol) Check() error { return nil }
