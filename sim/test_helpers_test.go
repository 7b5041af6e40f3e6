package sim

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/repeater-sim/repeater-sim/sim/quantum"
)

// fixedTimeDistribution returns a trial sampler with a constant outcome,
// for deterministic protocol tests.
func fixedTimeDistribution(elapsed float64, attempts int) TimeDistribution {
	return func(*Source) (float64, int) { return elapsed, attempts }
}

// phiPlusGeneration returns a state producer emitting perfect Bell pairs.
func phiPlusGeneration() StateGeneration {
	return func(*Source) *mat.Dense { return quantum.PhiPlus() }
}

// buildChain creates a linear chain world: numStations stations spaced 1 km
// apart, one source per adjacent pair with fixed trial time and one attempt
// per trial. Setup is not called.
func buildChain(numStations, numMemories int, trialTime float64) (*World, *ChainProtocol) {
	w := NewWorld()
	stations := make([]*Station, numStations)
	for i := range stations {
		stations[i] = w.NewStation(fmt.Sprintf("st-%d", i), Position{X: float64(i) * 1000})
	}
	sources := make([]*Source, numStations-1)
	for i := range sources {
		sources[i] = w.NewSource(stations[i].Position, stations[i], stations[i+1],
			fixedTimeDistribution(trialTime, 1), phiPlusGeneration())
	}
	return w, NewChainProtocol(w, numMemories, stations, sources)
}

// countSourceEvents returns the pending SourceEvents, optionally filtered
// by source.
func countSourceEvents(w *World, src *Source) int {
	n := 0
	w.Queue.Each(func(ev Event) bool {
		if se, ok := ev.(*SourceEvent); ok && (src == nil || se.Source == src) {
			n++
		}
		return true
	})
	return n
}

// countSwapEvents returns the pending EntanglementSwappingEvents.
func countSwapEvents(w *World) int {
	n := 0
	w.Queue.Each(func(ev Event) bool {
		if _, ok := ev.(*EntanglementSwappingEvent); ok {
			n++
		}
		return true
	})
	return n
}

// stubEvent is a minimal event whose resolution appends its name to a log
// and optionally runs a callback against the world.
type stubEvent struct {
	t         float64
	name      string
	log       *[]string
	onResolve func(w *World) error
}

func (e *stubEvent) Time() float64 { return e.t }

func (e *stubEvent) Resolve(w *World) error {
	if e.log != nil {
		*e.log = append(*e.log, e.name)
	}
	if e.onResolve != nil {
		return e.onResolve(w)
	}
	return nil
}
