package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/repeater-sim/repeater-sim/sim/quantum"
)

// Event is a unit of deferred work on the simulation timeline. Each event
// carries its scheduled time and a resolution action that mutates the world
// when the queue reaches it; resolving may create entities and schedule
// further events.
type Event interface {
	Time() float64
	Resolve(w *World) error
}

// SourceEvent is the completion of one entanglement-generation trial. The
// outcome (state and attempt count) was sampled when the trial was
// scheduled; resolution materializes it as a Pair between the source's
// target stations.
type SourceEvent struct {
	time     float64
	Source   *Source
	State    *mat.Dense
	Attempts int
}

// Time returns the scheduled resolution time of the trial.
func (e *SourceEvent) Time() float64 { return e.time }

// Resolve creates the pair this trial generated. Both resource-cost
// counters start at the trial's attempt count.
func (e *SourceEvent) Resolve(w *World) error {
	a, b := e.Source.TargetStations[0], e.Source.TargetStations[1]
	pair := w.NewPair(a, b, e.State, e.Attempts, e.Attempts)
	logrus.Debugf("source %d delivered pair %d between %s and %s (%d attempts)",
		e.Source.ID(), pair.ID(), a, b, e.Attempts)
	return nil
}

func (e *SourceEvent) String() string {
	return fmt.Sprintf("SourceEvent{t=%g source=%d attempts=%d}", e.time, e.Source.ID(), e.Attempts)
}

// EntanglementSwappingEvent consumes two pairs that meet at a shared relay
// station and produces one pair spanning their outer stations.
type EntanglementSwappingEvent struct {
	time      float64
	PairLeft  *Pair
	PairRight *Pair

	// BSMIdeality is the Bell-measurement quality lambda; 1 is perfect.
	BSMIdeality float64
}

// NewEntanglementSwappingEvent schedules-ready swap of left and right at
// the given time. The pairs must share exactly one station.
func NewEntanglementSwappingEvent(t float64, left, right *Pair, bsmIdeality float64) *EntanglementSwappingEvent {
	return &EntanglementSwappingEvent{time: t, PairLeft: left, PairRight: right, BSMIdeality: bsmIdeality}
}

// Time returns the scheduled time of the swap.
func (e *EntanglementSwappingEvent) Time() float64 { return e.time }

// References reports whether p is one of the swap's input pairs.
func (e *EntanglementSwappingEvent) References(p *Pair) bool {
	return e.PairLeft == p || e.PairRight == p
}

// Resolve performs the swap: destroys both input pairs and creates the
// output pair between the two outer stations, with the combined state and
// resource costs (max rule and add rule respectively).
func (e *EntanglementSwappingEvent) Resolve(w *World) error {
	shared := e.sharedStation()
	if shared == nil {
		return fmt.Errorf("swap of pairs %d and %d: no shared station", e.PairLeft.ID(), e.PairRight.ID())
	}
	if e.PairLeft.Destroyed() || e.PairRight.Destroyed() {
		return &DoubleDestroyError{Kind: "pair", ID: e.destroyedInputID()}
	}

	outerLeft := e.PairLeft.OtherStation(shared)
	outerRight := e.PairRight.OtherStation(shared)

	// Orient both states so the qubit at the shared relay is the one the
	// Bell measurement consumes: (outer, shared) on the left input and
	// (shared, outer) on the right.
	leftState := e.PairLeft.State
	if e.PairLeft.Stations[1] != shared {
		leftState = quantum.SwapQubits(leftState)
	}
	rightState := e.PairRight.State
	if e.PairRight.Stations[0] != shared {
		rightState = quantum.SwapQubits(rightState)
	}
	newState := quantum.Swap(leftState, rightState, e.BSMIdeality)

	costMax := max(e.PairLeft.ResourceCostMax, e.PairRight.ResourceCostMax)
	costAdd := e.PairLeft.ResourceCostAdd + e.PairRight.ResourceCostAdd

	if err := e.PairLeft.Destroy(); err != nil {
		return err
	}
	if err := e.PairRight.Destroy(); err != nil {
		return err
	}

	pair := w.NewPair(outerLeft, outerRight, newState, costMax, costAdd)
	logrus.Debugf("swap at %s produced pair %d between %s and %s", shared, pair.ID(), outerLeft, outerRight)
	return nil
}

func (e *EntanglementSwappingEvent) sharedStation() *Station {
	for _, s := range e.PairLeft.Stations {
		if e.PairRight.HasStation(s) {
			return s
		}
	}
	return nil
}

func (e *EntanglementSwappingEvent) destroyedInputID() int {
	if e.PairLeft.Destroyed() {
		return e.PairLeft.ID()
	}
	return e.PairRight.ID()
}

func (e *EntanglementSwappingEvent) String() string {
	return fmt.Sprintf("EntanglementSwappingEvent{t=%g pairs=(%d,%d)}", e.time, e.PairLeft.ID(), e.PairRight.ID())
}
