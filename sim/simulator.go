// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/repeater-sim/repeater-sim/sim/trace"
)

// Simulator couples one world with one protocol and drives them: each
// iteration asks the protocol to decide, then advances the queue by one
// event. Execution is single-threaded cooperative; decision-making and
// event resolution strictly interleave.
type Simulator struct {
	World    *World
	Protocol Protocol

	// Recorder, when set, receives one record per resolved event.
	Recorder *trace.Recorder
}

// NewSimulator creates a simulator over the given world and protocol.
// Setup must already have run on the protocol.
func NewSimulator(w *World, p Protocol) *Simulator {
	return &Simulator{World: w, Protocol: p}
}

// Run alternates Check and ResolveNextEvent until stop returns true or the
// queue drains. A drained queue is the natural end of a simulation, not an
// error.
func (s *Simulator) Run(stop func() bool) error {
	for !stop() {
		if err := s.Protocol.Check(); err != nil {
			return fmt.Errorf("protocol check: %w", err)
		}
		ev, err := s.World.ResolveNextEvent()
		if errors.Is(err, ErrEmptyQueue) {
			logrus.Infof("[t=%g] event queue drained, simulation ended", s.World.Queue.CurrentTime())
			return nil
		}
		if err != nil {
			return fmt.Errorf("resolving %T: %w", ev, err)
		}
		if s.Recorder != nil {
			s.Recorder.Append(trace.Record{
				Time:   s.World.Queue.CurrentTime(),
				Kind:   fmt.Sprintf("%T", ev),
				Detail: fmt.Sprint(ev),
			})
		}
	}
	logrus.Infof("[t=%g] simulation stopped", s.World.Queue.CurrentTime())
	return nil
}
