package sim

import (
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// TimeDistribution samples one generation trial for a source, returning the
// simulated time the trial consumed and the number of attempts it took.
// Must be deterministic given its internal random stream.
type TimeDistribution func(s *Source) (elapsed float64, attempts int)

// StateGeneration produces the two-qubit state a successful trial delivers,
// including whatever storage noise and detector corrections the scenario
// models. Called once per ScheduleEvent.
type StateGeneration func(s *Source) *mat.Dense

// Source is a probabilistic entanglement source serving one link of the
// chain: it entangles an ordered pair of target stations. A source does not
// limit how many of its generation trials are outstanding at once; the
// protocol enforces the per-link memory capacity.
type Source struct {
	id       int
	Position Position

	// TargetStations are the two stations a successful trial entangles,
	// in qubit order of the generated state.
	TargetStations [2]*Station

	// TimeDistribution and StateGeneration are the source's external
	// collaborators. A source missing either cannot be scheduled.
	TimeDistribution TimeDistribution
	StateGeneration  StateGeneration

	world *World
}

// ID returns the source's world-unique identity.
func (s *Source) ID() int { return s.id }

// CanSchedule reports whether the source carries both collaborators
// ScheduleEvent needs. Protocol Setup turns a false answer into an
// InterfaceError.
func (s *Source) CanSchedule() bool {
	return s.TimeDistribution != nil && s.StateGeneration != nil
}

// ScheduleEvent runs one generation trial: samples the trial duration and
// attempt count, produces the resulting state, and enqueues a SourceEvent
// that will materialize a Pair between the target stations once the trial's
// simulated time has passed. Pure scheduling; nothing happens to the world
// until the event resolves.
func (s *Source) ScheduleEvent() error {
	elapsed, attempts := s.TimeDistribution(s)
	state := s.StateGeneration(s)

	now := s.world.Queue.CurrentTime()
	ev := &SourceEvent{
		time:     now + elapsed,
		Source:   s,
		State:    state,
		Attempts: attempts,
	}
	if err := s.world.Queue.AddEvent(ev); err != nil {
		return err
	}
	logrus.Debugf("source %d scheduled trial: %d attempts, resolves at t=%g", s.id, attempts, ev.time)
	return nil
}
