package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Protocol is the decision-making controller of a simulation: Setup
// validates the world against the topology the protocol understands, and
// Check inspects world and queue to issue new scheduling commands. A
// protocol never advances time itself. New topologies implement the same
// two-operation contract.
type Protocol interface {
	Setup() error
	Check() error
}

// ChainProtocol drives entanglement distribution over a linear repeater
// chain: ground terminal, one or more relays, ground terminal, with one
// source per adjacent station pair. Each Check pass replenishes link
// generation up to the per-link memory capacity, schedules entanglement
// swaps where pairs meet at a relay, and harvests pairs spanning the two
// endpoints into the measurement logs.
//
// The protocol is stateless between calls except for the logs, which only
// grow.
type ChainProtocol struct {
	world       *World
	numMemories int
	stations    []*Station
	sources     []*Source

	// BSMIdeality is the Bell-measurement quality handed to swap events.
	BSMIdeality float64

	// Metrics holds the four measurement logs, one entry per harvested
	// long-range pair.
	Metrics *Metrics

	linkStations    [][2]*Station
	stationIndex    map[*Station]int
	longRangeDelay  float64
	ready           bool
}

// NewChainProtocol creates a chain protocol over the given world. stations
// must list the chain in order; sources must hold one source per adjacent
// station pair, in the same order. numMemories is the per-link capacity of
// in-flight generation attempts plus stored pairs.
func NewChainProtocol(w *World, numMemories int, stations []*Station, sources []*Source) *ChainProtocol {
	return &ChainProtocol{
		world:       w,
		numMemories: numMemories,
		stations:    stations,
		sources:     sources,
		BSMIdeality: 1,
		Metrics:     NewMetrics(),
	}
}

// Setup validates the chain topology, labels stations by role, and builds
// the adjacency bookkeeping Check relies on. Must run exactly once before
// any Check.
func (p *ChainProtocol) Setup() error {
	if p.numMemories < 1 {
		return &TopologyError{Reason: fmt.Sprintf("num_memories must be positive, got %d", p.numMemories)}
	}
	if len(p.stations) < 3 {
		return &TopologyError{Reason: fmt.Sprintf("chain needs at least 3 stations, got %d", len(p.stations))}
	}
	if len(p.sources) != len(p.stations)-1 {
		return &TopologyError{Reason: fmt.Sprintf("chain of %d stations needs %d sources, got %d",
			len(p.stations), len(p.stations)-1, len(p.sources))}
	}

	p.linkStations = make([][2]*Station, len(p.sources))
	for i, src := range p.sources {
		if src == nil || !src.CanSchedule() {
			return &InterfaceError{SourceID: i, Missing: "schedule_event"}
		}
		left, right := p.stations[i], p.stations[i+1]
		if !(src.TargetStations[0] == left && src.TargetStations[1] == right) &&
			!(src.TargetStations[0] == right && src.TargetStations[1] == left) {
			return &TopologyError{Reason: fmt.Sprintf("source %d does not target adjacent stations %s and %s",
				src.ID(), left, right)}
		}
		p.linkStations[i] = [2]*Station{left, right}
	}

	p.stationIndex = make(map[*Station]int, len(p.stations))
	for i, st := range p.stations {
		p.stationIndex[st] = i
		switch i {
		case 0:
			st.Label = "ground-left"
		case len(p.stations) - 1:
			st.Label = "ground-right"
		default:
			st.Label = fmt.Sprintf("relay-%d", i)
		}
	}

	// Classical communication after the final swap: bound by the farthest
	// internal relay's distance to either endpoint. Positions are fixed,
	// so compute once.
	endLeft := p.stations[0]
	endRight := p.stations[len(p.stations)-1]
	var maxDist float64
	for _, relay := range p.stations[1 : len(p.stations)-1] {
		maxDist = max(maxDist, relay.Position.DistanceTo(endLeft.Position))
		maxDist = max(maxDist, relay.Position.DistanceTo(endRight.Position))
	}
	p.longRangeDelay = maxDist / SpeedOfLight

	p.ready = true
	logrus.Infof("chain protocol ready: %d stations, %d links, %d memories per link",
		len(p.stations), len(p.sources), p.numMemories)
	return nil
}

// Check runs the decision cycle: replenish link generation, schedule swaps,
// harvest long-range pairs. The cycle repeats until a pass harvests
// nothing, because harvesting frees link capacity a fresh pass should
// refill. Bounded by the finite number of live pairs: every repeated pass
// follows the destruction of at least one pair.
func (p *ChainProtocol) Check() error {
	if !p.ready {
		return &NotInitializedError{Protocol: "ChainProtocol"}
	}
	for {
		if err := p.replenishLinks(); err != nil {
			return err
		}
		if err := p.scheduleSwaps(); err != nil {
			return err
		}
		harvested, err := p.evaluateLongRangePairs()
		if err != nil {
			return err
		}
		if harvested == 0 {
			return nil
		}
	}
}

// replenishLinks tops every link up to the memory capacity, counting both
// live pairs on the link and generation trials still in flight. This is
// the backpressure keeping per-link memory use bounded.
func (p *ChainProtocol) replenishLinks() error {
	for i, src := range p.sources {
		used := len(p.world.PairsBetween(p.linkStations[i][0], p.linkStations[i][1]))
		used += p.scheduledTrials(src)
		for ; used < p.numMemories; used++ {
			if err := src.ScheduleEvent(); err != nil {
				return fmt.Errorf("replenishing link %d: %w", i, err)
			}
		}
	}
	return nil
}

// scheduledTrials counts the pending SourceEvents belonging to src.
func (p *ChainProtocol) scheduledTrials(src *Source) int {
	n := 0
	p.world.Queue.Each(func(ev Event) bool {
		if se, ok := ev.(*SourceEvent); ok && se.Source == src {
			n++
		}
		return true
	})
	return n
}

// claimedPairs collects every pair referenced by a pending swap event.
// Skipping claimed pairs keeps repeated Check calls from double-scheduling
// a swap and keeps one pair out of two swaps scheduled in the same pass.
func (p *ChainProtocol) claimedPairs() map[*Pair]bool {
	claimed := make(map[*Pair]bool)
	p.world.Queue.Each(func(ev Event) bool {
		if swap, ok := ev.(*EntanglementSwappingEvent); ok {
			claimed[swap.PairLeft] = true
			claimed[swap.PairRight] = true
		}
		return true
	})
	return claimed
}

// scheduleSwaps visits every internal relay and matches pairs ending there
// from the left with pairs ending there from the right, earliest-created
// first, scheduling an immediate swap event for each match.
func (p *ChainProtocol) scheduleSwaps() error {
	claimed := p.claimedPairs()
	now := p.world.Queue.CurrentTime()

	for i := 1; i < len(p.stations)-1; i++ {
		relay := p.stations[i]

		var lefts, rights []*Pair
		for _, pair := range p.world.Pairs() {
			if !pair.HasStation(relay) {
				continue
			}
			other, ok := p.stationIndex[pair.OtherStation(relay)]
			if !ok {
				continue
			}
			if other < i {
				lefts = append(lefts, pair)
			} else if other > i {
				rights = append(rights, pair)
			}
		}

		li, ri := 0, 0
		for li < len(lefts) && ri < len(rights) {
			if claimed[lefts[li]] {
				li++
				continue
			}
			if claimed[rights[ri]] {
				ri++
				continue
			}
			left, right := lefts[li], rights[ri]
			ev := NewEntanglementSwappingEvent(now, left, right, p.BSMIdeality)
			if err := p.world.Queue.AddEvent(ev); err != nil {
				return fmt.Errorf("scheduling swap at %s: %w", relay, err)
			}
			logrus.Debugf("scheduled swap at %s for pairs %d and %d", relay, left.ID(), right.ID())
			claimed[left] = true
			claimed[right] = true
			li++
			ri++
		}
	}
	return nil
}

// evaluateLongRangePairs records and retires every pair spanning the chain
// endpoints, returning how many it harvested.
func (p *ChainProtocol) evaluateLongRangePairs() (int, error) {
	endLeft := p.stations[0]
	endRight := p.stations[len(p.stations)-1]
	longRange := p.world.PairsBetween(endLeft, endRight)
	for _, pair := range longRange {
		t := p.world.Queue.CurrentTime() + p.longRangeDelay
		p.Metrics.Record(t, pair.State, pair.ResourceCostMax, pair.ResourceCostAdd)
		logrus.Debugf("harvested long-range pair %d at t=%g (costs max=%d add=%d)",
			pair.ID(), t, pair.ResourceCostMax, pair.ResourceCostAdd)
		if err := pair.Destroy(); err != nil {
			return 0, err
		}
	}
	return len(longRange), nil
}
