package sim

import "math"

// SpeedOfLight is the vacuum speed of light in m/s, used for propagation
// and classical-communication delays.
const SpeedOfLight = 299792458.0

// Position is a point in the simulation's 2D cross-section plane, in
// metres. Stations and sources sit at fixed positions for the whole run.
type Position struct {
	X float64
	Y float64
}

// DistanceTo returns the straight-line distance to other in metres.
func (p Position) DistanceTo(other Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}
