package scenario

import "math"

// AverageEarthRadiusM is the mean Earth radius in metres.
const AverageEarthRadiusM = 6371e3

// EtaAtmZenith780nm is the atmospheric transmittance straight up (zenith)
// at 780 nm wavelength.
const EtaAtmZenith780nm = 0.8

// EtaAtmosphere returns the atmospheric transmittance for a beam at the
// given elevation angle (radians): the zenith transmittance to the power
// csc(elevation). Below the horizon nothing arrives.
func EtaAtmosphere(elevation float64) float64 {
	if elevation < 0 {
		return 0
	}
	return math.Pow(EtaAtmZenith780nm, 1/math.Sin(elevation))
}

// EtaDiffraction returns the fraction of a diverging beam caught by the
// receiver aperture over the given distance, by simple cone geometry.
// Gaussian beam effects are ignored; the fraction is clamped at 1.
func EtaDiffraction(distance, divergenceHalfAngle, senderApertureRadius, receiverApertureRadius float64) float64 {
	x := senderApertureRadius + distance*math.Tan(divergenceHalfAngle)
	arriving := receiverApertureRadius * receiverApertureRadius / (x * x)
	if arriving > 1 {
		return 1
	}
	return arriving
}

// SatDistCurved returns the straight-line distance from a ground station
// to a satellite at altitude h whose ground track ("shadow") is groundDist
// away along the Earth's surface.
func SatDistCurved(groundDist, h float64) float64 {
	alpha := groundDist / AverageEarthRadiusM
	re := AverageEarthRadiusM
	return math.Sqrt(re*re + (re+h)*(re+h) - 2*re*(re+h)*math.Cos(alpha))
}

// ElevationCurved returns the elevation angle (radians) under which a
// ground station sees a satellite at altitude h whose ground track is
// groundDist away along the Earth's surface.
func ElevationCurved(groundDist, h float64) float64 {
	alpha := groundDist / AverageEarthRadiusM
	re := AverageEarthRadiusM
	l := math.Sqrt(re*re + (re+h)*(re+h) - 2*re*(re+h)*math.Cos(alpha))
	beta := math.Asin(re / l * math.Sin(alpha))
	gamma := math.Pi - alpha - beta
	return gamma - math.Pi/2
}

// AlphaOfEta converts a photon arrival probability eta and a dark-count
// probability pD into the white-noise weight of the heralded state: the
// chance a registered click came from the photon rather than a dark count.
func AlphaOfEta(eta, pD float64) float64 {
	return eta * (1 - pD) / (1 - (1-eta)*(1-pD)*(1-pD))
}

// ClickProbability returns the effective per-trial heralding probability:
// a real arrival or a dark count on either detector.
func ClickProbability(eta, pD float64) float64 {
	return 1 - (1-eta)*(1-pD)*(1-pD)
}
