package quantum

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// bellBasis lists the four Bell states as row vectors, each paired with the
// real Pauli correction applied to the surviving right-hand qubit when the
// measurement yields that outcome.
var bellBasis = []struct {
	vec        []float64
	correction *mat.Dense
}{
	{[]float64{1 / math.Sqrt2, 0, 0, 1 / math.Sqrt2}, identity2},  // Phi+
	{[]float64{1 / math.Sqrt2, 0, 0, -1 / math.Sqrt2}, pauliZ},    // Phi-
	{[]float64{0, 1 / math.Sqrt2, 1 / math.Sqrt2, 0}, pauliX},     // Psi+
	{[]float64{0, 1 / math.Sqrt2, -1 / math.Sqrt2, 0}, pauliIY},   // Psi-
}

// Swap combines two adjacent entangled pairs by a Bell-state measurement on
// their co-located qubits. left holds qubits (A, B) and right holds (B', C)
// with B and B' at the shared relay; the result is the state of (A, C)
// after the measurement outcome has been corrected away, averaged over the
// four equally valid outcomes.
//
// ideality is the Bell-measurement quality lambda in [0, 1]: the output is
// mixed with the maximally mixed state at weight (1 - lambda). 1 is a
// perfect measurement.
func Swap(left, right *mat.Dense, ideality float64) *mat.Dense {
	var joint mat.Dense
	joint.Kronecker(left, right) // qubit order A, B, B', C

	out := mat.NewDense(Dim, Dim, nil)
	for _, bell := range bellBasis {
		m := bellProjector(bell.vec)

		var cond, tmp mat.Dense
		tmp.Mul(m, &joint)
		cond.Mul(&tmp, m.T())

		corrected := conjugate(lift(bell.correction, 1), &cond)
		out.Add(out, corrected)
	}

	if ideality < 1 {
		mixed := MaximallyMixed()
		out.Scale(ideality, out)
		mixed.Scale(1-ideality, mixed)
		out.Add(out, mixed)
	}
	return out
}

// bellProjector builds the 4x16 operator (I (x) <bell| (x) I) that measures
// the middle two qubits of a four-qubit system against the given Bell row
// vector, leaving the outer qubits (A, C).
func bellProjector(bell []float64) *mat.Dense {
	m := mat.NewDense(Dim, 16, nil)
	for a := 0; a < 2; a++ {
		for c := 0; c < 2; c++ {
			row := a<<1 | c
			for b1 := 0; b1 < 2; b1++ {
				for b2 := 0; b2 < 2; b2++ {
					col := a<<3 | b1<<2 | b2<<1 | c
					m.Set(row, col, bell[b1<<1|b2])
				}
			}
		}
	}
	return m
}
