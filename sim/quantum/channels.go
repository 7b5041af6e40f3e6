package quantum

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// pauliNoise applies rho -> (1-epsilon) rho + epsilon P_q rho P_q^T for a
// Pauli operator P acting on the given qubit.
func pauliNoise(rho *mat.Dense, qubit int, epsilon float64, pauli *mat.Dense) *mat.Dense {
	flipped := conjugate(lift(pauli, qubit), rho)
	var out mat.Dense
	out.Scale(1-epsilon, rho)
	flipped.Scale(epsilon, flipped)
	out.Add(&out, flipped)
	return &out
}

// XNoise applies a bit-flip channel of strength epsilon to one qubit.
func XNoise(rho *mat.Dense, qubit int, epsilon float64) *mat.Dense {
	return pauliNoise(rho, qubit, epsilon, pauliX)
}

// YNoise applies a bit-phase-flip channel of strength epsilon to one qubit.
func YNoise(rho *mat.Dense, qubit int, epsilon float64) *mat.Dense {
	return pauliNoise(rho, qubit, epsilon, pauliIY)
}

// ZNoise applies a dephasing channel of strength epsilon to one qubit.
func ZNoise(rho *mat.Dense, qubit int, epsilon float64) *mat.Dense {
	return pauliNoise(rho, qubit, epsilon, pauliZ)
}

// WhiteNoise replaces one qubit of rho with the maximally mixed state at
// weight (1-alpha): rho -> alpha rho + (1-alpha) I/2 (x) Tr_q(rho).
// alpha = 1 is the identity channel. Models dark counts at a detector.
func WhiteNoise(rho *mat.Dense, qubit int, alpha float64) *mat.Dense {
	reduced := PartialTrace(rho, qubit)
	halfI := mat.NewDense(2, 2, []float64{0.5, 0, 0, 0.5})

	var mixed mat.Dense
	if qubit == 0 {
		mixed.Kronecker(halfI, reduced)
	} else {
		mixed.Kronecker(reduced, halfI)
	}

	var out mat.Dense
	out.Scale(alpha, rho)
	mixed.Scale(1-alpha, &mixed)
	out.Add(&out, &mixed)
	return &out
}

// DephasingEpsilon returns the Z-noise strength accumulated by a memory
// with dephasing time constant tDephasing after storing a qubit for time t:
// (1 - exp(-t/T_dp)) / 2. Approaches 1/2 (fully dephased) as t -> inf.
func DephasingEpsilon(t, tDephasing float64) float64 {
	return (1 - math.Exp(-t/tDephasing)) / 2
}

// DephasingChannel builds the time-dependent memory-noise function for a
// station whose memory dephases with the given time constant.
func DephasingChannel(tDephasing float64) func(rho *mat.Dense, qubit int, t float64) *mat.Dense {
	return func(rho *mat.Dense, qubit int, t float64) *mat.Dense {
		return ZNoise(rho, qubit, DephasingEpsilon(t, tDephasing))
	}
}
