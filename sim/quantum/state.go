// Package quantum implements the density-matrix operations the repeater
// simulation consumes: Bell-state preparation, single-qubit noise channels,
// memory dephasing, and the entanglement-swap state combination.
//
// States are two-qubit density matrices stored as 4x4 *mat.Dense. Every
// state reachable in this model is real-valued: the initial |Phi+><Phi+| is
// real and the X/Y/Z/white-noise channels and the Bell-measurement swap all
// preserve realness (the Pauli Y conjugation is carried out with the real
// matrix iY, which leaves the channel unchanged). Functions return fresh
// matrices and never mutate their inputs.
package quantum

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Dim is the dimension of a two-qubit state.
const Dim = 4

var (
	identity2 = mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})

	pauliX = mat.NewDense(2, 2, []float64{
		0, 1,
		1, 0,
	})

	// iY: real stand-in for Pauli Y. Conjugation rho -> (iY) rho (iY)^T
	// equals Y rho Y^dagger, so channels built from it are exact.
	pauliIY = mat.NewDense(2, 2, []float64{
		0, -1,
		1, 0,
	})

	pauliZ = mat.NewDense(2, 2, []float64{
		1, 0,
		0, -1,
	})

	// phiPlusVec is |Phi+> = (|00> + |11>)/sqrt(2).
	phiPlusVec = []float64{1 / math.Sqrt2, 0, 0, 1 / math.Sqrt2}
)

// PhiPlus returns the density matrix |Phi+><Phi+|, the state every source
// in the simulation nominally emits before noise is applied.
func PhiPlus() *mat.Dense {
	rho := mat.NewDense(Dim, Dim, nil)
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			rho.Set(i, j, phiPlusVec[i]*phiPlusVec[j])
		}
	}
	return rho
}

// MaximallyMixed returns I/4, the two-qubit state carrying no entanglement.
func MaximallyMixed() *mat.Dense {
	rho := mat.NewDense(Dim, Dim, nil)
	for i := 0; i < Dim; i++ {
		rho.Set(i, i, 0.25)
	}
	return rho
}

// Fidelity returns <Phi+| rho |Phi+>, the overlap of rho with the target
// Bell state. 1.0 for a perfect pair, 0.25 for the maximally mixed state.
func Fidelity(rho *mat.Dense) float64 {
	var f float64
	for i := 0; i < Dim; i++ {
		for j := 0; j < Dim; j++ {
			f += phiPlusVec[i] * rho.At(i, j) * phiPlusVec[j]
		}
	}
	return f
}

// Trace returns the trace of rho.
func Trace(rho *mat.Dense) float64 {
	var t float64
	for i := 0; i < Dim; i++ {
		t += rho.At(i, i)
	}
	return t
}

// SwapQubits exchanges the two qubits of rho, i.e. S rho S with S the
// qubit-swap permutation. Used to reorient a pair whose station order is
// reversed relative to what an operation expects.
func SwapQubits(rho *mat.Dense) *mat.Dense {
	s := mat.NewDense(Dim, Dim, []float64{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	})
	var tmp, out mat.Dense
	tmp.Mul(s, rho)
	out.Mul(&tmp, s)
	return &out
}

// PartialTrace traces out the given qubit (0 or 1) of a two-qubit state,
// returning the 2x2 reduced state of the remaining qubit.
func PartialTrace(rho *mat.Dense, qubit int) *mat.Dense {
	out := mat.NewDense(2, 2, nil)
	switch qubit {
	case 0:
		for b := 0; b < 2; b++ {
			for bp := 0; bp < 2; bp++ {
				out.Set(b, bp, rho.At(b, bp)+rho.At(2+b, 2+bp))
			}
		}
	case 1:
		for a := 0; a < 2; a++ {
			for ap := 0; ap < 2; ap++ {
				out.Set(a, ap, rho.At(2*a, 2*ap)+rho.At(2*a+1, 2*ap+1))
			}
		}
	default:
		panic("PartialTrace: qubit must be 0 or 1")
	}
	return out
}

// lift embeds a single-qubit operator at the given qubit position of a
// two-qubit system.
func lift(op *mat.Dense, qubit int) *mat.Dense {
	var out mat.Dense
	if qubit == 0 {
		out.Kronecker(op, identity2)
	} else {
		out.Kronecker(identity2, op)
	}
	return &out
}

// conjugate returns op rho op^T.
func conjugate(op, rho *mat.Dense) *mat.Dense {
	var tmp, out mat.Dense
	tmp.Mul(op, rho)
	out.Mul(&tmp, op.T())
	return &out
}
