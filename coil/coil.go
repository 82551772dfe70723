/*package coil models multi-coil Helmholtz-style arrangements and
generates the discretized windings that the field integrator consumes.

An Arrangement is a stack of coaxial coils sharing one rotation matrix
and one current. Lengths, spacings and turn counts broadcast against the
coil count the way the constructor documents, and the axial position of
every coil is derived once so the stack is centered on the origin.
*/
package coil

import (
	"fmt"

	"github.com/magsim/helmgo/math/mat"
)

// rotEps is the tolerance used when checking that a configured matrix is
// a proper rotation.
const rotEps = 1e-9

// Arrangement holds the parameters of a multi-coil stack. It is read-only
// after construction except through SetGeometry, which recomputes the
// derived fields.
type Arrangement struct {
	Coils   int
	Current float64

	// Broadcast to Coils (or Coils - 1 for H) entries.
	L []float64 // side length (or diameter) per coil
	H []float64 // spacing between coil i and i+1
	N []int     // turns per coil

	Rot *mat.Matrix

	a   []float64 // half lengths
	pos []float64 // derived axial positions, centered on the origin
}

// NewArrangement validates and constructs an Arrangement. length and turns
// must have 1 or coils entries, spacing must have 1 or coils-1 entries;
// single entries broadcast to every coil. rot must be a proper rotation
// matrix.
func NewArrangement(
	coils int, length, spacing []float64, turns []int,
	current float64, rot *mat.Matrix,
) (*Arrangement, error) {
	if coils < 1 {
		return nil, fmt.Errorf("Coil count must be positive, but is %d.", coils)
	}

	L, err := broadcast(length, coils, "length")
	if err != nil {
		return nil, err
	}
	h, err := broadcast(spacing, coils-1, "spacing")
	if err != nil {
		return nil, err
	}
	N, err := broadcastInt(turns, coils, "turns")
	if err != nil {
		return nil, err
	}

	if rot == nil || rot.Width != 3 || rot.Height != 3 {
		return nil, fmt.Errorf("Rotation matrix must be 3x3.")
	}
	if !rot.IsRotation(rotEps) {
		return nil, fmt.Errorf(
			"Rotation matrix is not orthonormal with determinant +1.",
		)
	}

	ar := &Arrangement{
		Coils: coils, Current: current,
		L: L, H: h, N: N, Rot: rot,
	}
	ar.derive()
	return ar, nil
}

func broadcast(vals []float64, n int, name string) ([]float64, error) {
	if len(vals) != 1 && len(vals) != n {
		return nil, fmt.Errorf(
			"Invalid %s size. Expected 1 or %d, got %d.", name, n, len(vals),
		)
	}
	out := make([]float64, n)
	if len(vals) == 1 {
		for i := range out {
			out[i] = vals[0]
		}
	} else {
		copy(out, vals)
	}
	return out, nil
}

func broadcastInt(vals []int, n int, name string) ([]int, error) {
	if len(vals) != 1 && len(vals) != n {
		return nil, fmt.Errorf(
			"Invalid %s size. Expected 1 or %d, got %d.", name, n, len(vals),
		)
	}
	out := make([]int, n)
	if len(vals) == 1 {
		for i := range out {
			out[i] = vals[0]
		}
	} else {
		copy(out, vals)
	}
	return out, nil
}

func (ar *Arrangement) derive() {
	ar.a = make([]float64, ar.Coils)
	for i := range ar.a {
		ar.a[i] = ar.L[i] / 2
	}
	ar.pos = positions(ar.Coils, ar.H)
}

// SetGeometry rewrites the arrangement's side length and inter-coil
// spacing, broadcasting both to every coil, and recomputes the derived
// positions. It is the entry point the optimizer uses between candidate
// evaluations.
func (ar *Arrangement) SetGeometry(length, spacing float64) {
	for i := range ar.L {
		ar.L[i] = length
	}
	for i := range ar.H {
		ar.H[i] = spacing
	}
	ar.derive()
}

// Positions returns a copy of the derived axial coil positions.
func (ar *Arrangement) Positions() []float64 {
	out := make([]float64, len(ar.pos))
	copy(out, ar.pos)
	return out
}

// HalfSpan returns half the total axial extent of the arrangement, i.e.
// the sum of the spacings divided by two.
func (ar *Arrangement) HalfSpan() float64 {
	sum := 0.0
	for _, h := range ar.H {
		sum += h
	}
	return sum / 2
}

// positions derives coil positions along the shared axis so that the
// stack is centered on the origin. Coils before the midpoint accumulate
// negative offsets and coils after it positive ones; the middle spacing is
// split in two when the coil count is even and assigned to the coil after
// the middle one when it is odd.
func positions(coils int, h []float64) []float64 {
	d := make([]float64, coils)
	pos := make([]float64, coils)

	o := coils / 2
	e := 0
	if coils%2 == 0 {
		e = 1
	}
	mid := o - e

	for j := 0; j < coils-1; j++ {
		switch {
		case j < mid:
			d[j] = -h[j]
		case j == mid:
			if e == 1 {
				d[j] = -h[j] / 2
				d[j+1] = h[j] / 2
			} else {
				d[j] = 0
				d[j+1] = h[j]
			}
		default:
			d[j+1] = h[j]
		}
	}

	for j := 0; j < coils; j++ {
		if j <= mid {
			for k := j; k <= mid; k++ {
				pos[j] += d[k]
			}
		} else {
			for k := mid + 1; k <= j; k++ {
				pos[j] += d[k]
			}
		}
	}

	return pos
}

func (ar *Arrangement) String() string {
	return fmt.Sprintf(
		"Arrangement(coils=%d, L=%v, h=%v, N=%v, I=%g)",
		ar.Coils, ar.L, ar.H, ar.N, ar.Current,
	)
}
