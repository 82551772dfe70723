/*package field computes magnetic fields of discretized current loops via
discrete Biot-Savart summation.

A winding polyline is first flattened into a Loop: parallel slices of
segment start points and differential elements. Differences are taken
within each of the polyline's four groups only, never across a group
boundary, so the discretization matches the generator's closure
convention. The field at a point is then a single linear scan over the
flattened segments, which is what makes chunked parallel evaluation an
associative sum.
*/
package field

import (
	"errors"
	"fmt"
	"math"

	"github.com/magsim/helmgo/geom"
)

// Mu0 is the permeability of free space in T*m/A.
const Mu0 = 4 * math.Pi * 1e-7

// ErrSingular is returned when an observation point coincides with a
// segment sample point. The integrand diverges there, so the caller must
// keep observation points off the wire.
var ErrSingular = errors.New("observation point lies on a wire segment")

// Loop is the flattened segment representation of one winding: Starts[i]
// is the start point of segment i and Diffs[i] its differential element.
type Loop struct {
	Starts []geom.Vec
	Diffs  []geom.Vec
}

// NewLoop flattens a winding polyline into segment start points and
// differential elements, one pair per consecutive point pair within each
// group.
func NewLoop(p *geom.Polyline) *Loop {
	n := 0
	for g := range p.Groups {
		if len(p.Groups[g]) > 1 {
			n += len(p.Groups[g]) - 1
		}
	}

	l := &Loop{
		Starts: make([]geom.Vec, 0, n),
		Diffs:  make([]geom.Vec, 0, n),
	}
	for g := range p.Groups {
		group := p.Groups[g]
		for i := 0; i+1 < len(group); i++ {
			l.Starts = append(l.Starts, group[i])
			l.Diffs = append(l.Diffs, group[i+1].Sub(&group[i]))
		}
	}
	return l
}

// Segments returns the number of discrete segments in the loop.
func (l *Loop) Segments() int { return len(l.Starts) }

// FieldAt sums the discrete Biot-Savart contributions of every segment in
// the loop at the observation point p, for a coil with the given turn
// count and current.
func (l *Loop) FieldAt(p *geom.Vec, turns int, current float64) (geom.Vec, error) {
	a1 := float64(turns) * Mu0 * current / (4 * math.Pi)
	return fieldAt(p, l.Starts, l.Diffs, a1)
}

func fieldAt(p *geom.Vec, starts, diffs []geom.Vec, a1 float64) (geom.Vec, error) {
	b := geom.Vec{}
	for i := range starts {
		r := p.Sub(&starts[i])
		norm := r.Norm()
		if norm == 0 {
			return geom.Vec{}, ErrSingular
		}

		db := diffs[i].Cross(&r)
		scale := a1 / (norm * norm * norm)
		b[0] += db[0] * scale
		b[1] += db[1] * scale
		b[2] += db[2] * scale
	}
	return b, nil
}

// Stack concatenates the flattened segments of every coil in an
// arrangement, premultiplying each differential element by its coil's
// N*mu0*I/(4 pi) factor. Partial sums over any chunking of a Stack's
// segments add up to the same total field, so chunks can be evaluated in
// any order and on any worker.
type Stack struct {
	starts []geom.Vec
	wdiffs []geom.Vec
}

// NewStack builds a Stack from one winding per coil. turns must hold one
// entry per winding.
func NewStack(windings []*geom.Polyline, turns []int, current float64) (*Stack, error) {
	if len(turns) != len(windings) {
		return nil, fmt.Errorf(
			"Got %d turn counts for %d windings.", len(turns), len(windings),
		)
	}

	s := &Stack{}
	for i, w := range windings {
		l := NewLoop(w)
		a1 := float64(turns[i]) * Mu0 * current / (4 * math.Pi)
		for j := range l.Starts {
			s.starts = append(s.starts, l.Starts[j])
			s.wdiffs = append(s.wdiffs, l.Diffs[j].Scale(a1))
		}
	}
	return s, nil
}

// Segments returns the total number of segments across all coils.
func (s *Stack) Segments() int { return len(s.starts) }

// FieldAt sums the contributions of the segments in [lo, hi) at the
// observation point p. Summing the results for any partition of
// [0, Segments()) gives the total field at p.
func (s *Stack) FieldAt(p *geom.Vec, lo, hi int) (geom.Vec, error) {
	return fieldAt(p, s.starts[lo:hi], s.wdiffs[lo:hi], 1)
}
