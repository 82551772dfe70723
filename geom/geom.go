/*package geom contains routines for computing geometric quantities of
discretized coil windings.

A winding is represented as a Polyline: a closed loop sampled into four
ordered groups of points. Every profile generator produces this same
shape, so consumers of a Polyline never need to know which profile built
it.
*/
package geom

import (
	"math"

	"github.com/magsim/helmgo/math/mat"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Add returns the sum of v and u.
func (v *Vec) Add(u *Vec) Vec {
	return Vec{v[0] + u[0], v[1] + u[1], v[2] + u[2]}
}

// Sub returns the difference of v and u.
func (v *Vec) Sub(u *Vec) Vec {
	return Vec{v[0] - u[0], v[1] - u[1], v[2] - u[2]}
}

// Scale returns v multiplied by the scalar s.
func (v *Vec) Scale(s float64) Vec {
	return Vec{v[0] * s, v[1] * s, v[2] * s}
}

// Cross returns the cross product of v and u.
func (v *Vec) Cross(u *Vec) Vec {
	return Vec{
		v[1]*u[2] - v[2]*u[1],
		v[2]*u[0] - v[0]*u[2],
		v[0]*u[1] - v[1]*u[0],
	}
}

// Dot returns the inner product of v and u.
func (v *Vec) Dot(u *Vec) float64 {
	return v[0]*u[0] + v[1]*u[1] + v[2]*u[2]
}

// Norm returns the Euclidean length of v.
func (v *Vec) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Rotate rotates a vector by the given rotation matrix.
func (v *Vec) Rotate(m *mat.Matrix) {
	v0 := m.Vals[0]*v[0] + m.Vals[1]*v[1] + m.Vals[2]*v[2]
	v1 := m.Vals[3]*v[0] + m.Vals[4]*v[1] + m.Vals[5]*v[2]
	v2 := m.Vals[6]*v[0] + m.Vals[7]*v[1] + m.Vals[8]*v[2]
	v[0], v[1], v[2] = v0, v1, v2
}

// Polyline is a closed coil loop sampled into four ordered groups of
// points. The group structure is uniform across all profile kinds.
type Polyline struct {
	Groups [4][]Vec
}

// NewPolyline creates a polyline whose four groups each hold pointsPerGroup
// zeroed points.
func NewPolyline(pointsPerGroup int) *Polyline {
	p := &Polyline{}
	for g := range p.Groups {
		p.Groups[g] = make([]Vec, pointsPerGroup)
	}
	return p
}

// Points returns the total number of sampled points in the polyline.
func (p *Polyline) Points() int {
	n := 0
	for g := range p.Groups {
		n += len(p.Groups[g])
	}
	return n
}

// Transform displaces the polyline by -pos along the local x axis and then
// rotates it into world space. Displacement happens before rotation, which
// is what gives the shared axis its physical meaning.
func (p *Polyline) Transform(rot *mat.Matrix, pos float64) {
	for g := range p.Groups {
		group := p.Groups[g]
		for i := range group {
			group[i][0] -= pos
			group[i].Rotate(rot)
		}
	}
}
