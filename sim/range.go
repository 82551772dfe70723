/*package sim generates observation point grids and drives the field
integrator over them with a batched, parallel evaluator.
*/
package sim

import (
	"sort"

	"github.com/magsim/helmgo/geom"
)

// GenerateRange returns fixed-step samples covering [lo, hi], sorted and
// deduplicated. Both endpoints and zero are always included, even when the
// step does not land on them, so a sweep is guaranteed to evaluate the
// field exactly at the range limits and at the geometric center.
func GenerateRange(lo, hi, step float64) []float64 {
	vals := []float64{}
	if step > 0 {
		for i := 0; ; i++ {
			x := lo + float64(i)*step
			if x > hi {
				break
			}
			vals = append(vals, x)
		}
	}
	vals = append(vals, lo, 0, hi)

	sort.Float64s(vals)
	out := vals[:1]
	for _, x := range vals[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// PlanePoints builds the union of the XY (z=0), YZ (x=0) and XZ (y=0)
// plane sweeps over the given axis samples, with duplicate points removed
// and the result sorted by coordinate. A 1D axis sweep is the degenerate
// case where two of the sample slices hold a single value.
func PlanePoints(xs, ys, zs []float64) []geom.Vec {
	seen := make(map[geom.Vec]bool)
	pts := []geom.Vec{}

	add := func(p geom.Vec) {
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}

	for _, x := range xs {
		for _, y := range ys {
			add(geom.Vec{x, y, 0})
		}
	}
	for _, y := range ys {
		for _, z := range zs {
			add(geom.Vec{0, y, z})
		}
	}
	for _, x := range xs {
		for _, z := range zs {
			add(geom.Vec{x, 0, z})
		}
	}

	sort.Slice(pts, func(i, j int) bool {
		if pts[i][0] != pts[j][0] {
			return pts[i][0] < pts[j][0]
		}
		if pts[i][1] != pts[j][1] {
			return pts[i][1] < pts[j][1]
		}
		return pts[i][2] < pts[j][2]
	})
	return pts
}

// AxisPoints builds a 1D sweep along the x axis with y and z pinned to
// zero.
func AxisPoints(lo, hi, step float64) []geom.Vec {
	return PlanePoints(GenerateRange(lo, hi, step), []float64{0}, []float64{0})
}
