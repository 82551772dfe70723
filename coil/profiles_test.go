package coil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magsim/helmgo/geom"
	"github.com/magsim/helmgo/math/mat"
)

func testArrangement(t *testing.T, coils int) *Arrangement {
	ar, err := NewArrangement(
		coils, []float64{1}, []float64{0.5}, []int{30}, 1, mat.Identity(),
	)
	if err != nil {
		t.Fatalf("NewArrangement returned error: %v", err)
	}
	return ar
}

// maxStep returns the largest distance between consecutive points within
// the polyline's groups.
func maxStep(p *geom.Polyline) float64 {
	max := 0.0
	for g := range p.Groups {
		group := p.Groups[g]
		for i := 1; i < len(group); i++ {
			d := group[i].Sub(&group[i-1])
			if n := d.Norm(); n > max {
				max = n
			}
		}
	}
	return max
}

// checkClosure verifies that each group's last point and the next group's
// first point are no further apart than twice the local sampling step.
func checkClosure(t *testing.T, name string, p *geom.Polyline) {
	step := maxStep(p)
	for g := range p.Groups {
		group := p.Groups[g]
		next := p.Groups[(g+1)%4]
		gap := next[0].Sub(&group[len(group)-1])
		if gap.Norm() > 2*step {
			t.Errorf("%s: gap of %g between groups %d and %d, step is %g.",
				name, gap.Norm(), g, (g+1)%4, step)
		}
	}
}

func TestWindingsGroupStructure(t *testing.T) {
	ar := testArrangement(t, 2)

	profiles := []Profile{Square, Circle, Polygon, Star}
	for _, p := range profiles {
		windings, err := ar.Windings(p, 24, nil)
		if err != nil {
			t.Fatalf("%v: Windings returned error: %v", p, err)
		}
		assert.Len(t, windings, 2, p.String())

		for _, w := range windings {
			for g := range w.Groups {
				assert.NotEmpty(t, w.Groups[g], p.String())
			}
			checkClosure(t, p.String(), w)
		}
	}
}

func TestSquareCorners(t *testing.T) {
	ar := testArrangement(t, 2)
	windings, err := ar.Windings(Square, 10, nil)
	if err != nil {
		t.Fatalf("Windings returned error: %v", err)
	}

	// Coil 0 sits at derived position -0.25; the generator displaces by
	// -pos, so its points live on the x = +0.25 plane.
	w := windings[0]
	a := 0.5
	for g := range w.Groups {
		for _, pt := range w.Groups[g] {
			assert.InDelta(t, 0.25, pt[0], 1e-12)
			assert.LessOrEqual(t, math.Abs(pt[1]), a+1e-12)
			assert.LessOrEqual(t, math.Abs(pt[2]), a+1e-12)
		}
	}

	// First side starts at the (+a, +a) corner of the y-z plane.
	first := w.Groups[0][0]
	assert.InDelta(t, a, first[1], 1e-12)
	assert.InDelta(t, a, first[2], 1e-12)
}

func TestCircleRadius(t *testing.T) {
	ar := testArrangement(t, 2)
	windings, err := ar.Windings(Circle, 32, nil)
	if err != nil {
		t.Fatalf("Windings returned error: %v", err)
	}

	r := 0.5
	for _, w := range windings {
		if w.Points() != 4*32 {
			t.Errorf("Circle winding has %d points, expected %d.",
				w.Points(), 4*32)
		}
		for g := range w.Groups {
			for _, pt := range w.Groups[g] {
				rad := math.Sqrt(pt[1]*pt[1] + pt[2]*pt[2])
				assert.InDelta(t, r, rad, 1e-12)
			}
		}
	}
}

func TestCircleWindingReversed(t *testing.T) {
	ar := testArrangement(t, 2)
	windings, _ := ar.Windings(Circle, 32, nil)

	// The angle sweep is reversed, so the first two samples must move in
	// the -y direction from the top of the circle.
	g0 := windings[0].Groups[0]
	if !(g0[1][1] < g0[0][1]) {
		t.Errorf("Circle winding not reversed: y went %g -> %g.",
			g0[0][1], g0[1][1])
	}
}

func TestPolygonVertexRadius(t *testing.T) {
	ar := testArrangement(t, 2)
	windings, err := ar.Windings(Polygon, 25, &Options{Sides: 5})
	if err != nil {
		t.Fatalf("Windings returned error: %v", err)
	}

	// All points lie within the circumscribed circle, and the point count
	// follows round(4*numSeg/sides) points per edge.
	r := 0.5
	w := windings[0]
	segPerEdge := int(math.Round(4.0 * 25.0 / 5.0))
	assert.Equal(t, 5*segPerEdge, w.Points())
	for g := range w.Groups {
		for _, pt := range w.Groups[g] {
			rad := math.Sqrt(pt[1]*pt[1] + pt[2]*pt[2])
			assert.LessOrEqual(t, rad, r+1e-12)
		}
	}
}

func TestStarPointCount(t *testing.T) {
	ar := testArrangement(t, 2)
	windings, err := ar.Windings(Star, 24, &Options{StarPoints: 6})
	if err != nil {
		t.Fatalf("Windings returned error: %v", err)
	}

	// 12 vertices, 4*24/12 = 8 points per edge, 96 points, divisible by 4.
	w := windings[0]
	assert.Equal(t, 96, w.Points())
	for g := range w.Groups {
		assert.Len(t, w.Groups[g], 24)
	}
}

func TestRectangularWindings(t *testing.T) {
	ar := testArrangement(t, 2)
	windings, err := ar.Windings(Square, 10, &Options{B: []float64{0.25}})
	if err != nil {
		t.Fatalf("Windings returned error: %v", err)
	}

	for _, w := range windings {
		for g := range w.Groups {
			for _, pt := range w.Groups[g] {
				assert.LessOrEqual(t, math.Abs(pt[1]), 0.5+1e-12)
				assert.LessOrEqual(t, math.Abs(pt[2]), 0.25+1e-12)
			}
		}
	}
}

func TestWindingsErrors(t *testing.T) {
	ar := testArrangement(t, 2)

	if _, err := ar.Windings(Square, 1, nil); err == nil {
		t.Errorf("numSeg = 1 did not return an error.")
	}
	if _, err := ar.Windings(Polygon, 24, &Options{Sides: 2}); err == nil {
		t.Errorf("2-sided polygon did not return an error.")
	}
	if _, err := ar.Windings(Star, 2, &Options{StarPoints: 6}); err == nil {
		t.Errorf("Star with too few segments did not return an error.")
	}
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("circle")
	if err != nil || p != Circle {
		t.Errorf("ParseProfile(circle) = %v, %v.", p, err)
	}
	if _, err := ParseProfile("hexagram"); err == nil {
		t.Errorf("Unknown profile name did not return an error.")
	}
}
