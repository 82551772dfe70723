package coil

import (
	"fmt"
	"math"
	"strings"

	"github.com/magsim/helmgo/geom"
)

// Profile selects the winding shape generated for each coil.
type Profile int

const (
	Square Profile = iota
	Circle
	Polygon
	Star
	EndProfile
)

func (p Profile) String() string {
	switch p {
	case Square:
		return "Square"
	case Circle:
		return "Circle"
	case Polygon:
		return "Polygon"
	case Star:
		return "Star"
	}
	panic("Unknown Profile.")
}

// ParseProfile converts a config string into a Profile.
func ParseProfile(s string) (Profile, error) {
	for p := Square; p < EndProfile; p++ {
		if strings.EqualFold(p.String(), s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("Unrecognized profile '%s'.", s)
}

// Options tweaks winding generation for the profiles that take extra
// parameters. The zero value selects a square winding, a pentagon, and a
// six pointed star, respectively.
type Options struct {
	// B is the vertical half-extent for rectangular windings. It
	// broadcasts against the coil count like the arrangement's length.
	// nil means b = a, i.e. a square winding.
	B []float64
	// Sides is the polygon side count. 0 means 5.
	Sides int
	// StarPoints is the number of outer star vertices. 0 means 6.
	StarPoints int
}

// Windings generates one closed polyline per coil in the arrangement.
// Every polyline has the uniform four-group structure regardless of
// profile, displaced to the coil's derived axial position and rotated by
// the arrangement's shared rotation matrix.
func (ar *Arrangement) Windings(
	p Profile, numSeg int, opt *Options,
) ([]*geom.Polyline, error) {
	if numSeg < 2 {
		return nil, fmt.Errorf(
			"Segment count per side must be at least 2, but is %d.", numSeg,
		)
	}
	if opt == nil {
		opt = &Options{}
	}

	switch p {
	case Square:
		return ar.squareWindings(numSeg, opt.B)
	case Circle:
		return ar.circleWindings(numSeg), nil
	case Polygon:
		sides := opt.Sides
		if sides == 0 {
			sides = 5
		}
		return ar.polygonWindings(numSeg, sides)
	case Star:
		points := opt.StarPoints
		if points == 0 {
			points = 6
		}
		return ar.starWindings(numSeg, points)
	}
	return nil, fmt.Errorf("Unrecognized profile %d.", p)
}

// linspace samples n points spanning [lo, hi], endpoints included.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// squareWindings builds rectangular loops in the local y-z plane, one side
// per polyline group. b is the vertical half-extent; nil means b = a.
func (ar *Arrangement) squareWindings(
	numSeg int, b []float64,
) ([]*geom.Polyline, error) {
	var bs []float64
	if b == nil {
		bs = ar.a
	} else {
		var err error
		bs, err = broadcast(b, ar.Coils, "height")
		if err != nil {
			return nil, err
		}
	}

	windings := make([]*geom.Polyline, ar.Coils)
	for i := 0; i < ar.Coils; i++ {
		a, bi := ar.a[i], bs[i]
		ys := linspace(a, -a, numSeg)
		zs := linspace(-bi, bi, numSeg)

		w := geom.NewPolyline(numSeg)
		for j := 0; j < numSeg; j++ {
			w.Groups[0][j] = geom.Vec{0, ys[j], bi}
			w.Groups[1][j] = geom.Vec{0, -a, -zs[j]}
			w.Groups[2][j] = geom.Vec{0, -ys[j], -bi}
			w.Groups[3][j] = geom.Vec{0, a, zs[j]}
		}

		w.Transform(ar.Rot, ar.pos[i])
		windings[i] = w
	}
	return windings, nil
}

// circleWindings builds circular loops from a full 2 pi sweep of
// 4*numSeg angular samples, reversed in angle so the winding direction
// matches the square profile, and split into four equal quadrants.
func (ar *Arrangement) circleWindings(numSeg int) []*geom.Polyline {
	total := 4 * numSeg

	windings := make([]*geom.Polyline, ar.Coils)
	for i := 0; i < ar.Coils; i++ {
		r := ar.L[i] / 2

		w := geom.NewPolyline(numSeg)
		for j := 0; j < total; j++ {
			theta := 2*math.Pi - 2*math.Pi*float64(j)/float64(total-1)
			pt := geom.Vec{0, r * math.Sin(theta), r * math.Cos(theta)}
			w.Groups[j/numSeg][j%numSeg] = pt
		}

		w.Transform(ar.Rot, ar.pos[i])
		windings[i] = w
	}
	return windings
}

// vertexLoop linearly subdivides the closed vertex sequence into
// segPerEdge points per edge (edge endpoints included) and returns the
// flattened point list.
func vertexLoop(ys, zs []float64, segPerEdge int) []geom.Vec {
	n := len(ys)
	pts := make([]geom.Vec, 0, n*segPerEdge)
	for j := 0; j < n; j++ {
		next := (j + 1) % n
		ye := linspace(ys[j], ys[next], segPerEdge)
		ze := linspace(zs[j], zs[next], segPerEdge)
		for k := 0; k < segPerEdge; k++ {
			pts = append(pts, geom.Vec{0, ye[k], ze[k]})
		}
	}
	return pts
}

// splitFour redistributes a flattened point list into four groups. Group
// boundaries may fall mid-edge; the leading groups absorb the remainder.
func splitFour(pts []geom.Vec) *geom.Polyline {
	p := &geom.Polyline{}
	base := len(pts) / 4
	rem := len(pts) % 4

	lo := 0
	for g := 0; g < 4; g++ {
		size := base
		if g < rem {
			size++
		}
		p.Groups[g] = make([]geom.Vec, size)
		copy(p.Groups[g], pts[lo:lo+size])
		lo += size
	}
	return p
}

// polygonWindings places sides vertices evenly on a circle of radius L/2,
// subdivides every edge, and redistributes the points into four groups.
func (ar *Arrangement) polygonWindings(
	numSeg, sides int,
) ([]*geom.Polyline, error) {
	if sides < 3 {
		return nil, fmt.Errorf(
			"Polygon side count must be at least 3, but is %d.", sides,
		)
	}
	segPerEdge := int(math.Round(float64(4*numSeg) / float64(sides)))
	if segPerEdge < 2 {
		return nil, fmt.Errorf(
			"Too few segments: %d sides leave %d points per edge.",
			sides, segPerEdge,
		)
	}

	rot := ar.Rot.Mult(geom.RotZ180())

	windings := make([]*geom.Polyline, ar.Coils)
	for i := 0; i < ar.Coils; i++ {
		r := ar.L[i] / 2
		ys := make([]float64, sides)
		zs := make([]float64, sides)
		for j := 0; j < sides; j++ {
			angle := 2 * math.Pi * float64(j) / float64(sides)
			ys[j] = r * math.Sin(angle)
			zs[j] = r * math.Cos(angle)
		}

		w := splitFour(vertexLoop(ys, zs, segPerEdge))
		w.Transform(rot, ar.pos[i])
		windings[i] = w
	}
	return windings, nil
}

// starWindings alternates outer vertices at radius L/2 with inner vertices
// at half that radius. Points that don't divide evenly into the four
// groups are dropped from the tail, an accepted discretization deviation.
func (ar *Arrangement) starWindings(
	numSeg, points int,
) ([]*geom.Polyline, error) {
	if points < 2 {
		return nil, fmt.Errorf(
			"Star point count must be at least 2, but is %d.", points,
		)
	}
	vertices := 2 * points
	segPerEdge := 4 * numSeg / vertices
	if segPerEdge < 2 {
		return nil, fmt.Errorf(
			"Too few segments: %d star vertices leave %d points per edge.",
			vertices, segPerEdge,
		)
	}

	rot := ar.Rot.Mult(geom.RotZ180())

	windings := make([]*geom.Polyline, ar.Coils)
	for i := 0; i < ar.Coils; i++ {
		r := ar.L[i] / 2
		ys := make([]float64, vertices)
		zs := make([]float64, vertices)
		for j := 0; j < vertices; j++ {
			radius := r
			if j%2 == 1 {
				radius = r / 2
			}
			angle := 2 * math.Pi * float64(j) / float64(vertices)
			ys[j] = radius * math.Sin(angle)
			zs[j] = radius * math.Cos(angle)
		}

		pts := vertexLoop(ys, zs, segPerEdge)
		pts = pts[:4*(len(pts)/4)]

		w := splitFour(pts)
		w.Transform(rot, ar.pos[i])
		windings[i] = w
	}
	return windings, nil
}
