package sim

import (
	"math"
	"sort"

	"github.com/magsim/helmgo/geom"
)

// Sample is the field evaluated at one observation point.
type Sample struct {
	X, Y, Z    float64
	Bx, By, Bz float64
}

// B returns the field magnitude of the sample.
func (s *Sample) B() float64 {
	return math.Sqrt(s.Bx*s.Bx + s.By*s.By + s.Bz*s.Bz)
}

// Table collects field samples, one row per observation point.
type Table struct {
	Samples []Sample
}

// Len returns the number of rows in the table.
func (t *Table) Len() int { return len(t.Samples) }

// Lookup returns the sample at the given point, if any.
func (t *Table) Lookup(x, y, z float64) (Sample, bool) {
	for i := range t.Samples {
		s := &t.Samples[i]
		if s.X == x && s.Y == y && s.Z == z {
			return *s, true
		}
	}
	return Sample{}, false
}

// Axis returns the samples on the x axis (y = z = 0) sorted by x
// coordinate.
func (t *Table) Axis() []Sample {
	line := []Sample{}
	for i := range t.Samples {
		s := &t.Samples[i]
		if s.Y == 0 && s.Z == 0 {
			line = append(line, *s)
		}
	}
	sort.Slice(line, func(i, j int) bool { return line[i].X < line[j].X })
	return line
}

// SortByPoint orders the table's rows by coordinate, which makes tables
// produced under different batchings directly comparable.
func (t *Table) SortByPoint() {
	sort.Slice(t.Samples, func(i, j int) bool {
		si, sj := &t.Samples[i], &t.Samples[j]
		if si.X != sj.X {
			return si.X < sj.X
		}
		if si.Y != sj.Y {
			return si.Y < sj.Y
		}
		return si.Z < sj.Z
	})
}

// Points returns the observation points of every row, in row order.
func (t *Table) Points() []geom.Vec {
	pts := make([]geom.Vec, len(t.Samples))
	for i := range t.Samples {
		s := &t.Samples[i]
		pts[i] = geom.Vec{s.X, s.Y, s.Z}
	}
	return pts
}
