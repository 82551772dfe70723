package coil

import (
	"math"
	"testing"

	"github.com/magsim/helmgo/math/mat"
)

func TestPositions(t *testing.T) {
	tests := []struct {
		coils int
		h     []float64
		want  []float64
	}{
		{1, []float64{}, []float64{0}},
		{2, []float64{0.5}, []float64{-0.25, 0.25}},
		{3, []float64{1, 1}, []float64{-1, 0, 1}},
		{4, []float64{1, 1, 1}, []float64{-1.5, -0.5, 0.5, 1.5}},
		{5, []float64{1, 1, 1, 1}, []float64{-2, -1, 0, 1, 2}},
	}

	for _, test := range tests {
		got := positions(test.coils, test.h)
		if len(got) != len(test.want) {
			t.Errorf("positions(%d, %v) = %v, expected %v.",
				test.coils, test.h, got, test.want)
			continue
		}
		for i := range got {
			if math.Abs(got[i]-test.want[i]) > 1e-12 {
				t.Errorf("positions(%d, %v) = %v, expected %v.",
					test.coils, test.h, got, test.want)
				break
			}
		}
	}
}

func TestPositionsCentered(t *testing.T) {
	// Uniform spacings must always center the stack on the origin.
	for coils := 2; coils <= 7; coils++ {
		h := make([]float64, coils-1)
		for i := range h {
			h[i] = 0.37
		}
		pos := positions(coils, h)
		sum := 0.0
		for _, p := range pos {
			sum += p
		}
		if math.Abs(sum) > 1e-12 {
			t.Errorf("%d coils: positions %v sum to %g, expected 0.",
				coils, pos, sum)
		}
	}
}

func TestNewArrangementBroadcast(t *testing.T) {
	ar, err := NewArrangement(
		3, []float64{2}, []float64{0.5}, []int{30}, 1.5, mat.Identity(),
	)
	if err != nil {
		t.Fatalf("NewArrangement returned error: %v", err)
	}

	if len(ar.L) != 3 || ar.L[2] != 2 {
		t.Errorf("Broadcast L = %v, expected three entries of 2.", ar.L)
	}
	if len(ar.H) != 2 || ar.H[1] != 0.5 {
		t.Errorf("Broadcast H = %v, expected two entries of 0.5.", ar.H)
	}
	if len(ar.N) != 3 || ar.N[0] != 30 {
		t.Errorf("Broadcast N = %v, expected three entries of 30.", ar.N)
	}
}

func TestNewArrangementErrors(t *testing.T) {
	id := mat.Identity()

	_, err := NewArrangement(
		3, []float64{1, 2}, []float64{0.5}, []int{30}, 1, id,
	)
	if err == nil {
		t.Errorf("Mismatched length count did not return an error.")
	}

	_, err = NewArrangement(
		3, []float64{1}, []float64{0.5, 0.5, 0.5}, []int{30}, 1, id,
	)
	if err == nil {
		t.Errorf("Mismatched spacing count did not return an error.")
	}

	_, err = NewArrangement(
		2, []float64{1}, []float64{0.5}, []int{30, 30, 30}, 1, id,
	)
	if err == nil {
		t.Errorf("Mismatched turns count did not return an error.")
	}

	reflect := mat.NewMatrix([]float64{
		-1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}, 3, 3)
	_, err = NewArrangement(
		2, []float64{1}, []float64{0.5}, []int{30}, 1, reflect,
	)
	if err == nil {
		t.Errorf("Improper rotation matrix did not return an error.")
	}
}

func TestSetGeometry(t *testing.T) {
	ar, err := NewArrangement(
		2, []float64{1}, []float64{0.5}, []int{30}, 1, mat.Identity(),
	)
	if err != nil {
		t.Fatalf("NewArrangement returned error: %v", err)
	}

	ar.SetGeometry(2, 1)

	if ar.L[0] != 2 || ar.L[1] != 2 {
		t.Errorf("SetGeometry L = %v, expected [2 2].", ar.L)
	}
	pos := ar.Positions()
	if math.Abs(pos[0]+0.5) > 1e-12 || math.Abs(pos[1]-0.5) > 1e-12 {
		t.Errorf("SetGeometry positions = %v, expected [-0.5 0.5].", pos)
	}
	if math.Abs(ar.HalfSpan()-0.5) > 1e-12 {
		t.Errorf("HalfSpan = %g, expected 0.5.", ar.HalfSpan())
	}
}
