package optimize

import (
	"math"
	"testing"

	"github.com/magsim/helmgo/sim"
)

// axisTable builds an on-axis profile from -1 to 0 with the given step,
// assigning each sample the Bx returned by bx(x).
func axisTable(step float64, bx func(x float64) float64) *sim.Table {
	table := &sim.Table{}
	for x := -1.0; x <= 1e-12; x += step {
		table.Samples = append(table.Samples, sim.Sample{X: x, Bx: bx(x)})
	}
	// Snap the last sample onto the exact origin so Lookup(0, 0, 0) hits.
	table.Samples[len(table.Samples)-1].X = 0
	return table
}

func constEval(table *sim.Table) EvaluateFunc {
	return func(length, spacing float64) (*sim.Table, error) {
		return table, nil
	}
}

func TestFitnessBandWidth(t *testing.T) {
	// In-band samples cover [-0.4, 0], so the fitness is 1/2 - 0.4.
	table := axisTable(0.1, func(x float64) float64 {
		if x >= -0.4-1e-12 {
			return 1.0
		}
		return 1.5
	})
	o := NewOracle(1.0, 0.1, constEval(table))

	fit, err := o.Fitness(1, 1)
	if err != nil {
		t.Fatalf("Fitness returned error: %v", err)
	}
	if math.Abs(fit-(0.5-0.4)) > 1e-9 {
		t.Errorf("Fitness = %g, expected %g.", fit, 0.5-0.4)
	}
}

func TestFitnessDisjointBandPenalized(t *testing.T) {
	// Two in-band islands separated by more than two grid steps.
	table := axisTable(0.1, func(x float64) float64 {
		if x >= -0.1-1e-12 || x <= -0.8+1e-12 {
			return 1.0
		}
		return 1.5
	})
	o := NewOracle(1.0, 0.1, constEval(table))

	fit, err := o.Fitness(1, 1)
	if err != nil {
		t.Fatalf("Fitness returned error: %v", err)
	}
	if fit != Penalty {
		t.Errorf("Disjoint band fitness = %g, expected %g.",
			fit, float64(Penalty))
	}
}

func TestFitnessLoneSamplePenalized(t *testing.T) {
	table := axisTable(0.1, func(x float64) float64 {
		if x == 0 {
			return 1.0
		}
		return 1.5
	})
	// The origin sample is snapped, so re-derive in-band membership there.
	table.Samples[len(table.Samples)-1].Bx = 1.0
	o := NewOracle(1.0, 0.1, constEval(table))

	fit, err := o.Fitness(1, 1)
	if err != nil {
		t.Fatalf("Fitness returned error: %v", err)
	}
	if fit != Penalty {
		t.Errorf("Lone-sample fitness = %g, expected %g.",
			fit, float64(Penalty))
	}
}

func TestFitnessMeanFallback(t *testing.T) {
	// No sample at the exact origin, so the band centers on the mean Bx.
	table := &sim.Table{}
	for x := -0.5; x < -0.04; x += 0.1 {
		table.Samples = append(table.Samples, sim.Sample{X: x, Bx: 2.0})
	}
	o := NewOracle(1.0, 0.1, constEval(table))

	fit, err := o.Fitness(1, 1)
	if err != nil {
		t.Fatalf("Fitness returned error: %v", err)
	}
	span := table.Samples[len(table.Samples)-1].X - table.Samples[0].X
	if math.Abs(fit-(0.5-span)) > 1e-9 {
		t.Errorf("Fitness = %g, expected %g.", fit, 0.5-span)
	}
}

func TestFitnessMemoized(t *testing.T) {
	calls := 0
	table := axisTable(0.1, func(x float64) float64 { return 1.0 })
	o := NewOracle(1.0, 0.1, func(length, spacing float64) (*sim.Table, error) {
		calls++
		return table, nil
	})

	first, err := o.Fitness(1.05, 0.59)
	if err != nil {
		t.Fatalf("Fitness returned error: %v", err)
	}
	second, err := o.Fitness(1.05, 0.59)
	if err != nil {
		t.Fatalf("Fitness returned error: %v", err)
	}

	if calls != 1 {
		t.Errorf("Evaluator called %d times for one candidate.", calls)
	}
	if first != second {
		t.Errorf("Memoized fitness changed: %g then %g.", first, second)
	}
	if o.CacheSize() != 1 {
		t.Errorf("Cache holds %d entries, expected 1.", o.CacheSize())
	}

	if _, err := o.Fitness(1.05, 0.6); err != nil {
		t.Fatalf("Fitness returned error: %v", err)
	}
	if calls != 2 {
		t.Errorf("Evaluator called %d times for two candidates.", calls)
	}
}
