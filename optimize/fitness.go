/*package optimize searches coil geometry parameters for maximal field
uniformity.

The core exposes exactly one thing to the search machinery: a fitness
oracle mapping a (length, spacing) pair to a scalar, lower is better. How
candidates are produced is a pluggable Strategy; the genetic algorithm in
ga.go is the default one.
*/
package optimize

import (
	"context"
	"fmt"
	"sync"

	"github.com/magsim/helmgo/coil"
	"github.com/magsim/helmgo/field"
	"github.com/magsim/helmgo/sim"
)

// Penalty is the fitness sentinel for infeasible candidates, i.e. those
// whose in-tolerance samples do not form one contiguous run.
const Penalty = 5000

// tolFrac is the fractional half width of the uniformity band around the
// center field value.
const tolFrac = 0.001

// EvaluateFunc produces the on-axis field table for a candidate
// (length, spacing) pair.
type EvaluateFunc func(length, spacing float64) (*sim.Table, error)

// Oracle scores (length, spacing) candidates by the width of the
// contiguous region around the center whose Bx stays within a +-0.1%
// band. Scores are memoized per exact parameter pair for the lifetime of
// the oracle, which is sound because the score is a pure function of the
// pair.
type Oracle struct {
	// DesiredSize is the target uniform-region size; the returned score
	// is DesiredSize/2 minus the achieved span.
	DesiredSize float64
	// GridStep is the axis sampling step; two in-band samples further
	// than twice this apart break contiguity.
	GridStep float64
	// Eval produces the field profile for a candidate.
	Eval EvaluateFunc

	mu    sync.Mutex
	cache map[[2]float64]float64
}

// NewOracle constructs an oracle around the given profile evaluator.
func NewOracle(desiredSize, gridStep float64, eval EvaluateFunc) *Oracle {
	return &Oracle{
		DesiredSize: desiredSize,
		GridStep:    gridStep,
		Eval:        eval,
		cache:       map[[2]float64]float64{},
	}
}

// Fitness scores one candidate, evaluating its field profile on a cache
// miss.
func (o *Oracle) Fitness(length, spacing float64) (float64, error) {
	key := [2]float64{length, spacing}

	o.mu.Lock()
	if v, ok := o.cache[key]; ok {
		o.mu.Unlock()
		return v, nil
	}
	o.mu.Unlock()

	table, err := o.Eval(length, spacing)
	if err != nil {
		return 0, err
	}

	v := o.score(table)

	o.mu.Lock()
	o.cache[key] = v
	o.mu.Unlock()
	return v, nil
}

func (o *Oracle) score(table *sim.Table) float64 {
	span, ok := UniformSpan(table, o.GridStep)
	if !ok {
		return Penalty
	}
	return o.DesiredSize/2 - span
}

// UniformSpan measures the extent of the on-axis region whose Bx stays
// within the uniformity band. The reference field is Bx at the exact
// origin sample; if no sample lands there the mean Bx of the profile is
// used instead. ok is false when the in-band samples do not form one
// contiguous run of at least two points.
func UniformSpan(table *sim.Table, gridStep float64) (span float64, ok bool) {
	line := table.Axis()

	target := 0.0
	if s, found := table.Lookup(0, 0, 0); found {
		target = s.Bx
	} else {
		for i := range line {
			target += line[i].Bx
		}
		if len(line) > 0 {
			target /= float64(len(line))
		}
	}

	tol := tolFrac * target
	if target == 0 {
		tol = tolFrac
	}
	if tol < 0 {
		tol = -tol
	}
	lower, upper := target-tol, target+tol

	inBand := []sim.Sample{}
	for i := range line {
		if line[i].Bx >= lower && line[i].Bx <= upper {
			inBand = append(inBand, line[i])
		}
	}

	// A single in-band sample (or none) never counts as a uniform region.
	if len(inBand) < 2 {
		return 0, false
	}
	for i := 1; i < len(inBand); i++ {
		if inBand[i].X-inBand[i-1].X > 2*gridStep {
			return 0, false
		}
	}

	return inBand[len(inBand)-1].X - inBand[0].X, true
}

// CacheSize returns the number of memoized candidates.
func (o *Oracle) CacheSize() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.cache)
}

// NewArrangementEval returns an EvaluateFunc that rewrites the given
// arrangement's geometry for each candidate, regenerates its windings,
// and evaluates the on-axis profile from -HalfSpan to 0 with the given
// step. The arrangement is owned by the returned function and must not be
// used concurrently with it.
func NewArrangementEval(
	ar *coil.Arrangement, profile coil.Profile, numSeg int, opt *coil.Options,
	ev *sim.Evaluator, gridStep float64,
) EvaluateFunc {
	return func(length, spacing float64) (*sim.Table, error) {
		ar.SetGeometry(length, spacing)

		windings, err := ar.Windings(profile, numSeg, opt)
		if err != nil {
			return nil, err
		}
		stack, err := field.NewStack(windings, ar.N, ar.Current)
		if err != nil {
			return nil, err
		}

		pts := sim.AxisPoints(-ar.HalfSpan(), 0, gridStep)
		table, err := ev.Evaluate(context.Background(), stack, pts)
		if err != nil {
			return nil, fmt.Errorf(
				"candidate (L=%g, d=%g): %w", length, spacing, err,
			)
		}
		return table, nil
	}
}
