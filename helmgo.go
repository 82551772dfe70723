/*package helmgo ties the geometry, field, and search packages together
into the two top level operations the command line exposes: simulating
the field of a configured coil arrangement and optimizing an
arrangement's geometry for field uniformity.
*/
package helmgo

import (
	"context"
	"fmt"
	"log"

	"github.com/magsim/helmgo/coil"
	"github.com/magsim/helmgo/field"
	"github.com/magsim/helmgo/geom"
	"github.com/magsim/helmgo/io"
	"github.com/magsim/helmgo/math/mat"
	"github.com/magsim/helmgo/optimize"
	"github.com/magsim/helmgo/sim"
)

// Simulator holds everything needed to evaluate one configured
// arrangement over its sampling grid.
type Simulator struct {
	con *io.SimulateConfig

	ar       *coil.Arrangement
	windings []*geom.Polyline
	stack    *field.Stack
	ev       *sim.Evaluator

	log bool
}

// NewSimulator builds the arrangement, windings, and segment stack
// described by a validated simulate config.
func NewSimulator(con *io.SimulateConfig, logFlag bool) (*Simulator, error) {
	s := &Simulator{con: con, log: logFlag}

	rot := geom.EulerMatrix(con.Phi, con.Theta, con.Psi)
	ar, err := coil.NewArrangement(
		con.Coils, con.Length, con.Spacing, con.Turns, con.Current, rot,
	)
	if err != nil {
		return nil, err
	}
	s.ar = ar

	profile, err := coil.ParseProfile(con.Profile)
	if err != nil {
		return nil, err
	}
	opt := io.ProfileOptions(con.B, con.Sides, con.StarPoints)
	s.windings, err = ar.Windings(profile, con.Segments, opt)
	if err != nil {
		return nil, err
	}

	s.stack, err = field.NewStack(s.windings, ar.N, ar.Current)
	if err != nil {
		return nil, err
	}

	s.ev = &sim.Evaluator{
		Workers:      con.Workers,
		BatchSize:    con.BatchSize,
		SegmentChunk: con.SegmentChunk,
		Log:          logFlag,
	}

	if s.log {
		log.Printf(
			"Arrangement: %v. Segments per winding: %d.",
			ar, s.stack.Segments(),
		)
	}

	return s, nil
}

// Windings returns the generated winding polylines, one per coil.
func (s *Simulator) Windings() []*geom.Polyline { return s.windings }

// GridPoints returns the observation points the config asks for: either
// an axis sweep or the union of the three orthogonal planes through the
// origin. Unset ranges default to the arrangement's span.
func (s *Simulator) GridPoints() []geom.Vec {
	con := s.con

	xMin, xMax := con.XMin, con.XMax
	yMin, yMax := con.YMin, con.YMax
	zMin, zMax := con.ZMin, con.ZMax
	if !con.HasRanges() {
		ext := s.defaultExtent()
		xMin, xMax = -ext, ext
		yMin, yMax = -ext, ext
		zMin, zMax = -ext, ext
	}

	if con.AxisOnly {
		return sim.AxisPoints(xMin, xMax, con.GridStep)
	}
	return sim.PlanePoints(
		sim.GenerateRange(xMin, xMax, con.GridStep),
		sim.GenerateRange(yMin, yMax, con.GridStep),
		sim.GenerateRange(zMin, zMax, con.GridStep),
	)
}

// A single coil has no axial span, so fall back to its largest side.
func (s *Simulator) defaultExtent() float64 {
	ext := s.ar.HalfSpan()
	if ext > 0 {
		return ext
	}
	for _, l := range s.ar.L {
		if l/2 > ext {
			ext = l / 2
		}
	}
	return ext
}

// Run evaluates the field over the configured grid.
func (s *Simulator) Run(ctx context.Context) (*sim.Table, error) {
	pts := s.GridPoints()
	if s.log {
		log.Printf("Evaluating %d observation points.", len(pts))
	}
	return s.ev.Evaluate(ctx, s.stack, pts)
}

// OptimizeResult is what an optimizer run hands back: the best geometry
// found, its fitness, the per-generation progress log, and the best
// geometry's on-axis field profile.
type OptimizeResult struct {
	Best    optimize.Individual
	Fitness float64
	Stats   []io.GenerationStat
	Profile *sim.Table
}

// Optimize runs the genetic search described by a validated optimize
// config.
func Optimize(
	ctx context.Context, con *io.OptimizeConfig, logFlag bool,
) (*OptimizeResult, error) {
	profile, err := coil.ParseProfile(con.Profile)
	if err != nil {
		return nil, err
	}
	opt := io.ProfileOptions(con.B, con.Sides, con.StarPoints)

	// The concrete lengths are placeholders; the fitness evaluator
	// rewrites the geometry for every candidate.
	ar, err := coil.NewArrangement(
		con.Coils,
		[]float64{con.DesiredSize}, []float64{con.DesiredSize},
		con.Turns, con.Current, mat.Identity(),
	)
	if err != nil {
		return nil, err
	}

	ev := &sim.Evaluator{
		Workers:      con.Workers,
		BatchSize:    con.BatchSize,
		SegmentChunk: con.SegmentChunk,
	}
	eval := optimize.NewArrangementEval(
		ar, profile, con.Segments, opt, ev, con.GridStep,
	)
	oracle := optimize.NewOracle(con.DesiredSize, con.GridStep, eval)

	bounds := optimize.DefaultBounds(con.DesiredSize, con.Coils)
	initial := &optimize.Individual{
		Length:  con.InitialLength,
		Spacing: con.InitialSpacing,
	}
	if con.FixLength {
		bounds = optimize.FixedLengthBounds(con.FixedLength)
		initial.Length = con.FixedLength
	}

	res := &OptimizeResult{}
	ga := &optimize.GA{
		Bounds:        bounds,
		Initial:       initial,
		PopSize:       con.PopSize,
		Generations:   con.Generations,
		CrossoverProb: con.CrossoverProb,
		MutationProb:  con.MutationProb,
		Seed:          con.Seed,
		Log:           logFlag,
		Observe: func(gen int, best, mean float64) {
			res.Stats = append(res.Stats, io.GenerationStat{
				Generation: gen, Best: best, Mean: mean,
			})
		},
	}

	best, fit, err := ga.Run(ctx, oracle)
	if err != nil {
		return nil, err
	}
	res.Best, res.Fitness = best, fit

	res.Profile, err = eval(best.Length, best.Spacing)
	if err != nil {
		return nil, fmt.Errorf("Re-evaluating the best individual: %w", err)
	}

	return res, nil
}
