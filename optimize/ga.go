package optimize

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
)

// Individual is one candidate geometry: coil side length and inter-coil
// spacing, both in meters.
type Individual struct {
	Length, Spacing float64
}

// Bounds clamps the search box for both genes.
type Bounds struct {
	MinLength, MaxLength   float64
	MinSpacing, MaxSpacing float64
}

// DefaultBounds derives the search box from the desired uniform-region
// size and the coil count: lengths up to four times the region, spacings
// up to one region length per coil.
func DefaultBounds(desiredSize float64, coils int) Bounds {
	return Bounds{
		MinLength:  desiredSize,
		MaxLength:  desiredSize * 4,
		MinSpacing: desiredSize,
		MaxSpacing: desiredSize * float64(coils),
	}
}

// FixedLengthBounds pins the length gene and searches spacings between
// half the length and the full length.
func FixedLengthBounds(length float64) Bounds {
	return Bounds{
		MinLength:  length,
		MaxLength:  length,
		MinSpacing: length / 2,
		MaxSpacing: length,
	}
}

func (b *Bounds) clamp(ind *Individual) {
	ind.Length = round2(math.Min(math.Max(ind.Length, b.MinLength), b.MaxLength))
	ind.Spacing = round2(math.Min(math.Max(ind.Spacing, b.MinSpacing), b.MaxSpacing))
}

// Genes are held at two decimal places. This coarsens the search space
// enough that the oracle's memoization gets real hit rates.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// GA is a steady elitist genetic algorithm over (length, spacing) pairs.
// Zero-valued knobs fall back to the documented defaults.
type GA struct {
	Bounds Bounds
	// Initial, if non-nil, seeds one individual of the first generation.
	Initial *Individual

	// PopSize defaults to 20, Generations to 50.
	PopSize     int
	Generations int
	// CrossoverProb defaults to 0.5, MutationProb to 0.2.
	CrossoverProb float64
	MutationProb  float64

	// Seed fixes the random stream; 0 means seed 1.
	Seed int64
	// Log enables a per-generation summary line through the standard
	// logger.
	Log bool
	// Observe, if non-nil, is called once per generation with the
	// generation index and its best and mean fitness.
	Observe func(gen int, best, mean float64)
}

const (
	tournamentSize = 3
	mutSigma       = 0.1
	mutIndProb     = 0.4
	blendAlpha     = 0.5
)

type scored struct {
	ind Individual
	fit float64
}

// Run evolves the population against the oracle and returns the best
// individual seen across all generations together with its fitness.
// Cancellation is checked once per generation.
func (ga *GA) Run(ctx context.Context, o *Oracle) (Individual, float64, error) {
	popSize := ga.PopSize
	if popSize <= 0 {
		popSize = 20
	}
	gens := ga.Generations
	if gens <= 0 {
		gens = 50
	}
	cxpb := ga.CrossoverProb
	if cxpb == 0 {
		cxpb = 0.5
	}
	mutpb := ga.MutationProb
	if mutpb == 0 {
		mutpb = 0.2
	}
	seed := ga.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	pop := make([]scored, popSize)
	for i := range pop {
		pop[i].ind = ga.random(rng)
	}
	if ga.Initial != nil {
		ind := *ga.Initial
		ga.Bounds.clamp(&ind)
		pop[0].ind = ind
	}
	if err := ga.evaluate(ctx, o, pop); err != nil {
		return Individual{}, 0, err
	}

	best := pop[0]
	for i := range pop {
		if pop[i].fit < best.fit {
			best = pop[i]
		}
	}

	for gen := 1; gen <= gens; gen++ {
		select {
		case <-ctx.Done():
			return Individual{}, 0, ctx.Err()
		default:
		}

		next := make([]scored, popSize)
		for i := range next {
			next[i] = ga.tournament(rng, pop)
		}
		for i := 0; i+1 < len(next); i += 2 {
			if rng.Float64() < cxpb {
				ga.crossover(rng, &next[i].ind, &next[i+1].ind)
			}
		}
		for i := range next {
			if rng.Float64() < mutpb {
				ga.mutate(rng, &next[i].ind)
			}
		}
		// Elitism: the champion always survives the generation change.
		next[0] = best

		if err := ga.evaluate(ctx, o, next); err != nil {
			return Individual{}, 0, err
		}
		pop = next

		sum := 0.0
		for i := range pop {
			sum += pop[i].fit
			if pop[i].fit < best.fit {
				best = pop[i]
			}
		}
		mean := sum / float64(len(pop))

		if ga.Log {
			log.Printf(
				"Generation %d: best %.4f (L=%.2f, d=%.2f), mean %.4f",
				gen, best.fit, best.ind.Length, best.ind.Spacing, mean,
			)
		}
		if ga.Observe != nil {
			ga.Observe(gen, best.fit, mean)
		}
	}

	return best.ind, best.fit, nil
}

func (ga *GA) random(rng *rand.Rand) Individual {
	b := &ga.Bounds
	ind := Individual{
		Length:  b.MinLength + rng.Float64()*(b.MaxLength-b.MinLength),
		Spacing: b.MinSpacing + rng.Float64()*(b.MaxSpacing-b.MinSpacing),
	}
	b.clamp(&ind)
	return ind
}

func (ga *GA) evaluate(ctx context.Context, o *Oracle, pop []scored) error {
	for i := range pop {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		fit, err := o.Fitness(pop[i].ind.Length, pop[i].ind.Spacing)
		if err != nil {
			return fmt.Errorf(
				"individual (L=%g, d=%g): %w",
				pop[i].ind.Length, pop[i].ind.Spacing, err,
			)
		}
		pop[i].fit = fit
	}
	return nil
}

func (ga *GA) tournament(rng *rand.Rand, pop []scored) scored {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < tournamentSize; i++ {
		c := pop[rng.Intn(len(pop))]
		if c.fit < best.fit {
			best = c
		}
	}
	return best
}

// crossover blends both genes with an alpha that can jump outside the
// parents' interval, which keeps the population from collapsing onto a
// line early.
func (ga *GA) crossover(rng *rand.Rand, a, b *Individual) {
	blend := func(x, y float64) (float64, float64) {
		alpha := -blendAlpha + rng.Float64()*(1+2*blendAlpha)
		return x + alpha*(y-x), y + alpha*(x-y)
	}
	a.Length, b.Length = blend(a.Length, b.Length)
	a.Spacing, b.Spacing = blend(a.Spacing, b.Spacing)
	ga.Bounds.clamp(a)
	ga.Bounds.clamp(b)
}

func (ga *GA) mutate(rng *rand.Rand, ind *Individual) {
	if rng.Float64() < mutIndProb {
		ind.Length += rng.NormFloat64() * mutSigma
	}
	if rng.Float64() < mutIndProb {
		ind.Spacing += rng.NormFloat64() * mutSigma
	}
	ga.Bounds.clamp(ind)
}
