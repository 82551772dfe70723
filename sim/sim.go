package sim

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/magsim/helmgo/field"
	"github.com/magsim/helmgo/geom"
)

const (
	// DefaultBatchSize is the number of observation points evaluated per
	// batch when the caller doesn't choose one.
	DefaultBatchSize = 120
)

// Evaluator drives a segment stack over a set of observation points.
// Points are processed in batches; within a batch, every (point, segment
// chunk) pair is an independent unit of work handed to a stateless worker
// pool. Partial fields are reduced per point in chunk order, so the same
// settings produce bitwise identical tables no matter how many workers
// run.
type Evaluator struct {
	// Workers is the worker pool size. 0 means runtime.NumCPU().
	Workers int
	// BatchSize is the number of points per batch. 0 means
	// DefaultBatchSize.
	BatchSize int
	// SegmentChunk is the number of segments per unit of work. 0 means
	// all segments in a single chunk.
	SegmentChunk int
	// Progress, if non-nil, is called after every batch with the number
	// of evaluated points and the total. It must not affect results.
	Progress func(done, total int)
	// Log enables progress lines through the standard logger.
	Log bool
}

type unit struct {
	p, c int
}

// Evaluate computes the field at every given point and returns one table
// row per point, in input order. Cancellation is checked between batches
// and between units of work; a cancelled evaluation returns ctx's error.
func (e *Evaluator) Evaluate(
	ctx context.Context, stack *field.Stack, pts []geom.Vec,
) (*Table, error) {
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	batch := e.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	segs := stack.Segments()
	chunk := e.SegmentChunk
	if chunk <= 0 || chunk > segs {
		chunk = segs
	}
	nChunks := (segs + chunk - 1) / chunk

	table := &Table{Samples: make([]Sample, 0, len(pts))}

	for lo := 0; lo < len(pts); lo += batch {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		hi := lo + batch
		if hi > len(pts) {
			hi = len(pts)
		}
		bpts := pts[lo:hi]

		partials := make([]geom.Vec, len(bpts)*nChunks)
		units := make(chan unit, workers)

		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				for u := range units {
					segLo := u.c * chunk
					segHi := segLo + chunk
					if segHi > segs {
						segHi = segs
					}

					b, err := stack.FieldAt(&bpts[u.p], segLo, segHi)
					if err != nil {
						return fmt.Errorf(
							"point (%g, %g, %g): %w",
							bpts[u.p][0], bpts[u.p][1], bpts[u.p][2], err,
						)
					}
					partials[u.p*nChunks+u.c] = b
				}
				return nil
			})
		}

	feed:
		for p := range bpts {
			for c := 0; c < nChunks; c++ {
				select {
				case units <- unit{p, c}:
				case <-gctx.Done():
					break feed
				}
			}
		}
		close(units)

		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Reduce partials in chunk order. The sum is associative, so any
		// order would give the same field up to floating point noise;
		// a fixed order keeps equal configurations bitwise reproducible.
		for p := range bpts {
			b := geom.Vec{}
			for c := 0; c < nChunks; c++ {
				v := partials[p*nChunks+c]
				b = b.Add(&v)
			}
			table.Samples = append(table.Samples, Sample{
				X: bpts[p][0], Y: bpts[p][1], Z: bpts[p][2],
				Bx: b[0], By: b[1], Bz: b[2],
			})
		}

		if e.Progress != nil {
			e.Progress(len(table.Samples), len(pts))
		}
		if e.Log {
			log.Printf("Evaluated %d/%d points", len(table.Samples), len(pts))
		}
	}

	return table, nil
}
