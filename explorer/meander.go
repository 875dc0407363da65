package explorer

import (
	"context"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Meander walks at most steps doorways from the origin, picking each next
// doorway uniformly among the open ones with rng. Every visited section is
// expanded; revisits count as retraces. A section without an open doorway
// ends the walk with HaltStranded.
//
// rng is owned by the caller; the same seed reproduces the same walk.
func (e *Explorer) Meander(ctx context.Context, rng *rand.Rand, steps int) error {
	if e.violation != nil {
		return e.violation
	}
	if rng == nil {
		return ErrNeedRandSource
	}
	if steps < 0 {
		return fmt.Errorf("%w: steps cannot be negative (%d)", ErrOptionViolation, steps)
	}

	ctx, span := e.opts.Tracer.Start(ctx, "explorer.meander", trace.WithAttributes(
		attribute.String("haze.origin", e.origin.String()),
		attribute.Int("haze.steps", steps),
	))
	defer span.End()

	taken, err := e.meander(ctx, rng, steps)
	span.SetAttributes(
		attribute.Int("haze.steps_taken", taken),
		attribute.String("haze.halt_reason", e.stats.HaltReason.String()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (e *Explorer) meander(ctx context.Context, rng *rand.Rand, steps int) (int, error) {
	e.stats.HaltReason = HaltNone
	cur := e.origin
	for step := 0; step < steps; step++ {
		if err := ctxDone(ctx); err != nil {
			e.stats.HaltReason = HaltCanceled
			return step, err
		}
		if e.budgetReached() {
			e.stats.HaltReason = HaltBudget
			return step, nil
		}
		if _, err := e.ExpandOne(cur); err != nil {
			return step, err
		}

		doors := e.space.OpenDoors(cur)
		if len(doors) == 0 {
			e.stats.HaltReason = HaltStranded
			return step, nil
		}
		next, err := e.space.NeighborThrough(cur, doors[rng.Intn(len(doors))])
		if err != nil {
			return step, err
		}
		cur = next
	}
	e.stats.HaltReason = HaltStepLimit

	return steps, nil
}
