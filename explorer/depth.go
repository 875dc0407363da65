package explorer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/haze/section"
)

// frame is one pending depth-first visit.
type frame struct {
	sec   section.Section
	depth int
}

// ExploreDepthFirst expands the region reachable from start, depth-first,
// descending at most maxDepth doorways. Known sections end their branch and
// count as retraces. Stats.MaxDepth records the deepest level popped.
//
// Sections discovered beyond maxDepth stay in the frontier. The explorer
// halts only if the frontier is empty afterwards; otherwise HaltReason is
// HaltDepthLimit.
func (e *Explorer) ExploreDepthFirst(ctx context.Context, start section.Section, maxDepth int) error {
	if e.violation != nil {
		return e.violation
	}
	if maxDepth < 0 {
		return fmt.Errorf("%w: maxDepth cannot be negative (%d)", ErrOptionViolation, maxDepth)
	}
	s, err := e.space.FromRing(start.Ring())
	if err != nil {
		return fmt.Errorf("explorer: start: %w", err)
	}

	ctx, span := e.opts.Tracer.Start(ctx, "explorer.depth_first", trace.WithAttributes(
		attribute.String("haze.start", s.String()),
		attribute.Int("haze.max_depth", maxDepth),
	))
	defer span.End()

	if err = e.walkDepthFirst(ctx, s, maxDepth); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetAttributes(attribute.String("haze.halt_reason", e.stats.HaltReason.String()))

	return nil
}

func (e *Explorer) walkDepthFirst(ctx context.Context, start section.Section, maxDepth int) error {
	e.stats.HaltReason = HaltNone
	stack := []frame{{sec: start}}
	for len(stack) > 0 {
		if err := ctxDone(ctx); err != nil {
			e.stats.HaltReason = HaltCanceled
			return err
		}
		if e.budgetReached() {
			e.stats.HaltReason = HaltBudget
			return nil
		}

		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e.stats.MaxDepth = max(e.stats.MaxDepth, f.depth)

		if e.known.Has(f.sec) {
			e.retrace()
			continue
		}
		exp, err := e.expand(f.sec)
		if err != nil {
			return e.fail(err)
		}
		e.commit(exp)

		if f.depth < maxDepth {
			// reverse push so the lowest doorway is visited first
			for i := len(exp.adjacent) - 1; i >= 0; i-- {
				stack = append(stack, frame{sec: exp.adjacent[i], depth: f.depth + 1})
			}
		}
	}

	if e.frontier.Len() == 0 {
		e.state = Halted
		e.stats.HaltReason = HaltExhausted
	} else {
		e.stats.HaltReason = HaltDepthLimit
	}

	return nil
}
