package explorer

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/haze/section"
)

// Run explores breadth-first, one layer at a time, until the frontier is
// exhausted, the section budget or layer cap is reached, or ctx is done.
// The returned Stats carry the HaltReason. A consistency violation is
// returned as the error; so is ctx.Err() on cancellation.
func (e *Explorer) Run(ctx context.Context) (Stats, error) {
	ctx, span := e.opts.Tracer.Start(ctx, "explorer.run", trace.WithAttributes(
		attribute.Int("haze.ring_size", e.space.Size()),
		attribute.String("haze.origin", e.origin.String()),
		attribute.Int("haze.max_sections", e.opts.MaxSections),
		attribute.Int("haze.workers", e.opts.Workers),
	))
	defer span.End()

	e.opts.Logger.Info("exploration started",
		slog.String("origin", e.origin.String()),
		slog.Int("max_sections", e.opts.MaxSections),
		slog.Int("max_layers", e.opts.MaxLayers),
		slog.Int("workers", e.opts.Workers),
	)

	err := e.runLayers(ctx)
	st := e.Stats()

	span.SetAttributes(
		attribute.Int("haze.sections", st.Sections),
		attribute.Int("haze.layers", st.Layers),
		attribute.String("haze.halt_reason", st.HaltReason.String()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	e.opts.Logger.Info("exploration halted",
		slog.String("reason", st.HaltReason.String()),
		slog.Int("sections", st.Sections),
		slog.Int("frontier", st.Frontier),
		slog.Int("layers", st.Layers),
	)

	return st, err
}

func (e *Explorer) runLayers(ctx context.Context) error {
	if e.violation == nil {
		e.stats.HaltReason = HaltNone
	}
	for {
		if e.budgetReached() {
			e.stats.HaltReason = HaltBudget
			return nil
		}
		if e.opts.MaxLayers > 0 && e.stats.Layers >= e.opts.MaxLayers {
			e.stats.HaltReason = HaltLayerCap
			return nil
		}
		more, err := e.ExploreLayer(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// ExploreLayer expands every section currently in the frontier.
// It returns false, and halts the explorer, when the frontier is already
// empty. Sections discovered during the layer form the next frontier.
// Layers and MaxDepth advance only when the whole layer was expanded.
//
// On cancellation the sections already expanded stay known and the rest
// are put back into the frontier.
func (e *Explorer) ExploreLayer(ctx context.Context) (bool, error) {
	if e.violation != nil {
		return false, e.violation
	}
	if err := ctxDone(ctx); err != nil {
		e.stats.HaltReason = HaltCanceled
		return false, err
	}
	if e.frontier.Len() == 0 {
		e.state = Halted
		e.stats.HaltReason = HaltExhausted
		return false, nil
	}

	batch := e.frontier.Sections()
	e.frontier = section.NewSet(2 * len(batch))
	layer := e.stats.Layers + 1

	ctx, span := e.opts.Tracer.Start(ctx, "explorer.layer", trace.WithAttributes(
		attribute.Int("haze.layer", layer),
		attribute.Int("haze.batch", len(batch)),
	))
	defer span.End()

	var err error
	if e.opts.Workers > 1 && len(batch) > 1 {
		err = e.layerParallel(ctx, batch)
	} else {
		err = e.layerSequential(ctx, batch)
	}

	e.opts.Logger.Debug("layer explored",
		slog.Int("layer", layer),
		slog.Int("batch", len(batch)),
		slog.Int("known", e.known.Len()),
		slog.Int("frontier", e.frontier.Len()),
		slog.Bool("complete", err == nil),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	e.stats.Layers = layer
	e.stats.MaxDepth = max(e.stats.MaxDepth, layer)
	e.opts.Recorder.LayerExplored(layer, len(batch), e.frontier.Len())

	return true, nil
}

func (e *Explorer) layerSequential(ctx context.Context, batch []section.Section) error {
	for i, s := range batch {
		if err := ctxDone(ctx); err != nil {
			e.restore(batch[i:])
			e.stats.HaltReason = HaltCanceled
			return err
		}
		if _, err := e.ExpandOne(s); err != nil {
			e.restore(batch[i:])
			return err
		}
	}

	return nil
}

// layerParallel expands batch with up to Workers goroutines. Expansion only
// reads the known set; results are committed afterwards in batch order, so
// the outcome matches layerSequential.
func (e *Explorer) layerParallel(ctx context.Context, batch []section.Section) error {
	var (
		results = make([]expansion, len(batch))
		done    = make([]bool, len(batch))
		errs    = make([]error, len(batch))
		workers = min(e.opts.Workers, len(batch))
	)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < len(batch); i += workers {
				if err := ctxDone(gctx); err != nil {
					return err
				}
				exp, err := e.expand(batch[i])
				if err != nil {
					errs[i] = err
					return err
				}
				results[i], done[i] = exp, true
			}
			return nil
		})
	}
	waitErr := g.Wait()

	bad := len(batch)
	for i, err := range errs {
		if err != nil {
			bad = i
			break
		}
	}
	for i := 0; i < bad; i++ {
		if done[i] {
			e.commit(results[i])
		}
	}
	e.restore(batch)

	if bad < len(batch) {
		return e.fail(errs[bad])
	}
	if waitErr != nil {
		e.stats.HaltReason = HaltCanceled
		return waitErr
	}

	return nil
}

// restore puts every section of secs that is still unknown back into the frontier.
func (e *Explorer) restore(secs []section.Section) {
	for _, s := range secs {
		if !e.known.Has(s) {
			e.frontier.Add(s)
		}
	}
}
