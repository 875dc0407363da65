package explorer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/haze/section"
)

// tracerName identifies spans emitted by this package.
const tracerName = "github.com/katalvlaran/haze/explorer"

// Sentinel errors for exploration.
var (
	// ErrNilSpace is returned when New receives a nil Space.
	ErrNilSpace = errors.New("explorer: space is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("explorer: invalid option supplied")

	// ErrNeedRandSource is returned when Meander receives a nil generator.
	ErrNeedRandSource = errors.New("explorer: rng is required")

	// ErrConsistency is the class of every *ConsistencyViolation.
	ErrConsistency = errors.New("explorer: consistency violation")
)

// ConsistencyViolation reports a doorway whose far side does not lead back.
// Going from Section through Door reaches Neighbor; going from Neighbor
// through the same Door reaches Mirror instead of Section.
type ConsistencyViolation struct {
	Section  section.Section
	Neighbor section.Section
	Mirror   section.Section
	Door     int
}

// Error implements error.
func (v *ConsistencyViolation) Error() string {
	return fmt.Sprintf("explorer: failed symmetry test on section %v via doorway %d: neighbor is %v, mirror is %v",
		v.Section, v.Door, v.Neighbor, v.Mirror)
}

// Is makes errors.Is(err, ErrConsistency) true for violations.
func (v *ConsistencyViolation) Is(target error) bool { return target == ErrConsistency }

// State is the explorer's lifecycle state.
type State int

const (
	// Running means the frontier may still hold sections to expand.
	Running State = iota
	// Halted means the frontier is exhausted or a violation occurred.
	Halted
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// HaltReason records why the last exploration call stopped.
type HaltReason int

const (
	HaltNone       HaltReason = iota // still running
	HaltExhausted                    // frontier drained
	HaltBudget                       // MaxSections reached
	HaltLayerCap                     // MaxLayers reached
	HaltDepthLimit                   // depth-first walk hit its maximum depth
	HaltStepLimit                    // meander used all its steps
	HaltStranded                     // meander reached a section with no open doorway
	HaltCanceled                     // context done
	HaltViolation                    // consistency violation
)

var haltNames = [...]string{
	HaltNone:       "none",
	HaltExhausted:  "exhausted",
	HaltBudget:     "budget",
	HaltLayerCap:   "layer-cap",
	HaltDepthLimit: "depth-limit",
	HaltStepLimit:  "step-limit",
	HaltStranded:   "stranded",
	HaltCanceled:   "canceled",
	HaltViolation:  "violation",
}

// String implements fmt.Stringer.
func (h HaltReason) String() string {
	if h >= 0 && int(h) < len(haltNames) {
		return haltNames[h]
	}

	return fmt.Sprintf("HaltReason(%d)", int(h))
}

// Stats summarizes an exploration run.
type Stats struct {
	Sections  int // sections expanded (size of the known set)
	Doors     int // open doorways over all expanded sections
	Walls     int // closed doorways over all expanded sections
	DeadEnds  int // sections with exactly 1 open doorway
	Hallways  int // ... 2
	ThreeWays int // ... 3
	FourWays  int // ... 4
	Retraced  int // expansions requested for already-known sections
	Layers    int // breadth-first layers explored
	MaxDepth  int // deepest layer or depth-first level reached
	Frontier  int // frontier size when the stats were taken

	HaltReason HaltReason
}

// TalliedDoors returns the open doorways accounted for by the degree classes:
// DeadEnds + 2·Hallways + 3·ThreeWays + 4·FourWays. For 4-door sections it
// equals Doors.
func (s Stats) TalliedDoors() int {
	return s.DeadEnds + 2*s.Hallways + 3*s.ThreeWays + 4*s.FourWays
}

// Recorder receives exploration events, typically to export metrics.
// Implementations must be safe for use from the exploring goroutine.
type Recorder interface {
	SectionExpanded(degree, walls int)
	Retraced()
	LayerExplored(depth, batch, frontier int)
	Violation()
}

// nopRecorder discards every event.
type nopRecorder struct{}

func (nopRecorder) SectionExpanded(int, int)    {}
func (nopRecorder) Retraced()                   {}
func (nopRecorder) LayerExplored(int, int, int) {}
func (nopRecorder) Violation()                  {}

// Option configures an Explorer.
// Invalid values are recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds tunables and callbacks for an Explorer.
type Options struct {
	// MaxSections, if > 0, stops Run, ExploreDepthFirst and Meander once the
	// known set reaches this size. Checked between layers in Run and between
	// expansions otherwise.
	MaxSections int

	// MaxLayers, if > 0, stops Run after this many layers in total.
	MaxLayers int

	// Workers > 1 expands each layer in parallel.
	Workers int

	// ProgressEvery, if > 0, calls OnProgress whenever the known set size is
	// a multiple of it.
	ProgressEvery int

	// OnProgress receives the known set size at each progress mark.
	OnProgress func(known int)

	// OnExpand is called once per newly expanded section with its degree.
	OnExpand func(s section.Section, degree int)

	// Logger receives structured run events.
	Logger *slog.Logger

	// Recorder receives counters for metrics export.
	Recorder Recorder

	// Tracer creates run and layer spans.
	Tracer trace.Tracer

	err error
}

// DefaultOptions returns Options with no limits, one worker, no hooks,
// a discarding logger and recorder, and the global otel tracer.
func DefaultOptions() Options {
	return Options{
		Workers:    1,
		OnProgress: func(int) {},
		OnExpand:   func(section.Section, int) {},
		Logger:     slog.New(slog.DiscardHandler),
		Recorder:   nopRecorder{},
		Tracer:     otel.Tracer(tracerName),
	}
}

// WithMaxSections sets the node budget. 0 disables it; negative is invalid.
func WithMaxSections(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSections cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSections = n
	}
}

// WithMaxLayers caps the number of layers Run explores. 0 disables it.
func WithMaxLayers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxLayers cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxLayers = n
	}
}

// WithWorkers sets the number of goroutines used per layer (>= 1).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: Workers must be at least 1 (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithProgressEvery sets the reporting cadence in newly known sections.
func WithProgressEvery(k int) Option {
	return func(o *Options) {
		if k < 0 {
			o.err = fmt.Errorf("%w: ProgressEvery cannot be negative (%d)", ErrOptionViolation, k)
			return
		}
		o.ProgressEvery = k
	}
}

// WithOnProgress registers the progress callback.
func WithOnProgress(fn func(known int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnProgress = fn
		}
	}
}

// WithOnExpand registers a callback for every newly expanded section.
func WithOnExpand(fn func(s section.Section, degree int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(o *Options) {
		if r != nil {
			o.Recorder = r
		}
	}
}

// WithTracer sets the OpenTelemetry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}

// ctxDone reports the context error without blocking.
func ctxDone(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
