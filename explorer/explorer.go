package explorer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/haze/section"
)

// Explorer accumulates the known part of a labyrinth.
// It is not safe for concurrent use; WithWorkers parallelizes internally.
type Explorer struct {
	space     *section.Space
	origin    section.Section
	opts      Options
	known     *section.Set
	frontier  *section.Set
	stats     Stats
	state     State
	violation *ConsistencyViolation
}

// expansion is the pure result of expanding one section.
// adjacent holds every open-doorway neighbor; neighbors only those that were
// unknown (and symmetry-checked) when the expansion was computed.
type expansion struct {
	sec       section.Section
	degree    int
	adjacent  []section.Section
	neighbors []section.Section
}

// New creates a Running explorer whose frontier holds origin.
// The origin is re-clamped into space. Returns ErrNilSpace,
// ErrOptionViolation or a section error for a mis-sized origin.
func New(space *section.Space, origin section.Section, opts ...Option) (*Explorer, error) {
	if space == nil {
		return nil, ErrNilSpace
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	start, err := space.FromRing(origin.Ring())
	if err != nil {
		return nil, fmt.Errorf("explorer: origin: %w", err)
	}

	e := &Explorer{
		space:    space,
		origin:   start,
		opts:     o,
		known:    section.NewSet(1024),
		frontier: section.NewSet(64),
		state:    Running,
	}
	e.frontier.Add(start)

	return e, nil
}

// Space returns the explored Space.
func (e *Explorer) Space() *section.Space { return e.space }

// Origin returns the section exploration started from.
func (e *Explorer) Origin() section.Section { return e.origin }

// State returns Running or Halted.
func (e *Explorer) State() State { return e.state }

// Violation returns the consistency violation that halted the explorer, if any.
func (e *Explorer) Violation() error {
	if e.violation == nil {
		return nil
	}

	return e.violation
}

// Stats returns a snapshot of the counters, including the current frontier size.
func (e *Explorer) Stats() Stats {
	s := e.stats
	s.Frontier = e.frontier.Len()

	return s
}

// KnownLen returns the number of expanded sections.
func (e *Explorer) KnownLen() int { return e.known.Len() }

// FrontierLen returns the number of discovered, unexpanded sections.
func (e *Explorer) FrontierLen() int { return e.frontier.Len() }

// IsKnown reports whether s (up to rotation) has been expanded.
func (e *Explorer) IsKnown(s section.Section) bool { return e.known.Has(s) }

// InFrontier reports whether s (up to rotation) awaits expansion.
func (e *Explorer) InFrontier(s section.Section) bool { return e.frontier.Has(s) }

// Known returns the expanded sections in deterministic order.
func (e *Explorer) Known() []section.Section { return e.known.Sections() }

// Frontier returns the unexpanded sections in deterministic order.
func (e *Explorer) Frontier() []section.Section { return e.frontier.Sections() }

// ExpandOne expands s unless it is already known, in which case it only
// counts a retrace. Reports whether s was newly expanded.
// s is re-clamped into the explorer's Space first; a section of the wrong
// size is rejected with section.ErrSeedCount and leaves the explorer as is.
// Returns a *ConsistencyViolation when a doorway of s fails the symmetry check.
func (e *Explorer) ExpandOne(s section.Section) (bool, error) {
	if e.violation != nil {
		return false, e.violation
	}
	s, err := e.space.FromRing(s.Ring())
	if err != nil {
		return false, fmt.Errorf("explorer: expand: %w", err)
	}
	if e.known.Has(s) {
		e.retrace()
		return false, nil
	}
	exp, err := e.expand(s)
	if err != nil {
		return false, e.fail(err)
	}
	e.commit(exp)

	return true, nil
}

// expand computes the expansion of s without mutating the explorer.
// It only reads the known set, so concurrent calls are safe while no
// commit is in progress.
func (e *Explorer) expand(s section.Section) (expansion, error) {
	exp := expansion{sec: s}
	for door := 0; door < e.space.Size(); door++ {
		if !e.space.IsOpen(s, door) {
			continue
		}
		exp.degree++

		nb, err := e.space.NeighborThrough(s, door)
		if err != nil {
			return exp, err
		}
		exp.adjacent = append(exp.adjacent, nb)
		if e.known.Has(nb) {
			continue
		}
		mirror, err := e.space.NeighborThrough(nb, door)
		if err != nil {
			return exp, err
		}
		if !mirror.Equal(s) {
			return exp, &ConsistencyViolation{Section: s, Neighbor: nb, Mirror: mirror, Door: door}
		}
		exp.neighbors = append(exp.neighbors, nb)
	}

	return exp, nil
}

// commit moves exp.sec from the frontier into the known set, tallies it and
// queues its unknown neighbors. A non-empty frontier makes the explorer
// Running again.
func (e *Explorer) commit(exp expansion) {
	e.frontier.Remove(exp.sec)
	e.known.Add(exp.sec)
	e.tally(exp.degree)

	for _, nb := range exp.neighbors {
		if !e.known.Has(nb) {
			e.frontier.Add(nb)
		}
	}
	if e.violation == nil && e.frontier.Len() > 0 {
		e.state = Running
	}

	e.opts.OnExpand(exp.sec, exp.degree)
	if every := e.opts.ProgressEvery; every > 0 && e.known.Len()%every == 0 {
		e.opts.Logger.Debug("exploration progress",
			slog.Int("known", e.known.Len()),
			slog.Int("frontier", e.frontier.Len()),
		)
		e.opts.OnProgress(e.known.Len())
	}
}

// tally classifies one newly expanded section by its open doorway count.
func (e *Explorer) tally(degree int) {
	walls := e.space.Size() - degree
	e.stats.Sections++
	e.stats.Doors += degree
	e.stats.Walls += walls
	switch degree {
	case 1:
		e.stats.DeadEnds++
	case 2:
		e.stats.Hallways++
	case 3:
		e.stats.ThreeWays++
	case 4:
		e.stats.FourWays++
	}
	e.opts.Recorder.SectionExpanded(degree, walls)
}

// retrace counts a request to expand an already-known section.
func (e *Explorer) retrace() {
	e.stats.Retraced++
	e.opts.Recorder.Retraced()
}

// fail halts the explorer on a consistency violation and returns err.
// Other errors pass through without changing state.
func (e *Explorer) fail(err error) error {
	var v *ConsistencyViolation
	if !errors.As(err, &v) {
		return err
	}
	e.violation = v
	e.state = Halted
	e.stats.HaltReason = HaltViolation
	e.opts.Recorder.Violation()
	e.opts.Logger.Error("consistency violation",
		slog.String("section", v.Section.String()),
		slog.String("neighbor", v.Neighbor.String()),
		slog.String("mirror", v.Mirror.String()),
		slog.Int("door", v.Door),
	)

	return v
}

// budgetReached reports whether the MaxSections budget is spent.
func (e *Explorer) budgetReached() bool {
	return e.opts.MaxSections > 0 && e.known.Len() >= e.opts.MaxSections
}
