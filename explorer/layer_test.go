package explorer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/haze/explorer"
	"github.com/katalvlaran/haze/section"
	"github.com/katalvlaran/haze/seedring"
)

// TestExploreLayer_Layering walks a tiny space layer by layer until it returns false.
func TestExploreLayer_Layering(t *testing.T) {
	sp := tinySpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 0, 1, 2, 3))
	ctx := context.Background()

	layers := 0
	for {
		more, err := e.ExploreLayer(ctx)
		require.NoError(t, err)
		if !more {
			break
		}
		layers++
		require.Less(t, layers, 1000, "layering did not terminate")
	}

	st := e.Stats()
	assert.Equal(t, layers, st.Layers)
	assert.Equal(t, layers, st.MaxDepth)
	assert.Equal(t, explorer.Halted, e.State())
	assert.Equal(t, explorer.HaltExhausted, st.HaltReason)
	assert.Equal(t, 0, st.Frontier)
	assert.Equal(t, st.Sections, e.KnownLen())
	requireAccounting(t, sp, st)

	// exhausted stays exhausted
	more, err := e.ExploreLayer(ctx)
	require.NoError(t, err)
	assert.False(t, more)
}

// TestExploreLayer_FirstLayer expands only the origin.
func TestExploreLayer_FirstLayer(t *testing.T) {
	sp := openSpace(t)
	origin := mustSection(t, sp, 1, 2, 3, 4)
	e := mustExplorer(t, sp, origin)

	more, err := e.ExploreLayer(context.Background())
	require.NoError(t, err)
	require.True(t, more)
	assert.Equal(t, 1, e.KnownLen())
	assert.Equal(t, 4, e.FrontierLen())
	assert.Equal(t, 1, e.Stats().Layers)
}

// TestRun_Exhausts explores tiny spaces completely, with plain and oriented rules.
func TestRun_Exhausts(t *testing.T) {
	cases := []struct {
		name   string
		space  func(testing.TB) *section.Space
		origin []seedring.Seed
	}{
		{"Basic", tinySpace, []seedring.Seed{0, 1, 2, 3}},
		{"Oriented", orientedTinySpace, []seedring.Seed{0, 1, 2, 3 | seedring.OrientationBit}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sp := tc.space(t)
			rec := &recorder{}
			e := mustExplorer(t, sp, mustSection(t, sp, tc.origin...), explorer.WithRecorder(rec))

			st, err := e.Run(context.Background())
			require.NoError(t, err)
			require.NoError(t, e.Violation())
			assert.Equal(t, explorer.HaltExhausted, st.HaltReason)
			assert.Equal(t, explorer.Halted, e.State())
			assert.Equal(t, 0, st.Frontier)
			assert.Equal(t, 4*st.Sections, st.Doors)
			assert.Equal(t, st.Sections, st.FourWays)
			requireAccounting(t, sp, st)

			assert.Equal(t, st.Sections, rec.expanded)
			assert.Equal(t, st.Layers, rec.layers)

			// every neighbor of every known section is known and leads back
			for _, s := range e.Known() {
				for door := 0; door < sp.Size(); door++ {
					nb, err := sp.NeighborThrough(s, door)
					require.NoError(t, err)
					require.True(t, e.IsKnown(nb), "neighbor %v of %v", nb, s)
					back, err := sp.NeighborThrough(nb, door)
					require.NoError(t, err)
					require.True(t, back.Equal(s), "doorway %d of %v", door, s)
				}
			}
		})
	}
}

// TestRun_OrientedKeepsFlags checks that traversal never clamps away the
// orientation bit.
func TestRun_OrientedKeepsFlags(t *testing.T) {
	sp := orientedTinySpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 0, 1, 2, 3))
	_, err := e.Run(context.Background())
	require.NoError(t, err)

	flagged := 0
	for _, s := range e.Known() {
		for door := 0; door < s.Len(); door++ {
			seed := s.Seed(door)
			require.Zero(t, seedring.Magnitude(seed)&^0x3, "seed %#x escaped the mask", seed)
			if seedring.Orientation(seed) {
				flagged++
			}
		}
	}
	assert.Positive(t, flagged)
}

// TestRun_DefaultPolicy checks the bookkeeping under the default wall rule.
func TestRun_DefaultPolicy(t *testing.T) {
	sp, err := section.NewSpace()
	require.NoError(t, err)
	e := mustExplorer(t, sp, mustSection(t, sp, 5, 14, 3, 501), explorer.WithMaxSections(2000))

	st, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []explorer.HaltReason{explorer.HaltExhausted, explorer.HaltBudget}, st.HaltReason)
	assert.Positive(t, st.Walls)
	requireAccounting(t, sp, st)
}

// TestRun_Budget stops between layers once the known set is large enough.
func TestRun_Budget(t *testing.T) {
	sp := openSpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 2, 3, 4), explorer.WithMaxSections(50))

	st, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, explorer.HaltBudget, st.HaltReason)
	assert.Equal(t, explorer.Running, e.State())
	assert.GreaterOrEqual(t, st.Sections, 50)
	assert.Positive(t, st.Frontier)

	// frontier and known never overlap
	for _, s := range e.Frontier() {
		require.False(t, e.IsKnown(s))
	}
}

// TestRun_LayerCap stops after the configured number of layers.
func TestRun_LayerCap(t *testing.T) {
	sp := openSpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 2, 3, 4), explorer.WithMaxLayers(2))

	st, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, explorer.HaltLayerCap, st.HaltReason)
	assert.Equal(t, 2, st.Layers)
	assert.Equal(t, 5, st.Sections)
	assert.Equal(t, 5, st.FourWays)
}

// TestRun_Canceled leaves the explorer inspectable.
func TestRun_Canceled(t *testing.T) {
	sp := openSpace(t)
	origin := mustSection(t, sp, 1, 2, 3, 4)
	e := mustExplorer(t, sp, origin)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st, err := e.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, explorer.HaltCanceled, st.HaltReason)
	assert.Equal(t, explorer.Running, e.State())
	assert.True(t, e.InFrontier(origin))
}

// TestRun_Deadline stops an unbounded exploration on timeout.
func TestRun_Deadline(t *testing.T) {
	sp := openSpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 2, 3, 4), explorer.WithWorkers(4))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	st, err := e.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, explorer.HaltCanceled, st.HaltReason)
	assert.Positive(t, st.Frontier)
	for _, s := range e.Frontier() {
		require.False(t, e.IsKnown(s))
	}
}

// TestRun_Violation halts Run and keeps returning the violation.
func TestRun_Violation(t *testing.T) {
	sp := brokenSpace(t)
	rec := &recorder{}
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 2, 3, 4), explorer.WithRecorder(rec))

	st, err := e.Run(context.Background())
	require.ErrorIs(t, err, explorer.ErrConsistency)
	assert.Equal(t, explorer.HaltViolation, st.HaltReason)
	assert.Equal(t, 0, st.Layers, "the failed layer is not counted")
	assert.Equal(t, 0, st.MaxDepth)
	assert.Equal(t, 0, rec.layers)

	_, again := e.Run(context.Background())
	assert.Equal(t, err, again)
	more, again := e.ExploreLayer(context.Background())
	assert.False(t, more)
	assert.Equal(t, err, again)
}

// TestExpandOne_ResumesAfterExhaustion refills an exhausted explorer by hand.
func TestExpandOne_ResumesAfterExhaustion(t *testing.T) {
	sp, err := section.NewSpace(
		section.WithMask(0xFFFFFFFF),
		section.WithOpenFunc(func(s seedring.Seed) bool { return s == 5 }),
	)
	require.NoError(t, err)
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 1, 1, 1))

	st, err := e.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, explorer.HaltExhausted, st.HaltReason)
	require.Equal(t, explorer.Halted, e.State())

	fresh, err := e.ExpandOne(mustSection(t, sp, 5, 1, 2, 3))
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, 1, e.FrontierLen())
	assert.Equal(t, explorer.Running, e.State())

	more, err := e.ExploreLayer(context.Background())
	require.NoError(t, err)
	assert.True(t, more)

	st, err = e.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, explorer.HaltExhausted, st.HaltReason)
	assert.Equal(t, explorer.Halted, e.State())
	assert.Equal(t, 3, st.Sections)
}

// TestRun_ParallelMatchesSequential compares both layer modes section by section.
func TestRun_ParallelMatchesSequential(t *testing.T) {
	sp, err := section.NewSpace(section.WithOpenFunc(section.AlwaysOpen))
	require.NoError(t, err)
	origin := mustSection(t, sp, 7, 300, 42, 511)

	seq := mustExplorer(t, sp, origin, explorer.WithMaxLayers(6))
	par := mustExplorer(t, sp, origin, explorer.WithMaxLayers(6), explorer.WithWorkers(4))

	seqStats, err := seq.Run(context.Background())
	require.NoError(t, err)
	parStats, err := par.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, seqStats, parStats)
	assert.Equal(t, seq.Known(), par.Known())
	assert.Equal(t, seq.Frontier(), par.Frontier())
}

// TestRun_ParallelViolation surfaces a violation found by a worker in the
// second layer and leaves the violating section unexpanded.
func TestRun_ParallelViolation(t *testing.T) {
	sp, err := section.NewSpace(
		section.WithRules(brittle{}),
		section.WithMask(0xFFFFFFFF),
		section.WithOpenFunc(section.AlwaysOpen),
	)
	require.NoError(t, err)
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 2, 3, 4), explorer.WithWorkers(3))

	_, err = e.Run(context.Background())
	require.ErrorIs(t, err, explorer.ErrConsistency)
	assert.Equal(t, explorer.Halted, e.State())
	assert.Equal(t, 1, e.Stats().Layers, "the failed layer is not counted")
	assert.Equal(t, 1, e.Stats().MaxDepth)

	var v *explorer.ConsistencyViolation
	require.ErrorAs(t, err, &v)
	assert.False(t, e.IsKnown(v.Section))
	assert.True(t, e.InFrontier(v.Section))
	assert.Equal(t, seedring.Seed(7), v.Section.Seed(v.Door))
}

// TestRun_Progress reports every K newly known sections.
func TestRun_Progress(t *testing.T) {
	sp := tinySpace(t)
	var marks []int
	e := mustExplorer(t, sp, mustSection(t, sp, 0, 1, 2, 3),
		explorer.WithProgressEvery(10),
		explorer.WithOnProgress(func(known int) { marks = append(marks, known) }),
	)
	st, err := e.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, marks, st.Sections/10)
	for i, m := range marks {
		assert.Equal(t, 10*(i+1), m)
	}
}
