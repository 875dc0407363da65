package explorer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/haze/explorer"
	"github.com/katalvlaran/haze/section"
	"github.com/katalvlaran/haze/seedring"
)

// additive breaks the involution: traversing twice adds the key twice.
type additive struct{}

func (additive) Hash(s seedring.Seed) seedring.Seed    { return s }
func (additive) Reverse(s seedring.Seed) seedring.Seed { return s }
func (additive) Traverse(base, through seedring.Seed, _ int) seedring.Seed {
	return base + through
}

// brittle behaves like plain XOR except through a doorway whose seed is 7.
type brittle struct{}

func (brittle) Hash(s seedring.Seed) seedring.Seed    { return s }
func (brittle) Reverse(s seedring.Seed) seedring.Seed { return s }
func (brittle) Traverse(base, through seedring.Seed, _ int) seedring.Seed {
	if through == 7 {
		return base + through
	}
	return base ^ through
}

// openSpace has every doorway open and the full 32-bit domain.
func openSpace(t testing.TB) *section.Space {
	t.Helper()
	sp, err := section.NewSpace(section.WithMask(0xFFFFFFFF), section.WithOpenFunc(section.AlwaysOpen))
	require.NoError(t, err)
	return sp
}

// tinySpace has every doorway open but only 2 bits per seed, so exploration exhausts.
func tinySpace(t testing.TB) *section.Space {
	t.Helper()
	sp, err := section.NewSpace(section.WithMask(0x3), section.WithOpenFunc(section.AlwaysOpen))
	require.NoError(t, err)
	return sp
}

// orientedTinySpace is tinySpace with oriented rules; the clamp keeps the
// orientation bit, so each slot has 8 values.
func orientedTinySpace(t testing.TB) *section.Space {
	t.Helper()
	sp, err := section.NewSpace(
		section.WithRules(seedring.Oriented{}),
		section.WithMask(0x3),
		section.WithOpenFunc(section.AlwaysOpen),
	)
	require.NoError(t, err)
	return sp
}

func brokenSpace(t testing.TB) *section.Space {
	t.Helper()
	sp, err := section.NewSpace(
		section.WithRules(additive{}),
		section.WithMask(0xFFFFFFFF),
		section.WithOpenFunc(section.AlwaysOpen),
	)
	require.NoError(t, err)
	return sp
}

func mustSection(t testing.TB, sp *section.Space, seeds ...seedring.Seed) section.Section {
	t.Helper()
	s, err := sp.New(seeds...)
	require.NoError(t, err)
	return s
}

func mustExplorer(t testing.TB, sp *section.Space, origin section.Section, opts ...explorer.Option) *explorer.Explorer {
	t.Helper()
	e, err := explorer.New(sp, origin, opts...)
	require.NoError(t, err)
	return e
}

// requireAccounting checks the doorway bookkeeping invariants on st.
func requireAccounting(t *testing.T, sp *section.Space, st explorer.Stats) {
	t.Helper()
	require.Equal(t, sp.Size()*st.Sections, st.Doors+st.Walls, "doors + walls")
	if sp.Size() == 4 {
		require.Equal(t, st.Doors, st.TalliedDoors(), "degree classes")
	}
}

// recorder counts explorer events.
type recorder struct {
	expanded, retraced, layers, violations int
	doors, walls                           int
}

func (r *recorder) SectionExpanded(degree, walls int) {
	r.expanded++
	r.doors += degree
	r.walls += walls
}
func (r *recorder) Retraced()                   { r.retraced++ }
func (r *recorder) LayerExplored(int, int, int) { r.layers++ }
func (r *recorder) Violation()                  { r.violations++ }
