package section_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/haze/section"
)

// mustSections builds sections from seed tuples in the default Space.
func mustSections(t *testing.T, seeds ...[]uint32) []section.Section {
	t.Helper()
	sp, err := section.NewSpace()
	require.NoError(t, err)
	out := make([]section.Section, 0, len(seeds))
	for _, s := range seeds {
		sec, err := sp.New(s...)
		require.NoError(t, err)
		out = append(out, sec)
	}

	return out
}

// TestSet_RotationDedup verifies that rotations collapse to one member.
func TestSet_RotationDedup(t *testing.T) {
	secs := mustSections(t,
		[]uint32{1, 2, 3, 4},
		[]uint32{2, 3, 4, 1},
		[]uint32{4, 1, 2, 3},
		[]uint32{1, 2, 4, 3},
	)
	var st section.Set // zero value is usable
	assert.True(t, st.Add(secs[0]))
	assert.False(t, st.Add(secs[1]))
	assert.False(t, st.Add(secs[2]))
	assert.True(t, st.Add(secs[3]), "reflection is a different section")
	assert.Equal(t, 2, st.Len())
	assert.True(t, st.Has(secs[2]))
}

// TestSet_Remove covers present, rotated and absent removals.
func TestSet_Remove(t *testing.T) {
	secs := mustSections(t, []uint32{1, 2, 3, 4}, []uint32{5, 6, 7, 8}, []uint32{2, 3, 4, 1})
	st := section.NewSet(4)
	st.Add(secs[0])
	st.Add(secs[1])

	assert.True(t, st.Remove(secs[2]), "a rotation removes the canonical member")
	assert.False(t, st.Has(secs[0]))
	assert.False(t, st.Remove(secs[0]))
	assert.Equal(t, 1, st.Len())
	assert.True(t, st.Has(secs[1]))
}

// TestSet_SectionsDeterministic checks that ordering depends only on membership.
func TestSet_SectionsDeterministic(t *testing.T) {
	secs := mustSections(t,
		[]uint32{1, 2, 3, 4},
		[]uint32{9, 9, 9, 9},
		[]uint32{7, 1, 7, 1},
		[]uint32{0, 0, 0, 1},
	)
	a, b := section.NewSet(0), section.NewSet(0)
	for i := range secs {
		a.Add(secs[i])
		b.Add(secs[len(secs)-1-i])
	}
	sa, sb := a.Sections(), b.Sections()
	require.Len(t, sa, 4)
	for i := range sa {
		assert.True(t, sa[i].Equal(sb[i]), "position %d: %v vs %v", i, sa[i], sb[i])
	}
	for i := 1; i < len(sa); i++ {
		assert.LessOrEqual(t, uint32(sa[i-1].Key()), uint32(sa[i].Key()))
	}
}
