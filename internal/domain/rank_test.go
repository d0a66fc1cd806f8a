package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flare(id, class, location string) FlareRecord {
	return FlareRecord{ID: id, ClassType: class, SourceLocation: location}
}

func TestSelectMostSignificant(t *testing.T) {
	t.Run("highest score wins", func(t *testing.T) {
		batch := []FlareRecord{
			flare("x5", "X5", "N10E20"),
			flare("m3", "M3", "S5W10"),
		}
		got, ok := SelectMostSignificant(batch)
		require.True(t, ok)
		assert.Equal(t, "x5", got.ID)
	})

	t.Run("unlocated records are ignored", func(t *testing.T) {
		batch := []FlareRecord{
			flare("x9", "X9", ""),
			flare("c1", "C1", "N01E01"),
		}
		got, ok := SelectMostSignificant(batch)
		require.True(t, ok)
		assert.Equal(t, "c1", got.ID)
	})

	t.Run("no located record falls back to first", func(t *testing.T) {
		batch := []FlareRecord{
			flare("first", "C1", ""),
			flare("second", "X9", ""),
		}
		got, ok := SelectMostSignificant(batch)
		require.True(t, ok)
		assert.Equal(t, "first", got.ID)
	})

	t.Run("empty batch is no selection", func(t *testing.T) {
		got, ok := SelectMostSignificant(nil)
		assert.False(t, ok)
		assert.Equal(t, FlareRecord{}, got)
	})

	t.Run("unparseable class scores zero but is selectable", func(t *testing.T) {
		batch := []FlareRecord{flare("odd", "??", "N1E1")}
		got, ok := SelectMostSignificant(batch)
		require.True(t, ok)
		assert.Equal(t, "odd", got.ID)
	})

	t.Run("ties keep batch order", func(t *testing.T) {
		batch := []FlareRecord{
			flare("c2", "C1", "N1E1"),
			flare("m-a", "M2", "N2E2"),
			flare("m-b", "M2.0", "N3E3"),
		}
		got, ok := SelectMostSignificant(batch)
		require.True(t, ok)
		assert.Equal(t, "m-a", got.ID)
	})
}

func TestSelectMostSignificant_OrderIndependent(t *testing.T) {
	batch := []FlareRecord{
		flare("a", "C4.1", "N10E10"),
		flare("b", "X1.1", "S10W10"),
		flare("c", "M9.9", "N20W20"),
		flare("d", "B2", "S30E30"),
	}

	permutations := [][]int{
		{0, 1, 2, 3}, {3, 2, 1, 0}, {1, 0, 3, 2}, {2, 3, 0, 1}, {3, 0, 2, 1},
	}
	for _, perm := range permutations {
		shuffled := make([]FlareRecord, len(perm))
		for i, idx := range perm {
			shuffled[i] = batch[idx]
		}
		got, ok := SelectMostSignificant(shuffled)
		require.True(t, ok)
		assert.Equal(t, "b", got.ID, "permutation %v", perm)
	}
}

func TestRankFlares(t *testing.T) {
	batch := []FlareRecord{
		flare("c", "C3", "N1E1"),
		flare("none", "X9", ""),
		flare("x", "X1", "S1W1"),
		flare("m", "M5", "N2W2"),
	}
	original := append([]FlareRecord(nil), batch...)

	ranked := RankFlares(batch)

	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	if diff := cmp.Diff([]string{"x", "m", "c"}, ids); diff != "" {
		t.Errorf("ranking mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, original, batch, "input must not be reordered")
}
