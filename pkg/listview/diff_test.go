package listview

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func ops(patches []Patch) map[Op]int {
	count := make(map[Op]int)
	for _, p := range patches {
		count[p.Op]++
	}
	return count
}

func TestDiff_InsertAtTop(t *testing.T) {
	p := ids(3)
	old := []uuid.UUID{p[1], p[2]}
	next := []uuid.UUID{p[0], p[1], p[2]}

	patches := Diff(old, next, nil)

	require.Len(t, patches, 1)
	assert.Equal(t, Patch{Op: OpInsert, Id: p[0], From: -1, To: 0}, patches[0])
	assert.Equal(t, next, Apply(old, patches))
}

func TestDiff_DeleteUsesOldIndex(t *testing.T) {
	p := ids(3)
	old := []uuid.UUID{p[0], p[1], p[2]}
	next := []uuid.UUID{p[0], p[2]}

	patches := Diff(old, next, nil)

	require.Len(t, patches, 1)
	assert.Equal(t, OpDelete, patches[0].Op)
	assert.Equal(t, 1, patches[0].From)
	assert.Equal(t, next, Apply(old, patches))
}

func TestDiff_UpdateOnlyForStayingRows(t *testing.T) {
	p := ids(3)
	old := []uuid.UUID{p[0], p[1], p[2]}

	patches := Diff(old, old, map[uuid.UUID]struct{}{p[1]: {}})

	require.Len(t, patches, 1)
	assert.Equal(t, Patch{Op: OpUpdate, Id: p[1], From: 1, To: 1}, patches[0])
}

func TestDiff_MoveOutsideLongestRun(t *testing.T) {
	p := ids(4)
	old := []uuid.UUID{p[0], p[1], p[2], p[3]}
	next := []uuid.UUID{p[3], p[0], p[1], p[2]}

	patches := Diff(old, next, map[uuid.UUID]struct{}{p[3]: {}})

	require.Len(t, patches, 1)
	assert.Equal(t, Patch{Op: OpMove, Id: p[3], From: 3, To: 0}, patches[0])
	assert.Equal(t, next, Apply(old, patches))
}

func TestDiff_NoChange(t *testing.T) {
	p := ids(2)
	assert.Empty(t, Diff(p, p, nil))
	assert.Empty(t, Diff(nil, nil, nil))
}

func TestDiff_ReplayReachesTarget(t *testing.T) {
	pool := ids(24)

	rapid.Check(t, func(t *rapid.T) {
		pick := func(label string) []uuid.UUID {
			idx := rapid.SliceOfNDistinct(rapid.IntRange(0, len(pool)-1), 0, 16, rapid.ID[int]).Draw(t, label)
			out := make([]uuid.UUID, len(idx))
			for i, k := range idx {
				out[i] = pool[k]
			}
			return out
		}
		old, next := pick("old"), pick("next")

		patches := Diff(old, next, nil)
		got := Apply(old, patches)
		if len(next) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, next, got)
		}

		inOld := make(map[uuid.UUID]bool)
		for _, id := range old {
			inOld[id] = true
		}
		inNext := make(map[uuid.UUID]bool)
		for _, id := range next {
			inNext[id] = true
		}
		wantDeletes, wantInserts := 0, 0
		for _, id := range old {
			if !inNext[id] {
				wantDeletes++
			}
		}
		for _, id := range next {
			if !inOld[id] {
				wantInserts++
			}
		}
		count := ops(patches)
		assert.Equal(t, wantDeletes, count[OpDelete])
		assert.Equal(t, wantInserts, count[OpInsert])
		assert.Zero(t, count[OpUpdate])
	})
}

func TestLongestIncreasing(t *testing.T) {
	keep := longestIncreasing([]int{3, 0, 1, 2})
	assert.Equal(t, []bool{false, true, true, true}, keep)

	assert.Empty(t, longestIncreasing(nil))
}
