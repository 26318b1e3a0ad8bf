package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPageCount(t *testing.T) {

	cases := []struct {
		count, size, pages int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{12, 10, 2},
		{30, 15, 2},
		{31, 15, 3},
	}

	for _, tc := range cases {
		pgr := New(tc.size).SetCount(tc.count)
		assert.Equal(t, tc.pages, pgr.PageCount(), "count %d size %d", tc.count, tc.size)
	}
}

func TestTwelveRowsByFive(t *testing.T) {

	data := rows(12)
	pgr := New(5).SetCount(len(data))

	assert.Equal(t, 3, pgr.PageCount())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Slice(pgr, data))

	pgr = pgr.Next()
	assert.Equal(t, []int{6, 7, 8, 9, 10}, Slice(pgr, data))

	pgr = pgr.Next()
	assert.Equal(t, []int{11, 12}, Slice(pgr, data))
	assert.False(t, pgr.CanNext())
	assert.True(t, pgr.CanPrevious())
}

func TestSaturating(t *testing.T) {

	pgr := New(5).SetCount(12)

	pgr = pgr.Previous()
	assert.Equal(t, 0, pgr.Index())

	pgr = pgr.Goto(2).Next()
	assert.Equal(t, 2, pgr.Index())

	pgr = pgr.Goto(99)
	assert.Equal(t, 2, pgr.Index())

	pgr = pgr.Goto(-3)
	assert.Equal(t, 0, pgr.Index())
}

func TestSetCountClamps(t *testing.T) {

	pgr := New(5).SetCount(12).Goto(2)

	pgr = pgr.SetCount(7)
	assert.Equal(t, 1, pgr.Index())

	pgr = pgr.SetCount(0)
	assert.Equal(t, 0, pgr.Index())
	assert.Empty(t, Slice(pgr, []int{}))
	assert.False(t, pgr.CanNext())
	assert.False(t, pgr.CanPrevious())
}

func TestSetSize(t *testing.T) {

	t.Run("keeps first visible row", func(t *testing.T) {
		pgr := New(5).SetCount(40).Goto(3) // rows 16-20

		pgr, err := pgr.SetSize(10)
		require.NoError(t, err)
		assert.Equal(t, 1, pgr.Index()) // rows 11-20
	})

	t.Run("never past last page", func(t *testing.T) {
		for _, count := range []int{0, 1, 7, 12, 29, 44} {
			for _, from := range Sizes {
				for _, to := range Sizes {
					pgr := New(from).SetCount(count)
					pgr = pgr.Goto(pgr.PageCount() - 1)

					pgr, err := pgr.SetSize(to)
					require.NoError(t, err)
					assert.LessOrEqual(t, pgr.Index(), pgr.PageCount()-1)
				}
			}
		}
	})

	t.Run("rejects unsupported", func(t *testing.T) {
		pgr := New(5)
		same, err := pgr.SetSize(7)
		assert.Error(t, err)
		assert.Equal(t, pgr, same)
	})
}

func TestCycleSize(t *testing.T) {

	pgr := New(5)
	pgr = pgr.CycleSize()
	assert.Equal(t, 10, pgr.Size())
	pgr = pgr.CycleSize()
	assert.Equal(t, 15, pgr.Size())
	pgr = pgr.CycleSize()
	assert.Equal(t, 5, pgr.Size())

	assert.Equal(t, DefaultSize, New(3).Size())
}

func TestSliceStaleCount(t *testing.T) {

	pgr := New(5).SetCount(12).Goto(2)
	assert.Equal(t, []int{1, 2, 3}, Slice(pgr, rows(3)))
}
