package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClosestDate(t *testing.T) {
	schedule := Schedule{
		"2024-05-06": ZeroGrid(),
		"2024-05-20": ZeroGrid(),
		"2024-06-03": ZeroGrid(),
	}

	t.Run("Exact Key", func(t *testing.T) {
		key, ok := ClosestDate("2024-05-20", schedule)
		assert.True(t, ok)
		assert.Equal(t, "2024-05-20", key)
	})

	t.Run("Greatest Prior Key", func(t *testing.T) {
		key, ok := ClosestDate("2024-05-27", schedule)
		assert.True(t, ok)
		assert.Equal(t, "2024-05-20", key)
	})

	t.Run("Future Weeks Inherit Latest", func(t *testing.T) {
		key, ok := ClosestDate("2030-01-07", schedule)
		assert.True(t, ok)
		assert.Equal(t, "2024-06-03", key)
	})

	t.Run("Earliest Key Fallback", func(t *testing.T) {
		key, ok := ClosestDate("2020-01-06", schedule)
		assert.True(t, ok)
		assert.Equal(t, "2024-05-06", key)
	})

	t.Run("Empty Schedule", func(t *testing.T) {
		_, ok := ClosestDate("2024-05-20", Schedule{})
		assert.False(t, ok)
	})

	t.Run("Monotonic Unless Fallback", func(t *testing.T) {
		for _, target := range []string{"2024-05-06", "2024-05-13", "2024-07-01", "2025-01-06"} {
			key, ok := ClosestDate(target, schedule)
			assert.True(t, ok)
			assert.LessOrEqual(t, key, target)
		}
	})
}

func TestResolveGrid(t *testing.T) {
	grid := ZeroGrid()
	grid[HourMinuteToSlot(1, 9, 0)] = 1
	schedule := Schedule{"2024-05-06": grid}

	resolved, ok := ResolveGrid("2024-05-27", schedule)
	assert.True(t, ok)
	assert.True(t, grid.Equal(resolved))

	_, ok = ResolveGrid("2024-05-27", Schedule{})
	assert.False(t, ok)
}
