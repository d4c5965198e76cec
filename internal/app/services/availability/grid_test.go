package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotConversions(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		for _, index := range []int{0, 1, 7, 8, 288, 289, GridLength - 1} {
			column, hour, minute := SlotToHourMinute(index)
			assert.Equal(t, index, HourMinuteToSlot(column, hour, minute))
		}
	})

	t.Run("Monday Morning", func(t *testing.T) {
		// Monday is column 1; 9:00 is quarter 36.
		index := HourMinuteToSlot(1, 9, 0)
		assert.Equal(t, 36*DayColumns+1, index)
		assert.Equal(t, 9, HourBand(index))
	})

	t.Run("Hour Band Spans All Columns", func(t *testing.T) {
		first := HourMinuteToSlot(0, 9, 0)
		last := HourMinuteToSlot(DayColumns-1, 9, 45)
		assert.Equal(t, 9*SlotsPerHourBand, first)
		assert.Equal(t, 10*SlotsPerHourBand-1, last)
	})
}

func TestRotationLayout(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 9, 0)] = 1
		grid[HourMinuteToSlot(7, 23, 45)] = 1

		restored := fromRotationLayout(toRotationLayout(grid))
		assert.True(t, grid.Equal(restored))
	})

	t.Run("Padding Column Dropped", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(0, 12, 0)] = 1 // padding column, must not survive

		restored := fromRotationLayout(toRotationLayout(grid))
		assert.True(t, restored.Equal(ZeroGrid()))
	})

	t.Run("Rotation View Is Day Major", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 0, 0)] = 1 // Monday 00:00

		rotated := toRotationLayout(grid)
		assert.Len(t, rotated, RotationLength)
		assert.Equal(t, 1, rotated[0])
	})
}

func TestStartOfWeek(t *testing.T) {
	t.Run("Mid Week", func(t *testing.T) {
		thursday := time.Date(2024, 5, 16, 15, 30, 0, 0, time.UTC)
		assert.Equal(t, "2024-05-13", FormatDateKey(StartOfWeek(thursday)))
	})

	t.Run("Monday Is Fixed Point", func(t *testing.T) {
		monday := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, monday, StartOfWeek(monday))
	})

	t.Run("Sunday Belongs To Previous Monday", func(t *testing.T) {
		sunday := time.Date(2024, 5, 19, 23, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-05-13", FormatDateKey(StartOfWeek(sunday)))
	})
}

func TestAddWeeks(t *testing.T) {
	next, err := AddWeeks("2024-05-13", 1)
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-20", next)

	previous, err := AddWeeks("2024-05-13", -1)
	assert.NoError(t, err)
	assert.Equal(t, "2024-05-06", previous)

	_, err = AddWeeks("not-a-date", 1)
	assert.Error(t, err)
}

func TestWeeksBetween(t *testing.T) {
	start := time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 4, WeeksBetween(start, start.AddDate(0, 0, 28)))
	assert.Equal(t, 0, WeeksBetween(start, start))
	assert.Equal(t, 0, WeeksBetween(start, start.AddDate(0, 0, -7)))
}
