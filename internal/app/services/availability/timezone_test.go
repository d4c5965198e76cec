package availability

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
)

// Mid-January keeps Europe and the US on standard time so offsets are stable.
var winterNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func TestOffsetSlots(t *testing.T) {
	t.Run("Whole Hour Zones", func(t *testing.T) {
		slots, err := offsetSlots("Europe/Berlin", "GMT", winterNow)
		assert.NoError(t, err)
		assert.Equal(t, 4, slots)

		slots, err = offsetSlots("GMT", "America/New_York", winterNow)
		assert.NoError(t, err)
		assert.Equal(t, 20, slots)
	})

	t.Run("Kolkata Uses Legacy Alias", func(t *testing.T) {
		slots, err := offsetSlots("Asia/Kolkata", "GMT", winterNow)
		assert.NoError(t, err)
		assert.Equal(t, 22, slots)
	})

	t.Run("Unknown Zone", func(t *testing.T) {
		_, err := offsetSlots("Mars/Olympus", "GMT", winterNow)
		assert.Error(t, err)
	})
}

func TestFormatGMTOffset(t *testing.T) {
	offset, err := FormatGMTOffset("Asia/Kolkata", winterNow)
	assert.NoError(t, err)
	assert.Equal(t, "GMT+05:30", offset)

	offset, err = FormatGMTOffset("America/New_York", winterNow)
	assert.NoError(t, err)
	assert.Equal(t, "GMT-05:00", offset)

	offset, err = FormatGMTOffset("GMT", winterNow)
	assert.NoError(t, err)
	assert.Equal(t, "GMT+00:00", offset)
}

func TestShiftSchedule(t *testing.T) {
	t.Run("Zero Shift Identity", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 9, 0)] = 1
		schedule := Schedule{"2024-01-15": grid}

		shifted, err := ShiftSchedule(schedule, "Europe/Berlin", "Europe/Berlin", winterNow)
		assert.NoError(t, err)
		assert.Len(t, shifted, 1)
		assert.True(t, schedule["2024-01-15"].Equal(shifted["2024-01-15"]))
	})

	t.Run("Ahead Zone Moves Slots Later", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 9, 0)] = 1 // Monday 09:00 GMT
		schedule := Schedule{"2024-01-15": grid}

		shifted, err := ShiftSchedule(schedule, "GMT", "Europe/Berlin", winterNow)
		assert.NoError(t, err)
		assert.Equal(t, 1, shifted["2024-01-15"][HourMinuteToSlot(1, 10, 0)])
		assert.Equal(t, 0, shifted["2024-01-15"][HourMinuteToSlot(1, 9, 0)])
	})

	t.Run("Ahead Zone Spills Into Synthetic Next Week", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(7, 23, 45)] = 1 // Sunday 23:45 GMT
		schedule := Schedule{"2024-01-15": grid}

		shifted, err := ShiftSchedule(schedule, "GMT", "Europe/Berlin", winterNow)
		assert.NoError(t, err)
		// The tail leaves this week entirely.
		assert.Equal(t, 0, shifted["2024-01-15"][HourMinuteToSlot(7, 23, 45)])
		// It lands on the following week's early Monday (00:45 CET).
		next := shifted["2024-01-22"]
		assert.NotNil(t, next)
		assert.Equal(t, 1, next[HourMinuteToSlot(1, 0, 45)])
	})

	t.Run("Behind Zone Moves Slots Earlier", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 9, 0)] = 1 // Monday 09:00 GMT
		schedule := Schedule{"2024-01-15": grid}

		shifted, err := ShiftSchedule(schedule, "GMT", "America/New_York", winterNow)
		assert.NoError(t, err)
		assert.Equal(t, 1, shifted["2024-01-15"][HourMinuteToSlot(1, 4, 0)])
	})

	t.Run("Behind Zone Hands Head To Week Before", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 2, 0)] = 1 // Monday 02:00 GMT
		schedule := Schedule{"2024-01-15": grid}

		shifted, err := ShiftSchedule(schedule, "GMT", "America/New_York", winterNow)
		assert.NoError(t, err)
		// Monday 02:00 GMT is Sunday 21:00 EST of the previous week entry.
		previous := shifted["2024-01-08"]
		assert.NotNil(t, previous)
		assert.Equal(t, 1, previous[HourMinuteToSlot(7, 21, 0)])
	})

	t.Run("Round Trip Recovers Original", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 9, 0)] = 1
		grid[HourMinuteToSlot(3, 14, 30)] = 1
		grid[HourMinuteToSlot(7, 22, 0)] = 1
		schedule := Schedule{
			"2024-01-15": grid,
			"2024-01-22": grid.Clone(),
		}

		there, err := ShiftSchedule(schedule, "GMT", "Europe/Berlin", winterNow)
		assert.NoError(t, err)
		back, err := ShiftSchedule(there, "Europe/Berlin", "GMT", winterNow)
		assert.NoError(t, err)

		for date, original := range schedule {
			assert.True(t, original.Equal(back[date]), "date %s", date)
		}
	})

	t.Run("Consecutive Weeks Carry Between Entries", func(t *testing.T) {
		week1 := ZeroGrid()
		week1[HourMinuteToSlot(7, 23, 45)] = 1 // Sunday 23:45 of week 1
		week2 := ZeroGrid()
		schedule := Schedule{
			"2024-01-15": week1,
			"2024-01-22": week2,
		}

		shifted, err := ShiftSchedule(schedule, "GMT", "Europe/Berlin", winterNow)
		assert.NoError(t, err)
		// Week 1's tail arrives at week 2's Monday morning; only the trailing
		// synthetic week is added, and it carries no real data.
		assert.Equal(t, 1, shifted["2024-01-22"][HourMinuteToSlot(1, 0, 45)])
		assert.True(t, shifted["2024-01-29"].Equal(ZeroGrid()))
	})
}

func TestShiftCompacted(t *testing.T) {
	t.Run("Zero Shift Identity", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 9, 0)] = 3
		compacted := map[string]Grid{"Ada": grid}

		shifted, err := ShiftCompacted(compacted, "GMT", winterNow)
		assert.NoError(t, err)
		assert.True(t, compacted["Ada"].Equal(shifted["Ada"]))
	})

	t.Run("Viewer Ahead", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(1, 9, 0)] = 3
		compacted := map[string]Grid{"Ada": grid}

		shifted, err := ShiftCompacted(compacted, "Europe/Berlin", winterNow)
		assert.NoError(t, err)
		assert.Equal(t, 3, shifted["Ada"][HourMinuteToSlot(1, 10, 0)])
	})

	t.Run("Week Boundary Wraps", func(t *testing.T) {
		grid := ZeroGrid()
		grid[HourMinuteToSlot(7, 23, 45)] = 2
		compacted := map[string]Grid{"Ada": grid}

		shifted, err := ShiftCompacted(compacted, "Europe/Berlin", winterNow)
		assert.NoError(t, err)
		// Wraps onto Monday rather than carrying into another week.
		assert.Equal(t, 2, shifted["Ada"][HourMinuteToSlot(1, 0, 45)])
	})
}
