package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mondayNineGrid() Grid {
	g := ZeroGrid()
	g[HourMinuteToSlot(1, 9, 0)] = 1
	return g
}

func TestAggregateWeek(t *testing.T) {
	t.Run("Two Members Same Slot", func(t *testing.T) {
		named := map[string]Schedule{
			"Ada":   {"2024-05-06": mondayNineGrid()},
			"Grace": {"2024-05-06": mondayNineGrid()},
		}

		view := AggregateWeek(named, "2024-05-06")

		assert.Equal(t, 9, view.StartHour)
		assert.Equal(t, 10, view.EndHour)
		slot := HourMinuteToSlot(1, 9, 0) - 9*SlotsPerHourBand
		assert.Equal(t, 2, view.Joint[slot])
		assert.Equal(t, 1, view.PerMember["Ada"][slot])
		assert.Equal(t, 1, view.PerMember["Grace"][slot])
		assert.Equal(t, []int{slot}, view.Ideal)
	})

	t.Run("Joint Bounded By Member Count", func(t *testing.T) {
		partial := ZeroGrid()
		partial[HourMinuteToSlot(1, 9, 0)] = 1
		partial[HourMinuteToSlot(2, 11, 0)] = 1
		named := map[string]Schedule{
			"Ada":   {"2024-05-06": mondayNineGrid()},
			"Grace": {"2024-05-06": partial},
		}

		view := AggregateWeek(named, "2024-05-06")
		for _, v := range view.Joint {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 2)
		}
	})

	t.Run("Resolves Via Closest Date", func(t *testing.T) {
		named := map[string]Schedule{
			"Ada": {"2024-05-06": mondayNineGrid()},
		}

		view := AggregateWeek(named, "2024-06-10")
		slot := HourMinuteToSlot(1, 9, 0) - 9*SlotsPerHourBand
		assert.Equal(t, 1, view.Joint[slot])
	})

	t.Run("Empty Member Renders Partial", func(t *testing.T) {
		named := map[string]Schedule{
			"Ada":   {"2024-05-06": mondayNineGrid()},
			"Grace": {},
		}

		view := AggregateWeek(named, "2024-05-06")
		assert.Contains(t, view.PerMember, "Grace")
		slot := HourMinuteToSlot(1, 9, 0) - 9*SlotsPerHourBand
		assert.Equal(t, 0, view.PerMember["Grace"][slot])
		assert.Equal(t, 1, view.Joint[slot])
	})
}

func TestIdealSlots(t *testing.T) {
	t.Run("Ties All Marked", func(t *testing.T) {
		joint := Grid{0, 2, 1, 2, 0}
		assert.Equal(t, []int{1, 3}, IdealSlots(joint))
	})

	t.Run("Zero Maximum Marks Nothing", func(t *testing.T) {
		assert.Nil(t, IdealSlots(Grid{0, 0, 0}))
	})
}

func TestCompactSchedules(t *testing.T) {
	t.Run("Counts Free Weeks Per Slot", func(t *testing.T) {
		week1 := mondayNineGrid()
		week3 := ZeroGrid() // respecified later: not free anymore
		named := map[string]Schedule{
			"Ada": {
				"2024-05-06": week1,
				"2024-05-20": week3,
			},
		}

		compacted, err := CompactSchedules(named, "2024-05-06", 4)
		assert.NoError(t, err)
		// Free weeks 0 and 1 (inherited), unavailable weeks 2 and 3.
		assert.Equal(t, 2, compacted["Ada"][HourMinuteToSlot(1, 9, 0)])
	})

	t.Run("Recurring Pattern Spans Whole Duration", func(t *testing.T) {
		named := map[string]Schedule{
			"Ada": {"2024-05-06": mondayNineGrid()},
		}

		compacted, err := CompactSchedules(named, "2024-05-06", 6)
		assert.NoError(t, err)
		assert.Equal(t, 6, compacted["Ada"][HourMinuteToSlot(1, 9, 0)])
	})

	t.Run("Empty Schedule Contributes Zero Series", func(t *testing.T) {
		named := map[string]Schedule{"Ada": {}}

		compacted, err := CompactSchedules(named, "2024-05-06", 4)
		assert.NoError(t, err)
		assert.True(t, compacted["Ada"].Equal(ZeroGrid()))
	})
}
