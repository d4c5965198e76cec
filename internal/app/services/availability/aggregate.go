package availability

// WeekView is the live display aggregation for one calendar week: a binary
// presence grid per member plus a joint count grid, jointly trimmed to the
// union of everyone's nonzero slots.
type WeekView struct {
	PerMember map[string]Grid
	Joint     Grid
	StartHour int
	EndHour   int
	Ideal     []int
}

// AggregateWeek combines member schedules (already normalized to a common
// zone) for the week containing dateKey. Members whose schedule has no
// recorded weeks are rendered empty rather than failing: the display path may
// show partial series while data loads.
func AggregateWeek(named map[string]Schedule, dateKey string) WeekView {
	joint := ZeroGrid()
	perMember := make(map[string]Grid, len(named))
	for name, schedule := range named {
		presence := ZeroGrid()
		resolved, ok := ResolveGrid(dateKey, schedule)
		if ok {
			for i := 0; i < len(resolved) && i < GridLength; i++ {
				if resolved[i] != 0 {
					presence[i] = 1
					joint[i]++
				}
			}
		}
		perMember[name] = presence
	}

	trimmedMembers, startHour, endHour := TrimSchedule(Schedule(perMember))
	span := (endHour - startHour) * SlotsPerHourBand
	trimmedJoint := joint[startHour*SlotsPerHourBand : startHour*SlotsPerHourBand+span].Clone()

	return WeekView{
		PerMember: trimmedMembers,
		Joint:     trimmedJoint,
		StartHour: startHour,
		EndHour:   endHour,
		Ideal:     IdealSlots(trimmedJoint),
	}
}

// IdealSlots returns every index holding the maximum joint count. Ties all
// count as ideal; a zero maximum marks nothing.
func IdealSlots(joint Grid) []int {
	max := 0
	for _, v := range joint {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		return nil
	}
	ideal := make([]int, 0, 4)
	for i, v := range joint {
		if v == max {
			ideal = append(ideal, i)
		}
	}
	return ideal
}

// CompactSchedules produces the duration-spanning per-member score series
// persisted on a group: for each week offset within the group's duration the
// member's grid is resolved via ClosestDate and every free slot adds one, so
// compacted[name][slot] counts the weeks the member is free at that slot.
// Schedules must already be normalized into the reference zone. Members with
// an empty schedule contribute an all-zero series.
func CompactSchedules(named map[string]Schedule, startDateKey string, durationWeeks int) (map[string]Grid, error) {
	compacted := make(map[string]Grid, len(named))
	for name, schedule := range named {
		total := ZeroGrid()
		for week := 0; week < durationWeeks; week++ {
			weekKey, err := AddWeeks(startDateKey, week)
			if err != nil {
				return nil, err
			}
			resolved, ok := ResolveGrid(weekKey, schedule)
			if !ok {
				break
			}
			for i := 0; i < len(resolved) && i < GridLength; i++ {
				if resolved[i] != 0 {
					total[i]++
				}
			}
		}
		compacted[name] = total
	}
	return compacted, nil
}
