package availability

// TrimGrid slices a single full-width grid down to the hour-aligned window
// containing every nonzero slot. An all-zero grid trims to an empty window
// with startHour == endHour == 0.
func TrimGrid(g Grid) (trimmed Grid, startHour, endHour int) {
	startIndex, endIndex := 0, 0
	for i := 0; i < len(g); i++ {
		if g[i] != 0 {
			startIndex = HourBand(i) * SlotsPerHourBand
			break
		}
	}
	for i := len(g) - 1; i >= 0; i-- {
		if g[i] != 0 {
			endIndex = HourBand(i)*SlotsPerHourBand + SlotsPerHourBand
			break
		}
	}
	return g[startIndex:endIndex].Clone(), startIndex / SlotsPerHourBand, endIndex / SlotsPerHourBand
}

// TrimSchedule slices every grid in the schedule to the common hour-aligned
// window covering every nonzero slot of every date. Trimming is lossy only
// for regions that were already all zero.
func TrimSchedule(schedule Schedule) (trimmed Schedule, startHour, endHour int) {
	startIndex := GridLength
	endIndex := 0
	for _, grid := range schedule {
		for i := 0; i < len(grid); i++ {
			if grid[i] != 0 {
				first := HourBand(i) * SlotsPerHourBand
				if first < startIndex {
					startIndex = first
				}
				break
			}
		}
		for i := len(grid) - 1; i >= 0; i-- {
			if grid[i] != 0 {
				last := HourBand(i)*SlotsPerHourBand + SlotsPerHourBand
				if last > endIndex {
					endIndex = last
				}
				break
			}
		}
	}
	if startIndex > endIndex {
		// Nothing nonzero anywhere.
		startIndex, endIndex = 0, 0
	}
	trimmed = make(Schedule, len(schedule))
	for date, grid := range schedule {
		trimmed[date] = grid[startIndex:endIndex].Clone()
	}
	return trimmed, startIndex / SlotsPerHourBand, endIndex / SlotsPerHourBand
}

// UntrimGrid pads a trimmed grid back to full width with zeros outside
// [startHour, endHour).
func UntrimGrid(g Grid, startHour, endHour int) Grid {
	out := make(Grid, 0, GridLength)
	out = append(out, make(Grid, startHour*SlotsPerHourBand)...)
	out = append(out, g...)
	out = append(out, make(Grid, (HoursPerDay-endHour)*SlotsPerHourBand)...)
	return out
}

// UntrimSchedule pads every grid in a trimmed schedule back to full width.
func UntrimSchedule(schedule Schedule, startHour, endHour int) Schedule {
	out := make(Schedule, len(schedule))
	for date, grid := range schedule {
		out[date] = UntrimGrid(grid, startHour, endHour)
	}
	return out
}

// ReTrimSchedule re-windows a previously trimmed schedule to new hour bounds,
// widening with zero padding or narrowing by dropping slots.
func ReTrimSchedule(schedule Schedule, oldStartHour, oldEndHour, newStartHour, newEndHour int) Schedule {
	out := make(Schedule, len(schedule))
	for date, grid := range schedule {
		full := UntrimGrid(grid, oldStartHour, oldEndHour)
		out[date] = full[newStartHour*SlotsPerHourBand : newEndHour*SlotsPerHourBand].Clone()
	}
	return out
}
