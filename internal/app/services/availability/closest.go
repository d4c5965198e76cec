package availability

import "sort"

// ClosestDate resolves the grid key to use for a target week. An exact key
// wins; otherwise the greatest key strictly before the target (weeks repeat
// forward until respecified); otherwise the earliest recorded key. The second
// return is false only when the schedule has no keys at all; callers must
// treat an empty schedule as its own error case rather than lean on the
// earliest-key fallback.
func ClosestDate(dateKey string, schedule Schedule) (string, bool) {
	if len(schedule) == 0 {
		return "", false
	}
	if _, ok := schedule[dateKey]; ok {
		return dateKey, true
	}
	dates := sortedDates(schedule)
	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i] < dateKey {
			return dates[i], true
		}
	}
	return dates[0], true
}

// ResolveGrid resolves the grid for a target week via ClosestDate.
func ResolveGrid(dateKey string, schedule Schedule) (Grid, bool) {
	key, ok := ClosestDate(dateKey, schedule)
	if !ok {
		return nil, false
	}
	return schedule[key], true
}

// sortedDates returns the schedule's keys in ascending order. Zero-padded ISO
// dates sort correctly as strings.
func sortedDates(schedule Schedule) []string {
	dates := make([]string, 0, len(schedule))
	for date := range schedule {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
