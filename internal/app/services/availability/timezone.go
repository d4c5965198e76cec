package availability

import (
	"fmt"
	"time"
)

// ReferenceZone is the common zone group compactions are normalized into.
const ReferenceZone = "GMT"

// fixCalcutta translates the modern IANA name to the legacy alias present in
// every locale database we target. No other aliasing is performed.
func fixCalcutta(timezone string) string {
	if timezone == "Asia/Kolkata" {
		return "Asia/Calcutta"
	}
	return timezone
}

// zoneOffsetMinutes returns the UTC offset of a zone in minutes at the given
// instant. DST is approximated by evaluating at the caller-supplied instant
// rather than per recorded week.
func zoneOffsetMinutes(timezone string, now time.Time) (int, error) {
	loc, err := time.LoadLocation(fixCalcutta(timezone))
	if err != nil {
		return 0, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	_, seconds := now.In(loc).Zone()
	return seconds / 60, nil
}

// offsetSlots returns the signed quarter-hour slot difference between two
// zones at the given instant: positive when fromTz is ahead of toTz.
// Fractional-hour zones land on a whole slot because offsets are multiples of
// 15 minutes; anything else rounds to the nearest slot.
func offsetSlots(fromTz, toTz string, now time.Time) (int, error) {
	from, err := zoneOffsetMinutes(fromTz, now)
	if err != nil {
		return 0, err
	}
	to, err := zoneOffsetMinutes(toTz, now)
	if err != nil {
		return 0, err
	}
	diff := from - to
	if diff >= 0 {
		return (diff + 7) / 15, nil
	}
	return -((-diff + 7) / 15), nil
}

// FormatGMTOffset renders a zone's current offset as "GMT+hh:mm" / "GMT-hh:mm".
func FormatGMTOffset(timezone string, now time.Time) (string, error) {
	minutes, err := zoneOffsetMinutes(timezone, now)
	if err != nil {
		return "", err
	}
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("GMT%s%02d:%02d", sign, minutes/60, minutes%60), nil
}

// ShiftSchedule re-expresses a weekly schedule recorded in fromTz as if it had
// been recorded in toTz. The shift is a rotation of each week's 672-slot view;
// slots crossing the week boundary carry into the adjacent week's entry, and
// when that entry does not exist a synthetic date ± 1 week entry is created
// under the repeating-weekly assumption. A zero offset difference returns the
// input unchanged.
func ShiftSchedule(schedule Schedule, fromTz, toTz string, now time.Time) (Schedule, error) {
	diff, err := offsetSlots(fromTz, toTz, now)
	if err != nil {
		return nil, err
	}
	if diff == 0 {
		return schedule, nil
	}

	indexDiff := diff
	if indexDiff < 0 {
		indexDiff = -indexDiff
	}
	dates := sortedDates(schedule)
	shifted := make(Schedule, len(schedule)+1)

	if diff < 0 {
		// The new zone is ahead: slots move later in local time. Each week's
		// trailing slots spill into the following week's leading slots.
		hanging := make([]int, indexDiff)
		for _, date := range dates {
			rotated := toRotationLayout(schedule[date])
			kept := rotated[:RotationLength-indexDiff]
			shifted[date] = fromRotationLayout(concat(hanging, kept))
			hanging = rotated[RotationLength-indexDiff:]

			nextWeek, err := AddWeeks(date, 1)
			if err != nil {
				return nil, err
			}
			if _, ok := schedule[nextWeek]; !ok {
				shifted[nextWeek] = fromRotationLayout(concat(hanging, kept))
			}
		}
	} else {
		// The new zone is behind: slots move earlier. Each week's leading
		// slots are handed back to the previous week's trailing slots.
		carried := make([]int, RotationLength-indexDiff)
		for _, date := range dates {
			rotated := toRotationLayout(schedule[date])
			head := rotated[:indexDiff]

			weekBefore, err := AddWeeks(date, -1)
			if err != nil {
				return nil, err
			}
			if _, ok := schedule[weekBefore]; !ok {
				shifted[weekBefore] = fromRotationLayout(concat(carried, head))
			} else {
				previous := toRotationLayout(shifted[weekBefore])
				shifted[weekBefore] = fromRotationLayout(concat(previous[:RotationLength-indexDiff], head))
			}
			carried = rotated[indexDiff:]
			shifted[date] = fromRotationLayout(concat(carried, head))
		}
	}
	return shifted, nil
}

// ShiftCompacted rotates already-aggregated per-name grids from the reference
// zone into the viewer's zone. Aggregated grids have no per-week identity, so
// the week boundary wraps around instead of carrying.
func ShiftCompacted(compacted map[string]Grid, toTz string, now time.Time) (map[string]Grid, error) {
	diff, err := offsetSlots(ReferenceZone, toTz, now)
	if err != nil {
		return nil, err
	}
	if diff == 0 {
		return compacted, nil
	}

	indexDiff := diff
	if indexDiff < 0 {
		indexDiff = -indexDiff
	}
	shifted := make(map[string]Grid, len(compacted))
	for name, grid := range compacted {
		rotated := toRotationLayout(grid)
		if diff < 0 {
			tail := rotated[RotationLength-indexDiff:]
			shifted[name] = fromRotationLayout(concat(tail, rotated[:RotationLength-indexDiff]))
		} else {
			head := rotated[:indexDiff]
			shifted[name] = fromRotationLayout(concat(rotated[indexDiff:], head))
		}
	}
	return shifted, nil
}

func concat(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
