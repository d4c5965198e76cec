package availability

import "time"

// The week grid is stored row-major by quarter hour: index = quarter*DayColumns + column.
// Column 0 is an always-empty padding column kept for the stored 96x8 scheme; columns
// 1..7 are Monday..Sunday. A one hour band therefore spans SlotsPerHourBand consecutive
// indices covering every day, which is what trimming slices on.
const (
	QuartersPerDay   = 96
	DayColumns       = 8
	GridLength       = QuartersPerDay * DayColumns // 768
	RotationLength   = GridLength - QuartersPerDay // 672, padding column dropped
	SlotsPerHourBand = GridLength / 24             // 32
	HoursPerDay      = 24

	// DateKeyLayout formats the Monday week-start keys used by schedules.
	DateKeyLayout = "2006-01-02"
)

// Grid is one week of availability. Per-user grids hold 0 or 1; aggregated
// grids hold small non-negative counts.
type Grid []int

// Schedule maps Monday week-start date keys to grids. All grids in one
// schedule have equal length.
type Schedule map[string]Grid

// Clone returns an independent copy of the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	copy(out, g)
	return out
}

// Clone returns an independent copy of the schedule and every grid in it.
func (s Schedule) Clone() Schedule {
	out := make(Schedule, len(s))
	for date, grid := range s {
		out[date] = grid.Clone()
	}
	return out
}

// Equal reports whether two grids have identical length and slots.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

// ZeroGrid returns an all-zero full-width grid.
func ZeroGrid() Grid {
	return make(Grid, GridLength)
}

// HourBand returns the hour a full-width grid index falls in.
func HourBand(index int) int {
	return index / SlotsPerHourBand
}

// SlotToHourMinute decomposes a full-width grid index into its weekday column,
// hour and minute. Column 0 is the padding column and carries no time meaning.
func SlotToHourMinute(index int) (column, hour, minute int) {
	quarter := index / DayColumns
	column = index % DayColumns
	return column, quarter / 4, (quarter % 4) * 15
}

// HourMinuteToSlot is the inverse of SlotToHourMinute. Minute is truncated to
// the containing quarter hour.
func HourMinuteToSlot(column, hour, minute int) int {
	quarter := hour*4 + minute/15
	return quarter*DayColumns + column
}

// toRotationLayout re-packs a full-width grid column-major (day-major, 96
// quarters per day) and drops the padding column, leaving a 672-slot view in
// which a timezone shift is a plain rotation.
func toRotationLayout(g Grid) []int {
	transposed := make([]int, GridLength)
	for i := range g {
		quarter := i / DayColumns
		column := i % DayColumns
		transposed[column*QuartersPerDay+quarter] = g[i]
	}
	return transposed[QuartersPerDay:]
}

// fromRotationLayout restores the stored row-major packing, re-inserting the
// all-zero padding column.
func fromRotationLayout(rotated []int) Grid {
	padded := make([]int, QuartersPerDay, GridLength)
	padded = append(padded, rotated...)
	out := make(Grid, GridLength)
	for i := 0; i < GridLength; i++ {
		column := i / QuartersPerDay
		quarter := i % QuartersPerDay
		out[quarter*DayColumns+column] = padded[i]
	}
	return out
}

// FormatDateKey renders a date as a schedule date key.
func FormatDateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a schedule date key.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateKeyLayout, key)
}

// StartOfWeek returns the Monday 00:00 of the week containing t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	t = t.AddDate(0, 0, -offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddWeeks moves a date key forward (or backward) by whole weeks.
func AddWeeks(key string, weeks int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return FormatDateKey(t.AddDate(0, 0, 7*weeks)), nil
}

// WeeksBetween returns the number of whole weeks from start to end.
func WeeksBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / (24 * 7))
}
