package responses

import "time"

type Group struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Code          string           `json:"code"`
	StartDate     string           `json:"start_date"`
	DurationWeeks int              `json:"duration_weeks"`
	Selections    []string         `json:"selections"`
	Compacted     map[string][]int `json:"compacted_availability,omitempty"`
	LastUpdated   time.Time        `json:"last_updated"`
}

type CreateGroup struct {
	ID   string `json:"id"`
	Code string `json:"code"`
}

// GroupWeekView is the live aggregation for one calendar week, shifted into
// the viewer's timezone.
type GroupWeekView struct {
	DateKey    string           `json:"date_key"`
	Timezone   string           `json:"timezone"`
	StartHour  int              `json:"start_hour"`
	EndHour    int              `json:"end_hour"`
	PerMember  map[string][]int `json:"per_member"`
	Joint      []int            `json:"joint"`
	IdealSlots []int            `json:"ideal_slots"`
}

type GroupExport struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
}

type TimezoneOffset struct {
	Timezone  string `json:"timezone"`
	GMTOffset string `json:"gmt_offset"`
}
