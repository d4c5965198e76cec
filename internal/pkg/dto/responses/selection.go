package responses

// Selection is the API shape of a stored availability pattern. GMTOffset is
// derived from Timezone at read time, formatted like "GMT+05:30".
type Selection struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	UserID    string           `json:"user_id"`
	UserName  string           `json:"user_name"`
	Timezone  string           `json:"timezone"`
	GMTOffset string           `json:"gmt_offset"`
	Days      map[string][]int `json:"days"`
}

type SelectionSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timezone  string `json:"timezone"`
	GMTOffset string `json:"gmt_offset"`
}
