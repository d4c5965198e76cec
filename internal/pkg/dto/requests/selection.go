package requests

// CreateSelection carries a new availability pattern. Days maps date keys
// (Monday of the week, YYYY-MM-DD) to full-width slot grids.
type CreateSelection struct {
	Title    string           `json:"title" validate:"required,max=100"`
	Timezone string           `json:"timezone" validate:"required,timezone"`
	Days     map[string][]int `json:"days" validate:"required,min=1"`
}

type UpdateSelection struct {
	Title    string           `json:"title" validate:"omitempty,max=100"`
	Timezone string           `json:"timezone" validate:"omitempty,timezone"`
	Days     map[string][]int `json:"days" validate:"omitempty,min=1"`
}
