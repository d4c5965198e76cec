package requests

type CreateGroup struct {
	Name          string `json:"name" validate:"required,max=100"`
	StartDate     string `json:"start_date" validate:"required,date_key"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,gte=1,lte=52"`
	SelectionID   string `json:"selection_id" validate:"required"`
}

type JoinGroup struct {
	Code        string `json:"code" validate:"required,len=5"`
	SelectionID string `json:"selection_id" validate:"required"`
}

type ChangeGroupAvailability struct {
	OldSelectionID string `json:"old_selection_id" validate:"required"`
	NewSelectionID string `json:"new_selection_id" validate:"required"`
}

type LeaveGroup struct {
	SelectionID string `json:"selection_id" validate:"required"`
}
