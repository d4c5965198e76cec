package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Selection messages
	SelectionCreatedSuccess = "selection created successfully"
	SelectionUpdatedSuccess = "selection updated successfully"
	SelectionDeletedSuccess = "selection deleted successfully"
	SelectionGetSuccess     = "get selection successfully"
	SelectionListSuccess    = "get selections successfully"

	// Group messages
	GroupCreatedSuccess    = "group created successfully"
	GroupGetSuccess        = "get group successfully"
	GroupListSuccess       = "get groups successfully"
	GroupJoinedSuccess     = "joined group successfully"
	GroupLeftSuccess       = "left group successfully"
	GroupDeletedSuccess    = "group deleted successfully"
	GroupUpdatedSuccess    = "group availability updated successfully"
	GroupWeekViewSuccess   = "get group week view successfully"
	GroupExportedSuccess   = "group availability exported successfully"
	GroupRecomputedSuccess = "group availability recomputed successfully"

	// Timezone messages
	TimezoneOffsetSuccess = "get timezone offset successfully"
)
