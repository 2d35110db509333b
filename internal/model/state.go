package model

// ViewerState represents the state of the still-frame viewer
type ViewerState string

const (
	// StateIdle means no fetch has been attempted yet
	StateIdle ViewerState = "Idle"

	// StateFetching means a frame download is in progress
	StateFetching ViewerState = "Fetching"

	// StateDisplaying means the latest fetch succeeded and its frame is shown
	StateDisplaying ViewerState = "Displaying"

	// StateError means the latest fetch failed; the previous frame, if any, stays visible
	StateError ViewerState = "Error"
)

// String returns the string representation of ViewerState
func (vs ViewerState) String() string {
	return string(vs)
}

// IsBusy returns true if a fetch is in progress
func (vs ViewerState) IsBusy() bool {
	return vs == StateFetching
}

// IsError returns true if the viewer is in the error state
func (vs ViewerState) IsError() bool {
	return vs == StateError
}
