package director

import "errors"

var (
	// ErrNotAwaitingApproval is returned when approval arrives for a job
	// that is not paused at the approval gate.
	ErrNotAwaitingApproval = errors.New("job is not waiting for approval")

	// ErrScriptMismatch is returned when an approval payload rewrites the
	// script with a different scene count or different scene ids.
	ErrScriptMismatch = errors.New("approved scenes do not match the drafted script")
)
