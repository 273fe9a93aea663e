package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Playback errors
	ErrNoVideo         = fmt.Errorf("no video loaded")
	ErrPlayerGone      = fmt.Errorf("player connection lost")
	ErrInvalidRate     = fmt.Errorf("unsupported playback rate")
	ErrPlayerUnusable  = fmt.Errorf("player unavailable")
	ErrRequestTimedOut = fmt.Errorf("player request timed out")

	// Measurement and history errors
	ErrNoResult      = fmt.Errorf("no measurable flight time")
	ErrNoCurrentUser = fmt.Errorf("no current user")
	ErrUserNotFound  = fmt.Errorf("user not found")
	ErrRecordNotFound = fmt.Errorf("record not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
