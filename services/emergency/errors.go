package emergency

import "fmt"

// EmergencyError carries a stable code alongside the message.
type EmergencyError struct {
	Code    string
	Message string
}

func (e *EmergencyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrUnauthorized is returned for every failed access validation. A single
// value for all causes so callers cannot tell a wrong token from a missing
// username or an expired event.
var ErrUnauthorized = &EmergencyError{
	Code:    "unauthorized",
	Message: "access denied",
}
