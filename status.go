package accounts

import "fmt"

// Status is the lifecycle state of an account.
type Status int8

const (
	StatusInProgress Status = iota + 1
	StatusActive
	StatusDisabled
	StatusDeleted
)

// status codes as they are persisted
var statusCodes = map[Status]string{
	StatusInProgress: "In progress",
	StatusActive:     "Active",
	StatusDisabled:   "Disabled",
	StatusDeleted:    "Deleted",
}

func (s Status) String() string {
	if c, ok := statusCodes[s]; ok {
		return c
	}
	return fmt.Sprintf("Status(%d)", int8(s))
}

// ParseStatus decodes a persisted status code. Codes written by anything
// other than this package are rejected rather than mapped to a zero value.
func ParseStatus(code string) (Status, error) {
	for s, c := range statusCodes {
		if c == code {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, code)
}
