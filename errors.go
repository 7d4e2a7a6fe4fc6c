package accounts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrExistingUsername = errors.New("username in use")
	ErrNotFound         = errors.New("account not found")
	ErrUnknownStatus    = errors.New("unknown account status")
)

// FieldError describes the first rule a single field failed.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
}

// ValidationErrors holds one FieldError per invalid field.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "; ")
}

func (ve ValidationErrors) Unwrap() error { return ErrInvalidInput }

// NotFoundError is returned when no account matches the submitted
// credentials. An unknown username and a wrong password are not told apart.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User %s Not Found", e.Username)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
