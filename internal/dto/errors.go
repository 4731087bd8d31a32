package dto

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("errRecordNotFound")
	ErrForbidden     = errors.New("errForbidden")
	ErrAlreadyExists = errors.New("errAlreadyExists")
)

// Violation codes for ValidationError.
const (
	ViolationRequired      = "required"
	ViolationTooShort      = "too_short"
	ViolationInvalidFormat = "invalid_format"
)

// ValidationError is a single field-level violation. The validator collects
// every violation before failing so the caller can render all of them.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Error())
	}
	return strings.Join(msgs, "; ")
}
