package errs

import (
	"errors"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrSlotConflict     = errors.New("time slot is already booked")
	ErrStoreUnavailable = errors.New("store unavailable")
)

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
