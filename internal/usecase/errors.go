package usecase

import (
	"errors"
	"fmt"
)

// ErrDispatchFailed matches any DispatchError via errors.Is.
var ErrDispatchFailed = errors.New("webhook dispatch failed")

// ErrReportInFlight is returned while another daily report is being sent.
var ErrReportInFlight = errors.New("daily report already in progress")

type DispatchError struct {
	StatusCode int
	Err        error
}

func (e *DispatchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d", ErrDispatchFailed, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrDispatchFailed, e.Err)
	}
	return ErrDispatchFailed.Error()
}

func (e *DispatchError) Is(target error) bool {
	return target == ErrDispatchFailed
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
