// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"errors"
	"fmt"
)

// NetworkError is returned when the request to a weather API could not be performed.
type NetworkError struct {
	Source string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %s", e.Source, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is returned when a weather API answered with a non-success status code.
type StatusError struct {
	Source     string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: API returned non-positive response code: %d", e.Source, e.StatusCode)
}

// DataFormatError is returned when a response lacks the expected location or element
// structure.
type DataFormatError struct {
	Source string
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unexpected data format: %s: %s", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: unexpected data format: %s", e.Source, e.Reason)
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

// ErrorKind returns a short classifier for err: "network", "status", "format" or "unknown".
func ErrorKind(err error) string {
	var netErr *NetworkError
	var statusErr *StatusError
	var formatErr *DataFormatError
	switch {
	case errors.As(err, &netErr):
		return "network"
	case errors.As(err, &statusErr):
		return "status"
	case errors.As(err, &formatErr):
		return "format"
	default:
		return "unknown"
	}
}
