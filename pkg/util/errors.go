// Package util provides logging helpers and common error types.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for action validation and store failures
var (
	ErrMissingParameter     = errors.New("required parameter missing")
	ErrAmbiguousDestination = errors.New("exactly one destination must be given")
	ErrSlotConflict         = errors.New("frequency slot conflict")
	ErrConnectionNotFound   = errors.New("connection not found")
	ErrDeviceNotFound       = errors.New("device not found")
	ErrTransactionFailed    = errors.New("transaction failed")
	ErrValidationFailed     = errors.New("validation failed")
)

// MissingParameterError names the absent required input.
type MissingParameterError struct {
	Param string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("required parameter '%s' missing", e.Param)
}

func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

// NewMissingParameterError creates a missing-parameter error
func NewMissingParameterError(param string) *MissingParameterError {
	return &MissingParameterError{Param: param}
}

// SlotConflictError reports a frequency slot overlapping an existing
// media channel on a degree.
type SlotConflictError struct {
	Device    string
	Degree    int
	Direction string
	Frequency string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("frequency slot %s overlaps existing MC on DEG%d %s of %s",
		e.Frequency, e.Degree, e.Direction, e.Device)
}

func (e *SlotConflictError) Unwrap() error {
	return ErrSlotConflict
}

// NotFoundError reports a missing resource of a given kind on a device.
type NotFoundError struct {
	Device string
	Kind   string
	Name   string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "device" {
		return fmt.Sprintf("device '%s' not found", e.Name)
	}
	return fmt.Sprintf("%s '%s' not found on device %s", e.Kind, e.Name, e.Device)
}

func (e *NotFoundError) Unwrap() error {
	if e.Kind == "device" {
		return ErrDeviceNotFound
	}
	return ErrConnectionNotFound
}

// NewConnectionNotFoundError creates a not-found error for a connection
func NewConnectionNotFoundError(device, name string) *NotFoundError {
	return &NotFoundError{Device: device, Kind: "connection", Name: name}
}

// NewDeviceNotFoundError creates a not-found error for a device
func NewDeviceNotFoundError(name string) *NotFoundError {
	return &NotFoundError{Device: name, Kind: "device", Name: name}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// HasErrors returns true if there are validation errors
func (v *ValidationBuilder) HasErrors() bool {
	return len(v.errors) > 0
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
