package models

import "errors"

var (
	// ErrNotFound is returned when a referenced resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict signals a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput signals failed input validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden signals the caller's role does not permit the action.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyAssigned is returned when assigning an asset that is not available.
	ErrAlreadyAssigned = errors.New("asset is already assigned")
	// ErrNotAssigned is returned when unassigning an asset that has no assignee.
	ErrNotAssigned = errors.New("asset is not assigned")
	// ErrDisposed is returned when modifying a disposed asset.
	ErrDisposed = errors.New("asset has been disposed")
)
