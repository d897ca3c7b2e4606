package registry

import "errors"

var (
	// ErrUnauthorized is returned when the caller does not hold the role an
	// operation requires.
	ErrUnauthorized = errors.New("caller not authorized for required role")

	// ErrZeroIdentifier is returned when a query is submitted under the
	// all-zero identifier, which is reserved as the "absent" sentinel.
	ErrZeroIdentifier = errors.New("query identifier is zero")

	// ErrZeroResult is returned when a result reference is the all-zero
	// sentinel.
	ErrZeroResult = errors.New("result reference is zero")

	// ErrSlotExhausted is returned when the current epoch already holds the
	// maximum number of registrations. The caller must wait for the epoch
	// to advance.
	ErrSlotExhausted = errors.New("epoch registration capacity exhausted")

	// ErrDuplicateIdentifier is returned when a query identifier has already
	// been registered. Permanent for that identifier.
	ErrDuplicateIdentifier = errors.New("query identifier already registered")

	// ErrNotFound is returned when an operation references an unknown query
	// identifier.
	ErrNotFound = errors.New("query not found")

	// ErrAlreadyStored is returned when a result has already been stored for
	// the query. Permanent for that identifier.
	ErrAlreadyStored = errors.New("result already stored")

	// ErrSlotInvalid is returned when a ranker slot index is outside the
	// fixed table. Permanent for that index.
	ErrSlotInvalid = errors.New("ranker slot index out of range")
)
