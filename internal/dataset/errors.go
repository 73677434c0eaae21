package dataset

import "errors"

// Domain-level dataset error sentinels.
var (
	// ErrInvalidPlate means the input was not a 7-8 digit plate number.
	// Raised before any shard I/O happens.
	ErrInvalidPlate = errors.New("invalid plate format")

	// ErrRecordNotFound means the plate has no recall record. This is a
	// valid, expected outcome (a clean vehicle), not a failure.
	ErrRecordNotFound = errors.New("no recall record found")

	// ErrDatasetUnavailable means a shard could not be fetched or parsed.
	// Retryable: the query that hit it failed, the application did not.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrInvalidShard means a shard digit outside 0-9 was requested.
	ErrInvalidShard = errors.New("shard digit out of range")
)
