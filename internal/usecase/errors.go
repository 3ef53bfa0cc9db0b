package usecase

import "errors"

var (
	// ErrValidation indicates user-supplied input failed a bounds or
	// format check. No state changed; nothing needs rolling back.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence indicates the storage layer rejected a write after
	// validation passed. The failed statement's transaction is rolled
	// back by the driver, so no partial state is visible.
	ErrPersistence = errors.New("persistence failure")
)
