package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrSimulationNotFound indicates that a simulation with the given ID does not exist.
	ErrSimulationNotFound = errors.New("simulation not found")

	// ErrCacheMiss indicates that a cache key holds no value.
	ErrCacheMiss = errors.New("cache miss")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrInvalidShareToken indicates a share token that is malformed, tampered with or expired.
	ErrInvalidShareToken = errors.New("invalid or expired share token")

	// ErrInvalidSimulationType indicates an unknown simulation type filter or tag.
	ErrInvalidSimulationType = errors.New("invalid simulation type")

	// ErrEmptyBatch indicates a batch request without scenarios.
	ErrEmptyBatch = errors.New("batch contains no scenarios")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	ErrFailedToRetrieveSimulations = errors.New("failed to retrieve simulations")
	ErrFailedToRetrieveSimulation  = errors.New("failed to retrieve simulation")
	ErrFailedToSaveSimulation      = errors.New("failed to save simulation")
	ErrFailedToDeleteSimulation    = errors.New("failed to delete simulation")
	ErrFailedToGetVersionInfo      = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates a stored row that cannot be decoded back into a simulation.
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
