package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrScenarioNotFound   = fmt.Errorf("%w: scenario", ErrNotFound)
	ErrProjectionNotFound = fmt.Errorf("%w: projection", ErrNotFound)

	// Configuration validation errors - these belong to the "fatal" tier:
	// a policy that fails construction never reaches the calculation engine
	ErrInvalidMechanism  = errors.New("invalid funding mechanism")
	ErrInvalidAllocation = errors.New("invalid surplus allocation rules")
	ErrInvalidBreaker    = errors.New("invalid circuit breaker rule")
	ErrInvalidTarget     = errors.New("invalid target spending")
	ErrInvalidHorizon    = errors.New("invalid projection horizon")

	// Simulation errors
	ErrEmptyGrowthPath = errors.New("empty growth path")
	ErrTrialFailed     = errors.New("monte carlo trial failed")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewMechanismError(kind string, reason string) error {
	return fmt.Errorf("%w: kind %s: %s", ErrInvalidMechanism, kind, reason)
}

func NewBreakerError(trigger string, reason string) error {
	return fmt.Errorf("%w: trigger %s: %s", ErrInvalidBreaker, trigger, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidMechanism) ||
		errors.Is(err, ErrInvalidAllocation) ||
		errors.Is(err, ErrInvalidBreaker) ||
		errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrInvalidHorizon)
}
