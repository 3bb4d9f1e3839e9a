package catapult

import (
	"errors"
	"fmt"
)

// Domain errors for catapult operations.
var (
	// ErrValidation indicates a parameter outside its physical domain.
	ErrValidation = errors.New("catapult: parameter out of valid bounds")

	// ErrNoProjectile indicates a launch query before anything was loaded.
	ErrNoProjectile = errors.New("catapult: no projectile loaded")
)

// ParamError reports which parameter was rejected and why.
type ParamError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("catapult: invalid %s %g: %s", e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrValidation
}

func invalid(param string, value float64, reason string) error {
	return &ParamError{Param: param, Value: value, Reason: reason}
}
