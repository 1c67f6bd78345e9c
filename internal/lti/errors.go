package lti

import (
	"errors"

	"github.com/san-kum/ltisim/internal/dynamo"
)

var (
	// ErrInvalidSystem indicates an empty denominator, a zero leading
	// denominator coefficient, or a numerator of higher degree than the
	// denominator.
	ErrInvalidSystem = errors.New("lti: invalid system")

	// ErrInvalidStepSize indicates dt <= 0. It is the same sentinel the
	// simulation loop returns.
	ErrInvalidStepSize = dynamo.ErrInvalidStepSize

	// ErrInvalidParameter indicates a constructor argument outside its
	// physical range, such as a non-positive cutoff frequency.
	ErrInvalidParameter = errors.New("lti: invalid parameter")
)
