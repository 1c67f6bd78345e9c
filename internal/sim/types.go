package sim

import "github.com/san-kum/ltisim/internal/dynamo"

type Config struct {
	Dt float64
	// ValidateState stops the run at the first NaN/Inf state. Off by
	// default: a diverging system is a valid, if unbounded, result.
	ValidateState bool
}

type Result = dynamo.Result
