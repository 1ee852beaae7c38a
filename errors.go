package geotrans

import "github.com/cockroachdb/errors"

// Error kinds returned by the engine. Callers match them with errors.Is; the
// returned errors carry additional context wrapped around these values.
var (
	// ErrConfiguration reports missing or contradictory construction
	// parameters.
	ErrConfiguration = errors.New("configuration error")

	// ErrOutOfRange reports a latitude outside ±90° beyond rounding tolerance.
	ErrOutOfRange = errors.New("out of range")

	// ErrProjectionSingularity reports a point that projects into infinity.
	ErrProjectionSingularity = errors.New("point projects into infinity")

	// ErrConvergence reports an iterative solver that exhausted its
	// iteration cap.
	ErrConvergence = errors.New("failed to converge")

	// ErrUnsupportedDatumType reports a datum whose transform type is not
	// 3-term or 7-term.
	ErrUnsupportedDatumType = errors.New("unsupported datum type")

	// ErrUnknownParameter reports an undeclared parameter or coordinate part
	// name.
	ErrUnknownParameter = errors.New("unknown parameter")
)
