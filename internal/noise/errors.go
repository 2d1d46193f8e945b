package noise

import "errors"

var (
	// ErrFieldNotBuilt indicates a gradient lookup on a field that was never rebuilt.
	ErrFieldNotBuilt = errors.New("noise: gradient field queried before rebuild")

	// ErrUnknownEngine indicates a registry lookup for a name that was never registered.
	ErrUnknownEngine = errors.New("noise: unknown engine")
)
