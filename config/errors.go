package config

import "errors"

// Sentinel errors for unusable settings.
// Use errors.Is to check: errors.Is(err, config.ErrInvalidMaxCq)
var (
	ErrInvalidMaxCq         = errors.New("config: max-cq must be positive")
	ErrInvalidConfidence    = errors.New("config: confidence must be between 0 and 1")
	ErrInvalidMinReplicates = errors.New("config: min-replicates must be at least 2")
	ErrInvalidUndetermined  = errors.New(`config: undetermined must be "drop" or "ceiling"`)
)
