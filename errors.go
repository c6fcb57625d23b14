package snapjs

import "errors"

// Common errors used throughout the snapjs package
var (
	// ErrConfigValidation is returned when configuration validation fails
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrConfigFileExists indicates a configuration file would be overwritten.
	ErrConfigFileExists = errors.New("configuration file already exists")
)
