package config

import "errors"

var (
	// ErrMinScore returned when min score is out of 0..100 range
	ErrMinScore = errors.New("min score must be between 0 and 100")
	// ErrNoRules returned when the rule list is empty
	ErrNoRules = errors.New("at least one rule must be configured")
	// ErrTimeout returned when a timeout is not positive
	ErrTimeout = errors.New("timeout must be positive")
)
