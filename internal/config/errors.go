package config

import "errors"

var (
	ErrMissingAPIBase = errors.New("deepseek api base is required")
	ErrInvalidAPIBase = errors.New("deepseek api base must be an http(s) url")
	ErrInvalidTimeout = errors.New("deepseek timeout must be positive")
	ErrInvalidPath    = errors.New("server path must start with /")
)
