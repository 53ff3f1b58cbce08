// Package validation provides common validation utilities for configuration
// parameters across the sleepflow library.
//
// The helpers return *errors.ValidationError values so constructors report
// bad settings with consistent messages and hints.
package validation
