// Package core defines the shared language of csvprobe.
//
// This package contains:
//   - The error taxonomy every operation reports through (Kind, Error)
//   - JSON-safe numeric types (Float)
//
// The Golden Rule: pkg/core imports ONLY the stdlib. All other packages
// depend on core, not the reverse.
package core
