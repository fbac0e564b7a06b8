// Package testutil provides deterministic helpers for tests: a stepping
// clock, sequential run IDs and fixture tree builders.
package testutil
