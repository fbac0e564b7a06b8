// Package store keeps a SQLite history of validation passes.
//
// Each finished pass becomes one row in runs and one row per discovered
// file in outcomes, written in a single transaction. Outcomes are read back
// ordered by seq, the file's 1-based position in discovery order.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Run history is optional. A pass never depends on the store, and a
// store failure never changes how files were classified.
package store
