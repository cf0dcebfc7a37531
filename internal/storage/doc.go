// Package storage provides the durable key-value backends behind the cart's
// persistence port, plus the log of dispatched orders.
//
// # Backends
//
//   - SQLite: file-backed, survives restarts. One row per storage key.
//   - Memory: process-local, for tests and dry runs.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// Writers of the same key are not coordinated: the last write wins.
//
// # Ordering
//
// Order log queries use ORDER BY seq ASC, id ASC COLLATE BINARY so listings
// are identical regardless of wall-clock time.
package storage
