// Package newgame implements a temporal portfolio ledger: the core of a
// market-replay simulation in which a player advances a virtual clock over
// historical price data, executes simulated trades, and watches the value of
// the resulting portfolio over time.
//
// The core responsibilities are:
//   - Price Indexing: per-instrument, date-ordered price series with
//     point-in-time and previous-trading-day lookups.
//   - Virtual Clock: a forward-only (date, session phase) clock that can
//     advance one session at a time or jump by weeks, months, years, or to an
//     arbitrary later date, clamped to a configured horizon.
//   - Ledger: cash, holdings with average-cost accounting, and an immutable
//     append-only transaction log with deterministic rounding.
//   - History Reconstruction: replaying the transaction log against the price
//     index and recorded valuation snapshots to produce exactly one valuation
//     point per calendar month, regardless of how far the clock jumped.
//
// All state lives in an explicit [Session]; there are no package-level
// singletons, so multiple independent simulations can coexist in one process.
// Persistence goes through the kv subpackage, a small durable key-value
// abstraction with in-memory, filesystem, and Redis implementations.
//
// This package serves as the foundational logic for the `replay` command-line
// tool.
package newgame
