// Package collection owns the local copy of users' board-game collections.
//
// It provides the persistence boundary (Store) and the reconciliation
// engine (Syncer) that keeps the local copy aligned with the remote
// catalog.
//
// # Reconciliation model
//
// A Game row exists as long as at least one user owns it; ownership is a
// (username, game) edge created by that user's sync and removed when a
// full, unfiltered sync for the user stops reporting the game. Games with
// no remaining edges are orphans and are deleted after every pass.
//
// Writes are hash-gated: Upsert compares the incoming content hash against
// the stored one and skips the write when they match, so re-syncing an
// unchanged collection touches nothing.
//
// The store assumes a single writer. Running two syncs concurrently
// against the same database can mis-fire orphan pruning (a game dropped by
// one user's pass may be mid-insert for another), so passes must run to
// completion one at a time.
package collection
