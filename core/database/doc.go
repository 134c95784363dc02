// Package database establishes GORM connections for the collection store.
//
// The default driver is sqlite with a local file, mirroring the
// single-writer deployment model; mysql is available via Config.Driver for
// shared setups. Schema provisioning itself lives with the store, which
// migrates idempotently on initialization.
package database
