// Package app provides application initialization and lifecycle management.
//
// App wires configuration, the sync-state database, the Trakt client and
// the sync service together, and runs either a single sync pass or the
// periodic loop with graceful signal-driven shutdown.
package app
