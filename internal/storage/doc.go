// Package storage provides the local persistence implementations.
//
// FileVault implements the Vault interface over the filesystem, and the
// BoltHold-backed show repository keeps per-show sync state between runs.
package storage
