// Package config handles application configuration loading and validation.
//
// Configuration comes from an optional TOML file with environment-variable
// overrides for secrets and paths. All required values are validated at
// startup to fail fast if misconfigured, before any remote call is made.
package config
