// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, .env files, config files).
// It provides type-safe access to the settings needed by the server, the
// task worker and the provider clients.
package config
