// Package config loads and validates application configuration from
// defaults, an optional config.yaml, a .env file and environment variables.
package config
