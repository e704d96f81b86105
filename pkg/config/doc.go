// Package config handles configuration management for apploader.
// It layers embedded TOML defaults, an optional user TOML file and
// APPLOADER_ environment variables, then validates the result.
package config
