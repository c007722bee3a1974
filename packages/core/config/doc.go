// Package config handles configuration loading and management for fetchquest.
//
// It provides functionality for:
//   - Loading configuration from .fetchquest.yaml (or JSON) in the working or home directory
//   - Default configuration values
//   - Applying file settings underneath explicitly passed CLI flags
//   - Reading .env files used as a fallback for FETCHQUEST_* variables
package config
