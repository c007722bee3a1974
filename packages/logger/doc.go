// Package logger builds the zerolog diagnostics logger used by fetchquest.
//
// Diagnostics are written to stderr. The level comes from LOG_LEVEL (default warn)
// and drops to debug in verbose mode.
package logger
