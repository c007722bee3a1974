package cmd

import (
	"errors"

	"github.com/abdul-hamid-achik/fetchquest/packages/core/errs"
)

// Exit codes for the fetchquest CLI
const (
	// ExitSuccess indicates the response was delivered
	ExitSuccess = 0

	// ExitFailure covers any error without a more specific code
	ExitFailure = 1

	// ExitConfigError indicates a config or env file could not be loaded
	ExitConfigError = 3

	// ExitNetworkError indicates a DNS, connection, TLS or redirect failure
	ExitNetworkError = 4

	// ExitFileError indicates the upload file or output file could not be accessed
	ExitFileError = 5

	// ExitEncodingError indicates the response body was not valid text
	ExitEncodingError = 6

	// ExitIOError indicates writing to the output failed
	ExitIOError = 7

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// usageError marks failures in flag or argument parsing
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// configError marks failures while loading the config or env file
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// exitCode maps an error returned by the root command to a process exit code
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ue *usageError
	if errors.As(err, &ue) {
		return ExitUsageError
	}
	var ce *configError
	if errors.As(err, &ce) {
		return ExitConfigError
	}

	switch errs.KindOf(err) {
	case errs.KindArgument:
		return ExitUsageError
	case errs.KindTransport:
		return ExitNetworkError
	case errs.KindFileAccess:
		return ExitFileError
	case errs.KindEncoding:
		return ExitEncodingError
	case errs.KindIO:
		return ExitIOError
	default:
		return ExitFailure
	}
}
