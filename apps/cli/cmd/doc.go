// Package cmd implements the fetchquest CLI using Cobra.
//
// The root command is the request itself: it takes one URL and a set of curl-like flags,
// resolves FETCHQUEST_* environment fallbacks and the optional config file, and hands
// the result to the runner. Subcommands:
//   - version: Show fetchquest version information
//   - completion: Generate shell completion scripts
//
// Errors are printed to stderr and mapped to the exit codes in exitcodes.go.
package cmd
