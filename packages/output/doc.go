// Package output delivers the response to its sink.
//
// The ResponseWriter runs an ordered pipeline of optional steps:
//   - Headers: one line rendering the header mapping (gated by --include-headers)
//   - Body: the response text, optionally filtered by a gjson query (skipped by --head)
//
// Silent mode writes nothing. The Console prints the verbose trace and errors to stderr
// using colored output.
package output
