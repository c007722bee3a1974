// Package errs defines the failure taxonomy shared by the request pipeline.
//
// Every failure is fatal to the invocation. Errors carry:
//   - a Kind (argument, file access, transport, encoding, io) used for exit codes
//   - the Phase it surfaced in (building, sending, writing)
//   - the failed operation and its underlying cause
package errs
