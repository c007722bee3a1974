// Package runner drives a single fetchquest invocation.
//
// A run moves through a fixed sequence of states:
//
//	Idle -> Building -> Sent -> HeadersReceived -> BodyReceived -> Written -> Done
//
// BodyReceived is skipped when only headers are wanted. Any step can end the run in
// Failed, and the returned error carries the phase (building, sending or writing) it
// surfaced in. The transport is called at most once; there are no retries.
package runner
