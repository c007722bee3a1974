// Package http builds and dispatches the single request of a fetchquest invocation.
//
// It wraps the standard library's http package with:
//   - Request building from options (ordered, additive headers, cookie and bearer auth)
//   - Body sources: none, raw bytes, or a streamed multipart file upload
//   - A redirect policy (never, or up to 10 hops) and an explicit TLS verification opt-out
//   - Responses whose body stays unread until the caller asks for it, once
package http
