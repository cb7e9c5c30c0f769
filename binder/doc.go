// Package binder implements the registry side of the accessor boundary.
//
// It is the in-process counterpart of the native service registry the
// accessor package talks to: it owns the opaque accessor objects, the
// strong-counted binder proxies they hand out, and the connection info
// values produced during resolution. The callback types it declares
// (ResolveFunc, ReleaseFunc, GetAccessorFunc) are the boundary contract:
// the registry invokes them from arbitrary goroutines with raw
// NUL-terminated name bytes and an opaque cookie, and balances every
// cookie acquisition with exactly one release.
//
// # Ownership
//
//   - NewAccessor takes ownership of one reference to its cookie and calls
//     the release callback on it exactly once, when the accessor is deleted.
//   - Connect takes one additional reference for the duration of the call
//     and releases it before returning. A resolution already in flight is
//     therefore protected by its own reference, never by a lock, and can
//     overlap Delete safely.
//   - Connection info values are owned by the caller of Connect; they hold
//     a private copy of the socket address bytes.
//
// Application code should not normally use this package directly; the
// accessor package wraps it. Transport layers consume the ConnectionInfo
// values the ServiceManager resolves.
package binder
