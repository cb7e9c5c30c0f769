package binder

import (
	"sync"

	"github.com/binderkit/binderrpc/cookie"
)

// ResolveFunc is invoked by the registry when it needs connection info for
// an instance. The instance bytes are a NUL-terminated name; the caller
// holds one reference to the cookie for the duration of the call. A nil
// result means the instance is unknown, which the registry treats as a
// normal negative outcome.
type ResolveFunc func(instance []byte, c cookie.Cookie) *ConnectionInfo

// ReleaseFunc is invoked by the registry exactly once for each cookie
// reference it was given, when it is done with that reference.
type ReleaseFunc func(c cookie.Cookie)

// GetAccessorFunc is invoked by the service manager to manufacture an
// accessor for an instance a provider registered. The returned accessor is
// owned by the caller, which deletes it when done.
type GetAccessorFunc func(instance []byte, c cookie.Cookie) *RpcAccessor

// RpcAccessor is the registry's opaque accessor object. It owns one
// reference to its cookie, released through the release callback exactly
// once when the accessor is deleted.
type RpcAccessor struct {
	mu       sync.Mutex
	instance string
	resolve  ResolveFunc
	release  ReleaseFunc
	cookie   cookie.Cookie
	binder   *IBinder
	deleted  bool
}

// NewAccessor allocates an accessor object. It takes ownership of one
// reference to c and will call release on it exactly once, eventually.
// Returns nil if either callback is missing.
func NewAccessor(instance string, resolve ResolveFunc, c cookie.Cookie, release ReleaseFunc) *RpcAccessor {
	if resolve == nil || release == nil {
		return nil
	}
	return &RpcAccessor{
		instance: instance,
		resolve:  resolve,
		release:  release,
		cookie:   c,
	}
}

// Instance returns the instance name the accessor was created for.
func (a *RpcAccessor) Instance() string {
	return a.instance
}

// AsBinder returns an owned strong reference to the accessor's proxy binder,
// materializing it on first use. Returns nil once the accessor has been
// deleted.
func (a *RpcAccessor) AsBinder() *IBinder {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.deleted {
		return nil
	}
	if a.binder == nil {
		a.binder = newBinder("IAccessor/" + a.instance)
	}
	a.binder.IncStrong()
	return a.binder
}

// Connect resolves connection info for an instance by calling through the
// resolve callback. It takes one additional cookie reference for the
// duration of the call and releases it before returning, so a connect
// overlapping Delete never observes a freed cookie. Reports false when the
// accessor is deleted, the cookie is already gone, or the instance is
// unknown to the resolver.
func (a *RpcAccessor) Connect(instance string) (*ConnectionInfo, bool) {
	a.mu.Lock()
	deleted := a.deleted
	a.mu.Unlock()
	if deleted {
		return nil, false
	}

	if !cookie.Retain(a.cookie) {
		// Teardown won the race; the last reference is already gone.
		return nil, false
	}
	info := a.resolve(cstring(instance), a.cookie)
	a.release(a.cookie)

	if info == nil {
		return nil, false
	}
	return info, true
}

// Delete destroys the accessor: it drops the proxy binder's own reference
// and releases the internally held cookie reference. Resolutions in flight
// on other goroutines finish normally on the references they hold. Safe to
// call more than once; only the first call has effect.
func (a *RpcAccessor) Delete() {
	a.mu.Lock()
	if a.deleted {
		a.mu.Unlock()
		return
	}
	a.deleted = true
	b := a.binder
	a.binder = nil
	a.mu.Unlock()

	if b != nil {
		b.DecStrong()
	}
	a.release(a.cookie)
}

// cstring renders a name as the NUL-terminated byte form that crosses the
// boundary.
func cstring(s string) []byte {
	return append([]byte(s), 0)
}
