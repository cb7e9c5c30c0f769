package accessor

import (
	"bytes"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/binderkit/binderrpc/binder"
	"github.com/binderkit/binderrpc/cookie"
)

// Resolver maps a service instance name to its connection info. A nil
// result means the instance is unknown. Resolvers must be safe for
// concurrent calls from arbitrary goroutines and may be invoked at any time
// between New and the release of the last registry reference, including
// while Close is running.
type Resolver func(instance string) ConnectionInfo

// Accessor exclusively owns a registry accessor handle created for one
// instance name. Dropping the Accessor (Close) releases the handle; the
// resolver closure it carries is freed later, when the registry gives up its
// last cookie reference.
type Accessor struct {
	handle *binder.RpcAccessor
	closed atomic.Bool
}

// New creates an accessor that calls resolver whenever the registry needs
// connection info for instance.
//
// The instance name must be non-empty and free of NUL bytes; violating
// either is a programming error and panics. New has no error return: it
// yields a usable accessor or panics, matching the non-recoverable nature of
// registry allocation failure.
func New(instance string, resolver Resolver) *Accessor {
	if instance == "" {
		panic("accessor: empty instance name")
	}
	if strings.IndexByte(instance, 0) >= 0 {
		panic("accessor: instance name contains a NUL byte: " + strings.ReplaceAll(instance, "\x00", `\x00`))
	}
	if resolver == nil {
		panic("accessor: nil resolver")
	}

	c := cookie.Put(resolver)
	handle := binder.NewAccessor(instance, connectionInfo, c, cookieRelease)
	if handle == nil {
		panic("accessor: registry failed to allocate an accessor for " + instance)
	}
	return &Accessor{handle: handle}
}

// Instance returns the instance name the accessor serves.
func (a *Accessor) Instance() string {
	return a.handle.Instance()
}

// AsBinder returns the accessor's service binder wrapped in a strong
// reference, for registration with a service manager or transfer to another
// process. Returns nil when the registry has no binder for it; that is a
// valid outcome, not an error.
func (a *Accessor) AsBinder() *binder.SpIBinder {
	return binder.FromRaw(a.handle.AsBinder())
}

// Close releases the registry handle. The registry eventually gives up the
// cookie reference it holds, which frees the resolver once no resolution is
// in flight. Calls after the first are no-ops.
func (a *Accessor) Close() {
	if a.closed.Swap(true) {
		return
	}
	a.handle.Delete()
}

// releaseHandle transfers ownership of the registry handle to the caller,
// leaving the Accessor closed. Used when a provider hands a manufactured
// accessor to the registry.
func (a *Accessor) releaseHandle() *binder.RpcAccessor {
	if a.closed.Swap(true) {
		return nil
	}
	return a.handle
}

// connectionInfo is the resolution trampoline the registry invokes when it
// needs an address. The caller holds a cookie reference for the duration of
// the call; the trampoline borrows the resolver without consuming one. All
// anomalies degrade to a nil result; an error must never cross the
// boundary.
func connectionInfo(instance []byte, c cookie.Cookie) *binder.ConnectionInfo {
	if c == 0 || instance == nil {
		Logger().Error("resolution callback with missing cookie or instance",
			zap.Uintptr("cookie", uintptr(c)),
			zap.Bool("instance_nil", instance == nil))
		return nil
	}

	v, ok := cookie.Get(c)
	if !ok {
		Logger().Error("resolution callback with dead cookie",
			zap.Uintptr("cookie", uintptr(c)))
		return nil
	}
	resolver, ok := v.(Resolver)
	if !ok {
		Logger().Error("cookie does not reference a resolver",
			zap.Uintptr("cookie", uintptr(c)))
		return nil
	}

	name, ok := goString(instance)
	if !ok {
		Logger().Error("instance name is not valid UTF-8",
			zap.Binary("instance", instance))
		return nil
	}

	info := resolver(name)
	if info == nil {
		// Unknown instance: a normal negative outcome for the registry.
		return nil
	}

	raw, err := info.sockaddr()
	if err != nil {
		Logger().Error("connection info could not be encoded",
			zap.String("instance", name),
			zap.Error(err))
		return nil
	}
	// The registry copies the record synchronously.
	return binder.NewConnectionInfo(raw)
}

// cookieRelease is the release trampoline: one decrement per reference the
// registry was given. The resolver is freed on the goroutine that performs
// the last release.
func cookieRelease(c cookie.Cookie) {
	cookie.Release(c)
}

// goString decodes NUL-terminated name bytes into a Go string, reporting
// false for invalid UTF-8.
func goString(instance []byte) (string, bool) {
	if i := bytes.IndexByte(instance, 0); i >= 0 {
		instance = instance[:i]
	}
	if !utf8.Valid(instance) {
		return "", false
	}
	return string(instance), true
}
