package accessor

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/binderkit/binderrpc/binder"
	"github.com/binderkit/binderrpc/cookie"
	"github.com/binderkit/binderrpc/errors"
)

// Factory manufactures an Accessor for an instance on demand. Returning nil
// means the provider cannot serve the instance right now. Like a Resolver,
// a Factory may be called from arbitrary goroutines.
type Factory func(instance string) *Accessor

// Provider is a registered accessor factory serving a fixed set of instance
// names. Unregister hands the registration back and eventually frees the
// factory, once no callback is in flight.
type Provider struct {
	sm     *binder.ServiceManager
	handle *binder.AccessorProvider
	closed atomic.Bool
}

// RegisterProvider registers factory with sm for the given instance names.
// The factory is wrapped in a reference-counted cookie exactly like a
// resolver closure; the registry owns one reference until Unregister.
func RegisterProvider(sm *binder.ServiceManager, instances []string, factory Factory) (*Provider, error) {
	if sm == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, "service manager")
	}
	if factory == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, "accessor factory")
	}
	for _, instance := range instances {
		if strings.IndexByte(instance, 0) >= 0 {
			return nil, errors.New(errors.PhaseRegister, errors.KindInvalidInput).
				Detail("instance name contains a NUL byte").
				Value(instance).
				Build()
		}
	}

	c := cookie.Put(factory)
	handle, err := sm.RegisterAccessorProvider(getAccessor, instances, c, cookieRelease)
	if err != nil {
		cookie.Release(c)
		return nil, err
	}
	return &Provider{sm: sm, handle: handle}, nil
}

// Unregister removes the provider from the registry and releases the
// registry's factory reference. Calls after the first are no-ops.
func (p *Provider) Unregister() {
	if p.closed.Swap(true) {
		return
	}
	p.sm.UnregisterAccessorProvider(p.handle)
}

// getAccessor is the provider trampoline. It borrows the factory from the
// cookie, builds an accessor for the requested instance, and transfers
// ownership of its registry handle to the caller.
func getAccessor(instance []byte, c cookie.Cookie) *binder.RpcAccessor {
	if c == 0 || instance == nil {
		Logger().Error("provider callback with missing cookie or instance",
			zap.Uintptr("cookie", uintptr(c)),
			zap.Bool("instance_nil", instance == nil))
		return nil
	}

	v, ok := cookie.Get(c)
	if !ok {
		Logger().Error("provider callback with dead cookie",
			zap.Uintptr("cookie", uintptr(c)))
		return nil
	}
	factory, ok := v.(Factory)
	if !ok {
		Logger().Error("cookie does not reference an accessor factory",
			zap.Uintptr("cookie", uintptr(c)))
		return nil
	}

	name, ok := goString(instance)
	if !ok {
		Logger().Error("provider instance name is not valid UTF-8",
			zap.Binary("instance", instance))
		return nil
	}

	a := factory(name)
	if a == nil {
		return nil
	}
	return a.releaseHandle()
}
