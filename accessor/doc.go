// Package accessor lets application code supply on-demand address
// resolution for named RPC service instances.
//
// An Accessor wraps a resolver closure and hands the registry everything it
// needs to call back into it: the instance name, a resolution trampoline, an
// opaque cookie referencing the closure, and a release trampoline. The
// registry may invoke the resolver from any goroutine, any number of times,
// concurrently with teardown; the closure stays alive for exactly as long as
// any holder still has a cookie reference.
//
//	a := accessor.New("vpn_tunnel", func(instance string) accessor.ConnectionInfo {
//	    return accessor.Vsock{Addr: vsock.Addr{ContextID: 3, Port: 5000}}
//	})
//	defer a.Close()
//
//	if sp := a.AsBinder(); sp != nil {
//	    // register sp with the service manager, send it to another process…
//	}
//
// Returning nil from the resolver means "unknown instance"; the registry
// treats that as a normal negative outcome, not an error.
//
// # Providers
//
// A Provider registers a factory that manufactures Accessors on demand for a
// fixed set of instance names, so a process can serve a whole directory of
// services without holding long-lived accessors:
//
//	p, err := accessor.RegisterProvider(sm, []string{"echo", "storaged"},
//	    func(instance string) *accessor.Accessor {
//	        return accessor.New(instance, resolver)
//	    })
//	defer p.Unregister()
//
// # Lifetime and concurrency
//
// The resolver must be safe for concurrent calls and should not block: it
// runs on the registry's threads. Close releases the registry handle exactly
// once; a resolution already in flight finishes on the reference it holds,
// and the closure is freed when the last reference is released, wherever
// that happens.
package accessor
