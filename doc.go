// Package binderrpc provides on-demand address resolution for RPC binder
// services.
//
// A process that knows how to reach a remote service instance registers an
// Accessor: a wrapper around a resolver closure that maps an instance name to
// a socket address (vsock or unix domain). The service registry invokes the
// resolver through a pair of boundary trampolines whenever it needs to
// establish a connection, from any goroutine, any number of times. The
// closure is kept alive by an explicit reference count shared with the
// registry through opaque cookies, so teardown of the Accessor can never race
// a resolution already in flight.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	binderrpc/           Root package documentation
//	├── accessor/        Accessor and Provider wrappers, connection
//	│                    descriptors, boundary trampolines
//	├── binder/          The registry side of the boundary: RpcAccessor,
//	│                    IBinder proxies, ServiceManager, native connection info
//	├── cookie/          Reference-counted cookie table backing the boundary
//	├── errors/          Structured errors with phase and kind
//	└── cmd/accessorctl  Service directory CLI with an interactive console
//
// The accessor package is the public surface for application code. The binder
// package implements the registry contract in-process; a transport layer
// consumes the connection info values it hands out.
package binderrpc
