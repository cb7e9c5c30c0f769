package accessor

import (
	"net"

	"github.com/mdlayher/vsock"

	"github.com/binderkit/binderrpc/internal/sockaddr"
)

// ConnectionInfo describes how the transport can reach a service instance:
// either a hypervisor socket or a unix domain socket. Values are immutable
// data; the union is closed.
type ConnectionInfo interface {
	// sockaddr renders the descriptor as the raw socket address record the
	// registry copies during resolution.
	sockaddr() ([]byte, error)
}

// Vsock is a hypervisor socket address (context id + port).
type Vsock struct {
	Addr vsock.Addr
}

func (v Vsock) sockaddr() ([]byte, error) {
	return sockaddr.Vsock(v.Addr.ContextID, v.Addr.Port), nil
}

// Unix is a unix domain socket address. A leading '@' in the name selects
// the abstract namespace, per the net package convention.
type Unix struct {
	Addr net.UnixAddr
}

func (u Unix) sockaddr() ([]byte, error) {
	return sockaddr.Unix(u.Addr.Name)
}
