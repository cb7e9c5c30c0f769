package binder

import (
	"github.com/binderkit/binderrpc/internal/sockaddr"
)

// ConnectionInfo is the registry-owned address value produced during
// resolution. It holds a private copy of the raw socket address bytes; the
// source buffer does not need to outlive the constructor call.
type ConnectionInfo struct {
	raw []byte
}

// NewConnectionInfo copies a raw socket address record into an owned value.
// Returns nil if the record is too short to carry an address family.
func NewConnectionInfo(raw []byte) *ConnectionInfo {
	if len(raw) < 2 {
		return nil
	}
	owned := make([]byte, len(raw))
	copy(owned, raw)
	return &ConnectionInfo{raw: owned}
}

// Family returns the address family of the record.
func (ci *ConnectionInfo) Family() uint16 {
	family, err := sockaddr.Family(ci.raw)
	if err != nil {
		return 0
	}
	return family
}

// VsockAddr returns the context id and port for an AF_VSOCK record.
func (ci *ConnectionInfo) VsockAddr() (cid, port uint32, ok bool) {
	cid, port, err := sockaddr.VsockAddr(ci.raw)
	if err != nil {
		return 0, 0, false
	}
	return cid, port, true
}

// UnixName returns the socket name for an AF_UNIX record, with a '@' prefix
// for abstract names.
func (ci *ConnectionInfo) UnixName() (string, bool) {
	name, err := sockaddr.UnixName(ci.raw)
	if err != nil {
		return "", false
	}
	return name, true
}

// Sockaddr returns a copy of the raw record for the transport layer.
func (ci *ConnectionInfo) Sockaddr() []byte {
	out := make([]byte, len(ci.raw))
	copy(out, ci.raw)
	return out
}
