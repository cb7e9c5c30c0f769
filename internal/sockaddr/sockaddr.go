// Package sockaddr encodes and decodes the raw socket address buffers that
// cross the registry boundary. The registry copies a buffer synchronously
// during resolution, so layouts must match what the transport expects: the
// fixed 16-byte sockaddr_vm record for vsock and the variable-length
// sockaddr_un record for unix domain sockets. A leading '@' in a unix name
// selects the abstract namespace, following the net package convention.
package sockaddr

import (
	"bytes"
	"encoding/binary"

	"github.com/binderkit/binderrpc/errors"
)

// Address families, as defined by the Linux ABI.
const (
	FamilyUnix  uint16 = 1  // AF_UNIX
	FamilyVsock uint16 = 40 // AF_VSOCK
)

const (
	// sockaddr_vm: family(2) reserved(2) port(4) cid(4) zero(4)
	vmLen = 16

	// sun_path capacity in sockaddr_un
	maxUnixPath = 108
)

// Vsock encodes a sockaddr_vm record for the given context id and port.
func Vsock(cid, port uint32) []byte {
	raw := make([]byte, vmLen)
	binary.LittleEndian.PutUint16(raw[0:2], FamilyVsock)
	binary.LittleEndian.PutUint32(raw[4:8], port)
	binary.LittleEndian.PutUint32(raw[8:12], cid)
	return raw
}

// Unix encodes a sockaddr_un record. Pathname sockets carry a terminating
// NUL; abstract names (leading '@') carry a leading NUL and no terminator.
func Unix(name string) ([]byte, error) {
	if name == "" {
		return nil, errors.InvalidInput(errors.PhaseEncode, "empty unix socket name")
	}

	abstract := name[0] == '@'
	path := name
	if abstract {
		path = name[1:]
		if path == "" {
			return nil, errors.InvalidInput(errors.PhaseEncode, "empty abstract socket name")
		}
	}
	// Pathname sockets need room for the terminator, abstract names for the
	// leading NUL, so the usable length is the same either way.
	if len(path) > maxUnixPath-1 {
		return nil, errors.TooLong(errors.PhaseEncode, "unix socket name", len(path), maxUnixPath-1)
	}

	raw := make([]byte, 2, 2+maxUnixPath)
	binary.LittleEndian.PutUint16(raw[0:2], FamilyUnix)
	if abstract {
		raw = append(raw, 0)
		raw = append(raw, path...)
	} else {
		raw = append(raw, path...)
		raw = append(raw, 0)
	}
	return raw, nil
}

// Family returns the address family of an encoded record.
func Family(raw []byte) (uint16, error) {
	if len(raw) < 2 {
		return 0, errors.InvalidData(errors.PhaseDecode, "socket address shorter than its family field")
	}
	return binary.LittleEndian.Uint16(raw[0:2]), nil
}

// VsockAddr decodes the context id and port from a sockaddr_vm record.
func VsockAddr(raw []byte) (cid, port uint32, err error) {
	family, err := Family(raw)
	if err != nil {
		return 0, 0, err
	}
	if family != FamilyVsock {
		return 0, 0, errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Detail("address family %d is not AF_VSOCK", family).
			Value(family).
			Build()
	}
	if len(raw) < vmLen {
		return 0, 0, errors.InvalidData(errors.PhaseDecode, "sockaddr_vm record truncated")
	}
	port = binary.LittleEndian.Uint32(raw[4:8])
	cid = binary.LittleEndian.Uint32(raw[8:12])
	return cid, port, nil
}

// UnixName decodes the socket name from a sockaddr_un record, restoring the
// '@' prefix for abstract names.
func UnixName(raw []byte) (string, error) {
	family, err := Family(raw)
	if err != nil {
		return "", err
	}
	if family != FamilyUnix {
		return "", errors.New(errors.PhaseDecode, errors.KindUnsupported).
			Detail("address family %d is not AF_UNIX", family).
			Value(family).
			Build()
	}
	path := raw[2:]
	if len(path) == 0 {
		return "", errors.InvalidData(errors.PhaseDecode, "sockaddr_un record has no name")
	}

	if path[0] == 0 {
		// Abstract namespace: leading NUL, name runs to the end of the record.
		name := path[1:]
		if len(name) == 0 {
			return "", errors.InvalidData(errors.PhaseDecode, "abstract sockaddr_un record has no name")
		}
		return "@" + string(name), nil
	}

	if i := bytes.IndexByte(path, 0); i >= 0 {
		path = path[:i]
	}
	return string(path), nil
}
