package binder

import (
	"testing"

	"github.com/binderkit/binderrpc/internal/sockaddr"
)

func TestNewConnectionInfoCopies(t *testing.T) {
	raw := sockaddr.Vsock(7, 9000)
	ci := NewConnectionInfo(raw)
	if ci == nil {
		t.Fatal("expected a connection info value")
	}

	// The registry copies synchronously; mutating the source afterwards
	// must not be observable.
	for i := range raw {
		raw[i] = 0xff
	}

	cid, port, ok := ci.VsockAddr()
	if !ok {
		t.Fatal("VsockAddr failed")
	}
	if cid != 7 || port != 9000 {
		t.Fatalf("expected cid=7 port=9000, got cid=%d port=%d", cid, port)
	}
}

func TestNewConnectionInfoRejectsShortRecords(t *testing.T) {
	if NewConnectionInfo(nil) != nil {
		t.Fatal("expected nil for nil record")
	}
	if NewConnectionInfo([]byte{1}) != nil {
		t.Fatal("expected nil for 1-byte record")
	}
}

func TestConnectionInfoAccessors(t *testing.T) {
	raw, err := sockaddr.Unix("@echo")
	if err != nil {
		t.Fatalf("Unix: %v", err)
	}
	ci := NewConnectionInfo(raw)

	if ci.Family() != sockaddr.FamilyUnix {
		t.Fatalf("unexpected family %d", ci.Family())
	}
	name, ok := ci.UnixName()
	if !ok || name != "@echo" {
		t.Fatalf("unexpected name %q (ok=%v)", name, ok)
	}
	if _, _, ok := ci.VsockAddr(); ok {
		t.Fatal("VsockAddr must fail for a unix record")
	}

	out := ci.Sockaddr()
	out[0] = 0xee
	if ci.Family() != sockaddr.FamilyUnix {
		t.Fatal("Sockaddr must return a copy")
	}
}
