package sockaddr

import (
	stderrors "errors"
	"strings"
	"testing"

	rpcerrors "github.com/binderkit/binderrpc/errors"
)

func TestVsockRoundTrip(t *testing.T) {
	raw := Vsock(3, 5000)
	if len(raw) != 16 {
		t.Fatalf("sockaddr_vm must be 16 bytes, got %d", len(raw))
	}

	family, err := Family(raw)
	if err != nil {
		t.Fatalf("Family: %v", err)
	}
	if family != FamilyVsock {
		t.Fatalf("expected family %d, got %d", FamilyVsock, family)
	}

	cid, port, err := VsockAddr(raw)
	if err != nil {
		t.Fatalf("VsockAddr: %v", err)
	}
	if cid != 3 || port != 5000 {
		t.Fatalf("expected cid=3 port=5000, got cid=%d port=%d", cid, port)
	}
}

func TestUnixPathRoundTrip(t *testing.T) {
	raw, err := Unix("/dev/socket/storaged")
	if err != nil {
		t.Fatalf("Unix: %v", err)
	}

	family, _ := Family(raw)
	if family != FamilyUnix {
		t.Fatalf("expected family %d, got %d", FamilyUnix, family)
	}
	if raw[len(raw)-1] != 0 {
		t.Fatal("pathname record must be NUL terminated")
	}

	name, err := UnixName(raw)
	if err != nil {
		t.Fatalf("UnixName: %v", err)
	}
	if name != "/dev/socket/storaged" {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestUnixAbstractRoundTrip(t *testing.T) {
	raw, err := Unix("@storaged")
	if err != nil {
		t.Fatalf("Unix: %v", err)
	}
	if raw[2] != 0 {
		t.Fatal("abstract record must start with a NUL name byte")
	}
	if raw[len(raw)-1] == 0 {
		t.Fatal("abstract record must not be NUL terminated")
	}

	name, err := UnixName(raw)
	if err != nil {
		t.Fatalf("UnixName: %v", err)
	}
	if name != "@storaged" {
		t.Fatalf("unexpected name %q", name)
	}
}

func TestUnixRejectsEmptyAndLongNames(t *testing.T) {
	if _, err := Unix(""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := Unix("@"); err == nil {
		t.Fatal("expected error for empty abstract name")
	}

	long := "/" + strings.Repeat("x", 110)
	_, err := Unix(long)
	if err == nil {
		t.Fatal("expected error for over-long path")
	}
	if !stderrors.Is(err, &rpcerrors.Error{Phase: rpcerrors.PhaseEncode, Kind: rpcerrors.KindTooLong}) {
		t.Fatalf("expected too_long encode error, got %v", err)
	}
}

func TestDecodeRejectsWrongFamily(t *testing.T) {
	raw := Vsock(1, 2)
	if _, err := UnixName(raw); err == nil {
		t.Fatal("UnixName should reject a vsock record")
	}

	unixRaw, err := Unix("/tmp/sock")
	if err != nil {
		t.Fatalf("Unix: %v", err)
	}
	if _, _, err := VsockAddr(unixRaw); err == nil {
		t.Fatal("VsockAddr should reject a unix record")
	}
}

func TestDecodeRejectsTruncatedRecords(t *testing.T) {
	if _, err := Family([]byte{1}); err == nil {
		t.Fatal("expected error for 1-byte record")
	}

	raw := Vsock(1, 2)
	if _, _, err := VsockAddr(raw[:8]); err == nil {
		t.Fatal("expected error for truncated sockaddr_vm")
	}
}
