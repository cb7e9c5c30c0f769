package binder

import (
	stderrors "errors"
	"sync/atomic"
	"testing"

	"github.com/binderkit/binderrpc/cookie"
	"github.com/binderkit/binderrpc/errors"
)

// testProvider returns a GetAccessorFunc that manufactures an accessor
// resolving every instance to the given vsock address.
func testProvider(t *testing.T, cid, port uint32) GetAccessorFunc {
	t.Helper()
	return func(instance []byte, _ cookie.Cookie) *RpcAccessor {
		accCookie := cookie.Put("per-accessor closure")
		return NewAccessor(string(instance[:len(instance)-1]), vsockResolve(cid, port), accCookie,
			func(c cookie.Cookie) { cookie.Release(c) })
	}
}

func TestRegisterValidation(t *testing.T) {
	sm := NewServiceManager()
	release := func(c cookie.Cookie) { cookie.Release(c) }
	get := testProvider(t, 1, 1)

	if _, err := sm.RegisterAccessorProvider(nil, []string{"a"}, 1, release); err == nil {
		t.Fatal("expected error for nil provider callback")
	}
	if _, err := sm.RegisterAccessorProvider(get, []string{"a"}, 1, nil); err == nil {
		t.Fatal("expected error for nil release callback")
	}

	_, err := sm.RegisterAccessorProvider(get, nil, 1, release)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRegister, Kind: errors.KindInvalidInput}) {
		t.Fatalf("expected invalid_input for empty instance list, got %v", err)
	}

	_, err = sm.RegisterAccessorProvider(get, []string{"a", ""}, 1, release)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRegister, Kind: errors.KindInvalidInput}) {
		t.Fatalf("expected invalid_input for empty instance name, got %v", err)
	}

	_, err = sm.RegisterAccessorProvider(get, []string{"a", "a"}, 1, release)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRegister, Kind: errors.KindDuplicate}) {
		t.Fatalf("expected duplicate error within one list, got %v", err)
	}
}

func TestRegisterRejectsCrossProviderDuplicates(t *testing.T) {
	sm := NewServiceManager()
	get := testProvider(t, 1, 1)

	c1 := cookie.Put("p1")
	p1, err := sm.RegisterAccessorProvider(get, []string{"svc.a", "svc.b"}, c1, func(c cookie.Cookie) { cookie.Release(c) })
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	defer sm.UnregisterAccessorProvider(p1)

	c2 := cookie.Put("p2")
	_, err = sm.RegisterAccessorProvider(get, []string{"svc.b"}, c2, func(c cookie.Cookie) { cookie.Release(c) })
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRegister, Kind: errors.KindDuplicate}) {
		t.Fatalf("expected duplicate error across providers, got %v", err)
	}
	// Failed registration leaves ownership with the caller.
	cookie.Release(c2)
}

func TestGetConnectionEndToEnd(t *testing.T) {
	base := cookie.Live()
	sm := NewServiceManager()

	c := cookie.Put("provider closure")
	p, err := sm.RegisterAccessorProvider(testProvider(t, 42, 8080), []string{"echo"}, c,
		func(cc cookie.Cookie) { cookie.Release(cc) })
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	info, ok := sm.GetConnection("echo")
	if !ok {
		t.Fatal("expected a connection")
	}
	cid, port, ok := info.VsockAddr()
	if !ok || cid != 42 || port != 8080 {
		t.Fatalf("unexpected address cid=%d port=%d ok=%v", cid, port, ok)
	}

	if _, ok := sm.GetConnection("unknown"); ok {
		t.Fatal("unknown instance must not resolve")
	}

	sm.UnregisterAccessorProvider(p)
	if _, ok := sm.GetConnection("echo"); ok {
		t.Fatal("unregistered instance must not resolve")
	}
	if cookie.Live() != base {
		t.Fatalf("leak: %d cookies live, want %d", cookie.Live(), base)
	}
}

func TestUnregisterReleasesExactlyOnce(t *testing.T) {
	sm := NewServiceManager()

	var releases atomic.Int64
	c := cookie.Put("provider closure")
	p, err := sm.RegisterAccessorProvider(testProvider(t, 1, 1), []string{"echo"}, c, countingRelease(&releases))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	sm.UnregisterAccessorProvider(p)
	sm.UnregisterAccessorProvider(p)
	if releases.Load() != 1 {
		t.Fatalf("expected exactly one release, got %d", releases.Load())
	}
}

func TestFindAccessorRetainsProviderCookie(t *testing.T) {
	sm := NewServiceManager()

	c := cookie.Put("provider closure")
	get := func(instance []byte, got cookie.Cookie) *RpcAccessor {
		refs, ok := cookie.Refs(got)
		if !ok || refs < 2 {
			t.Errorf("provider cookie must be retained during the callback, refs=%d ok=%v", refs, ok)
		}
		return nil
	}
	p, err := sm.RegisterAccessorProvider(get, []string{"echo"}, c, func(cc cookie.Cookie) { cookie.Release(cc) })
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	defer sm.UnregisterAccessorProvider(p)

	if sm.FindAccessor("echo") != nil {
		t.Fatal("provider returned nil; FindAccessor must pass it through")
	}
}

func TestInstances(t *testing.T) {
	sm := NewServiceManager()
	c := cookie.Put("provider closure")
	p, err := sm.RegisterAccessorProvider(testProvider(t, 1, 1), []string{"zeta", "alpha"}, c,
		func(cc cookie.Cookie) { cookie.Release(cc) })
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	defer sm.UnregisterAccessorProvider(p)

	got := sm.Instances()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Fatalf("unexpected instances %v", got)
	}
}
