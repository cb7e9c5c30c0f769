package binder

import "sync/atomic"

// IBinder is a registry-owned service proxy object with a manual strong
// reference count. It carries no transport behavior here; it exists so
// accessors can be registered with a service manager or sent to another
// process like any other binder.
type IBinder struct {
	descriptor string
	strong     atomic.Int32
}

// newBinder allocates a proxy with one strong reference, owned by the caller.
func newBinder(descriptor string) *IBinder {
	b := &IBinder{descriptor: descriptor}
	b.strong.Store(1)
	return b
}

// InterfaceDescriptor returns the interface name the proxy was created for.
func (b *IBinder) InterfaceDescriptor() string {
	return b.descriptor
}

// IncStrong takes a strong reference.
func (b *IBinder) IncStrong() {
	if b.strong.Add(1) <= 1 {
		panic("binder: IncStrong on a dead IBinder")
	}
}

// DecStrong gives up a strong reference.
func (b *IBinder) DecStrong() {
	if b.strong.Add(-1) < 0 {
		panic("binder: DecStrong without a matching IncStrong")
	}
}

// StrongCount returns the current strong reference count. Diagnostic only.
func (b *IBinder) StrongCount() int32 {
	return b.strong.Load()
}

// SpIBinder holds one strong reference to an IBinder and gives it up on
// Close. It is the proxy abstraction returned to application code.
type SpIBinder struct {
	raw *IBinder
}

// FromRaw wraps an owned IBinder reference. Passing nil returns nil; passing
// a non-nil binder transfers ownership of one strong reference to the
// returned wrapper.
func FromRaw(raw *IBinder) *SpIBinder {
	if raw == nil {
		return nil
	}
	return &SpIBinder{raw: raw}
}

// Raw returns the wrapped binder without affecting its reference count.
func (s *SpIBinder) Raw() *IBinder {
	if s == nil {
		return nil
	}
	return s.raw
}

// Close gives up the wrapper's strong reference. Safe to call more than once.
func (s *SpIBinder) Close() {
	if s == nil || s.raw == nil {
		return
	}
	s.raw.DecStrong()
	s.raw = nil
}
