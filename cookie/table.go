package cookie

import (
	"sync"

	"go.uber.org/zap"
)

// Cookie is an opaque reference to a value in the table. Cookie 0 is
// reserved and always invalid.
type Cookie uintptr

type entry struct {
	value any
	refs  int64
}

var (
	mu      sync.Mutex
	next    Cookie = 1
	entries        = make(map[Cookie]*entry)
)

// Put stores a value with a reference count of one and returns its cookie.
// The caller owns that reference and must balance it with exactly one
// Release.
func Put(v any) Cookie {
	mu.Lock()
	defer mu.Unlock()

	c := next
	next++
	entries[c] = &entry{value: v, refs: 1}
	return c
}

// Get retrieves a value without touching its reference count. The caller
// must hold a reference for the duration of any use of the returned value.
func Get(c Cookie) (any, bool) {
	mu.Lock()
	defer mu.Unlock()

	e, ok := entries[c]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Retain increments the reference count. It reports false if the cookie has
// no live entry, which means the last holder already released it; callers
// treat that as "the value is gone" and back off.
func Retain(c Cookie) bool {
	mu.Lock()
	defer mu.Unlock()

	e, ok := entries[c]
	if !ok {
		return false
	}
	e.refs++
	return true
}

// Release decrements the reference count and frees the entry when the count
// reaches zero. A release with no matching reference is a contract violation
// on the releasing side; it is logged and reported as false so the process
// stays responsive.
func Release(c Cookie) bool {
	mu.Lock()
	e, ok := entries[c]
	if !ok {
		mu.Unlock()
		Logger().Error("release of cookie with no outstanding reference",
			zap.Uintptr("cookie", uintptr(c)))
		return false
	}
	e.refs--
	if e.refs == 0 {
		delete(entries, c)
	}
	mu.Unlock()
	return true
}

// Refs returns the current reference count for a cookie. Diagnostic only;
// the count may change as soon as the lock is dropped.
func Refs(c Cookie) (int64, bool) {
	mu.Lock()
	defer mu.Unlock()

	e, ok := entries[c]
	if !ok {
		return 0, false
	}
	return e.refs, true
}

// Live returns the number of live entries. Useful for leak checks in tests.
func Live() int {
	mu.Lock()
	defer mu.Unlock()
	return len(entries)
}
