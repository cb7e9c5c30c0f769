// Package cookie provides a process-global, reference-counted table for
// values shared across the registry boundary.
//
// The boundary passes opaque integer cookies instead of pointers. A closure
// placed in the table with Put starts with one reference; every side that
// stashes the cookie takes one more with Retain and gives it back with
// exactly one Release. The value is freed when the count reaches zero, on
// whichever goroutine performed the final Release.
//
//	c := cookie.Put(resolver)     // refs = 1, owned by the wrapper
//	cookie.Retain(c)              // registry takes a reference for a call
//	v, ok := cookie.Get(c)        // borrow: no count change
//	cookie.Release(c)             // registry done with its reference
//	cookie.Release(c)             // wrapper teardown; entry freed here
//
// Correctness rests entirely on the exactly-once pairing: the table has no
// way to defend against a holder that releases twice or uses a cookie after
// its final release. It does detect the first symptom, a Release with no
// live entry, and logs it, since a violation on the registry side would
// otherwise be silent.
//
// # Concurrency
//
// All operations are safe for concurrent use. Retain fails (returns false)
// once the count has reached zero, so a caller racing teardown can never
// resurrect a freed entry.
package cookie
