// Package errors provides structured error types for the accessor library.
//
// Errors carry a Phase (where processing failed: registration, resolution,
// address encoding/decoding, configuration) and a Kind (what went wrong),
// plus optional instance name, detail text, offending value and cause. Two
// errors match under errors.Is when phase and kind agree, so callers can
// test for categories without string comparison:
//
//	_, err := sm.RegisterAccessorProvider(get, instances, c, release)
//	if errors.Is(err, &rpcerrors.Error{Phase: rpcerrors.PhaseRegister, Kind: rpcerrors.KindDuplicate}) {
//	    // another provider already serves one of these instances
//	}
//
// Construction uses either the convenience constructors or the builder:
//
//	rpcerrors.New(rpcerrors.PhaseConfig, rpcerrors.KindUnsupported).
//	    Instance(svc.Instance).
//	    Detail("unknown transport %q", svc.Transport).
//	    Build()
//
// Boundary trampolines never return errors across the boundary; anomalies
// there are logged and degrade to nil results. This package serves the
// ordinary call paths around them.
package errors
