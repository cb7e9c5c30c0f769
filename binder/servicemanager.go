package binder

import (
	"sort"
	"sync"

	"github.com/binderkit/binderrpc/cookie"
	"github.com/binderkit/binderrpc/errors"
)

// ServiceManager is the in-process registry that pairs accessor providers
// with the instances they serve.
type ServiceManager struct {
	mu        sync.Mutex
	providers map[string]*AccessorProvider
}

// AccessorProvider is a registered provider callback serving a fixed set of
// instance names. It holds one reference to its cookie, released exactly
// once on unregistration.
type AccessorProvider struct {
	get          GetAccessorFunc
	release      ReleaseFunc
	cookie       cookie.Cookie
	instances    []string
	unregistered bool // guarded by the owning ServiceManager's mu
}

// NewServiceManager creates an empty registry.
func NewServiceManager() *ServiceManager {
	return &ServiceManager{
		providers: make(map[string]*AccessorProvider),
	}
}

// RegisterAccessorProvider registers a provider callback for a set of
// instance names. On success the registry owns one reference to c and will
// call onDelete on it exactly once when the provider is unregistered; on
// failure the caller keeps its reference.
func (sm *ServiceManager) RegisterAccessorProvider(get GetAccessorFunc, instances []string, c cookie.Cookie, onDelete ReleaseFunc) (*AccessorProvider, error) {
	if get == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, "accessor provider callback")
	}
	if onDelete == nil {
		return nil, errors.NilPointer(errors.PhaseRegister, "provider release callback")
	}
	if len(instances) == 0 {
		return nil, errors.InvalidInput(errors.PhaseRegister, "no instances to register")
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	seen := make(map[string]struct{}, len(instances))
	for _, instance := range instances {
		if instance == "" {
			return nil, errors.InvalidInput(errors.PhaseRegister, "empty instance name")
		}
		if _, dup := seen[instance]; dup {
			return nil, errors.Duplicate(instance)
		}
		if _, dup := sm.providers[instance]; dup {
			return nil, errors.Duplicate(instance)
		}
		seen[instance] = struct{}{}
	}

	p := &AccessorProvider{
		get:       get,
		release:   onDelete,
		cookie:    c,
		instances: append([]string(nil), instances...),
	}
	for _, instance := range p.instances {
		sm.providers[instance] = p
	}
	return p, nil
}

// UnregisterAccessorProvider removes a provider and releases its cookie
// reference. Calls after the first are no-ops.
func (sm *ServiceManager) UnregisterAccessorProvider(p *AccessorProvider) {
	if p == nil {
		return
	}

	sm.mu.Lock()
	if p.unregistered {
		sm.mu.Unlock()
		return
	}
	p.unregistered = true
	for _, instance := range p.instances {
		if sm.providers[instance] == p {
			delete(sm.providers, instance)
		}
	}
	sm.mu.Unlock()

	p.release(p.cookie)
}

// FindAccessor asks the provider registered for an instance to manufacture
// an accessor. The provider cookie is retained for the duration of the
// callback. The returned accessor is owned by the caller; nil means no
// provider serves the instance (or one is mid-teardown).
func (sm *ServiceManager) FindAccessor(instance string) *RpcAccessor {
	sm.mu.Lock()
	p := sm.providers[instance]
	sm.mu.Unlock()
	if p == nil {
		return nil
	}

	if !cookie.Retain(p.cookie) {
		return nil
	}
	acc := p.get(cstring(instance), p.cookie)
	p.release(p.cookie)
	return acc
}

// GetConnection resolves connection info for an instance end to end:
// provider lookup, accessor construction, one resolution call, accessor
// teardown. Reports false when no provider serves the instance or the
// resolver declines it.
func (sm *ServiceManager) GetConnection(instance string) (*ConnectionInfo, bool) {
	acc := sm.FindAccessor(instance)
	if acc == nil {
		return nil, false
	}
	defer acc.Delete()
	return acc.Connect(instance)
}

// Instances lists every instance with a registered provider, sorted.
func (sm *ServiceManager) Instances() []string {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	out := make([]string, 0, len(sm.providers))
	for instance := range sm.providers {
		out = append(out, instance)
	}
	sort.Strings(out)
	return out
}
