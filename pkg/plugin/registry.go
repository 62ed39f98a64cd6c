package plugin

import (
	"fmt"
	"sync"

	"github.com/justyntemme/vst2go/pkg/vst2"
)

// Factory builds a new instance for a host. The loadable binary's entry
// point calls Open, which runs the registered factory.
type Factory func(host vst2.HostCallback) (*Instance, error)

var (
	// Instances are handed to the host as integer handles so no Go
	// pointer crosses the boundary.
	instances   = make(map[uintptr]*Instance)
	instancesMu sync.RWMutex
	nextHandle  uintptr = 1

	globalFactory Factory
)

// Register sets the factory used by Open
func Register(f Factory) {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	globalFactory = f
}

// Open creates an instance with the registered factory and returns its
// handle.
func Open(host vst2.HostCallback) (uintptr, *Instance, error) {
	instancesMu.RLock()
	f := globalFactory
	instancesMu.RUnlock()
	if f == nil {
		return 0, nil, fmt.Errorf("plugin: no factory registered")
	}

	p, err := f(host)
	if err != nil {
		return 0, nil, err
	}

	instancesMu.Lock()
	defer instancesMu.Unlock()
	h := nextHandle
	nextHandle++
	instances[h] = p
	return h, p, nil
}

// Lookup returns the instance behind a handle, or nil
func Lookup(h uintptr) *Instance {
	instancesMu.RLock()
	defer instancesMu.RUnlock()
	if h == 0 {
		return nil
	}
	return instances[h]
}

// Release forgets a handle. The host dispatches Close before releasing.
func Release(h uintptr) {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	delete(instances, h)
}
