// Package mount records which features have been installed into a host so
// that repeated setup calls install each feature at most once.
package mount

import (
	"fmt"
	"sync"
)

// Registry tracks installed features by key. The zero value is ready to use.
type Registry struct {
	mu        sync.Mutex
	installed map[string]bool
}

// Default is the process-wide registry.
var Default = &Registry{}

// Install runs fn unless key is already installed and reports whether it ran.
// A failing fn leaves key uninstalled so a later call may retry. Calls are
// serialized; fn must not call Install on the same registry.
func (r *Registry) Install(key string, fn func() error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.installed[key] {
		return false, nil
	}
	if err := fn(); err != nil {
		return false, fmt.Errorf("mount.Install %s: %w", key, err)
	}
	if r.installed == nil {
		r.installed = make(map[string]bool)
	}
	r.installed[key] = true
	return true, nil
}

// Installed reports whether key has been installed.
func (r *Registry) Installed(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.installed[key]
}
