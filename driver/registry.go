package driver

import (
	"fmt"
	"sync"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/cuda"
	"github.com/7blacky7/cudashim/logutil"
)

// Registry resolves backend-native device handles to their Device. A single
// Registry serves every goroutine; entries point into the State's device
// sequence and never own a Device.
type Registry struct {
	mu      sync.RWMutex
	devices map[backend.Handle]*Device
}

// Register adds or replaces the entry for h.
func (r *Registry) Register(h backend.Handle, d *Device) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.devices == nil {
		r.devices = make(map[backend.Handle]*Device)
	}
	r.devices[h] = d
	logutil.Trace("registered device handle", "handle", h, "ordinal", d.ordinal)
}

// Lookup returns the Device registered for h.
func (r *Registry) Lookup(h backend.Handle) (*Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.devices[h]
	if !ok {
		return nil, fmt.Errorf("device handle %v: %w", h, cuda.ErrInvalidDevice)
	}
	return d, nil
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// Reset removes every entry.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices = nil
}
