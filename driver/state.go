// state.go - Globaler Geraete-Zustand mit einmaliger Initialisierung
//
// Dieses Modul enthaelt:
// - State: baut die Geraeteliste genau einmal auf und merkt sich das Ergebnis
// - Init/Device/DeviceByHandle: Zugriffe auf den gemerkten Zustand
// - Close: Abbau fuer Tests und eingebettete Nutzer
package driver

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/cuda"
	"github.com/7blacky7/cudashim/logutil"
)

// State owns the device sequence discovered through one backend. The
// sequence is built once, on first use, and is immutable afterwards.
type State struct {
	backend     backend.Adapter
	initialized atomic.Bool

	// cell is replaced only by Close
	cell    atomic.Pointer[cell]
	closeMu sync.Mutex
}

// cell memoizes one construction attempt. registry is committed before
// once returns, so every observer of a successful result also sees the
// complete registry.
type cell struct {
	once     sync.Once
	devices  []*Device
	registry Registry
	err      error
}

func NewState(a backend.Adapter) *State {
	s := &State{backend: a}
	s.cell.Store(&cell{})
	return s
}

// Backend returns the adapter the State discovers devices through.
func (s *State) Backend() backend.Adapter {
	return s.backend
}

// Init brings up the backend runtime and forces device discovery. A failed
// discovery is permanent: later calls return the same error without
// enumerating again.
func (s *State) Init(flags uint32) error {
	if err := s.backend.Initialize(flags); err != nil {
		slog.Warn("backend initialization failed", "backend", s.backend.Name(), "flags", flags, "error", err)
		return cuda.ResultOf(err)
	}
	s.initialized.Store(true)

	_, err := s.load()
	return err
}

// Device returns the device with the given ordinal.
func (s *State) Device(ordinal int) (*Device, error) {
	devices, err := s.load()
	if err != nil {
		return nil, err
	}
	if ordinal < 0 || ordinal >= len(devices) {
		return nil, cuda.ErrInvalidDevice
	}
	return devices[ordinal], nil
}

// DeviceCount returns the number of discovered devices.
func (s *State) DeviceCount() (int, error) {
	devices, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(devices), nil
}

// Devices returns the device sequence in ordinal order.
func (s *State) Devices() ([]*Device, error) {
	devices, err := s.load()
	if err != nil {
		return nil, err
	}
	return append([]*Device(nil), devices...), nil
}

// DeviceByHandle resolves a backend-native device handle. Opaque backends
// go through the registry; for ordinal backends the handle is the ordinal.
func (s *State) DeviceByHandle(h backend.Handle) (*Device, error) {
	c := s.cell.Load()
	devices, err := c.get(s)
	if err != nil {
		return nil, cuda.ErrInvalidDevice
	}

	if s.backend.Addressing() == backend.Ordinal {
		if uint64(h) >= uint64(len(devices)) {
			return nil, cuda.ErrInvalidDevice
		}
		return devices[h], nil
	}

	d, err := c.registry.Lookup(h)
	if err != nil {
		logutil.Trace("device handle lookup failed", "error", err)
		return nil, cuda.ErrInvalidDevice
	}
	return d, nil
}

// Close releases every primary context and returns the State to its
// uninitialized form, so the next call discovers devices again. Close must
// not race with other use of the State or of its Devices.
func (s *State) Close() error {
	s.closeMu.Lock()
	defer s.closeMu.Unlock()

	old := s.cell.Swap(&cell{})
	// wait for a construction in flight, or mark an unused cell as done
	old.once.Do(func() {})
	old.registry.Reset()
	s.initialized.Store(false)

	var errs []error
	for _, d := range old.devices {
		if err := d.primary.close(); err != nil {
			errs = append(errs, fmt.Errorf("device %d: %w", d.ordinal, err))
		}
	}
	return errors.Join(errs...)
}

func (s *State) load() ([]*Device, error) {
	return s.cell.Load().get(s)
}

func (c *cell) get(s *State) ([]*Device, error) {
	c.once.Do(func() {
		devices, err := s.build(&c.registry)
		if err != nil {
			slog.Warn("device discovery failed", "backend", s.backend.Name(), "error", err)
			c.err = cuda.ResultOf(err)
			return
		}
		c.devices = devices
	})
	return c.devices, c.err
}

// build enumerates every device and creates its primary context. The first
// failure discards all devices built so far.
func (s *State) build(registry *Registry) ([]*Device, error) {
	start := time.Now()
	defer func() {
		slog.Debug("device discovery took", "duration", time.Since(start))
	}()

	name := s.backend.Name()
	if !s.initialized.Load() {
		if err := s.backend.Initialize(0); err != nil {
			return nil, err
		}
	}

	handles, err := s.backend.Enumerate()
	if err != nil {
		return nil, err
	}
	if len(handles) == 0 {
		return nil, fmt.Errorf("%s: no devices: %w", name, cuda.ErrNoDevice)
	}

	devices := make([]*Device, 0, len(handles))
	for i, h := range handles {
		d, err := s.newDevice(i, h)
		if err != nil {
			discard(devices)
			return nil, fmt.Errorf("device %d (%v): %w", i, h, err)
		}
		devices = append(devices, d)
		slog.Debug("discovered device", "backend", name, "device", d)
	}

	if s.backend.Addressing() == backend.Opaque {
		for _, d := range devices {
			registry.Register(d.handle, d)
		}
	}

	slog.Info("device discovery complete", "backend", name, "addressing", s.backend.Addressing(), "count", len(devices))
	return devices, nil
}

func (s *State) newDevice(ordinal int, h backend.Handle) (*Device, error) {
	props, err := s.backend.Properties(h)
	if err != nil {
		return nil, err
	}

	native, err := s.backend.NewContext(h)
	if err != nil {
		return nil, err
	}

	d := &Device{
		ordinal: ordinal,
		handle:  h,
		name:    props.Name,
		uuid:    props.UUID,
	}
	d.primary = &Context{device: d, native: native}
	return d, nil
}

func discard(devices []*Device) {
	for _, d := range devices {
		if err := d.primary.close(); err != nil {
			slog.Warn("failed to release primary context", "device", d, "error", err)
		}
	}
}
