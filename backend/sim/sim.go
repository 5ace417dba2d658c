// sim.go - Simuliertes Backend fuer Builds ohne Vendor-Runtime
//
// Dieses Modul enthaelt:
// - Config/DeviceConfig: YAML-Manifest mit Geraeten und Fehlerinjektion
// - Load/New: Erzeugt den Adapter aus Datei oder Struktur
// - Adapter: backend.Adapter mit Aufrufzaehlern fuer Tests
//
// Native Fehlercodes im Manifest werden je nach Adressierung als HIP-Codes
// (ordinal) oder Level-Zero-Codes (opaque) interpretiert und mit dem
// jeweiligen Uebersetzer in kanonische Ergebnisse umgewandelt.
package sim

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/backend/hip"
	"github.com/7blacky7/cudashim/backend/levelzero"
	"github.com/7blacky7/cudashim/cuda"
)

// nameSize matches the fixed name buffers of the vendor property structs.
const nameSize = 256

const (
	handleBase  = 0x5a5a0000
	handleStep  = 0x40
	contextBase = 0xc0de0000
)

// DeviceConfig describes one simulated device.
type DeviceConfig struct {
	Name string `yaml:"name"`

	// UUID is optional; a stable UUID derived from the name is used otherwise.
	UUID string `yaml:"uuid,omitempty"`

	// PropertiesError and ContextError are native codes returned by the
	// property query and context creation of this device.
	PropertiesError int64 `yaml:"properties_error,omitempty"`
	ContextError    int64 `yaml:"context_error,omitempty"`

	// Unterminated fills the whole name buffer without a NUL terminator.
	Unterminated bool `yaml:"unterminated,omitempty"`
}

// Config is the manifest of a simulated runtime.
type Config struct {
	// Addressing is "ordinal" (default) or "opaque".
	Addressing string `yaml:"addressing"`

	InitError      int64 `yaml:"init_error,omitempty"`
	EnumerateError int64 `yaml:"enumerate_error,omitempty"`

	Devices []DeviceConfig `yaml:"devices"`
}

// Stats counts adapter calls.
type Stats struct {
	Initialize   int64
	Enumerate    int64
	Properties   int64
	NewContext   int64
	OpenContexts int64
}

type device struct {
	DeviceConfig
	handle backend.Handle
	uuid   uuid.UUID
}

// Adapter is a backend.Adapter backed by a Config.
type Adapter struct {
	addressing backend.Addressing
	cfg        Config
	devices    []device
	byHandle   map[backend.Handle]*device

	initialize   atomic.Int64
	enumerate    atomic.Int64
	properties   atomic.Int64
	newContext   atomic.Int64
	openContexts atomic.Int64
	contextSeq   atomic.Uint64
}

// Load reads a YAML manifest from path.
func Load(path string) (*Adapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read simulated backend manifest: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse simulated backend manifest %s: %w", path, err)
	}

	return New(cfg)
}

// New validates cfg and returns an Adapter for it.
func New(cfg Config) (*Adapter, error) {
	a := &Adapter{cfg: cfg, byHandle: make(map[backend.Handle]*device)}

	switch strings.ToLower(cfg.Addressing) {
	case "", "ordinal":
		a.addressing = backend.Ordinal
	case "opaque", "handle":
		a.addressing = backend.Opaque
	default:
		return nil, fmt.Errorf("unknown addressing %q", cfg.Addressing)
	}

	a.devices = make([]device, len(cfg.Devices))
	for i, dc := range cfg.Devices {
		d := device{DeviceConfig: dc}
		if dc.UUID != "" {
			id, err := uuid.Parse(dc.UUID)
			if err != nil {
				return nil, fmt.Errorf("device %d: %w", i, err)
			}
			d.uuid = id
		} else {
			d.uuid = uuid.NewSHA1(uuid.NameSpaceOID, fmt.Appendf(nil, "cudashim-sim/%d/%s", i, dc.Name))
		}

		if a.addressing == backend.Ordinal {
			d.handle = backend.Handle(i)
		} else {
			d.handle = backend.Handle(handleBase + i*handleStep)
		}
		a.devices[i] = d
	}
	for i := range a.devices {
		a.byHandle[a.devices[i].handle] = &a.devices[i]
	}

	return a, nil
}

func (a *Adapter) Name() string {
	return "sim"
}

func (a *Adapter) Addressing() backend.Addressing {
	return a.addressing
}

// check translates a native code with the translator matching the
// adapter's addressing.
func (a *Adapter) check(fn string, code int64) error {
	if a.addressing == backend.Opaque {
		return levelzero.Check(fn, levelzero.Result(code))
	}
	return hip.Check(fn, hip.Error(code))
}

func (a *Adapter) Initialize(flags uint32) error {
	a.initialize.Add(1)
	return a.check("simInit", a.cfg.InitError)
}

func (a *Adapter) Enumerate() ([]backend.Handle, error) {
	a.enumerate.Add(1)
	if err := a.check("simDeviceGet", a.cfg.EnumerateError); err != nil {
		return nil, err
	}

	handles := make([]backend.Handle, len(a.devices))
	for i, d := range a.devices {
		handles[i] = d.handle
	}
	return handles, nil
}

func (a *Adapter) lookup(h backend.Handle) (*device, error) {
	d, ok := a.byHandle[h]
	if !ok {
		return nil, fmt.Errorf("simulated device %v: %w", h, cuda.ErrInvalidDevice)
	}
	return d, nil
}

func (a *Adapter) Properties(h backend.Handle) (backend.Properties, error) {
	a.properties.Add(1)
	d, err := a.lookup(h)
	if err != nil {
		return backend.Properties{}, err
	}
	if err := a.check("simDeviceGetProperties", d.PropertiesError); err != nil {
		return backend.Properties{}, err
	}

	var buf [nameSize]byte
	n := copy(buf[:], d.Name)
	if d.Unterminated {
		for i := n; i < len(buf); i++ {
			buf[i] = ' '
		}
	}

	name, err := backend.ParseName(buf[:])
	if err != nil {
		return backend.Properties{}, err
	}

	id, err := backend.ParseUUID(d.uuid[:])
	if err != nil {
		return backend.Properties{}, err
	}

	return backend.Properties{Name: name, UUID: id}, nil
}

func (a *Adapter) NewContext(h backend.Handle) (backend.Context, error) {
	a.newContext.Add(1)
	d, err := a.lookup(h)
	if err != nil {
		return nil, err
	}
	if err := a.check("simContextCreate", d.ContextError); err != nil {
		return nil, err
	}

	a.openContexts.Add(1)
	return &simContext{
		adapter: a,
		handle:  uintptr(contextBase + a.contextSeq.Add(1)),
	}, nil
}

// Stats returns a snapshot of the call counters.
func (a *Adapter) Stats() Stats {
	return Stats{
		Initialize:   a.initialize.Load(),
		Enumerate:    a.enumerate.Load(),
		Properties:   a.properties.Load(),
		NewContext:   a.newContext.Load(),
		OpenContexts: a.openContexts.Load(),
	}
}

var errContextClosed = errors.New("simulated context already closed")

type simContext struct {
	adapter *Adapter
	handle  uintptr
	closed  atomic.Bool
}

func (c *simContext) Handle() uintptr {
	return c.handle
}

func (c *simContext) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return errContextClosed
	}
	c.adapter.openContexts.Add(-1)
	return nil
}
