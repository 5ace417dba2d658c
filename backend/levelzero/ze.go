//go:build levelzero

// ze.go - Level-Zero-Adapter (handle adressiert)
// Dieses Modul bindet libze_loader per cgo an und implementiert backend.Adapter.
package levelzero

/*
#cgo linux LDFLAGS: -lze_loader
#cgo windows LDFLAGS: -lze_loader_1

#include <level_zero/ze_api.h>
*/
import "C"

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/cuda"
	"github.com/7blacky7/cudashim/logutil"
)

// Adapter drives the Level Zero loader. Devices are addressed by their
// ze_device_handle_t.
type Adapter struct {
	mu      sync.Mutex
	driver  C.ze_driver_handle_t
	devices map[backend.Handle]C.ze_device_handle_t
}

func New() *Adapter {
	return &Adapter{devices: make(map[backend.Handle]C.ze_device_handle_t)}
}

func (*Adapter) Name() string {
	return "levelzero"
}

func (*Adapter) Addressing() backend.Addressing {
	return backend.Opaque
}

// Initialize calls zeInit. Driver API flags have no Level Zero equivalent
// and are ignored.
func (*Adapter) Initialize(flags uint32) error {
	if flags != 0 {
		slog.Debug("ignoring init flags, no Level Zero equivalent", "flags", flags)
	}
	return Check("zeInit", Result(C.zeInit(0)))
}

// Enumerate lists the devices of the first driver reported by the loader.
func (a *Adapter) Enumerate() ([]backend.Handle, error) {
	var driverCount C.uint32_t
	if err := Check("zeDriverGet", Result(C.zeDriverGet(&driverCount, nil))); err != nil {
		return nil, err
	}
	if driverCount == 0 {
		return nil, fmt.Errorf("zeDriverGet: no drivers: %w", cuda.ErrNoDevice)
	}

	drivers := make([]C.ze_driver_handle_t, driverCount)
	if err := Check("zeDriverGet", Result(C.zeDriverGet(&driverCount, &drivers[0]))); err != nil {
		return nil, err
	}
	if driverCount > 1 {
		slog.Debug("multiple Level Zero drivers found, using the first", "count", int(driverCount))
	}
	driver := drivers[0]

	var deviceCount C.uint32_t
	if err := Check("zeDeviceGet", Result(C.zeDeviceGet(driver, &deviceCount, nil))); err != nil {
		return nil, err
	}
	if deviceCount == 0 {
		return nil, nil
	}

	devices := make([]C.ze_device_handle_t, deviceCount)
	if err := Check("zeDeviceGet", Result(C.zeDeviceGet(driver, &deviceCount, &devices[0]))); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.driver = driver
	handles := make([]backend.Handle, 0, int(deviceCount))
	for _, dev := range devices[:deviceCount] {
		h := backend.Handle(uintptr(unsafe.Pointer(dev)))
		a.devices[h] = dev
		handles = append(handles, h)
		logutil.Trace("level zero device", "handle", h)
	}
	return handles, nil
}

func (a *Adapter) device(h backend.Handle) (C.ze_driver_handle_t, C.ze_device_handle_t, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	dev, ok := a.devices[h]
	if !ok {
		return nil, nil, fmt.Errorf("device handle %v not enumerated: %w", h, cuda.ErrInvalidDevice)
	}
	return a.driver, dev, nil
}

func (a *Adapter) Properties(h backend.Handle) (backend.Properties, error) {
	_, dev, err := a.device(h)
	if err != nil {
		return backend.Properties{}, err
	}

	var props C.ze_device_properties_t
	props.stype = C.ZE_STRUCTURE_TYPE_DEVICE_PROPERTIES
	if err := Check("zeDeviceGetProperties", Result(C.zeDeviceGetProperties(dev, &props))); err != nil {
		return backend.Properties{}, err
	}

	name, err := backend.ParseName(unsafe.Slice((*byte)(unsafe.Pointer(&props.name[0])), len(props.name)))
	if err != nil {
		return backend.Properties{}, err
	}

	id, err := backend.ParseUUID(unsafe.Slice((*byte)(unsafe.Pointer(&props.uuid.id[0])), len(props.uuid.id)))
	if err != nil {
		return backend.Properties{}, err
	}

	return backend.Properties{Name: name, UUID: id}, nil
}

// NewContext creates a Level Zero context on the device's driver.
func (a *Adapter) NewContext(h backend.Handle) (backend.Context, error) {
	driver, _, err := a.device(h)
	if err != nil {
		return nil, err
	}

	var desc C.ze_context_desc_t
	desc.stype = C.ZE_STRUCTURE_TYPE_CONTEXT_DESC

	var ctx C.ze_context_handle_t
	if err := Check("zeContextCreate", Result(C.zeContextCreate(driver, &desc, &ctx))); err != nil {
		return nil, err
	}

	return &zeContext{ctx: ctx}, nil
}

type zeContext struct {
	ctx C.ze_context_handle_t
}

func (c *zeContext) Handle() uintptr {
	return uintptr(unsafe.Pointer(c.ctx))
}

func (c *zeContext) Close() error {
	return Check("zeContextDestroy", Result(C.zeContextDestroy(c.ctx)))
}
