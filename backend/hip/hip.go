//go:build hip

// hip.go - HIP-Runtime-Adapter (ordinal adressiert)
// Dieses Modul bindet libamdhip64 per cgo an und implementiert backend.Adapter.
package hip

/*
#cgo CFLAGS: -D__HIP_PLATFORM_AMD__ -I/opt/rocm/include
#cgo LDFLAGS: -L/opt/rocm/lib -lamdhip64

#include <hip/hip_runtime_api.h>

// hipGetDeviceProperties is a macro selecting the versioned entry point,
// which cgo cannot call directly.
static hipError_t cudashim_get_properties(hipDeviceProp_t *props, int device) {
	return hipGetDeviceProperties(props, device);
}
*/
import "C"

import (
	"log/slog"
	"unsafe"

	"github.com/7blacky7/cudashim/backend"
)

// Adapter drives the HIP runtime. Devices are addressed by ordinal.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (*Adapter) Name() string {
	return "hip"
}

func (*Adapter) Addressing() backend.Addressing {
	return backend.Ordinal
}

// Initialize calls hipInit with the driver API flags unchanged.
func (*Adapter) Initialize(flags uint32) error {
	return Check("hipInit", Error(C.hipInit(C.uint(flags))))
}

func (*Adapter) Enumerate() ([]backend.Handle, error) {
	var count C.int
	if err := Check("hipGetDeviceCount", Error(C.hipGetDeviceCount(&count))); err != nil {
		return nil, err
	}

	handles := make([]backend.Handle, int(count))
	for i := range handles {
		handles[i] = backend.Handle(i)
	}
	return handles, nil
}

func (*Adapter) Properties(h backend.Handle) (backend.Properties, error) {
	var props C.hipDeviceProp_t
	if err := Check("hipGetDeviceProperties", Error(C.cudashim_get_properties(&props, C.int(h)))); err != nil {
		return backend.Properties{}, err
	}

	isa := unsafe.Slice((*byte)(unsafe.Pointer(&props.gcnArchName[0])), len(props.gcnArchName))
	name, err := backend.ParseName(isa)
	if err != nil {
		return backend.Properties{}, err
	}

	id, err := backend.ParseUUID(unsafe.Slice((*byte)(unsafe.Pointer(&props.uuid.bytes[0])), len(props.uuid.bytes)))
	if err != nil {
		return backend.Properties{}, err
	}

	return backend.Properties{Name: name, UUID: id}, nil
}

// NewContext retains the device's primary context.
func (*Adapter) NewContext(h backend.Handle) (backend.Context, error) {
	var ctx C.hipCtx_t
	dev := C.hipDevice_t(h)
	if err := Check("hipDevicePrimaryCtxRetain", Error(C.hipDevicePrimaryCtxRetain(&ctx, dev))); err != nil {
		return nil, err
	}

	slog.Debug("retained primary context", "device", int(h))
	return &primaryContext{dev: dev, ctx: ctx}, nil
}

type primaryContext struct {
	dev C.hipDevice_t
	ctx C.hipCtx_t
}

func (c *primaryContext) Handle() uintptr {
	return uintptr(unsafe.Pointer(c.ctx))
}

func (c *primaryContext) Close() error {
	return Check("hipDevicePrimaryCtxRelease", Error(C.hipDevicePrimaryCtxRelease(c.dev)))
}
