// backend.go - Adapter-Interface fuer Vendor-Runtimes
// Dieses Modul definiert die Faehigkeiten, die jede GPU-Runtime fuer die
// Geraete-Erkennung bereitstellen muss.
package backend

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// Addressing describes how a backend identifies its devices.
type Addressing int

const (
	// Ordinal backends address devices by index 0..count-1.
	Ordinal Addressing = iota

	// Opaque backends hand out driver-owned device handles.
	Opaque
)

func (a Addressing) String() string {
	switch a {
	case Ordinal:
		return "ordinal"
	case Opaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Handle is the backend-native identity of a device. For Ordinal backends
// it is the device index, for Opaque backends the driver handle value.
type Handle uintptr

func (h Handle) String() string {
	return "0x" + strconv.FormatUint(uint64(h), 16)
}

// ParseHandle accepts the forms produced by Handle.String as well as plain
// decimal values.
func ParseHandle(s string) (Handle, error) {
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid device handle %q: %w", s, err)
	}
	return Handle(n), nil
}

// Properties is the subset of the vendor property structure the driver
// layer keeps per device.
type Properties struct {
	// Name is the architecture or marketing name reported by the runtime,
	// e.g. "gfx1100" for HIP or "Intel(R) Arc(TM) A770 Graphics" for
	// Level Zero.
	Name string

	// UUID is the vendor-reported device UUID, zero if unsupported.
	UUID uuid.UUID
}

// Context is a primary context created by a backend. It is returned fully
// initialized.
type Context interface {
	// Handle returns the native context handle.
	Handle() uintptr

	// Close releases the context.
	Close() error
}

// Adapter is implemented by every vendor runtime. Errors returned by an
// Adapter always carry a canonical cuda.Result in their chain.
type Adapter interface {
	// Name identifies the runtime, e.g. "hip" or "levelzero".
	Name() string

	Addressing() Addressing

	// Initialize brings up the runtime. Calling it more than once is
	// allowed; runtimes treat repeated initialization as a no-op.
	Initialize(flags uint32) error

	// Enumerate returns the devices in runtime order.
	Enumerate() ([]Handle, error)

	Properties(h Handle) (Properties, error)

	// NewContext creates and initializes the primary context for h.
	NewContext(h Handle) (Context, error)
}
