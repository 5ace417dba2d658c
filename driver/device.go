// device.go - Geraete-Datensatz und Primaerkontext
// Dieses Modul enthaelt Device und Context, die nach dem Aufbau des
// globalen Zustands nur noch gelesen werden.
package driver

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/7blacky7/cudashim/backend"
)

// Device is the unified record of one GPU. All fields are set during State
// construction and never change afterwards, so a *Device may be shared
// freely between goroutines.
type Device struct {
	ordinal int
	handle  backend.Handle
	name    string
	uuid    uuid.UUID
	primary *Context
}

// Ordinal is the device's index in the process-wide device sequence.
func (d *Device) Ordinal() int {
	return d.ordinal
}

// Handle is the backend-native identity of the device.
func (d *Device) Handle() backend.Handle {
	return d.handle
}

// Name is the architecture or device name reported by the backend.
func (d *Device) Name() string {
	return d.name
}

func (d *Device) UUID() uuid.UUID {
	return d.uuid
}

// PrimaryContext returns the device's primary context and its native handle.
func (d *Device) PrimaryContext() (*Context, uintptr) {
	return d.primary, d.primary.Handle()
}

func (d *Device) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("ordinal", d.ordinal),
		slog.String("handle", d.handle.String()),
		slog.String("name", d.name),
		slog.String("uuid", d.uuid.String()),
	)
}

// Context is the primary context of a Device. It is owned exclusively by
// its Device.
type Context struct {
	device *Device
	native backend.Context
}

// Device returns the device owning the context.
func (c *Context) Device() *Device {
	return c.device
}

// Handle returns the backend-native context handle.
func (c *Context) Handle() uintptr {
	return c.native.Handle()
}

func (c *Context) close() error {
	return c.native.Close()
}
