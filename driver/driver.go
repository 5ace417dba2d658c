// driver.go - Prozessweite Driver-Fassade
//
// Dieses Modul enthaelt die Einstiegspunkte, die Aufrufer nutzen:
// Init, GetVersion, GetDevice, DeviceCount und DeviceByHandle. Alle arbeiten
// auf einem prozessweiten State, der beim ersten Zugriff mit dem zur
// Build-Zeit gewaehlten Backend angelegt wird.
package driver

import (
	"sync"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/cuda"
	"github.com/7blacky7/cudashim/discover"
)

var defaultState = sync.OnceValue(func() *State {
	return NewState(discover.Backend())
})

// Default returns the process-wide State.
func Default() *State {
	return defaultState()
}

// Init initializes the backend runtime and discovers all devices. flags are
// passed to backends that understand them.
func Init(flags uint32) error {
	return Default().Init(flags)
}

// GetVersion returns the driver API version. It never touches the backend.
func GetVersion() int32 {
	return cuda.Version
}

// GetDevice returns the device with the given ordinal.
func GetDevice(ordinal int) (*Device, error) {
	return Default().Device(ordinal)
}

func DeviceCount() (int, error) {
	return Default().DeviceCount()
}

// DeviceByHandle resolves a backend-native device handle, e.g. one received
// in a runtime callback.
func DeviceByHandle(h backend.Handle) (*Device, error) {
	return Default().DeviceByHandle(h)
}
