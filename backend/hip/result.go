// result.go - HIP-Fehlercodes und Uebersetzung in kanonische Ergebnisse
// Dieses Modul ist ohne cgo uebersetzbar, damit die Tabelle immer getestet wird.
package hip

import (
	"fmt"

	"github.com/7blacky7/cudashim/cuda"
)

// Error is a hipError_t value.
type Error int32

const (
	Success             Error = 0
	ErrorInvalidValue   Error = 1
	ErrorOutOfMemory    Error = 2
	ErrorNotInitialized Error = 3
	ErrorDeinitialized  Error = 4
	ErrorNoDevice       Error = 100
	ErrorInvalidDevice  Error = 101
	ErrorInvalidContext Error = 201
	ErrorNotReady       Error = 600
	ErrorIllegalAddress Error = 700
	ErrorLaunchFailure  Error = 719
	ErrorNotSupported   Error = 801
	ErrorUnknown        Error = 999
	ErrorRuntimeMemory  Error = 1052
	ErrorRuntimeOther   Error = 1053
)

var names = map[Error]string{
	Success:             "hipSuccess",
	ErrorInvalidValue:   "hipErrorInvalidValue",
	ErrorOutOfMemory:    "hipErrorOutOfMemory",
	ErrorNotInitialized: "hipErrorNotInitialized",
	ErrorDeinitialized:  "hipErrorDeinitialized",
	ErrorNoDevice:       "hipErrorNoDevice",
	ErrorInvalidDevice:  "hipErrorInvalidDevice",
	ErrorInvalidContext: "hipErrorInvalidContext",
	ErrorNotReady:       "hipErrorNotReady",
	ErrorIllegalAddress: "hipErrorIllegalAddress",
	ErrorLaunchFailure:  "hipErrorLaunchFailure",
	ErrorNotSupported:   "hipErrorNotSupported",
	ErrorUnknown:        "hipErrorUnknown",
	ErrorRuntimeMemory:  "hipErrorRuntimeMemory",
	ErrorRuntimeOther:   "hipErrorRuntimeOther",
}

func (e Error) Error() string {
	if s, ok := names[e]; ok {
		return s
	}
	return fmt.Sprintf("hipError(%d)", int32(e))
}

// Translate maps a HIP status onto the canonical driver API result. Codes
// without a canonical counterpart become cuda.ErrUnknown.
func Translate(e Error) cuda.Result {
	switch e {
	case Success:
		return cuda.Success
	case ErrorOutOfMemory:
		return cuda.ErrOutOfMemory
	case ErrorNoDevice:
		return cuda.ErrNoDevice
	case ErrorInvalidDevice:
		return cuda.ErrInvalidDevice
	default:
		return cuda.ErrUnknown
	}
}

// Check converts the status of the HIP call fn into an error. The error
// wraps both the native code and its canonical translation.
func Check(fn string, e Error) error {
	if e == Success {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", fn, e, Translate(e))
}
