// result.go - Kanonische Fehlercodes der Driver-API
//
// Dieses Modul enthaelt:
// - Result: geschlossene Aufzaehlung der Fehler, die Aufrufer sehen
// - ResultOf: holt den kanonischen Wert aus einer Fehlerkette
// - Version: feste Driver-API-Version
package cuda

import "errors"

// Version is the driver API version reported by GetVersion.
const Version int32 = 12040

// Result is the canonical driver API status. Every backend-native status is
// translated into one of these values before it reaches a caller. The
// numeric values follow the CUDA driver API.
type Result int32

const (
	Success          Result = 0
	ErrOutOfMemory   Result = 2
	ErrDeviceLost    Result = 46
	ErrNoDevice      Result = 100
	ErrInvalidDevice Result = 101
	ErrUnknown       Result = 999
)

func (r Result) Error() string {
	switch r {
	case Success:
		return "CUDA_SUCCESS"
	case ErrOutOfMemory:
		return "CUDA_ERROR_OUT_OF_MEMORY"
	case ErrDeviceLost:
		return "CUDA_ERROR_DEVICE_UNAVAILABLE"
	case ErrNoDevice:
		return "CUDA_ERROR_NO_DEVICE"
	case ErrInvalidDevice:
		return "CUDA_ERROR_INVALID_DEVICE"
	default:
		return "CUDA_ERROR_UNKNOWN"
	}
}

func (r Result) String() string {
	return r.Error()
}

// Err returns nil for Success and r otherwise.
func (r Result) Err() error {
	if r == Success {
		return nil
	}
	return r
}

// ResultOf returns the canonical status carried by err. A nil error is
// Success; an error chain without a Result is ErrUnknown.
func ResultOf(err error) Result {
	if err == nil {
		return Success
	}

	var r Result
	if errors.As(err, &r) {
		if r == Success {
			// a wrapped Success is still a failure of the wrapping call
			return ErrUnknown
		}
		return r
	}

	return ErrUnknown
}
