// result.go - Level-Zero-Ergebniscodes und Uebersetzung
// Dieses Modul ist ohne cgo uebersetzbar, damit die Tabelle immer getestet wird.
package levelzero

import (
	"fmt"

	"github.com/7blacky7/cudashim/cuda"
)

// Result is a ze_result_t value.
type Result uint32

const (
	ResultSuccess                      Result = 0
	ResultNotReady                     Result = 0x1
	ResultErrorDeviceLost              Result = 0x70000001
	ResultErrorOutOfHostMemory         Result = 0x70000002
	ResultErrorOutOfDeviceMemory       Result = 0x70000003
	ResultErrorModuleBuildFailure      Result = 0x70000004
	ResultErrorDeviceRequiresReset     Result = 0x70000006
	ResultErrorDeviceInLowPowerState   Result = 0x70000007
	ResultErrorInsufficientPermissions Result = 0x70010000
	ResultErrorNotAvailable            Result = 0x70010001
	ResultErrorUninitialized           Result = 0x78000001
	ResultErrorUnsupportedVersion      Result = 0x78000002
	ResultErrorUnsupportedFeature      Result = 0x78000003
	ResultErrorInvalidArgument         Result = 0x78000004
	ResultErrorInvalidNullHandle       Result = 0x78000005
	ResultErrorInvalidNullPointer      Result = 0x78000007
	ResultErrorUnknown                 Result = 0x7ffffffe
)

var names = map[Result]string{
	ResultSuccess:                      "ZE_RESULT_SUCCESS",
	ResultNotReady:                     "ZE_RESULT_NOT_READY",
	ResultErrorDeviceLost:              "ZE_RESULT_ERROR_DEVICE_LOST",
	ResultErrorOutOfHostMemory:         "ZE_RESULT_ERROR_OUT_OF_HOST_MEMORY",
	ResultErrorOutOfDeviceMemory:       "ZE_RESULT_ERROR_OUT_OF_DEVICE_MEMORY",
	ResultErrorModuleBuildFailure:      "ZE_RESULT_ERROR_MODULE_BUILD_FAILURE",
	ResultErrorDeviceRequiresReset:     "ZE_RESULT_ERROR_DEVICE_REQUIRES_RESET",
	ResultErrorDeviceInLowPowerState:   "ZE_RESULT_ERROR_DEVICE_IN_LOW_POWER_STATE",
	ResultErrorInsufficientPermissions: "ZE_RESULT_ERROR_INSUFFICIENT_PERMISSIONS",
	ResultErrorNotAvailable:            "ZE_RESULT_ERROR_NOT_AVAILABLE",
	ResultErrorUninitialized:           "ZE_RESULT_ERROR_UNINITIALIZED",
	ResultErrorUnsupportedVersion:      "ZE_RESULT_ERROR_UNSUPPORTED_VERSION",
	ResultErrorUnsupportedFeature:      "ZE_RESULT_ERROR_UNSUPPORTED_FEATURE",
	ResultErrorInvalidArgument:         "ZE_RESULT_ERROR_INVALID_ARGUMENT",
	ResultErrorInvalidNullHandle:       "ZE_RESULT_ERROR_INVALID_NULL_HANDLE",
	ResultErrorInvalidNullPointer:      "ZE_RESULT_ERROR_INVALID_NULL_POINTER",
	ResultErrorUnknown:                 "ZE_RESULT_ERROR_UNKNOWN",
}

func (r Result) Error() string {
	if s, ok := names[r]; ok {
		return s
	}
	return fmt.Sprintf("ze_result_t(0x%x)", uint32(r))
}

// Translate maps a Level Zero result onto the canonical driver API result.
// Host and device out-of-memory both become cuda.ErrOutOfMemory; callers
// that need the distinction inspect the native code with errors.As.
func Translate(r Result) cuda.Result {
	switch r {
	case ResultSuccess:
		return cuda.Success
	case ResultErrorDeviceLost:
		return cuda.ErrDeviceLost
	case ResultErrorOutOfHostMemory, ResultErrorOutOfDeviceMemory:
		return cuda.ErrOutOfMemory
	default:
		return cuda.ErrUnknown
	}
}

// Check converts the result of the Level Zero call fn into an error. The
// error wraps both the native code and its canonical translation.
func Check(fn string, r Result) error {
	if r == ResultSuccess {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", fn, r, Translate(r))
}
