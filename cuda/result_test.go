package cuda

import (
	"errors"
	"fmt"
	"testing"
)

func TestResultOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Result
	}{
		{"nil", nil, Success},
		{"direct", ErrNoDevice, ErrNoDevice},
		{"wrapped", fmt.Errorf("hipGetDeviceCount: %w", ErrOutOfMemory), ErrOutOfMemory},
		{"double wrapped", fmt.Errorf("device 1: %w", fmt.Errorf("zeDeviceGet: %w", ErrDeviceLost)), ErrDeviceLost},
		{"foreign", errors.New("boom"), ErrUnknown},
		{"wrapped success", fmt.Errorf("call: %w", Success), ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResultOf(tt.err); got != tt.want {
				t.Errorf("ResultOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	if err := Success.Err(); err != nil {
		t.Errorf("Success.Err() = %v, want nil", err)
	}

	err := ErrInvalidDevice.Err()
	if !errors.Is(err, ErrInvalidDevice) {
		t.Errorf("ErrInvalidDevice.Err() = %v", err)
	}
}

func TestResultError(t *testing.T) {
	for r, want := range map[Result]string{
		Success:          "CUDA_SUCCESS",
		ErrOutOfMemory:   "CUDA_ERROR_OUT_OF_MEMORY",
		ErrDeviceLost:    "CUDA_ERROR_DEVICE_UNAVAILABLE",
		ErrNoDevice:      "CUDA_ERROR_NO_DEVICE",
		ErrInvalidDevice: "CUDA_ERROR_INVALID_DEVICE",
		ErrUnknown:       "CUDA_ERROR_UNKNOWN",
		Result(12345):    "CUDA_ERROR_UNKNOWN",
	} {
		if got := r.Error(); got != want {
			t.Errorf("Result(%d).Error() = %q, want %q", int32(r), got, want)
		}
	}
}
