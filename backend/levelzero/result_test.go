package levelzero

import (
	"errors"
	"testing"

	"github.com/7blacky7/cudashim/cuda"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		code Result
		want cuda.Result
	}{
		{ResultSuccess, cuda.Success},
		{ResultErrorDeviceLost, cuda.ErrDeviceLost},
		{ResultErrorOutOfHostMemory, cuda.ErrOutOfMemory},
		{ResultErrorOutOfDeviceMemory, cuda.ErrOutOfMemory},
		{ResultNotReady, cuda.ErrUnknown},
		{ResultErrorUninitialized, cuda.ErrUnknown},
		{ResultErrorInvalidNullHandle, cuda.ErrUnknown},
		{ResultErrorUnknown, cuda.ErrUnknown},
		{Result(0x7fff0000), cuda.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code.Error(), func(t *testing.T) {
			if got := Translate(tt.code); got != tt.want {
				t.Errorf("Translate(0x%x) = %v, want %v", uint32(tt.code), got, tt.want)
			}
		})
	}
}

func TestTranslateTotal(t *testing.T) {
	for code := range names {
		got := Translate(code)
		if (got == cuda.Success) != (code == ResultSuccess) {
			t.Errorf("Translate(%v) = %v", code, got)
		}
	}
	for _, base := range []Result{0, 0x70000000, 0x70010000, 0x78000000, 0x7fffff00} {
		for code := base; code < base+0x100; code++ {
			if code != ResultSuccess && Translate(code) == cuda.Success {
				t.Fatalf("Translate(0x%x) = Success", uint32(code))
			}
		}
	}
}

func TestCheckKeepsHostDeviceDistinction(t *testing.T) {
	host := Check("zeContextCreate", ResultErrorOutOfHostMemory)
	dev := Check("zeContextCreate", ResultErrorOutOfDeviceMemory)

	if cuda.ResultOf(host) != cuda.ErrOutOfMemory || cuda.ResultOf(dev) != cuda.ErrOutOfMemory {
		t.Fatalf("both must translate to ErrOutOfMemory: %v, %v", host, dev)
	}

	var native Result
	if !errors.As(host, &native) || native != ResultErrorOutOfHostMemory {
		t.Errorf("host code lost: %v", host)
	}
	if !errors.As(dev, &native) || native != ResultErrorOutOfDeviceMemory {
		t.Errorf("device code lost: %v", dev)
	}

	if err := Check("zeInit", ResultSuccess); err != nil {
		t.Errorf("Check(success) = %v", err)
	}
}

func TestResultError(t *testing.T) {
	if got := ResultErrorDeviceLost.Error(); got != "ZE_RESULT_ERROR_DEVICE_LOST" {
		t.Errorf("Error() = %q", got)
	}
	if got := Result(0x70000042).Error(); got != "ze_result_t(0x70000042)" {
		t.Errorf("Error() = %q", got)
	}
}
