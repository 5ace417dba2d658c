package driver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/cudashim/cuda"
)

// TestFacade is the only test using the process-wide State.
func TestFacade(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addressing: opaque
devices:
  - name: "Intel(R) Arc(TM) A770 Graphics"
  - name: "Intel(R) Arc(TM) A380 Graphics"
`), 0o644))
	t.Setenv("CUDASHIM_SIM_CONFIG", path)
	t.Cleanup(func() { Default().Close() })

	assert.Equal(t, int32(12040), GetVersion())
	assert.Equal(t, "sim", Default().Backend().Name())

	require.NoError(t, Init(0))
	require.NoError(t, Init(0))

	n, err := DeviceCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	d, err := GetDevice(1)
	require.NoError(t, err)
	assert.Equal(t, "Intel(R) Arc(TM) A380 Graphics", d.Name())

	byHandle, err := DeviceByHandle(d.Handle())
	require.NoError(t, err)
	assert.Same(t, d, byHandle)

	_, err = GetDevice(2)
	assert.Equal(t, cuda.ErrInvalidDevice, err)
}
