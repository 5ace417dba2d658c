//go:build !hip && !levelzero

package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/cuda"
)

func TestBackendWithoutManifest(t *testing.T) {
	t.Setenv("CUDASHIM_SIM_CONFIG", "")

	a := Backend()
	assert.Equal(t, "sim", a.Name())
	require.NoError(t, a.Initialize(0))
	handles, err := a.Enumerate()
	require.NoError(t, err)
	assert.Empty(t, handles)
}

func TestBackendManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addressing: opaque
devices:
  - name: "Intel(R) Data Center GPU Max 1550"
`), 0o644))
	t.Setenv("CUDASHIM_SIM_CONFIG", path)

	a := Backend()
	assert.Equal(t, backend.Opaque, a.Addressing())
	handles, err := a.Enumerate()
	require.NoError(t, err)
	require.Len(t, handles, 1)

	props, err := a.Properties(handles[0])
	require.NoError(t, err)
	assert.Equal(t, "Intel(R) Data Center GPU Max 1550", props.Name)
}

func TestBackendBadManifest(t *testing.T) {
	t.Setenv("CUDASHIM_SIM_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	a := Backend()
	assert.Equal(t, "unavailable", a.Name())
	assert.Equal(t, cuda.ErrUnknown, cuda.ResultOf(a.Initialize(0)))
	_, err := a.Enumerate()
	assert.Equal(t, cuda.ErrUnknown, cuda.ResultOf(err))
}

func TestOverrideWarnings(t *testing.T) {
	t.Setenv("HIP_VISIBLE_DEVICES", "")
	t.Setenv("ZE_AFFINITY_MASK", "")
	assert.False(t, overrideWarnings())

	t.Setenv("ZE_AFFINITY_MASK", "0.0")
	assert.True(t, overrideWarnings())
}
