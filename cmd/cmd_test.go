package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/7blacky7/cudashim/backend/sim"
	"github.com/7blacky7/cudashim/cuda"
	"github.com/7blacky7/cudashim/driver"
)

func useSim(t *testing.T, cfg sim.Config) *driver.State {
	t.Helper()
	a, err := sim.New(cfg)
	require.NoError(t, err)
	s := driver.NewState(a)
	prev := state
	state = func() *driver.State { return s }
	t.Cleanup(func() {
		state = prev
		s.Close()
	})
	return s
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewCLI()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var intel = sim.Config{
	Addressing: "opaque",
	Devices: []sim.DeviceConfig{
		{Name: "Intel(R) Arc(TM) A770 Graphics", UUID: "8680a056-0800-0000-0300-000000000001"},
		{Name: "Intel(R) Arc(TM) A380 Graphics"},
	},
}

func TestDevicesTable(t *testing.T) {
	useSim(t, intel)

	out, err := run(t, "devices", "--probe")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ORDINAL"), lines[0])
	assert.Contains(t, lines[1], "Intel(R) Arc(TM) A770 Graphics")
	assert.Contains(t, lines[1], "8680a056-0800-0000-0300-000000000001")
	assert.Contains(t, lines[2], "A380")
}

func TestDevicesJSON(t *testing.T) {
	s := useSim(t, intel)

	out, err := run(t, "devices", "--json")
	require.NoError(t, err)

	var infos []deviceInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 2)

	d, err := s.Device(1)
	require.NoError(t, err)
	assert.Equal(t, 1, infos[1].Ordinal)
	assert.Equal(t, d.Handle().String(), infos[1].Handle)
	assert.NotEqual(t, "0x0", infos[1].Context)
}

func TestDevicesNoDevice(t *testing.T) {
	useSim(t, sim.Config{})

	_, err := run(t, "devices")
	require.Error(t, err)
	assert.ErrorIs(t, err, cuda.ErrNoDevice)
}

func TestLookup(t *testing.T) {
	s := useSim(t, intel)
	d, err := s.Device(0)
	require.NoError(t, err)

	out, err := run(t, "lookup", d.Handle().String())
	require.NoError(t, err)
	assert.Equal(t, "0\tIntel(R) Arc(TM) A770 Graphics\t8680a056-0800-0000-0300-000000000001\n", out)

	_, err = run(t, "lookup", "0x1")
	assert.ErrorIs(t, err, cuda.ErrInvalidDevice)

	_, err = run(t, "lookup", "gpu0")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	useSim(t, intel)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "driver API version 12040 (12.4)")
	assert.Contains(t, out, "backend sim (opaque addressing)")

	out, err = run(t, "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "cudashim version is")
}

func TestFormatDriverVersion(t *testing.T) {
	for v, want := range map[int32]string{12040: "12.4", 11080: "11.8", 12000: "12.0"} {
		assert.Equal(t, want, formatDriverVersion(v))
	}
}
