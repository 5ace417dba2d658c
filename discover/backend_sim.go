//go:build !hip && !levelzero

package discover

import (
	"log/slog"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/backend/sim"
	"github.com/7blacky7/cudashim/envconfig"
)

// newBackend returns the simulated runtime described by CUDASHIM_SIM_CONFIG.
// Without a manifest there are no devices.
func newBackend() backend.Adapter {
	path := envconfig.SimConfig()
	if path == "" {
		slog.Debug("built without a GPU runtime and CUDASHIM_SIM_CONFIG is unset, no devices available")
		a, _ := sim.New(sim.Config{})
		return a
	}

	a, err := sim.Load(path)
	if err != nil {
		slog.Warn("unable to load simulated backend", "path", path, "error", err)
		return backend.Unavailable(err)
	}

	slog.Debug("using simulated backend", "path", path, "addressing", a.Addressing())
	return a
}
