// Modul: discover.go
// Beschreibung: Auswahl der zur Build-Zeit eingebundenen GPU-Runtime.
// Enthaelt Backend-Funktion und Warnungen bei Sichtbarkeits-Overrides.

package discover

import (
	"log/slog"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/envconfig"
)

// Backend returns the adapter of the runtime compiled into this binary. The
// hip and levelzero build tags select a vendor runtime; without either the
// simulated runtime is used.
func Backend() backend.Adapter {
	slog.Info("discovering available GPUs...")

	// Warn if any user-overrides are set which could lead to incorrect GPU discovery
	overrideWarnings()

	a := newBackend()
	slog.Debug("selected GPU runtime", "backend", a.Name(), "addressing", a.Addressing())
	return a
}

func overrideWarnings() bool {
	anyFound := false
	m := envconfig.AsMap()
	for _, k := range []string{
		"HIP_VISIBLE_DEVICES",
		"ZE_AFFINITY_MASK",
	} {
		if e, found := m[k]; found && e.Value != "" {
			anyFound = true
			slog.Warn("user overrode visible devices", k, e.Value)
		}
	}
	if anyFound {
		slog.Warn("if GPUs are not correctly discovered, unset and try again")
	}
	return anyFound
}
