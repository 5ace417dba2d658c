// config_utils.go - Utility-Funktionen und Export fuer Konfiguration
//
// Dieses Modul enthaelt:
// - String: String-Getter
// - Uint: Integer-Getter mit Default-Wert
// - EnvVar: Struktur fuer Environment-Variablen-Info
// - AsMap: Gibt alle Konfigurationen als Map zurueck
// - Values: Gibt alle Konfigurationswerte als String-Map zurueck
package envconfig

import (
	"fmt"
	"log/slog"
	"strconv"
)

// =============================================================================
// String-Getter
// =============================================================================

// String gibt eine Funktion zurueck, die einen String liest
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// =============================================================================
// Integer-Getter
// =============================================================================

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// =============================================================================
// Export-Strukturen und -Funktionen
// =============================================================================

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"CUDASHIM_DEBUG":      {"CUDASHIM_DEBUG", LogLevel(), "Show additional debug information (e.g. CUDASHIM_DEBUG=1)"},
		"CUDASHIM_INIT_FLAGS": {"CUDASHIM_INIT_FLAGS", InitFlags(), "Flags passed to the backend runtime on init (default 0)"},
		"CUDASHIM_PROBE_JOBS": {"CUDASHIM_PROBE_JOBS", ProbeJobs(), "Parallel lookups run by 'devices --probe' (default 4)"},
		"CUDASHIM_SIM_CONFIG": {"CUDASHIM_SIM_CONFIG", SimConfig(), "Device manifest for the simulated backend (builds without hip/levelzero)"},
		"HIP_VISIBLE_DEVICES": {"HIP_VISIBLE_DEVICES", HipVisibleDevices(), "Set which AMD devices are visible by numeric ID"},
		"ZE_AFFINITY_MASK":    {"ZE_AFFINITY_MASK", ZeAffinityMask(), "Set which Level Zero devices are visible"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
