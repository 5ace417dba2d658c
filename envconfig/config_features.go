// config_features.go - Backend-Konfiguration
//
// Dieses Modul enthaelt:
// - Pfad zum Manifest des simulierten Backends
// - Parallelitaet der Probe-Lookups
// - Sichtbarkeits-Variablen der Vendor-Runtimes
package envconfig

var (
	// SimConfig ist der Pfad zum YAML-Manifest des simulierten Backends.
	// Nur in Builds ohne hip/levelzero Tag relevant.
	SimConfig = String("CUDASHIM_SIM_CONFIG")

	// ProbeJobs begrenzt parallele Handle-Lookups bei 'devices --probe'
	ProbeJobs = Uint("CUDASHIM_PROBE_JOBS", 4)
)

// =============================================================================
// GPU-Sichtbarkeits-Variablen
// =============================================================================

// Diese Variablen werden von den Vendor-Runtimes selbst gelesen. cudashim
// reicht sie nur durch, zeigt sie in der Hilfe an und warnt beim Discover.
var (
	// HipVisibleDevices steuert sichtbare AMD-Geraete
	HipVisibleDevices = String("HIP_VISIBLE_DEVICES")

	// ZeAffinityMask steuert sichtbare Level-Zero-Geraete
	ZeAffinityMask = String("ZE_AFFINITY_MASK")
)
