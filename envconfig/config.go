// config.go - Haupt-Konfigurationsfunktionen fuer cudashim
//
// Dieses Modul enthaelt:
// - LogLevel: Gibt Log-Level zurueck (CUDASHIM_DEBUG)
// - SimConfig: Pfad zum Manifest des simulierten Backends (CUDASHIM_SIM_CONFIG)
// - InitFlags: Standard-Flags fuer Init (CUDASHIM_INIT_FLAGS)
// - Var: Liest eine Environment-Variable
//
// Weitere Konfigurationen sind ausgelagert:
// - config_features.go: Backend- und Sichtbarkeits-Variablen
// - config_utils.go: Utility-Funktionen und AsMap/Values
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via CUDASHIM_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("CUDASHIM_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// InitFlags gibt die Flags zurueck, mit denen die CLI Init aufruft
// Konfigurierbar via CUDASHIM_INIT_FLAGS (dezimal oder 0x-hex)
// Default: 0
func InitFlags() uint32 {
	s := Var("CUDASHIM_INIT_FLAGS")
	if s == "" {
		return 0
	}

	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		slog.Warn("invalid init flags, using default", "value", s, "default", 0)
		return 0
	}

	return uint32(n)
}

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
