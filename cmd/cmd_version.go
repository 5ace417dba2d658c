// cmd_version.go - Version Command
// Hauptfunktionen: versionHandler
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/7blacky7/cudashim/driver"
	"github.com/7blacky7/cudashim/version"
)

// formatDriverVersion - 12040 -> "12.4"
func formatDriverVersion(v int32) string {
	return fmt.Sprintf("%d.%d", v/1000, (v%1000)/10)
}

// versionHandler - Gibt Client-, Driver-API- und Backend-Version aus
func versionHandler(cmd *cobra.Command, _ []string) {
	v := driver.GetVersion()
	b := state().Backend()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "cudashim version is %s\n", version.Version)
	fmt.Fprintf(out, "driver API version %d (%s)\n", v, formatDriverVersion(v))
	fmt.Fprintf(out, "backend %s (%s addressing)\n", b.Name(), b.Addressing())
}

// newVersionCmd - Erstellt den version Command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.ExactArgs(0),
		Run:   versionHandler,
	}
}
