// cmd.go - Haupt-CLI Setup und Root Command
// Hauptfunktionen: NewCLI, appendEnvDocs
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/7blacky7/cudashim/driver"
	"github.com/7blacky7/cudashim/envconfig"
	"github.com/7blacky7/cudashim/logutil"
)

// state liefert den State, auf dem die Commands arbeiten (in Tests ersetzbar)
var state = driver.Default

// appendEnvDocs - Fuegt Umgebungsvariablen-Dokumentation zum Command hinzu
func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI - Erstellt das Haupt-CLI mit allen Commands
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "cudashim",
		Short:         "Driver API device layer over HIP or Level Zero",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logutil.NewLogger(os.Stderr, envconfig.LogLevel()))
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	devicesCmd := newDevicesCmd()
	lookupCmd := newLookupCmd()
	versionCmd := newVersionCmd()

	// Environment-Dokumentation hinzufuegen
	envVars := envconfig.AsMap()
	for _, cmd := range []*cobra.Command{devicesCmd, lookupCmd} {
		envs := []envconfig.EnvVar{
			envVars["CUDASHIM_DEBUG"],
			envVars["CUDASHIM_INIT_FLAGS"],
			envVars["CUDASHIM_SIM_CONFIG"],
			envVars["HIP_VISIBLE_DEVICES"],
			envVars["ZE_AFFINITY_MASK"],
		}
		if cmd == devicesCmd {
			envs = append(envs, envVars["CUDASHIM_PROBE_JOBS"])
		}
		appendEnvDocs(cmd, envs)
	}

	rootCmd.AddCommand(
		devicesCmd,
		lookupCmd,
		versionCmd,
	)

	return rootCmd
}
