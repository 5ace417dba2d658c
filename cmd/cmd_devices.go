// cmd_devices.go - Devices und Lookup Commands
// Hauptfunktionen: DevicesHandler, LookupHandler
package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/7blacky7/cudashim/backend"
	"github.com/7blacky7/cudashim/driver"
	"github.com/7blacky7/cudashim/envconfig"
)

// deviceInfo - JSON-Darstellung eines Geraets
type deviceInfo struct {
	Ordinal int    `json:"ordinal"`
	Name    string `json:"name"`
	UUID    string `json:"uuid"`
	Handle  string `json:"handle"`
	Context string `json:"context"`
}

func newDeviceInfo(d *driver.Device) deviceInfo {
	_, ctx := d.PrimaryContext()
	return deviceInfo{
		Ordinal: d.Ordinal(),
		Name:    d.Name(),
		UUID:    d.UUID().String(),
		Handle:  d.Handle().String(),
		Context: "0x" + strconv.FormatUint(uint64(ctx), 16),
	}
}

// probe - Loest jedes Geraet parallel ueber sein Backend-Handle auf und
// prueft, dass dasselbe Geraet zurueckkommt
func probe(s *driver.State, devices []*driver.Device) error {
	var g errgroup.Group
	g.SetLimit(max(1, int(envconfig.ProbeJobs())))
	for _, d := range devices {
		g.Go(func() error {
			got, err := s.DeviceByHandle(d.Handle())
			if err != nil {
				return fmt.Errorf("device %d: lookup %v: %w", d.Ordinal(), d.Handle(), err)
			}
			if got != d {
				return fmt.Errorf("device %d: handle %v resolves to device %d", d.Ordinal(), d.Handle(), got.Ordinal())
			}
			return nil
		})
	}
	return g.Wait()
}

// DevicesHandler - Initialisiert den Treiber und listet alle Geraete auf
func DevicesHandler(cmd *cobra.Command, args []string) error {
	s := state()
	if err := s.Init(envconfig.InitFlags()); err != nil {
		return fmt.Errorf("%s: init failed: %w", s.Backend().Name(), err)
	}

	devices, err := s.Devices()
	if err != nil {
		return err
	}

	if p, _ := cmd.Flags().GetBool("probe"); p {
		if err := probe(s, devices); err != nil {
			return err
		}
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		infos := make([]deviceInfo, 0, len(devices))
		for _, d := range devices {
			infos = append(infos, newDeviceInfo(d))
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	var data [][]string
	for _, d := range devices {
		info := newDeviceInfo(d)
		data = append(data, []string{strconv.Itoa(info.Ordinal), info.Name, info.UUID, info.Handle})
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ORDINAL", "NAME", "UUID", "HANDLE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

// LookupHandler - Loest ein Backend-Handle in ein Geraet auf
func LookupHandler(cmd *cobra.Command, args []string) error {
	h, err := backend.ParseHandle(args[0])
	if err != nil {
		return err
	}

	s := state()
	if err := s.Init(envconfig.InitFlags()); err != nil {
		return fmt.Errorf("%s: init failed: %w", s.Backend().Name(), err)
	}

	d, err := s.DeviceByHandle(h)
	if err != nil {
		return fmt.Errorf("handle %v: %w", h, err)
	}

	info := newDeviceInfo(d)
	fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", info.Ordinal, info.Name, info.UUID)
	return nil
}

// newDevicesCmd - Erstellt den devices Command
func newDevicesCmd() *cobra.Command {
	devicesCmd := &cobra.Command{
		Use:     "devices",
		Aliases: []string{"ls"},
		Short:   "List discovered devices",
		Args:    cobra.ExactArgs(0),
		RunE:    DevicesHandler,
	}

	devicesCmd.Flags().Bool("json", false, "Print devices as JSON")
	devicesCmd.Flags().Bool("probe", false, "Resolve every device through its backend handle")

	return devicesCmd
}

// newLookupCmd - Erstellt den lookup Command
func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup HANDLE",
		Short: "Resolve a backend device handle to its device",
		Args:  cobra.ExactArgs(1),
		RunE:  LookupHandler,
	}
}
