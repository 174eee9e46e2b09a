package commands

import (
	"io"

	"github.com/Carmen-Shannon/oxy-swim/engine/animator"
	"github.com/Carmen-Shannon/oxy-swim/internal/printer"
	"github.com/spf13/cobra"
)

func newPresetsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "Show the stroke constants of the presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := []string{animator.BackendTypeFreestyle.String(), animator.BackendTypeDrift.String()}
			if len(args) == 1 {
				names = args
			}
			return printPresets(cmd.OutOrStdout(), names, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format: yaml or json")
	return cmd
}

func printPresets(out io.Writer, names []string, format string) error {
	presets := make(map[string]animator.StrokeParameters, len(names))
	for _, name := range names {
		bt, err := animator.ParsePreset(name)
		if err != nil {
			return printer.Error("Unknown preset", err.Error(), []string{"use freestyle or drift"})
		}
		presets[bt.String()] = animator.DefaultParameters(bt)
	}
	return write(out, format, presets)
}
