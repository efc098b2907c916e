package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newFormatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "Lists the installed input readers, machine formats and strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			caps := a.svc.Capabilities()
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, caps)
			}
			svg := "not installed"
			if caps.SVG {
				svg = "installed"
			}
			fmt.Fprintf(w, "svg reader:       %s\n", svg)
			fmt.Fprintf(w, "machine formats:  %s\n", strings.Join(caps.Formats, ", "))
			fmt.Fprintf(w, "strategies:       %s\n", strings.Join(caps.Strategies, ", "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
