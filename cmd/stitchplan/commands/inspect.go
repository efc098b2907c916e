package commands

import (
	"io"

	"github.com/spf13/cobra"
)

func newInspectCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "inspect MACHINE_FILE",
		Short: "Decodes a machine file into a JSON stitch plan",
		Long: `inspect decodes a machine embroidery file. Coordinates in the resulting
plan are in pixels at the configured scale, relative to the first point, and
colour changes carry no colours.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				c, err := a.codecs.ForPath(args[0])
				if err != nil {
					return err
				}
				format = c.Name()
			}
			f, err := open(cmd, args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			plan, err := a.svc.Inspect(cmd.Context(), f, format)
			if err != nil {
				return err
			}
			return create(cmd.OutOrStdout(), out, func(w io.Writer) error { return writeJSON(w, plan) })
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "machine format (default: from the file extension)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: standard output)")
	return cmd
}
