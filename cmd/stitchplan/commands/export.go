package commands

import (
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export PLAN.json",
		Short: "Writes a stitch plan as a machine file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			if format == "" && (out == "" || out == "-") {
				format = a.cfg.Machine.Format
			}
			return a.writePlan(cmd.Context(), cmd.OutOrStdout(), out, format, plan)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "machine format (default: from the output file, else the configured format)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: standard output)")
	return cmd
}
