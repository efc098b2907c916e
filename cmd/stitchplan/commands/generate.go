package commands

import (
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		pf     paramFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "generate FILE.svg",
		Short: "Synthesizes a stitch plan from an SVG document",
		Long: `generate reads an SVG document and lays one layer of stitches along every
path, line and shape in it, coloured by its stroke or fill.

The plan is written as JSON unless --format names a machine format or the
output file has a machine file extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.apply(cmd, a.cfg.Params())
			if err != nil {
				return err
			}
			f, err := open(cmd, args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			plan, err := a.svc.GenerateFromSVG(cmd.Context(), f, p)
			if err != nil {
				return err
			}
			return a.writePlan(cmd.Context(), cmd.OutOrStdout(), out, format, plan)
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "", "output format: json or a machine format")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default: standard output)")
	return cmd
}
