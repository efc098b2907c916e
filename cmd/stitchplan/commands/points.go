package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"honnef.co/go/stitch"
	"honnef.co/go/stitch/internal/service"
)

func newPointsCmd(a *app) *cobra.Command {
	var (
		pf     paramFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "points FILE.json",
		Short: "Synthesizes a stitch plan from a freehand polyline",
		Long: `points reads a freehand drawing request of the form

  {"points": [{"x": 10, "y": 20}, ...], "canvas_width": 800, "canvas_height": 600,
   "strategy": "satin", "density": 1, "width_mm": 2, "passes": 1,
   "stitch_len_mm": 2.5, "mm_per_px": 0.26}

and writes a single-layer plan. Parameters missing from the request come from
the configuration; flags override both.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := open(cmd, args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			req := service.PointsRequest{Params: a.cfg.Params()}
			if err := json.NewDecoder(f).Decode(&req); err != nil {
				return stitch.Malformed("read points request", err)
			}
			if req.Params, err = pf.apply(cmd, req.Params); err != nil {
				return err
			}
			req.Limits = a.cfg.Limits
			plan, err := a.svc.GenerateFromPoints(cmd.Context(), req)
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
