package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"honnef.co/go/stitch"
	"honnef.co/go/stitch/preview"
)

func parseSize(s string) (w, h int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	var rest string
	if n, _ := fmt.Sscanf(s, "%dx%d%s", &w, &h, &rest); n != 2 {
		return 0, 0, stitch.InvalidParameter("parse size", fmt.Errorf("want WIDTHxHEIGHT, got %q", s))
	}
	return w, h, nil
}

func newPreviewCmd(a *app) *cobra.Command {
	var (
		out  string
		size string
		opts preview.Options
	)
	cmd := &cobra.Command{
		Use:   "preview PLAN",
		Short: "Renders a stitch plan as a PNG image",
		Long: `preview draws the stitches of a plan, read from JSON or a machine file, in
their layer colours. Layers without a colour get colours from a fixed palette.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.Width, opts.Height, err = parseSize(size); err != nil {
				return err
			}
			plan, err := a.loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			return create(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return a.svc.Preview(cmd.Context(), w, plan, opts)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "PNG file to write")
	cmd.Flags().StringVar(&size, "size", "800x800", "image size in pixels")
	cmd.Flags().BoolVar(&opts.ShowJumps, "jumps", false, "draw jumps and trims")
	cmd.Flags().Float64Var(&opts.ThreadWidth, "thread-width", 2, "stitch line width in pixels")
	cmd.MarkFlagRequired("output")
	return cmd
}
