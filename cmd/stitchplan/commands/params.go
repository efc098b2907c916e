package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"honnef.co/go/stitch"
)

// paramFlags are the pattern parameter flags shared by the synthesis
// commands. Only flags given on the command line override the configuration.
type paramFlags struct {
	strategy    string
	density     float64
	widthMM     float64
	passes      int
	stitchLenMM float64
	mmPerPx     float64
	optimize    bool
}

func (pf *paramFlags) register(fs *pflag.FlagSet) {
	def := stitch.DefaultParams()
	fs.StringVar(&pf.strategy, "strategy", def.Strategy.String(), "stitch strategy (see \"stitchplan formats\")")
	fs.Float64Var(&pf.density, "density", def.Density, "stitch density multiplier")
	fs.Float64Var(&pf.widthMM, "width-mm", def.WidthMM, "pattern width in millimetres")
	fs.IntVar(&pf.passes, "passes", def.Passes, "number of passes for multi-pass strategies")
	fs.Float64Var(&pf.stitchLenMM, "stitch-len-mm", def.StitchLenMM, "stitch length in millimetres")
	fs.Float64Var(&pf.mmPerPx, "mm-per-px", def.MMPerPx, "size of one input pixel in millimetres")
	fs.BoolVar(&pf.optimize, "optimize", def.Optimize, "reorder layers to shorten travel")
}

// apply returns base with the flags that were set on cmd's command line.
func (pf *paramFlags) apply(cmd *cobra.Command, base stitch.Params) (stitch.Params, error) {
	fs := cmd.Flags()
	p := base
	if fs.Changed("strategy") {
		s, err := stitch.ParseStrategy(pf.strategy)
		if err != nil {
			return p, err
		}
		p.Strategy = s
	}
	if fs.Changed("density") {
		p.Density = pf.density
	}
	if fs.Changed("width-mm") {
		p.WidthMM = pf.widthMM
	}
	if fs.Changed("passes") {
		p.Passes = pf.passes
	}
	if fs.Changed("stitch-len-mm") {
		p.StitchLenMM = pf.stitchLenMM
	}
	if fs.Changed("mm-per-px") {
		p.MMPerPx = pf.mmPerPx
	}
	if fs.Changed("optimize") {
		p.Optimize = pf.optimize
	}
	return p, nil
}
