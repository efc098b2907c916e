package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"honnef.co/go/stitch"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		pf     paramFlags
		format string
		outDir string
		jobs   int
	)
	cmd := &cobra.Command{
		Use:   "batch FILE.svg...",
		Short: "Converts many SVG documents concurrently",
		Long: `batch runs generate on every file, up to --jobs at a time, and writes the
results to --out-dir under the input's base name. The first failure cancels the
files not yet started.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := pf.apply(cmd, a.cfg.Params())
			if err != nil {
				return err
			}
			if format == "" {
				format = a.cfg.Machine.Format
			}
			ext := ".json"
			if !strings.EqualFold(format, "json") {
				c, err := a.codecs.Lookup(format)
				if err != nil {
					return err
				}
				ext = c.Extensions()[0]
			}
			if jobs < 1 {
				return stitch.InvalidParameter("batch", fmt.Errorf("--jobs must be at least 1, got %d", jobs))
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}

			stdout := cmd.OutOrStdout()
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			var mu sync.Mutex
			for _, in := range args {
				out := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))+ext)
				g.Go(func() error {
					f, err := os.Open(in)
					if err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}
					defer f.Close()
					plan, err := a.svc.GenerateFromSVG(ctx, f, p)
					if err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}
					if err := a.writePlan(ctx, nil, out, format, plan); err != nil {
						return fmt.Errorf("%s: %w", in, err)
					}
					mu.Lock()
					fmt.Fprintf(stdout, "%s -> %s (%d stitches)\n", in, out, plan.Info.StitchCount)
					mu.Unlock()
					return nil
				})
			}
			return g.Wait()
		},
	}
	pf.register(cmd.Flags())
	cmd.Flags().StringVar(&format, "format", "", "output format: json or a machine format (default: the configured format)")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory for the output files")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files converted at once")
	return cmd
}
