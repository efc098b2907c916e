// Package commands implements the stitchplan command line.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"honnef.co/go/stitch/internal/config"
	"honnef.co/go/stitch/internal/logging"
	"honnef.co/go/stitch/internal/service"
	"honnef.co/go/stitch/machine"
	"honnef.co/go/stitch/svg"
)

// app is the state shared by all subcommands: the persistent flags, and the
// configuration and service set up from them before a subcommand runs.
type app struct {
	cfgPath   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	codecs *machine.Registry
	svc    *service.Service
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Format, level)
	if err != nil {
		return err
	}
	logging.SetLogger(log)
	if cfg.Path != "" {
		log.Debug("configuration loaded", "path", cfg.Path)
	}

	a.cfg = cfg
	a.codecs = machine.Standard(cfg.Defaults.MMPerPx, cfg.Machine.DSTLabel)
	a.svc = service.New(
		service.WithPathReader(svg.Reader{}),
		service.WithCodecs(a.codecs),
		service.WithLimits(cfg.Limits),
		service.WithCostModel(cfg.Cost),
		service.WithLogger(log),
	)
	return nil
}

// NewRoot returns the stitchplan command with all subcommands.
func NewRoot() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "stitchplan",
		Short: "stitchplan turns vector drawings into embroidery stitch plans",
		Long: `stitchplan converts SVG documents and freehand polylines into stitch
plans, writes them as machine files, and inspects, previews and prices
existing plans.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "configuration file (default: $"+config.EnvConfig+" or "+config.DefaultFile+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text, json or pretty")

	root.AddCommand(
		newGenerateCmd(a),
		newPointsCmd(a),
		newExportCmd(a),
		newInspectCmd(a),
		newPreviewCmd(a),
		newStatsCmd(a),
		newFormatsCmd(a),
		newBatchCmd(a),
	)
	return root
}

// Execute runs the command line and exits with status 1 on error.
// Interrupts cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := NewRoot().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "stitchplan:", err)
		stop()
		os.Exit(1)
	}
}
