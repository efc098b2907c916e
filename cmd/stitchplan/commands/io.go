package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"honnef.co/go/stitch"
)

// open opens path for reading; "-" is standard input.
func open(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// create calls write with a writer for path; "" and "-" select stdout.
// A file is removed again if write fails.
func create(stdout io.Writer, path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return write(f)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isJSON(path string) bool {
	return path == "-" || strings.EqualFold(filepath.Ext(path), ".json")
}

// loadPlan reads a plan from a JSON file or, judging by its extension, from a
// machine file. JSON plans without an Info get one computed from their points.
func (a *app) loadPlan(cmd *cobra.Command, path string) (stitch.Plan, error) {
	if !isJSON(path) {
		c, err := a.codecs.ForPath(path)
		if err != nil {
			return stitch.Plan{}, err
		}
		f, err := open(cmd, path)
		if err != nil {
			return stitch.Plan{}, err
		}
		defer f.Close()
		return a.svc.Inspect(cmd.Context(), f, c.Name())
	}

	f, err := open(cmd, path)
	if err != nil {
		return stitch.Plan{}, err
	}
	defer f.Close()
	var plan stitch.Plan
	if err := json.NewDecoder(f).Decode(&plan); err != nil {
		return stitch.Plan{}, stitch.Malformed("read plan", err)
	}
	if plan.Info.StitchCount == 0 && plan.Info.Settings == nil && plan.Info.Counts == nil {
		plan = stitch.PlanFromPoints(plan.Points)
	}
	return plan, nil
}

// writePlan writes plan as JSON, or in the machine format named by format.
// An empty format is chosen from out's extension, falling back to JSON.
func (a *app) writePlan(ctx context.Context, stdout io.Writer, out, format string, plan stitch.Plan) error {
	if format == "" && out != "" && !isJSON(out) {
		c, err := a.codecs.ForPath(out)
		if err != nil {
			return err
		}
		format = c.Name()
	}
	if format == "" || strings.EqualFold(format, "json") {
		return create(stdout, out, func(w io.Writer) error { return writeJSON(w, plan) })
	}
	// Fail before creating the output file.
	if _, err := a.codecs.Lookup(format); err != nil {
		return err
	}
	return create(stdout, out, func(w io.Writer) error {
		return a.svc.Export(ctx, w, format, plan)
	})
}
