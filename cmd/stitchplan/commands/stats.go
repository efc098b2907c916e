package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"honnef.co/go/stitch"
)

var (
	statsTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	statsLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(16)
	statsBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// renderStats lays out st as a titled box of label and value rows.
func renderStats(title string, st stitch.Stats) string {
	swatches := make([]string, len(st.Colors))
	for i, c := range st.Colors {
		swatches[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.String())).Render("■ " + c.String())
	}
	rows := [][2]string{
		{"Stitches", fmt.Sprint(st.Stitches)},
		{"Jumps", fmt.Sprint(st.Jumps)},
		{"Trims", fmt.Sprint(st.Trims)},
		{"Color changes", fmt.Sprint(st.ColorChanges)},
		{"Stops", fmt.Sprint(st.Stops)},
		{"Layers", fmt.Sprint(st.Layers)},
		{"Size", fmt.Sprintf("%.1f × %.1f mm", st.WidthMM, st.HeightMM)},
		{"Thread", fmt.Sprintf("%.2f m", st.ThreadMM/1000)},
		{"Travel", fmt.Sprintf("%.0f px", st.TravelPx)},
		{"Sew time", st.SewTime.Round(time.Second).String()},
		{"Cost", fmt.Sprintf("%.2f", st.Cost)},
		{"Fingerprint", st.Fingerprint.String()},
	}
	if len(swatches) > 0 {
		rows = append(rows, [2]string{"Colors", strings.Join(swatches, "\n")})
	}

	lines := []string{statsTitle.Render(title), ""}
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, statsLabel.Render(r[0]), r[1]))
	}
	return statsBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func newStatsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "stats PLAN",
		Short: "Summarizes a stitch plan: counts, size, thread, sew time and cost",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(cmd, args[0])
			if err != nil {
				return err
			}
			st := a.svc.Stats(plan)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStats(args[0], st))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the statistics as JSON")
	return cmd
}
