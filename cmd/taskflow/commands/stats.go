package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// NewStatsCommand prints store sizes and, when enabled, operation metrics
func NewStatsCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and service metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := env.app.LoadDashboard(ctx); err != nil {
				return err
			}

			stats := env.app.Stats(ctx)
			if env.asJSON {
				return writeJSON(cmd.OutOrStdout(), stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Records"))
			names := make([]string, 0, len(stats))
			for name := range stats {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "  %-16s %v\n", name, stats[name])
			}

			recorder := env.app.Metrics()
			if recorder == nil {
				fmt.Fprintln(out, mutedStyle.Render("Metrics are disabled"))
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, titleStyle.Render("Metrics"))
			return recorder.WriteText(out)
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print TaskFlow version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := env.app.Config().App
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s (%s)\n", info.Name, info.Version, info.Environment)
		},
	}
}
