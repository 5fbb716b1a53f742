package app

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pranshuparmar/procmon/internal/logging"
	"github.com/pranshuparmar/procmon/internal/output"
)

func newStatsCmd(st *state) *cobra.Command {
	var (
		jsonOut bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show system-wide CPU and memory usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			lister := st.deps.lister(st.cfg)

			stats := output.Stats{
				Platform:           lister.Platform().String(),
				Processes:          len(lister.ListProcesses(ctx)),
				TotalCPUPercent:    lister.TotalCPUPercent(ctx),
				TotalMemoryPercent: lister.TotalMemoryPercent(ctx),
			}

			if info, err := st.deps.host(ctx); err != nil {
				logging.L("stats").Debug("host info unavailable", zap.Error(err))
			} else {
				stats.Hostname = info.Hostname
				stats.OS = info.Platform
				if info.PlatformVersion != "" {
					stats.OS += " " + info.PlatformVersion
				}
				stats.Uptime = (time.Duration(info.Uptime) * time.Second).String()
			}
			if stats.Hostname == "" {
				stats.Hostname = stats.Platform
			}

			if jsonOut {
				return output.Encode(cmd.OutOrStdout(), output.FormatJSON, stats)
			}
			output.RenderStats(cmd.OutOrStdout(), stats, colorEnabled(noColor))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}
