package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/internal/output"
	"github.com/pranshuparmar/procmon/pkg/model"
)

// selectionFlags are shared by list and watch.
type selectionFlags struct {
	sortBy string
	filter batch.Filter
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sortBy, "sort", string(batch.SortCPU), "sort by: cpu, mem, pid, name")
	cmd.Flags().StringVar(&f.filter.Name, "name", "", "only processes whose name or command contains this (case-insensitive)")
	cmd.Flags().StringVar(&f.filter.User, "user", "", "only processes whose user contains this (case-insensitive)")
	cmd.Flags().StringVar(&f.filter.Status, "status", "", "only processes with this status, e.g. running, zombie")
}

func newListCmd(st *state) *cobra.Command {
	var (
		sel      selectionFlags
		jsonOut  bool
		yamlOut  bool
		noColor  bool
		noSample bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List running processes",
		Example: `  procmon list                      # All processes, highest CPU first
  procmon list --sort mem --name java
  procmon list --status zombie
  procmon list --json               # Machine-readable snapshot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut && yamlOut {
				return errors.New("--json and --yaml are mutually exclusive")
			}
			field, err := batch.ParseSortField(sel.sortBy)
			if err != nil {
				return err
			}

			lister := st.deps.lister(st.cfg)
			ctx := cmd.Context()
			start := time.Now()

			procs := snapshot(ctx, lister, st.cfg.SampleInterval, noSample)
			shown := sel.filter.Apply(procs)
			batch.Sort(shown, field)

			out := cmd.OutOrStdout()
			if jsonOut || yamlOut {
				format := output.FormatJSON
				if yamlOut {
					format = output.FormatYAML
				}
				return output.Encode(out, format, output.Snapshot{
					Platform:           lister.Platform().String(),
					TakenAt:            time.Now().UTC().Format(time.RFC3339),
					TotalCPUPercent:    lister.TotalCPUPercent(ctx),
					TotalMemoryPercent: lister.TotalMemoryPercent(ctx),
					Processes:          shown,
				})
			}

			if len(procs) == 0 {
				return fmt.Errorf("no processes listed on %s (see log for details)", lister.Platform())
			}
			return output.RenderTable(out, shown, len(procs), time.Since(start), colorEnabled(noColor))
		},
	}

	sel.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&yamlOut, "yaml", false, "output as YAML")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&noSample, "no-sample", false, "list once; CPU may be absent where it is sampled (Windows)")
	return cmd
}

// snapshot takes a sampled listing unless disabled, so CPU is populated on
// platforms that derive it from cumulative CPU time.
func snapshot(ctx context.Context, l Lister, interval time.Duration, noSample bool) []model.Process {
	if noSample {
		return l.ListProcesses(ctx)
	}
	return l.Sample(ctx, interval)
}

func colorEnabled(noColor bool) bool {
	if noColor {
		return false
	}
	_, set := os.LookupEnv("NO_COLOR")
	return !set
}
