package app

import (
	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/internal/tui"
)

func newWatchCmd(st *state) *cobra.Command {
	var sel selectionFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Interactive live process view",
		Long: `Open a full-screen view that refreshes every refresh_interval.

Keys: ↑/↓ move, tab select, a select all, d deselect, enter kill (y confirms),
/ filter by name, f cycle status filter, s cycle sort, space pause, r refresh,
? help, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := batch.ParseSortField(sel.sortBy)
			if err != nil {
				return err
			}
			return tui.Run(tui.Options{
				Source:          st.deps.lister(st.cfg),
				Killer:          st.deps.killer(st.cfg),
				RefreshInterval: st.cfg.RefreshInterval,
				KillConcurrency: st.cfg.KillConcurrency,
				SortField:       field,
				Filter:          sel.filter,
			})
		},
	}

	sel.register(cmd)
	return cmd
}
