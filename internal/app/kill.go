package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/procmon/internal/batch"
	"github.com/pranshuparmar/procmon/internal/output"
)

var errKillFailed = errors.New("one or more processes could not be killed")

func newKillCmd(st *state) *cobra.Command {
	var (
		jsonOut bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "kill <pid>...",
		Short: "Forcibly terminate processes by pid",
		Long: `Forcibly terminate one or more processes (taskkill /F on Windows, kill -9
elsewhere). Each pid is reported as killed, permission denied, not found or
failed. The command exits non-zero unless every pid was killed.`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return completePIDs(cmd, st, args, toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			pids, err := parsePIDs(args)
			if err != nil {
				return err
			}

			killer := st.deps.killer(st.cfg)
			outcomes, summary := batch.KillAll(cmd.Context(), killer, pids, st.cfg.KillConcurrency)

			if jsonOut {
				if err := output.Encode(cmd.OutOrStdout(), output.FormatJSON, output.OutcomeRecords(outcomes)); err != nil {
					return err
				}
			} else {
				output.RenderOutcomes(cmd.OutOrStdout(), outcomes, summary, colorEnabled(noColor))
			}

			if !summary.AllSucceeded() {
				return errKillFailed
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "output outcomes as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}

// parsePIDs rejects anything that is not a positive integer and drops repeats.
func parsePIDs(args []string) ([]int, error) {
	seen := make(map[int]bool, len(args))
	pids := make([]int, 0, len(args))
	for _, a := range args {
		pid, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil || pid <= 0 {
			return nil, fmt.Errorf("invalid pid %q", a)
		}
		if seen[pid] {
			continue
		}
		seen[pid] = true
		pids = append(pids, pid)
	}
	return pids, nil
}

// completePIDs offers live pids with the process name as description.
func completePIDs(cmd *cobra.Command, st *state, args []string, toComplete string) []string {
	if st.cfg == nil {
		if err := st.setup(cmd); err != nil {
			return nil
		}
		defer st.teardown()
	}

	already := make(map[string]bool, len(args))
	for _, a := range args {
		already[a] = true
	}

	lister := st.deps.lister(st.cfg)
	var out []string
	for _, p := range lister.ListProcesses(cmd.Context()) {
		id := strconv.Itoa(p.PID)
		if already[id] || !strings.HasPrefix(id, toComplete) {
			continue
		}
		out = append(out, id+"\t"+p.Name)
	}
	return out
}
