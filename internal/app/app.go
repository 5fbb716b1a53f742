// Package app wires configuration, logging and the process services into the
// procmon command tree.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pranshuparmar/procmon/internal/config"
	"github.com/pranshuparmar/procmon/internal/control"
	"github.com/pranshuparmar/procmon/internal/inventory"
	"github.com/pranshuparmar/procmon/internal/logging"
	"github.com/pranshuparmar/procmon/internal/platform"
	"github.com/pranshuparmar/procmon/internal/proc"
	"github.com/pranshuparmar/procmon/internal/tui"
	"github.com/pranshuparmar/procmon/pkg/model"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Lister is the inventory surface the commands use.
type Lister interface {
	tui.Source
	Sample(ctx context.Context, interval time.Duration) []model.Process
	Platform() platform.Platform
}

// deps builds the services for a loaded config. Tests substitute fakes.
type deps struct {
	lister func(cfg *config.Config) Lister
	killer func(cfg *config.Config) control.Killer
	host   func(ctx context.Context) (*host.InfoStat, error)
}

func defaultDeps() deps {
	return deps{
		lister: func(cfg *config.Config) Lister {
			return inventory.New(
				inventory.WithExecutor(&proc.RealExecutor{Timeout: cfg.CommandTimeout}),
				inventory.WithCPURetryDelay(cfg.CPURetryDelay),
			)
		},
		killer: func(cfg *config.Config) control.Killer {
			return control.New(control.WithExecutor(&proc.RealExecutor{Timeout: cfg.CommandTimeout}))
		},
		host: host.InfoWithContext,
	}
}

// state is shared by the subcommands of one invocation.
type state struct {
	deps     deps
	cfgFile  string
	logLevel string
	cfg      *config.Config
	closeLog func() error
}

// Execute runs the procmon command tree.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the procmon command tree backed by the host services.
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	st := &state{deps: d}

	root := &cobra.Command{
		Use:   "procmon",
		Short: "Cross-platform process monitor",
		Long: `procmon lists running processes with CPU, memory and status, reports
system-wide usage, and terminates processes by pid.

It drives the platform's own tools (tasklist/taskkill on Windows, ps/kill on
Linux and macOS), so it needs no agent or elevated install.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			st.teardown()
		},
	}

	root.PersistentFlags().StringVarP(&st.cfgFile, "config", "c", "", "config file (default: procmon.yaml in the user config dir or .)")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newListCmd(st),
		newKillCmd(st),
		newStatsCmd(st),
		newWatchCmd(st),
		newVersionCmd(),
	)
	return root
}

func (st *state) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(st.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if st.logLevel != "" {
		cfg.LogLevel = st.logLevel
	}
	problems := cfg.Validate()
	st.cfg = cfg

	// The watch view owns the terminal; log only when a file is configured.
	if cmd.Name() == "watch" && cfg.LogFile == "" {
		logging.Disable()
		st.closeLog = nil
		return nil
	}

	closer, err := logging.Init(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	st.closeLog = closer

	log := logging.L("config")
	for _, p := range problems {
		log.Warn("config adjusted", zap.Error(p))
	}
	return nil
}

func (st *state) teardown() {
	_ = logging.Sync()
	if st.closeLog != nil {
		_ = st.closeLog()
		st.closeLog = nil
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "procmon %s\n", Version)
			fmt.Fprintf(out, "Commit: %s\n", Commit)
			fmt.Fprintf(out, "Built: %s\n", BuildDate)
			fmt.Fprintf(out, "Platform: %s\n", platform.Current())
		},
	}
}
