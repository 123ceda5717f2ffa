package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/hostmon/internal/config"
	"github.com/Dicklesworthstone/hostmon/internal/logger"
	"github.com/Dicklesworthstone/hostmon/internal/sampler"
	"github.com/Dicklesworthstone/hostmon/internal/settings"
	"github.com/Dicklesworthstone/hostmon/internal/terminal"
)

// app holds the process-wide dependencies every command is built from.
// Tests swap the fields for fakes.
type app struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	newProvider func(allDisks bool) sampler.Provider
	hostInfo    func(ctx context.Context) sampler.Host
	isTerminal  func(v any) bool

	cfg       config.Config
	log       *slog.Logger
	logCloser io.Closer
}

func newApp() *app {
	return &app{
		fs:          afero.NewOsFs(),
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		newProvider: func(allDisks bool) sampler.Provider { return sampler.New(allDisks) },
		hostInfo:    sampler.HostInfo,
		isTerminal:  isTerminal,
		log:         logger.Discard(),
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "hostmon",
		Short: "Terminal dashboard for CPU, memory, disk and network usage",
		Long: `hostmon samples the local machine once per interval and draws CPU, RAM,
per-disk usage and network throughput as colored bars or percentages.

Without a subcommand it opens the numbered main menu. Display settings
chosen there are kept in the settings file between runs.

Examples:
  hostmon
  hostmon --interval 2s --color never
  hostmon watch
  hostmon snapshot --format yaml`,
		Version:       GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMenu(cmd.Context())
		},
	}
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newWatchCmd(a),
		newSnapshotCmd(a),
		newDebugLogCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup resolves config and opens the diagnostic log.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.fs, cmd.Flags())
	if err != nil {
		return err
	}
	log, closer, err := logger.Open(a.fs, cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.logCloser = cfg, log, closer
	a.log.Debug("config loaded",
		"command", cmd.Name(),
		"interval", cfg.Interval,
		"settings_file", cfg.SettingsFile,
		"color", cfg.Color)
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
		a.logCloser = nil
	}
}

func (a *app) input() *terminal.Input {
	if f, ok := a.stdin.(*os.File); ok {
		return terminal.NewInput(f)
	}
	return terminal.NewReaderInput(a.stdin)
}

func (a *app) settingsStore() *settings.Store {
	return settings.NewStore(a.fs, a.cfg.SettingsFile, a.log)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	a := newApp()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if err != nil {
		a.log.Error("command failed", "err", err)
	}
	a.close()
	if err != nil {
		msg := err.Error()
		if !strings.HasSuffix(msg, "\n") {
			msg += "\n"
		}
		fmt.Fprint(os.Stderr, msg)
		os.Exit(1)
	}
}
