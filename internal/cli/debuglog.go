package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/hostmon/internal/debuglog"
)

func newDebugLogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debug-log",
		Short: "Write the debug log and print it",
		Long: `Take one sample, write the usage summary to the debug log file and print
it. Same as option 4 of the main menu.

Examples:
  hostmon debug-log
  hostmon debug-log --debug-log /tmp/hostmon.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDebugLog(cmd.Context())
		},
	}
}

func (a *app) runDebugLog(ctx context.Context) error {
	g := &debuglog.Generator{
		FS:       a.fs,
		Path:     a.cfg.DebugLogFile,
		Provider: a.newProvider(a.cfg.AllDisks),
		Logger:   a.log,
	}
	body, err := g.Generate(ctx, a.settingsStore().Load())
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(a.stdout, body)
	return err
}
