package cli

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// versionShort controls whether to show short or full version output
var versionShort bool

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of hostmon.`,
		Args:  cobra.NoArgs,
		// Version output must not depend on a valid config.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			if versionShort {
				fmt.Fprintln(a.stdout, version)
				return
			}
			fmt.Fprintf(a.stdout, "hostmon %s\n", formatVersion(version))
			fmt.Fprintf(a.stdout, "commit: %s\n", commit)
			fmt.Fprintf(a.stdout, "built: %s\n", date)
			fmt.Fprintf(a.stdout, "go: %s\n", runtime.Version())
			fmt.Fprintf(a.stdout, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVarP(&versionShort, "short", "s", false, "print only the version number")
	return cmd
}

// formatVersion adds a v prefix to release versions.
func formatVersion(v string) string {
	if v == "" || v == "dev" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// GetVersion returns the current version string.
func GetVersion() string {
	return version
}
