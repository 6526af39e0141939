package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "jobnav",
	Short: "Job folder navigator for the engineering share",
	Long: `jobnav finds job locations on the engineering shared drive by naming
convention: job folders inside numbered range folders, department QC report
folders, issued prints, job pictures and QC CAD models.

Every lookup command prints the resolved path. Add --open to hand it to the
system's default file handler.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ErrReported marks a failure that has already been shown to the user
// through a notification. Callers should exit non-zero without printing it.
var ErrReported = errors.New("failure already reported")

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "jobnav %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
