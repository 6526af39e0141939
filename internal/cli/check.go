package cli

import (
	"fmt"
	"io"

	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var checkYAML bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check configuration and share roots",
	Long: `Validate the configuration and report whether each configured root is
reachable, with the number of range folders found under the projects folder
and the pictures root.

Use --yaml to print the effective configuration instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Config == nil || ConfigMgr == nil {
			return fmt.Errorf("configuration not initialized")
		}
		out := cmd.OutOrStdout()

		if checkYAML {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(Config); err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			return enc.Close()
		}

		problems := 0
		source := ConfigMgr.ConfigFileUsed()
		if source == "" {
			source = "(defaults and environment)"
		}
		fmt.Fprintf(out, "config:    %s\n", source)
		fmt.Fprintf(out, "event log: %s\n\n", Config.Log.File)

		if err := ConfigMgr.ValidateConfig(Config); err != nil {
			fmt.Fprintf(out, "invalid configuration: %v\n\n", err)
			problems++
		}

		problems += checkRoot(out, "projects_folder", Config.Roots.ProjectsFolder, models.RangeFull, true)
		problems += checkRoot(out, "pictures", Config.Roots.Pictures, models.RangeTruncated, true)
		problems += checkRoot(out, "qc_models", Config.Roots.QCModels, models.RangeFull, false)

		if problems > 0 {
			return fmt.Errorf("check found %d problem(s)", problems)
		}
		fmt.Fprintln(out, "\nall checks passed")
		return nil
	},
}

// checkRoot prints one status line for a root and returns 1 if it has a
// problem. With countRanges it also lists the range folders under root.
func checkRoot(w io.Writer, name, root string, conv models.RangeConvention, countRanges bool) int {
	if FS == nil {
		fmt.Fprintf(w, "%-16s %s  UNKNOWN (no file system)\n", name, root)
		return 1
	}
	ok, err := afero.DirExists(FS, root)
	if err != nil || !ok {
		fmt.Fprintf(w, "%-16s %s  MISSING\n", name, root)
		return 1
	}
	if !countRanges || Resolver == nil {
		fmt.Fprintf(w, "%-16s %s  OK\n", name, root)
		return 0
	}
	folders, err := Resolver.RangeFolders(conv)
	if err != nil {
		fmt.Fprintf(w, "%-16s %s  ERROR %v\n", name, root, err)
		return 1
	}
	fmt.Fprintf(w, "%-16s %s  OK (%d range folders)\n", name, root, len(folders))
	return 0
}

func init() {
	checkCmd.Flags().BoolVar(&checkYAML, "yaml", false, "Print the effective configuration as YAML")
	rootCmd.AddCommand(checkCmd)
}
