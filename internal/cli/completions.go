package cli

import (
	"strings"

	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/cobra"
)

// completeTargets completes the first argument of open with target names.
func completeTargets(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	var out []string
	for _, t := range models.Targets {
		if strings.HasPrefix(string(t), toComplete) {
			hint := "job number"
			if t.TakesFilename() {
				hint = "file name"
			}
			out = append(out, string(t)+"\t"+hint)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeDepartments completes --dept values.
func completeDepartments(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, d := range models.Departments {
		if strings.HasPrefix(string(d), toComplete) {
			out = append(out, string(d))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
