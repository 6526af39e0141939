package cli

import (
	"fmt"

	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/cobra"
)

var rangesPictures bool

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "List the range folders under a root",
	Long: `List every well-formed range folder under the projects folder, or under
the pictures root with --pictures, in natural order.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Resolver == nil {
			return fmt.Errorf("resolver not initialized")
		}

		conv := models.RangeFull
		if rangesPictures {
			conv = models.RangeTruncated
		}

		folders, err := Resolver.RangeFolders(conv)
		if err != nil {
			return fmt.Errorf("listing %s ranges: %w", conv, err)
		}

		out := cmd.OutOrStdout()
		if len(folders) == 0 {
			fmt.Fprintln(out, "No range folders found.")
			return nil
		}

		fmt.Fprintf(out, "%-16s %-8s %-8s\n", "NAME", "LOW", "HIGH")
		fmt.Fprintf(out, "%-16s %-8s %-8s\n", "----", "---", "----")
		for _, f := range folders {
			fmt.Fprintf(out, "%-16s %06d   %06d\n", f.Name, f.Low, f.High)
		}
		fmt.Fprintf(out, "\n%d range folder(s)\n", len(folders))
		return nil
	},
}

func init() {
	rangesCmd.Flags().BoolVar(&rangesPictures, "pictures", false, "List the pictures root instead of the projects folder")
	rootCmd.AddCommand(rangesCmd)
}
