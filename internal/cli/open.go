package cli

import (
	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/cobra"
)

var openDept string

var openCmd = &cobra.Command{
	Use:   "open <target> <arg>",
	Short: "Resolve a target and open it",
	Long: `Resolve a target and open it with the system's default handler.

Targets: job, qc, prints, print, pictures, model. Failures are reported as a
notification rather than a raw error.`,
	Example: `  jobnav open job 130550
  jobnav open qc 130550 --dept blading
  jobnav open print 130550-STEM-MFG-00.pdf`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeTargets,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := models.ParseTarget(args[0])
		if err != nil {
			return err
		}
		var dept models.Department
		if openDept != "" {
			if dept, err = models.ParseDepartment(openDept); err != nil {
				return err
			}
		}
		return runLookup(cmd, target, args[1], dept, true)
	},
}

func init() {
	openCmd.Flags().StringVar(&openDept, "dept", "", "Department for the qc target (default balance)")
	_ = openCmd.RegisterFlagCompletionFunc("dept", completeDepartments)
	rootCmd.AddCommand(openCmd)
}
