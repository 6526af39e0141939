package cli

import (
	"fmt"
	"strings"

	"github.com/laporte-eng/jobnav/internal/core"
	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <text>",
	Short: "Print the job number found in text",
	Long: `Print the first 6-digit job number found in the given text, typically a
drawing or model file name. Multiple arguments are joined with spaces.`,
	Example: `  jobnav extract 130550-STEM-MFG-00.pdf`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := core.ExtractJobNumber(strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), job)
		return nil
	},
}

// newLookupCmd builds a command that resolves one target and prints it.
// Every lookup command shares the --open flag; qc also takes --dept.
func newLookupCmd(target models.Target, use, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			open, _ := cmd.Flags().GetBool("open")
			var dept models.Department
			if cmd.Flags().Lookup("dept") != nil {
				raw, _ := cmd.Flags().GetString("dept")
				d, err := models.ParseDepartment(raw)
				if err != nil {
					return err
				}
				dept = d
			}
			return runLookup(cmd, target, args[0], dept, open)
		},
	}
	cmd.Flags().Bool("open", false, "Open the resolved path with the system handler")
	return cmd
}

// runLookup resolves target through the Launcher, prints the path and
// optionally opens it.
func runLookup(cmd *cobra.Command, target models.Target, arg string, dept models.Department, open bool) error {
	if Launcher == nil {
		return fmt.Errorf("launcher not initialized")
	}

	if open {
		path, ok := Launcher.Open(target, arg, dept)
		if path != "" {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		if !ok {
			return ErrReported
		}
		return nil
	}

	path, err := Launcher.Resolve(target, arg, dept)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

var (
	jobCmd = newLookupCmd(models.TargetJob, "job <job>",
		"Print the job folder",
		`Print the job's folder inside its range folder under the projects root.
The argument may be a job number or any text that contains one.`)

	qcCmd = newLookupCmd(models.TargetQC, "qc <job>",
		"Print the department QC reports folder",
		`Print the QC reports folder of a department for the job. The folder is
created if it does not exist yet. Balance and assembly reports live under an
NFT subfolder; blading reports do not.`)

	printsCmd = newLookupCmd(models.TargetPrints, "prints <job>",
		"Print the job's issued prints folder",
		`Print the Drafting/Issued Prints folder of the job.`)

	printCmd = newLookupCmd(models.TargetPrint, "print <filename>",
		"Print the path of an issued print",
		`Print the path of an issued print PDF. The job number is taken from the
file name, e.g. 130550-STEM-MFG-00.pdf.`)

	picturesCmd = newLookupCmd(models.TargetPictures, "pictures <job>",
		"Print the job's pictures folder",
		`Print the job's folder under the pictures root. Range folders there use
truncated names such as 130500-999.`)

	modelCmd = newLookupCmd(models.TargetModel, "model <filename>",
		"Print the path of a QC CAD model",
		`Print the path of a CAD model file in the QC models folder.`)
)

func init() {
	qcCmd.Flags().String("dept", string(models.DeptBalance), "Department: balance, assembly or blading")
	_ = qcCmd.RegisterFlagCompletionFunc("dept", completeDepartments)

	rootCmd.AddCommand(extractCmd)
	for _, cmd := range []*cobra.Command{jobCmd, qcCmd, printsCmd, printCmd, picturesCmd, modelCmd} {
		rootCmd.AddCommand(cmd)
	}
}
