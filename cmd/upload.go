package cmd

import (
	"github.com/spf13/cobra"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload resumes (PDF/DOCX) and wait for the candidate refresh",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		rcpt, err := a.runner.Upload(cmd.Context(), args)
		if err != nil {
			return err
		}
		return awaitWorkflow(rcpt)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
