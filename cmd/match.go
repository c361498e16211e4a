package cmd

import (
	"github.com/spf13/cobra"
)

// matchCmd represents the match command
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score candidates against roles and wait for the match refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		candidateIDs, _ := cmd.Flags().GetStringSlice("candidates")
		roleIDs, _ := cmd.Flags().GetStringSlice("roles")
		rcpt, err := a.runner.RunMatching(cmd.Context(), candidateIDs, roleIDs)
		if err != nil {
			return err
		}
		return awaitWorkflow(rcpt)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringSlice("candidates", nil, "Candidate ids to score (default: all)")
	matchCmd.Flags().StringSlice("roles", nil, "Role ids to score against (default: all active)")
}
