package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hirewatch/hirewatch/pkg/api"
)

// matchesCmd represents the matches command
var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "Inspect candidate/role match scores",
}

var matchesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List matches, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		filter := api.MatchFilter{}
		filter.CandidateID, _ = flags.GetString("candidate")
		filter.RoleID, _ = flags.GetString("role")
		filter.Status, _ = flags.GetString("status")
		if flags.Changed("min-score") {
			v, _ := flags.GetFloat64("min-score")
			filter.MinScore = &v
		}

		matches := a.store.MatchesWhere(filter)
		if asJSON, _ := flags.GetBool("json"); asJSON {
			return printJSON(matches)
		}
		if len(matches) == 0 {
			fmt.Println("No matches found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tCANDIDATE\tROLE\tSCORE\tSTATUS\t")
		for _, m := range matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%s\t\n",
				m.ID, a.store.CandidateName(m.CandidateID), a.store.RoleTitle(m.RoleID), m.MatchScore, m.Status)
		}
		w.Flush()

		return nil
	},
}

var matchesGetCmd = &cobra.Command{
	Use:   "get <match-id>",
	Short: "Show one match with its candidate and role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		d, err := a.hub.Matches().Details(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(d)
		}

		candidate, role := "-", "-"
		if d.Candidate != nil {
			candidate = fmt.Sprintf("%s <%s>", d.Candidate.Name, d.Candidate.Email)
		}
		if d.Role != nil {
			role = fmt.Sprintf("%s (%s)", d.Role.Title, d.Role.Department)
		}
		fmt.Printf("Match %s: %.0f%% %s\n", d.ID, d.MatchScore, d.Status)
		fmt.Printf("Candidate:       %s\n", candidate)
		fmt.Printf("Role:            %s\n", role)
		fmt.Printf("Matched skills:  %s\n", joined(d.SkillMatch.Matched))
		fmt.Printf("Missing skills:  %s\n", joined(d.SkillMatch.Missing))
		if d.Explanation != "" {
			fmt.Printf("Explanation:     %s\n", d.Explanation)
		}
		fmt.Printf("Scored:          %s\n", fmtDate(d.CreatedAt))

		return nil
	},
}

var matchesRegenCmd = &cobra.Command{
	Use:   "regen <match-id>",
	Short: "Regenerate the explanation text for a match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		m, err := a.hub.Matches().RegenerateExplanation(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(m.Explanation)
		return nil
	},
}

func init() {
	matchesCmd.AddCommand(matchesListCmd)
	matchesCmd.AddCommand(matchesGetCmd)
	matchesCmd.AddCommand(matchesRegenCmd)
	rootCmd.AddCommand(matchesCmd)

	matchesListCmd.Flags().String("candidate", "", "Only matches for this candidate id")
	matchesListCmd.Flags().String("role", "", "Only matches for this role id")
	matchesListCmd.Flags().Float64("min-score", 0, "Only matches scoring at least this")
	matchesListCmd.Flags().String("status", "", "Only matches with this status")
	matchesListCmd.Flags().Bool("json", false, "Print matches as JSON")
	matchesGetCmd.Flags().Bool("json", false, "Print the match as JSON")
}
