package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/hiring"
)

// offersCmd represents the offers command
var offersCmd = &cobra.Command{
	Use:   "offers",
	Short: "Review and act on offer recommendations",
}

var offersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List offers, optionally by status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		offers := a.store.OffersWhere(api.OfferFilter{Status: status})
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(offers)
		}
		if len(offers) == 0 {
			fmt.Println("No offers found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tCANDIDATE\tROLE\tBASE\tTOTAL\tSTATUS\t")
		for _, o := range offers {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.0f\t%s\t\n",
				o.ID, a.store.CandidateName(o.CandidateID), a.store.RoleTitle(o.RoleID),
				o.Package.BaseSalary, o.Package.TotalCTC, o.Status)
		}
		w.Flush()

		return nil
	},
}

var offersGetCmd = &cobra.Command{
	Use:   "get <offer-id>",
	Short: "Show one offer with its candidate and role",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		d, err := a.hub.Offers().Details(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(d)
		}

		candidate, role := "-", "-"
		if d.Candidate != nil {
			candidate = d.Candidate.Name
		}
		if d.Role != nil {
			role = d.Role.Title
		}
		fmt.Printf("Offer %s: %s -> %s [%s]\n", d.ID, candidate, role, d.Status)
		fmt.Printf("Match score:   %.0f\n", d.MatchScore)
		fmt.Printf("Base salary:   %.0f\n", d.Package.BaseSalary)
		fmt.Printf("Bonus:         %.0f\n", d.Package.Bonus)
		fmt.Printf("Total CTC:     %.0f\n", d.Package.TotalCTC)
		if d.Package.Equity != "" {
			fmt.Printf("Equity:        %s\n", d.Package.Equity)
		}
		fmt.Printf("Benefits:      %s\n", joined(d.Package.Benefits))
		if d.Package.StartDate != "" {
			fmt.Printf("Start date:    %s\n", d.Package.StartDate)
		}
		if d.Package.Remote != "" {
			fmt.Printf("Remote:        %s\n", d.Package.Remote)
		}
		if d.Explanation != "" {
			fmt.Printf("Explanation:   %s\n", d.Explanation)
		}
		fmt.Printf("Updated:       %s\n", fmtDate(d.UpdatedAt))

		return nil
	},
}

var offersUpdateCmd = &cobra.Command{
	Use:   "update <offer-id>",
	Short: "Edit an offer package; only the flags you pass are changed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		var patch hiring.OfferPackagePatch
		if flags.Changed("base-salary") {
			v, _ := flags.GetFloat64("base-salary")
			patch.BaseSalary = &v
		}
		if flags.Changed("bonus") {
			v, _ := flags.GetFloat64("bonus")
			patch.Bonus = &v
		}
		patch.Equity = stringPatch(flags, "equity")
		patch.StartDate = stringPatch(flags, "start-date")
		patch.Remote = stringPatch(flags, "remote")
		if flags.Changed("benefits") {
			patch.Benefits, _ = flags.GetStringSlice("benefits")
		}

		o, err := a.hub.Offers().Update(cmd.Context(), args[0], patch)
		if err != nil {
			return err
		}
		fmt.Printf("Offer %s updated: total CTC %.0f [%s]\n", o.ID, o.Package.TotalCTC, o.Status)
		return nil
	},
}

var offersApproveCmd = &cobra.Command{
	Use:   "approve <offer-id>",
	Short: "Approve an offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		o, err := a.hub.Offers().Approve(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Offer %s is now %s\n", o.ID, o.Status)
		return nil
	},
}

var offersRejectCmd = &cobra.Command{
	Use:   "reject <offer-id>",
	Short: "Reject an offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		comments, _ := cmd.Flags().GetString("comments")
		o, err := a.hub.Offers().Reject(cmd.Context(), args[0], comments)
		if err != nil {
			return err
		}
		fmt.Printf("Offer %s is now %s\n", o.ID, o.Status)
		return nil
	},
}

var offersGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate offers for matched candidates and wait for the refresh",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		matchIDs, _ := cmd.Flags().GetStringSlice("matches")
		rcpt, err := a.runner.GenerateOffers(cmd.Context(), matchIDs)
		if err != nil {
			return err
		}
		return awaitWorkflow(rcpt)
	},
}

var offersFeedbackCmd = &cobra.Command{
	Use:   "feedback <entity-id>",
	Short: "Record reviewer feedback on a match or an offer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		in := hiring.FeedbackInput{EntityID: args[0]}
		in.EntityType, _ = flags.GetString("entity")
		in.FeedbackType, _ = flags.GetString("action")
		in.Comments, _ = flags.GetString("comments")
		if raw, _ := flags.GetString("modifications"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &in.Modifications); err != nil {
				return fmt.Errorf("parsing --modifications: %w", err)
			}
		}

		if err := a.hub.Offers().SubmitFeedback(cmd.Context(), in); err != nil {
			return err
		}
		fmt.Printf("Feedback recorded for %s %s\n", in.EntityType, in.EntityID)
		return nil
	},
}

func init() {
	offersCmd.AddCommand(offersListCmd)
	offersCmd.AddCommand(offersGetCmd)
	offersCmd.AddCommand(offersUpdateCmd)
	offersCmd.AddCommand(offersApproveCmd)
	offersCmd.AddCommand(offersRejectCmd)
	offersCmd.AddCommand(offersGenerateCmd)
	offersCmd.AddCommand(offersFeedbackCmd)
	rootCmd.AddCommand(offersCmd)

	offersListCmd.Flags().String("status", "", "Only offers with this status")
	offersListCmd.Flags().Bool("json", false, "Print offers as JSON")
	offersGetCmd.Flags().Bool("json", false, "Print the offer as JSON")

	offersUpdateCmd.Flags().Float64("base-salary", 0, "New base salary")
	offersUpdateCmd.Flags().Float64("bonus", 0, "New bonus")
	offersUpdateCmd.Flags().String("equity", "", "New equity grant, e.g. \"0.5%\"")
	offersUpdateCmd.Flags().StringSlice("benefits", nil, "Replacement benefits list (comma separated)")
	offersUpdateCmd.Flags().String("start-date", "", "New start date, e.g. 2025-10-01")
	offersUpdateCmd.Flags().String("remote", "", "New remote arrangement")

	offersRejectCmd.Flags().String("comments", "", "Why the offer was rejected")

	offersGenerateCmd.Flags().StringSlice("matches", nil, "Match ids to generate offers for (default: all strong matches)")

	offersFeedbackCmd.Flags().String("entity", hiring.FeedbackEntityOffer, "What the feedback is about: match or offer")
	offersFeedbackCmd.Flags().String("action", hiring.FeedbackApproval, "Feedback kind: approval, rejection or modification")
	offersFeedbackCmd.Flags().String("comments", "", "Free-form reviewer comments")
	offersFeedbackCmd.Flags().String("modifications", "", "JSON object describing requested changes")
}
