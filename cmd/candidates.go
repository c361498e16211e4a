package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// candidatesCmd represents the candidates command
var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Browse the candidate pool",
}

var candidatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all candidates in the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		candidates := a.store.Candidates()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(candidates)
		}
		if len(candidates) == 0 {
			fmt.Println("No candidates loaded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tEXPERIENCE\tLOCATION\tSKILLS\t")
		for _, c := range candidates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
				c.ID, c.Name, c.Email, c.Experience, c.Location, joined(c.Skills))
		}
		w.Flush()

		return nil
	},
}

var candidatesGetCmd = &cobra.Command{
	Use:   "get <candidate-id>",
	Short: "Show one candidate profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		c, err := a.hub.Candidates().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(c)
		}

		fmt.Printf("%s <%s>\n", c.Name, c.Email)
		if c.Phone != "" {
			fmt.Printf("Phone:           %s\n", c.Phone)
		}
		fmt.Printf("Experience:      %s\n", c.Experience)
		fmt.Printf("Education:       %s\n", c.Education)
		fmt.Printf("Location:        %s (remote: %s)\n", c.Location, c.RemotePreference)
		fmt.Printf("Skills:          %s\n", joined(c.Skills))
		fmt.Printf("Certifications:  %s\n", joined(c.Certifications))
		fmt.Printf("Current CTC:     %.0f\n", c.CurrentCTC)
		fmt.Printf("Expected CTC:    %.0f\n", c.ExpectedCTC)
		fmt.Printf("Notice period:   %d days\n", c.NoticePeriod)
		if c.ResumePath != "" {
			fmt.Printf("Resume:          %s\n", c.ResumePath)
		}
		fmt.Printf("Added:           %s\n", fmtDate(c.CreatedAt))

		return nil
	},
}

func init() {
	candidatesCmd.AddCommand(candidatesListCmd)
	candidatesCmd.AddCommand(candidatesGetCmd)
	rootCmd.AddCommand(candidatesCmd)

	candidatesListCmd.Flags().Bool("json", false, "Print candidates as JSON")
	candidatesGetCmd.Flags().Bool("json", false, "Print the candidate as JSON")
}
