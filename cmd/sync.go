package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hirewatch/hirewatch/pkg/session"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Load the four collections and print a session summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		snap := a.store.Snapshot()
		if asJSON {
			return printJSON(snap)
		}

		mode := "live"
		if snap.FallbackMode {
			mode = "demo"
		}
		fmt.Printf("Session mode: %s\n", mode)
		if snap.Error != "" {
			fmt.Printf("Last error: %s\n", snap.Error)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "COLLECTION\tROWS\t")
		for _, name := range []session.Collection{session.Candidates, session.Roles, session.Matches, session.Offers} {
			fmt.Fprintf(w, "%s\t%d\t\n", name, snap.Counts[string(name)])
		}
		w.Flush()

		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Bool("json", false, "Print the session snapshot as JSON")
}
