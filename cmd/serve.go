package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hirewatch/hirewatch/internal/server"
	"github.com/hirewatch/hirewatch/pkg/workflow"
)

// fanoutNotifier sends each workflow notification to every target.
type fanoutNotifier []workflow.Notifier

func (f fanoutNotifier) Notify(n workflow.Notification) {
	for _, t := range f {
		t.Notify(n)
	}
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the session over a local HTTP API",
	Long: `Bootstraps a session and serves it over HTTP: collection reads,
offer approval, and workflow triggers. Clients poll GET /api/state for
workflow progress and recent notifications.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		notes := server.NewNotificationLog(0)
		a, err := newAppWithNotifier(cmd, fanoutNotifier{notes, logNotifier{}})
		if err != nil {
			return err
		}

		listen, _ := cmd.Flags().GetString("listen")
		srv := server.New(cmd.Context(), server.Config{
			Hub:      a.hub,
			Runner:   a.runner,
			Notes:    notes,
			Username: viper.GetString("server.username"),
			Password: viper.GetString("server.password"),
		})
		return srv.Start(listen)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "127.0.0.1:8080", "Address to listen on")
}
