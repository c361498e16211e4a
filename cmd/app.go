package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hirewatch/hirewatch/internal/utils"
	"github.com/hirewatch/hirewatch/pkg/api"
	"github.com/hirewatch/hirewatch/pkg/demo"
	"github.com/hirewatch/hirewatch/pkg/hiring"
	"github.com/hirewatch/hirewatch/pkg/repo"
	"github.com/hirewatch/hirewatch/pkg/session"
	"github.com/hirewatch/hirewatch/pkg/workflow"
)

// app is one CLI invocation's session: gateway, store, repositories and
// workflow runner. Nothing survives the process.
type app struct {
	client   *api.Client
	provider *demo.Provider
	store    *session.Store
	hub      *repo.Hub
	runner   *workflow.Runner
}

// logNotifier prints workflow progress through the shared logger.
type logNotifier struct{}

func (logNotifier) Notify(n workflow.Notification) {
	msg := fmt.Sprintf("[workflow] %s: %s", n.Workflow, n.Message)
	switch n.Severity {
	case workflow.SeverityError:
		utils.Log.Error(msg)
	case workflow.SeverityWarning:
		utils.Log.Warn(msg)
	default:
		utils.Log.Info(msg)
	}
}

// newApp builds the session and bootstraps it. A degraded bootstrap is
// not fatal: the session keeps working on whatever data it got.
func newApp(cmd *cobra.Command) (*app, error) {
	return newAppWithNotifier(cmd, logNotifier{})
}

// newClient builds the gateway client from flags and config. It does not
// touch the network.
func newClient(cmd *cobra.Command) (*api.Client, error) {
	proxy, _ := cmd.Flags().GetString("proxy")
	return api.New(api.Config{
		BaseURL:       viper.GetString("api.base_url"),
		Timeout:       viper.GetDuration("api.timeout"),
		UploadTimeout: viper.GetDuration("api.upload_timeout"),
		Proxy:         proxy,
	})
}

func newAppWithNotifier(cmd *cobra.Command, notifier workflow.Notifier) (*app, error) {
	forceDemo, _ := cmd.Flags().GetBool("demo")

	client, err := newClient(cmd)
	if err != nil {
		return nil, err
	}

	provider := demo.NewProvider()
	store := session.New(client, provider, session.Options{
		Log:           utils.Log,
		ForceFallback: forceDemo,
	})
	if err := store.Bootstrap(cmd.Context()); err != nil {
		utils.Log.Warnf("[session] bootstrap degraded: %v", err)
	}
	if store.FallbackMode() {
		utils.Log.Warn("[session] running on the demo dataset")
	}

	hub := repo.New(store, client, provider)
	runner := workflow.New(workflow.Config{
		Hub:      hub,
		Gateway:  client,
		Synth:    provider,
		Notifier: notifier,
		Delay:    viper.GetDuration("workflow.refresh_delay"),
	})

	return &app{client: client, provider: provider, store: store, hub: hub, runner: runner}, nil
}

// awaitWorkflow prints the trigger acknowledgement and blocks until the
// deferred refresh lands. Progress lines come from the notifier.
func awaitWorkflow(rcpt *workflow.Receipt) error {
	fmt.Println(rcpt.Message)
	out := <-rcpt.Done
	return out.Err
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func joined(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func fmtDate(ts hiring.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
