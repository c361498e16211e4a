package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
)

// pingCmd represents the ping command
var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the backend API answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(cmd)
		if err != nil {
			return err
		}

		wait, _ := cmd.Flags().GetBool("wait")
		if !wait {
			if err := client.Health(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Backend at %s is up\n", client.BaseURL)
			return nil
		}

		// The retrying client backs off between attempts, so waiting out a
		// backend that is still booting costs nothing.
		retries, _ := cmd.Flags().GetInt("retries")
		retryClient := retryablehttp.NewClient()
		retryClient.Logger = log.New(io.Discard, "", 0)
		retryClient.RetryMax = retries
		retryClient.RetryWaitMin = time.Second
		retryClient.RetryWaitMax = 10 * time.Second

		req, err := retryablehttp.NewRequestWithContext(cmd.Context(), http.MethodGet, client.BaseURL+"/health", nil)
		if err != nil {
			return err
		}
		res, err := retryClient.Do(req)
		if err != nil {
			return fmt.Errorf("backend did not come up: %w", err)
		}
		defer res.Body.Close()
		if res.StatusCode >= 400 {
			return fmt.Errorf("health check returned status %d", res.StatusCode)
		}
		fmt.Printf("Backend at %s is up\n", client.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)

	pingCmd.Flags().Bool("wait", false, "Keep retrying until the backend answers")
	pingCmd.Flags().Int("retries", 10, "Retry attempts when --wait is set")
}
