// internal/cli/status.go
package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	httpclient "github.com/gandikediye-afk/gandi-command-center/internal/common/http"
)

var statusURL string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running command center",
	Long: `Query a running command center instance and print the entity
overview.

Example:
  gandictl status --url http://localhost:8501`,
	RunE: runStatusCmd,
}

func initStatusCmd() {
	statusCmd.Flags().StringVarP(&statusURL, "url", "u", "", "Base URL of the running instance (overrides config)")
}

type statusOverview struct {
	LastUpdated string `json:"lastUpdated"`
	Stale       bool   `json:"stale"`
	Entities    []struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		Status struct {
			PendingItems int    `json:"pending_items"`
			Status       string `json:"status"`
		} `json:"status"`
		Health struct {
			Reported int    `json:"reported"`
			Level    string `json:"level"`
		} `json:"health"`
	} `json:"entities"`
	Clock struct {
		Minneapolis string `json:"minneapolis"`
		Kenya       string `json:"kenya"`
		KenyaWindow bool   `json:"kenyaWindow"`
	} `json:"clock"`
}

func runStatusCmd(cmd *cobra.Command, args []string) error {
	baseURL := statusURL
	if baseURL == "" {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		baseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}

	client := httpclient.NewClient(10 * time.Second)

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/overview", nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("command center not reachable at %s: %w", baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("overview request failed: %s", resp.Status)
	}

	var overview statusOverview
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		return fmt.Errorf("decode overview: %w", err)
	}

	fmt.Printf("Last updated: %s", overview.LastUpdated)
	if overview.Stale {
		fmt.Print(" (stale)")
	}
	fmt.Println()
	fmt.Printf("Minneapolis %s | Kenya %s", overview.Clock.Minneapolis, overview.Clock.Kenya)
	if overview.Clock.KenyaWindow {
		fmt.Print(" | Kenya call window OPEN")
	}
	fmt.Println()
	fmt.Println()

	for _, entity := range overview.Entities {
		fmt.Printf("%-6s %-20s health %3d (%s)  pending %d  %s\n",
			entity.Code,
			entity.Name,
			entity.Health.Reported,
			entity.Health.Level,
			entity.Status.PendingItems,
			entity.Status.Status,
		)
	}
	return nil
}
