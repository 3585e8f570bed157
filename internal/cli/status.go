package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/soyeahso/switchboard/internal/config"
	"github.com/soyeahso/switchboard/internal/version"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show switchboard status and configuration summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Switchboard %s (commit %s)\n\n", version.Version, version.Commit)

			fmt.Printf("Config:  %s\n", paths.Config)
			fmt.Printf("Logs:    %s\n", paths.Logs)
			fmt.Println()

			cfg, err := config.Load(paths.Config)
			if err != nil {
				fmt.Printf("Config:  error loading: %v\n", err)
				return nil
			}
			if _, statErr := os.Stat(paths.Config); os.IsNotExist(statErr) {
				fmt.Println("Config:  file not found, showing defaults")
			}

			fmt.Printf("Gateway: port=%d bind=%s auth=%s tls=%v\n",
				cfg.Gateway.Port, cfg.Gateway.Bind, cfg.Gateway.Auth.Mode, cfg.Gateway.TLS.Enabled)
			fmt.Printf("Chunks:  mode=%s\n", cfg.Coordinator.ChunkMode)
			fmt.Printf("Metrics: enabled=%v\n", cfg.Metrics.Enabled)

			// Probe the local gateway health endpoint
			scheme := "http"
			if cfg.Gateway.TLS.Enabled {
				scheme = "https"
			}
			url := fmt.Sprintf("%s://127.0.0.1:%d/health", scheme, cfg.Gateway.Port)
			client := &http.Client{Timeout: 2 * time.Second}
			resp, err := client.Get(url)
			if err != nil {
				fmt.Println("Server:  not running")
			} else {
				defer resp.Body.Close()
				var health struct {
					Status string `json:"status"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&health); err == nil && health.Status == "ok" {
					fmt.Printf("Server:  running (%s)\n", url)
				} else {
					fmt.Printf("Server:  unexpected response (%d)\n", resp.StatusCode)
				}
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				fmt.Printf("\nValidation issues (%d):\n", len(issues))
				for _, issue := range issues {
					fmt.Printf("  - %s: %s\n", issue.Path, issue.Message)
				}
			}

			return nil
		},
	}

	return cmd
}
