package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show dashboard summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			metrics, err := apiClient.Dashboard().Metrics(ctx)
			if err != nil {
				return fmt.Errorf("failed to load dashboard metrics: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(metrics)
			}

			fmt.Println("AgisFL Dashboard")
			fmt.Println(strings.Repeat("=", 40))

			fmt.Printf("  Incidents:     %d total", metrics.TotalIncidents)
			if metrics.CriticalIncidents > 0 {
				fmt.Printf(" (%d critical)", metrics.CriticalIncidents)
			}
			fmt.Println()

			fmt.Printf("  Threats:       %d active\n", metrics.ActiveThreats)
			fmt.Printf("  Anomalies:     %d detected\n", metrics.AnomaliesDetected)

			if len(metrics.SystemHealth) > 0 {
				fmt.Println("  Health:")
				for component, pct := range metrics.SystemHealth {
					fmt.Printf("    %-22s %.1f%%\n", component, pct)
				}
			}

			flStatus, err := apiClient.FL().Status(ctx)
			if err != nil {
				fmt.Printf("  Training:      (error: %v)\n", err)
				return nil
			}
			fmt.Printf("  Training:      %s, round %d, accuracy %.3f\n",
				flStatus.Status, flStatus.Round, flStatus.ModelAccuracy)

			return nil
		},
	}
}
