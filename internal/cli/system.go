package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newSystemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Inspect system telemetry",
	}

	cmd.AddCommand(newSystemMetricsCmd())
	cmd.AddCommand(newSystemHealthCmd())

	return cmd
}

func newSystemMetricsCmd() *cobra.Command {
	var metricType string
	var window time.Duration

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show system metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var err error
			var metrics []metricRow
			if metricType != "" {
				history, herr := apiClient.System().History(ctx, metricType, window)
				err = herr
				for _, m := range history {
					metrics = append(metrics, metricRow{m.MetricType, m.Component, m.Value, m.Unit, m.Status, m.Timestamp})
				}
			} else {
				latest, lerr := apiClient.System().Metrics(ctx)
				err = lerr
				for _, m := range latest {
					metrics = append(metrics, metricRow{m.MetricType, m.Component, m.Value, m.Unit, m.Status, m.Timestamp})
				}
			}
			if err != nil {
				return fmt.Errorf("failed to load system metrics: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(metrics)
			}

			if len(metrics) == 0 {
				fmt.Println("No metrics recorded")
				return nil
			}

			table := newTableWriter("TYPE", "COMPONENT", "VALUE", "STATUS", "TIMESTAMP")
			for _, m := range metrics {
				table.row(
					m.MetricType,
					m.Component,
					fmt.Sprintf("%.1f%s", m.Value, m.Unit),
					statusLabel(m.Status),
					m.Timestamp.Format("15:04:05"),
				)
			}
			table.flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&metricType, "type", "", "show history for a metric type: cpu, memory, network")
	cmd.Flags().DurationVar(&window, "window", time.Hour, "history window (with --type)")

	return cmd
}

type metricRow struct {
	MetricType string    `json:"metricType"`
	Component  string    `json:"component"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
}

func newSystemHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show platform component health",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			health, err := apiClient.System().Health(ctx)
			if err != nil {
				return fmt.Errorf("failed to load system health: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(health)
			}

			components := make([]string, 0, len(health.Components))
			for name := range health.Components {
				components = append(components, name)
			}
			sort.Strings(components)

			table := newTableWriter("COMPONENT", "HEALTH")
			for _, name := range components {
				table.row(name, fmt.Sprintf("%.1f%%", health.Components[name]))
			}
			table.flush()

			fmt.Printf("\nUptime:    %s\n", (time.Duration(health.UptimeSeconds) * time.Second).String())
			fmt.Printf("Processes: %s\n", strconv.Itoa(health.ProcessCount))
			return nil
		},
	}
}
