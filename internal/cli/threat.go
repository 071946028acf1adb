package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agisfl/agisfl/pkg/client"
)

func newThreatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "threat",
		Aliases: []string{"threats"},
		Short:   "Manage detected threats",
	}

	cmd.AddCommand(newThreatListCmd())
	cmd.AddCommand(newThreatGetCmd())
	cmd.AddCommand(newThreatMitigateCmd())

	return cmd
}

func newThreatListCmd() *cobra.Command {
	var severity, threatType string
	var activeOnly bool
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List threats",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			threats, pg, err := apiClient.Threats().List(ctx, &client.ThreatListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				Severity:    severity,
				Type:        threatType,
				ActiveOnly:  activeOnly,
			})
			if err != nil {
				return fmt.Errorf("failed to list threats: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(threats)
			}

			if len(threats) == 0 {
				fmt.Println("No threats found")
				return nil
			}

			table := newTableWriter("ID", "CODE", "NAME", "TYPE", "SEVERITY", "ACTIVE", "CONFIDENCE", "DETECTED")
			for _, t := range threats {
				table.row(
					strconv.FormatInt(t.ID, 10),
					t.ThreatID,
					clip(t.Name, 32),
					t.Type,
					severityLabel(t.Severity),
					yesNo(t.IsActive),
					fmt.Sprintf("%.2f", t.Confidence),
					t.DetectedAt.Format("2006-01-02 15:04"),
				)
			}
			table.flush()

			fmt.Printf("\nPage %d of %d (%d threats)\n", pg.Page, pg.TotalPages, pg.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity: critical, high, medium, low")
	cmd.Flags().StringVar(&threatType, "type", "", "filter by type: malware, dos, probe, intrusion, network_anomaly")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "show only active threats")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")

	return cmd
}

func newThreatGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show threat details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid threat ID: %s", args[0])
			}

			ctx := context.Background()
			t, err := apiClient.Threats().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get threat: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(t)
			}

			fmt.Printf("Code:        %s\n", t.ThreatID)
			fmt.Printf("Name:        %s\n", t.Name)
			fmt.Printf("Type:        %s\n", t.Type)
			fmt.Printf("Severity:    %s\n", severityLabel(t.Severity))
			fmt.Printf("Active:      %s\n", yesNo(t.IsActive))
			fmt.Printf("Confidence:  %.2f\n", t.Confidence)
			if t.SourceIP != "" {
				fmt.Printf("Source IP:   %s\n", t.SourceIP)
			}
			if t.TargetIP != "" {
				fmt.Printf("Target IP:   %s\n", t.TargetIP)
			}
			fmt.Printf("Detected:    %s\n", t.DetectedAt.Format("2006-01-02 15:04:05"))
			if t.Description != "" {
				fmt.Printf("\n%s\n", t.Description)
			}
			return nil
		},
	}
}

func newThreatMitigateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mitigate <id>",
		Short: "Mark a threat as mitigated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid threat ID: %s", args[0])
			}

			ctx := context.Background()
			t, err := apiClient.Threats().Mitigate(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to mitigate threat: %w", err)
			}

			fmt.Printf("Mitigated threat %s (%s)\n", t.ThreatID, t.Name)
			return nil
		},
	}
}
