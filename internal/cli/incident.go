package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agisfl/agisfl/pkg/client"
)

func newIncidentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "incident",
		Aliases: []string{"incidents", "inc"},
		Short:   "Manage security incidents",
	}

	cmd.AddCommand(newIncidentListCmd())
	cmd.AddCommand(newIncidentGetCmd())
	cmd.AddCommand(newIncidentCreateCmd())
	cmd.AddCommand(newIncidentResolveCmd())

	return cmd
}

func newIncidentListCmd() *cobra.Command {
	var severity, status, incidentType string
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incidents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			incidents, pg, err := apiClient.Incidents().List(ctx, &client.IncidentListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				Severity:    severity,
				Status:      status,
				Type:        incidentType,
			})
			if err != nil {
				return fmt.Errorf("failed to list incidents: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(incidents)
			}

			if len(incidents) == 0 {
				fmt.Println("No incidents found")
				return nil
			}

			table := newTableWriter("ID", "CODE", "TITLE", "SEVERITY", "STATUS", "RISK", "CREATED")
			for _, inc := range incidents {
				table.row(
					strconv.FormatInt(inc.ID, 10),
					inc.IncidentID,
					clip(inc.Title, 40),
					severityLabel(inc.Severity),
					statusLabel(inc.Status),
					fmt.Sprintf("%.1f", inc.RiskScore),
					inc.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.flush()

			fmt.Printf("\nPage %d of %d (%d incidents)\n", pg.Page, pg.TotalPages, pg.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&severity, "severity", "", "filter by severity: critical, high, medium, low")
	cmd.Flags().StringVar(&status, "status", "", "filter by status: open, investigating, analyzing, resolved, closed")
	cmd.Flags().StringVar(&incidentType, "type", "", "filter by incident type")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "items per page")

	return cmd
}

func newIncidentGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show incident details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid incident ID: %s", args[0])
			}

			ctx := context.Background()
			inc, err := apiClient.Incidents().Get(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get incident: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(inc)
			}

			fmt.Printf("Code:        %s\n", inc.IncidentID)
			fmt.Printf("Title:       %s\n", inc.Title)
			fmt.Printf("Severity:    %s\n", severityLabel(inc.Severity))
			fmt.Printf("Status:      %s\n", statusLabel(inc.Status))
			fmt.Printf("Type:        %s\n", inc.Type)
			fmt.Printf("Risk score:  %.1f\n", inc.RiskScore)
			if inc.AssigneeID != nil {
				fmt.Printf("Assignee:    %d\n", *inc.AssigneeID)
			}
			fmt.Printf("Created:     %s\n", inc.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Printf("Updated:     %s\n", inc.UpdatedAt.Format("2006-01-02 15:04:05"))
			if inc.Description != "" {
				fmt.Printf("\n%s\n", inc.Description)
			}
			return nil
		},
	}
}

func newIncidentCreateCmd() *cobra.Command {
	var title, description, severity, incidentType string
	var riskScore float64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new incident",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if title == "" {
				if title, err = promptInput("Title: "); err != nil {
					return err
				}
			}
			if description == "" {
				if description, err = promptInput("Description: "); err != nil {
					return err
				}
			}

			ctx := context.Background()
			inc, err := apiClient.Incidents().Create(ctx, client.CreateIncidentRequest{
				Title:       title,
				Description: description,
				Severity:    severity,
				Type:        incidentType,
				RiskScore:   riskScore,
			})
			if err != nil {
				return fmt.Errorf("failed to create incident: %w", err)
			}

			fmt.Printf("Created incident %s (ID: %d)\n", inc.IncidentID, inc.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "incident title")
	cmd.Flags().StringVar(&description, "description", "", "incident description")
	cmd.Flags().StringVar(&severity, "severity", "medium", "severity: critical, high, medium, low")
	cmd.Flags().StringVar(&incidentType, "type", "manual", "incident type")
	cmd.Flags().Float64Var(&riskScore, "risk-score", 0, "risk score (0-100)")

	return cmd
}

func newIncidentResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark an incident as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid incident ID: %s", args[0])
			}

			ctx := context.Background()
			inc, err := apiClient.Incidents().Resolve(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to resolve incident: %w", err)
			}

			fmt.Printf("Resolved incident %s\n", inc.IncidentID)
			return nil
		},
	}
}
