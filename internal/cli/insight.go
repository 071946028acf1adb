package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newInsightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "insight",
		Aliases: []string{"insights"},
		Short:   "View AI-generated insights",
	}

	cmd.AddCommand(newInsightListCmd())
	cmd.AddCommand(newInsightDismissCmd())

	return cmd
}

func newInsightListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			insights, err := apiClient.Insights().List(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list insights: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(insights)
			}

			if len(insights) == 0 {
				fmt.Println("No active insights")
				return nil
			}

			table := newTableWriter("ID", "TYPE", "TITLE", "SEVERITY", "CONFIDENCE", "CREATED")
			for _, ins := range insights {
				table.row(
					strconv.FormatInt(ins.ID, 10),
					ins.Type,
					clip(ins.Title, 44),
					severityLabel(ins.Severity),
					fmt.Sprintf("%.2f", ins.Confidence),
					ins.CreatedAt.Format("2006-01-02 15:04"),
				)
			}
			table.flush()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum insights to show (0 = server default)")

	return cmd
}

func newInsightDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Dismiss an insight",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid insight ID: %s", args[0])
			}

			ctx := context.Background()
			if err := apiClient.Insights().Dismiss(ctx, id); err != nil {
				return fmt.Errorf("failed to dismiss insight: %w", err)
			}

			fmt.Printf("Dismissed insight %d\n", id)
			return nil
		},
	}
}
