package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agisfl/agisfl/pkg/client"
)

func newFLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fl",
		Short: "Control the federated learning coordinator",
	}

	cmd.AddCommand(newFLStatusCmd())
	cmd.AddCommand(newFLNodesCmd())
	cmd.AddCommand(newFLStartCmd())
	cmd.AddCommand(newFLPauseCmd())
	cmd.AddCommand(newFLResetCmd())

	return cmd
}

func newFLStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show training status",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			status, err := apiClient.FL().Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get training status: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(status)
			}

			printFLStatus(status)
			return nil
		},
	}
}

func newFLNodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List participating nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			nodes, err := apiClient.FL().Nodes(ctx)
			if err != nil {
				return fmt.Errorf("failed to list nodes: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printStructured(nodes)
			}

			table := newTableWriter("ID", "MODEL", "ACCURACY", "SAMPLES", "ACTIVE")
			for _, n := range nodes {
				table.row(
					n.ID,
					n.Model,
					fmt.Sprintf("%.3f", n.Accuracy),
					fmt.Sprintf("%d", n.Samples),
					yesNo(n.Active),
				)
			}
			table.flush()
			return nil
		},
	}
}

func newFLStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Resume training",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.FL().Start(context.Background())
			if err != nil {
				return fmt.Errorf("failed to start training: %w", err)
			}
			fmt.Println("Training resumed")
			printFLStatus(status)
			return nil
		},
	}
}

func newFLPauseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause training",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.FL().Pause(context.Background())
			if err != nil {
				return fmt.Errorf("failed to pause training: %w", err)
			}
			fmt.Println("Training paused")
			printFLStatus(status)
			return nil
		},
	}
}

func newFLResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset training to the initial state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := apiClient.FL().Reset(context.Background())
			if err != nil {
				return fmt.Errorf("failed to reset training: %w", err)
			}
			fmt.Println("Training reset")
			printFLStatus(status)
			return nil
		},
	}
}

func printFLStatus(status *client.FLStatus) {
	fmt.Printf("Status:    %s\n", statusLabel(status.Status))
	fmt.Printf("Round:     %d\n", status.Round)
	fmt.Printf("Accuracy:  %.3f\n", status.ModelAccuracy)
	if !status.LastTrainedAt.IsZero() {
		fmt.Printf("Trained:   %s\n", status.LastTrainedAt.Format("2006-01-02 15:04:05"))
	}
	for _, n := range status.Nodes {
		fmt.Printf("  %-14s %-18s %.3f\n", n.ID, n.Model, n.Accuracy)
	}
}
