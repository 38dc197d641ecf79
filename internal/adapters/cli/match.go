package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reliefops/logistics-go/internal/application/coordinator"
)

// NewMatchCommand creates the match command
func NewMatchCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run one matching pass over stored needs and supplies",
		Long: `Run a single atomic matching pass. Needs are processed in effective
priority order and allocated against the best scoring supplies. A failed
pass rolls every mutation back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			resp, err := app.Mediator.Send(context.Background(), &coordinator.RunMatchingCycleCommand{DryRun: dryRun})
			if err != nil {
				return fmt.Errorf("matching pass failed: %w", err)
			}

			result := resp.(*coordinator.RunMatchingCycleResponse).Result
			if !result.Success {
				fmt.Printf("✗ Matching pass rolled back: %s\n", result.Message)
				return nil
			}

			if dryRun {
				fmt.Println("Dry run - no changes were persisted")
			}
			fmt.Printf("✓ %s\n", result.Message)
			fmt.Printf("  Needs matched:   %d\n", len(result.Allocations))
			fmt.Printf("  Units allocated: %d\n", result.TotalAllocatedQuantity())

			for _, alloc := range result.Allocations {
				fmt.Printf("\n  %s (+%d, now %.1f%% fulfilled)\n",
					alloc.NeedTitle, alloc.TotalAllocated, alloc.FulfillmentPercentAfter)
				for _, sa := range alloc.Supplies {
					marker := ""
					if sa.SupplyExhausted {
						marker = " [exhausted]"
					}
					fmt.Printf("    ← %s: %d (score %.2f)%s\n", sa.SupplyName, sa.Quantity, sa.MatchScore, marker)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run the pass without persisting results")
	return cmd
}
