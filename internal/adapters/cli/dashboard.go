package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/reliefops/logistics-go/internal/application/coordinator"
	"github.com/reliefops/logistics-go/internal/application/dashboard"
)

// NewDashboardCommand creates the dashboard command
func NewDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the operational dashboard",
		Long:  `Aggregate stored needs, supplies and shipments into a point-in-time snapshot.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			resp, err := app.Mediator.Send(context.Background(), &coordinator.GetDashboardQuery{})
			if err != nil {
				return fmt.Errorf("failed to build dashboard: %w", err)
			}

			renderSnapshot(resp.(*coordinator.GetDashboardResponse).Snapshot)
			return nil
		},
	}

	return cmd
}

func renderSnapshot(s *dashboard.Snapshot) {
	fmt.Printf("Relief Dashboard - %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Println("========================================")

	if s.PanicMode {
		fmt.Printf("\n⚠ PANIC MODE: %d critical need(s) starving\n", len(s.PanicNeeds))
		for _, alert := range s.PanicNeeds {
			fmt.Printf("  ! %s (%s) waiting %.1fh at %.0f%% fulfilled\n",
				alert.Title, alert.Category, alert.HoursWaited, alert.FulfillmentPercent)
		}
	}

	fmt.Println("\nNeeds")
	fmt.Printf("  Total:       %d\n", s.Needs.Total)
	fmt.Printf("  Fulfilled:   %d\n", s.Needs.Fulfilled)
	fmt.Printf("  Partial:     %d\n", s.Needs.PartiallyFulfilled)
	fmt.Printf("  Unfulfilled: %d\n", s.Needs.Unfulfilled)
	fmt.Printf("  Demand met:  %.1f%%\n", s.Needs.PercentMet)

	fmt.Println("\nSupplies")
	fmt.Printf("  Total:     %d\n", s.Supplies.Total)
	fmt.Printf("  Depleted:  %d\n", s.Supplies.Depleted)
	fmt.Printf("  Low stock: %d\n", s.Supplies.LowStock)

	fmt.Println("\nShipments")
	fmt.Printf("  Active:          %d\n", s.Shipments.ActiveTotal)
	fmt.Printf("  Pending:         %d\n", s.Shipments.Pending)
	fmt.Printf("  In transit:      %d\n", s.Shipments.InTransit)
	fmt.Printf("  Delivered today: %d\n", s.Shipments.DeliveredToday)

	if len(s.TopCritical) > 0 {
		fmt.Println("\nTop critical missing items")
		for i, item := range s.TopCritical {
			fmt.Printf("  %d. %s (%s) - %d %s missing, waited %.1fh, score %.2f\n",
				i+1, item.Title, item.Category, item.RemainingQuantity, item.Unit,
				item.HoursWaited, item.EffectiveScore)
		}
	}

	if len(s.Categories.FulfillmentPercent) > 0 {
		fmt.Println("\nFulfillment by category")
		categories := make([]string, 0, len(s.Categories.FulfillmentPercent))
		for cat := range s.Categories.FulfillmentPercent {
			categories = append(categories, cat)
		}
		sort.Strings(categories)
		for _, cat := range categories {
			fmt.Printf("  %-12s %.1f%% (stock: %d)\n",
				cat, s.Categories.FulfillmentPercent[cat], s.Categories.AllocatableByCat[cat])
		}
	}
}
