package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reliefops/logistics-go/internal/application/coordinator"
	"github.com/reliefops/logistics-go/internal/domain/shared"
	"github.com/reliefops/logistics-go/internal/domain/shipment"
)

// NewShipmentCommand creates the shipment command group
func NewShipmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shipment",
		Short: "Manage shipments",
	}

	cmd.AddCommand(newShipmentCreateCommand())
	cmd.AddCommand(newShipmentAdvanceCommand())
	cmd.AddCommand(newShipmentListCommand())
	return cmd
}

func newShipmentCreateCommand() *cobra.Command {
	var (
		priority string
		quantity int
		unit     string
		needID   string
		supplyID string
		carrier  string
		origin   locationFlags
		dest     locationFlags
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a shipment",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			resp, err := app.Mediator.Send(context.Background(), &coordinator.CreateShipmentCommand{
				Priority:    shared.ParsePriorityLevel(priority),
				Origin:      origin.toLocation(),
				Destination: dest.toLocation(),
				Quantity:    quantity,
				Unit:        unit,
				NeedID:      needID,
				SupplyID:    supplyID,
				Carrier:     carrier,
			})
			if err != nil {
				return err
			}

			sh := resp.(*coordinator.CreateShipmentResponse).Shipment
			fmt.Printf("✓ Shipment created: %s\n", sh.TrackingCode())
			fmt.Printf("  ID:     %s\n", sh.ID())
			fmt.Printf("  Status: %s\n", sh.Status())
			return nil
		},
	}

	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority: critical, high, medium or low")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity carried (required)")
	cmd.Flags().StringVar(&unit, "unit", "units", "Unit of measure")
	cmd.Flags().StringVar(&needID, "need", "", "Linked need ID")
	cmd.Flags().StringVar(&supplyID, "supply", "", "Linked supply ID")
	cmd.Flags().StringVar(&carrier, "carrier", "", "Carrier name")
	cmd.Flags().Float64Var(&origin.lat, "origin-lat", 0, "Origin latitude")
	cmd.Flags().Float64Var(&origin.lon, "origin-lon", 0, "Origin longitude")
	cmd.Flags().StringVar(&origin.city, "origin-city", "", "Origin city")
	cmd.Flags().Float64Var(&dest.lat, "dest-lat", 0, "Destination latitude")
	cmd.Flags().Float64Var(&dest.lon, "dest-lon", 0, "Destination longitude")
	cmd.Flags().StringVar(&dest.city, "dest-city", "", "Destination city")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newShipmentAdvanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance <shipment-id> <status>",
		Short: "Move a shipment to a new lifecycle status",
		Long: `Apply a lifecycle transition. Valid statuses: Pending, Approved,
InTransit, AtDistributionCenter, OutForDelivery, Delivered, Cancelled,
Failed. Transitions must follow the delivery lifecycle; Cancelled and
Failed are reachable from any non-terminal status.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := shipment.Status(args[1])
			if !target.IsValid() {
				return fmt.Errorf("unknown status: %s", args[1])
			}

			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			resp, err := app.Mediator.Send(context.Background(), &coordinator.AdvanceShipmentCommand{
				ShipmentID: args[0],
				Target:     target,
			})
			if err != nil {
				return err
			}

			sh := resp.(*coordinator.AdvanceShipmentResponse).Shipment
			fmt.Printf("✓ Shipment %s is now %s\n", sh.TrackingCode(), sh.Status())
			if t := sh.ActualDelivery(); t != nil {
				fmt.Printf("  Delivered at: %s\n", t.Format("2006-01-02 15:04:05 MST"))
			}
			return nil
		},
	}

	return cmd
}

func newShipmentListCommand() *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored shipments",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			shipments, err := app.ShipmentRepo.LoadAll(context.Background())
			if err != nil {
				return err
			}

			shown := 0
			for _, sh := range shipments {
				if activeOnly && !sh.IsActive() {
					continue
				}
				delayed := ""
				if sh.IsDelayed() {
					delayed = " [delayed]"
				}
				fmt.Printf("%s  %-22s %-20s %d %s (%s)%s\n",
					sh.ID(), sh.TrackingCode(), sh.Status(),
					sh.Quantity(), sh.Unit(), sh.Priority(), delayed)
				shown++
			}
			if shown == 0 {
				fmt.Println("No shipments to show")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Show only active shipments")
	return cmd
}
