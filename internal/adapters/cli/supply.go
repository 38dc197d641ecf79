package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reliefops/logistics-go/internal/application/coordinator"
)

// NewSupplyCommand creates the supply command group
func NewSupplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supply",
		Short: "Manage available supplies",
	}

	cmd.AddCommand(newSupplyAddCommand())
	cmd.AddCommand(newSupplyListCommand())
	cmd.AddCommand(newSupplyResupplyCommand())
	return cmd
}

func newSupplyAddCommand() *cobra.Command {
	var (
		name         string
		category     string
		quantity     int
		unit         string
		supplier     string
		expires      string
		minimumStock int
		loc          locationFlags
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new supply lot",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			req := &coordinator.RegisterSupplyCommand{
				Name:         name,
				Category:     category,
				Quantity:     quantity,
				Unit:         unit,
				Location:     loc.toLocation(),
				Supplier:     supplier,
				MinimumStock: minimumStock,
			}
			if expires != "" {
				t, err := time.Parse(time.RFC3339, expires)
				if err != nil {
					return fmt.Errorf("invalid expiration date (use RFC3339): %w", err)
				}
				req.ExpirationDate = &t
			}

			resp, err := app.Mediator.Send(context.Background(), req)
			if err != nil {
				return err
			}

			s := resp.(*coordinator.RegisterSupplyResponse).Supply
			fmt.Printf("✓ Supply registered: %s\n", s.ID())
			fmt.Printf("  %s - %d %s of %s\n", s.Name(), s.QuantityAvailable(), s.Unit(), s.Category())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Supply name (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category, e.g. water, medical, food (required)")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity available (required)")
	cmd.Flags().StringVar(&unit, "unit", "units", "Unit of measure")
	cmd.Flags().StringVar(&supplier, "supplier", "", "Supplier name")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiration date (RFC3339)")
	cmd.Flags().IntVar(&minimumStock, "min-stock", 0, "Minimum stock threshold")
	loc.register(cmd)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newSupplyListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored supplies",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			supplies, err := app.SupplyRepo.LoadAll(context.Background())
			if err != nil {
				return err
			}
			if len(supplies) == 0 {
				fmt.Println("No supplies stored")
				return nil
			}

			for _, s := range supplies {
				flags := ""
				if s.IsExpired() {
					flags += " [expired]"
				} else if s.IsExpiringSoon() {
					flags += " [expiring soon]"
				}
				if s.IsBelowMinimumStock() {
					flags += " [low stock]"
				}
				fmt.Printf("%s  %-30s %-10s %d available, %d reserved %s%s\n",
					s.ID(), s.Name(), s.Category(),
					s.QuantityAvailable(), s.QuantityReserved(), s.Unit(), flags)
			}
			return nil
		},
	}

	return cmd
}

func newSupplyResupplyCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "resupply <supply-id>",
		Short: "Restock a supply and clear its reservations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			resp, err := app.Mediator.Send(context.Background(), &coordinator.ResupplyCommand{
				SupplyID: args[0],
				Quantity: quantity,
			})
			if err != nil {
				return err
			}

			s := resp.(*coordinator.ResupplyResponse).Supply
			fmt.Printf("✓ %s restocked: %d %s available\n", s.Name(), s.QuantityAvailable(), s.Unit())
			return nil
		},
	}

	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity to add (required)")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}
