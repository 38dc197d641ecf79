package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reliefops/logistics-go/internal/application/coordinator"
	"github.com/reliefops/logistics-go/internal/domain/shared"
)

// locationFlags groups the location flags shared by the add commands
type locationFlags struct {
	lat     float64
	lon     float64
	address string
	city    string
	region  string
}

func (f *locationFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "Longitude")
	cmd.Flags().StringVar(&f.address, "address", "", "Street address")
	cmd.Flags().StringVar(&f.city, "city", "", "City")
	cmd.Flags().StringVar(&f.region, "region", "", "Region")
}

func (f *locationFlags) toLocation() shared.Location {
	return shared.NewLocation(f.lat, f.lon, f.address, f.city, f.region)
}

// NewNeedCommand creates the need command group
func NewNeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "need",
		Short: "Manage relief needs",
	}

	cmd.AddCommand(newNeedAddCommand())
	cmd.AddCommand(newNeedListCommand())
	return cmd
}

func newNeedAddCommand() *cobra.Command {
	var (
		title       string
		description string
		category    string
		priority    string
		quantity    int
		unit        string
		requestedBy string
		contactInfo string
		deadline    string
		loc         locationFlags
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new need",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			req := &coordinator.RegisterNeedCommand{
				Title:       title,
				Description: description,
				Category:    category,
				Priority:    shared.ParsePriorityLevel(priority),
				Quantity:    quantity,
				Unit:        unit,
				Location:    loc.toLocation(),
				RequestedBy: requestedBy,
				ContactInfo: contactInfo,
			}
			if deadline != "" {
				t, err := time.Parse(time.RFC3339, deadline)
				if err != nil {
					return fmt.Errorf("invalid deadline (use RFC3339, e.g. 2026-08-30T12:00:00Z): %w", err)
				}
				req.Deadline = &t
			}

			resp, err := app.Mediator.Send(context.Background(), req)
			if err != nil {
				return err
			}

			n := resp.(*coordinator.RegisterNeedResponse).Need
			fmt.Printf("✓ Need registered: %s\n", n.ID())
			fmt.Printf("  %s - %d %s of %s (%s priority)\n",
				n.Title(), n.QuantityRequired(), n.Unit(), n.Category(), n.Priority())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Short description of the need (required)")
	cmd.Flags().StringVar(&description, "description", "", "Longer free-form description")
	cmd.Flags().StringVar(&category, "category", "", "Category, e.g. water, medical, food (required)")
	cmd.Flags().StringVar(&priority, "priority", "medium", "Priority: critical, high, medium or low")
	cmd.Flags().IntVar(&quantity, "quantity", 0, "Quantity required (required)")
	cmd.Flags().StringVar(&unit, "unit", "units", "Unit of measure")
	cmd.Flags().StringVar(&requestedBy, "requested-by", "", "Requesting party")
	cmd.Flags().StringVar(&contactInfo, "contact", "", "Contact details")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Deadline (RFC3339)")
	loc.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("quantity")
	return cmd
}

func newNeedListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored needs",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			needs, err := app.NeedRepo.LoadAll(context.Background())
			if err != nil {
				return err
			}
			if len(needs) == 0 {
				fmt.Println("No needs stored")
				return nil
			}

			for _, n := range needs {
				status := fmt.Sprintf("%.0f%%", n.FulfillmentPercent())
				if n.IsFulfilled() {
					status = "fulfilled"
				}
				fmt.Printf("%s  %-30s %-10s %-8s %d/%d %s (%s)\n",
					n.ID(), n.Title(), n.Category(), n.Priority(),
					n.QuantityFulfilled(), n.QuantityRequired(), n.Unit(), status)
			}
			return nil
		},
	}

	return cmd
}
