package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/reliefops/logistics-go/internal/domain/audit"
)

// NewAuditCommand creates the audit command group
func NewAuditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail",
	}

	cmd.AddCommand(newAuditRecentCommand())
	cmd.AddCommand(newAuditExportCommand())
	return cmd
}

func newAuditRecentCommand() *cobra.Command {
	var limit int
	var eventType string

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show recent audit entries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			var entries []*domain.Entry
			if eventType != "" {
				et := domain.EventType(eventType)
				if !et.IsValid() {
					return fmt.Errorf("unknown event type: %s", eventType)
				}
				entries = app.AuditLog.ByType(et)
				if limit > 0 && len(entries) > limit {
					entries = entries[:limit]
				}
			} else {
				entries = app.AuditLog.Recent(limit)
			}

			if len(entries) == 0 {
				fmt.Println("No audit entries recorded in this session")
				return nil
			}
			for _, e := range entries {
				printEntry(e)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")
	cmd.Flags().StringVar(&eventType, "type", "", "Filter by event type (e.g. MatchMade)")
	return cmd
}

func newAuditExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export the in-memory audit log as a JSON array",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			if err := app.AuditLog.Export(args[0]); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Printf("✓ Exported %d entries to %s\n", app.AuditLog.Len(), args[0])
			return nil
		},
	}

	return cmd
}

func printEntry(e *domain.Entry) {
	fmt.Printf("[%s] %-20s %s\n", e.Timestamp.Format("15:04:05"), e.EventType, e.Message)
	if verbose && e.EntityID != "" {
		fmt.Printf("    entity: %s (%s)\n", e.EntityID, e.EntityType)
	}
}
