package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "relief",
		Short: "Relief CLI - Coordinate disaster relief logistics",
		Long: `Relief CLI matches incoming needs against available supplies,
tracks shipments and surfaces starving critical needs.

Examples:
  relief need add --title "Water for shelter 4" --category water --quantity 500 --unit liters --priority critical
  relief supply add --name "Bottled water" --category water --quantity 2000 --unit liters
  relief match
  relief dashboard
  relief shipment create --quantity 500 --unit liters --priority high
  relief audit recent --limit 20
  relief daemon --interval 30s`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (defaults to ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewNeedCommand())
	rootCmd.AddCommand(NewSupplyCommand())
	rootCmd.AddCommand(NewMatchCommand())
	rootCmd.AddCommand(NewDashboardCommand())
	rootCmd.AddCommand(NewShipmentCommand())
	rootCmd.AddCommand(NewAuditCommand())
	rootCmd.AddCommand(NewDaemonCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
