package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reliefops/logistics-go/internal/application/coordinator"
)

// NewDaemonCommand creates the daemon command
func NewDaemonCommand() *cobra.Command {
	var interval time.Duration
	var maxCycles int

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run matching cycles continuously",
		Long: `Run the matching engine in a loop until interrupted. Each cycle loads
the stored needs and supplies, runs one atomic pass and persists the
outcome. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize: %w", err)
			}
			defer app.Close()

			if interval <= 0 {
				interval = app.Config.Daemon.CycleInterval
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Matching daemon started (interval %s)\n", interval)

			resp, err := app.Mediator.Send(ctx, &coordinator.RunMatchingLoopCommand{
				CycleInterval: interval,
				MaxCycles:     maxCycles,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Daemon stopped after %d cycle(s)\n",
				resp.(*coordinator.RunMatchingLoopResponse).CyclesRun)
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "Spacing between cycles (default from config)")
	cmd.Flags().IntVar(&maxCycles, "max-cycles", 0, "Stop after this many cycles (0 = run until interrupted)")
	return cmd
}
