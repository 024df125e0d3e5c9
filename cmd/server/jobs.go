package main

import (
	"fmt"

	"turfbook/internal/config"
	"turfbook/internal/core/services"

	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Run one booking reconciliation pass and exit",
	Args:  cobra.NoArgs,
	RunE:  runReconcile,
}

var pingCmd = &cobra.Command{
	Use:   "ping [URL]",
	Short: "Ping the health endpoint once; exits non-zero on failure",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPing,
}

func init() {
	pingCmd.Flags().Duration("timeout", 0, "Request timeout (defaults to LIVENESS_TIMEOUT)")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	st, err := openStores(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.close()

	result, err := services.NewReconcileService(st.bookings, cfg.Location(), nil).Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d completed=%d skipped=%d failed=%d duration=%s\n",
		result.Scanned, result.Completed, result.Skipped, result.Failed, result.Duration)
	return nil
}

func runPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	url := cfg.Jobs.HealthURL
	if len(args) == 1 {
		url = args[0]
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = cfg.Jobs.PingTimeout
	}

	if err := services.NewLivenessService(url, timeout, nil).Ping(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is healthy\n", url)
	return nil
}
