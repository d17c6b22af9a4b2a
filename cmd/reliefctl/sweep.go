package main

import (
	"fmt"

	"github.com/spf13/cobra"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Prune saved requests that have reached a terminal status",
		Long: "Checks every saved request against the backend once and removes the ones " +
			"that are withdrawn, cancelled, completed or resolved. Requests that cannot " +
			"be reached are kept.",
		RunE: runSweep,
	}
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withClient(func(cfg *Config, client *reliefhub.Client) error {
		s, err := client.NewSweeper(reliefhub.SweepConfig{
			OnEvict: func(ev reliefhub.Eviction) {
				fmt.Printf("Removed %s (%s)\n", ev.ID, ev.Status)
			},
		})
		if err != nil {
			return err
		}

		evicted := s.Sweep(ctx)
		fmt.Printf("Sweep complete: %d removed, %d kept.\n", evicted, len(client.Owned()))
		return nil
	})
}
