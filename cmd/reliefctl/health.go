package main

import (
	"fmt"

	"github.com/spf13/cobra"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check backend availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(func(cfg *Config, client *reliefhub.Client) error {
				hr, err := client.Health(cmd.Context())
				if err != nil {
					return fmt.Errorf("backend unreachable: %w", err)
				}
				status := hr.Status
				if status == "" {
					status = "ok"
				}
				fmt.Printf("Backend %s: %s\n", cfg.BaseURL, status)
				return nil
			})
		},
	}
	return cmd
}
