package main

import (
	"fmt"

	"github.com/spf13/cobra"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <public_id>",
		Short: "Show one help request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0])
		},
	}
	return cmd
}

func runGet(cmd *cobra.Command, publicID string) error {
	ctx := cmd.Context()

	return withClient(func(cfg *Config, client *reliefhub.Client) error {
		req, err := client.GetRequest(ctx, publicID)
		if reliefhub.IsNotFound(err) {
			return fmt.Errorf("request %s not found", publicID)
		}
		if err != nil {
			return fmt.Errorf("fetching request: %w", err)
		}

		fmt.Printf("%s\n", req.Title)
		fmt.Printf("  ID:       %s\n", req.ID)
		fmt.Printf("  Status:   %s\n", req.Status)
		fmt.Printf("  Urgency:  %s\n", req.Urgency)
		fmt.Printf("  Type:     %s\n", req.RequestType)
		fmt.Printf("  Location: %.5f, %.5f\n", req.Latitude, req.Longitude)
		fmt.Printf("  Affected: %d\n", req.PeopleAffected)
		fmt.Printf("  Contact:  %s\n", req.ContactNumber)
		if !req.CreatedAt.IsZero() {
			fmt.Printf("  Created:  %s\n", req.CreatedAt.Format("2006-01-02 15:04:05 MST"))
		}
		if req.Description != "" {
			fmt.Printf("\n%s\n", req.Description)
		}
		return nil
	})
}
