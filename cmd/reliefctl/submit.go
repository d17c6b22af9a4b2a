package main

import (
	"fmt"

	"github.com/spf13/cobra"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

func newSubmitCmd() *cobra.Command {
	var payload reliefhub.CreateRequestPayload
	var urgency string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new help request",
		Long: "Submits a help request and records the returned edit token in the local " +
			"ownership ledger. Keep the token private: it is the only way to manage the request.",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload.Urgency = reliefhub.Urgency(urgency)
			return runSubmit(cmd, payload)
		},
	}

	cmd.Flags().StringVar(&payload.Title, "title", "", "Short summary of the request (required)")
	cmd.Flags().StringVar(&payload.Description, "description", "", "What help is needed (required)")
	cmd.Flags().Float64Var(&payload.Latitude, "lat", 0, "Latitude of the location (required)")
	cmd.Flags().Float64Var(&payload.Longitude, "lng", 0, "Longitude of the location (required)")
	cmd.Flags().StringVar(&payload.ContactNumber, "contact", "", "Contact number (required)")
	cmd.Flags().StringVar(&payload.RequestType, "type", "rescue", "Request type (rescue, food, water, medical, shelter, ...)")
	cmd.Flags().StringVar(&urgency, "urgency", "medium", "Urgency: critical, high, medium or low")
	cmd.Flags().IntVar(&payload.PeopleAffected, "people", 1, "Number of people affected")

	return cmd
}

func runSubmit(cmd *cobra.Command, payload reliefhub.CreateRequestPayload) error {
	ctx := cmd.Context()

	return withClient(func(cfg *Config, client *reliefhub.Client) error {
		created, err := client.SubmitRequest(ctx, payload)
		if err != nil && created == nil {
			return fmt.Errorf("submitting request: %w", err)
		}

		fmt.Printf("Request submitted.\n")
		fmt.Printf("  Public ID:  %s\n", created.Request.ID)
		fmt.Printf("  Edit token: %s\n", created.EditToken)
		fmt.Printf("Manage it later with: reliefctl withdraw %s\n", created.Request.ID)

		// The create succeeded but the ledger write did not; the token above
		// is now the user's only copy.
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
		}
		return nil
	})
}
