package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

func newMineCmd() *cobra.Command {
	var (
		showTokens bool
		manageBase string
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your saved requests and their current status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMine(cmd, showTokens, manageBase)
		},
	}

	cmd.Flags().BoolVar(&showTokens, "show-tokens", false, "Print edit tokens (do not share these)")
	cmd.Flags().StringVar(&manageBase, "manage-base", "", "Web origin for printed manage links (e.g. https://sagiphub.example)")

	return cmd
}

func runMine(cmd *cobra.Command, showTokens bool, manageBase string) error {
	ctx := cmd.Context()

	return withClient(func(cfg *Config, client *reliefhub.Client) error {
		owned := client.Owned()
		if len(owned) == 0 {
			fmt.Println("No saved requests.")
			return nil
		}

		fmt.Printf("%d saved request(s):\n\n", len(owned))
		for _, rec := range owned {
			req, err := client.ResolveOwned(ctx, rec.ID)
			switch {
			case reliefhub.IsNotFound(err):
				fmt.Printf("  %s: no longer exists (removed from saved requests)\n", rec.ID)
				continue
			case err != nil:
				fmt.Printf("  %s: status unavailable (%v)\n", rec.ID, err)
				continue
			}

			fmt.Printf("  %s: %s\n", rec.ID, req.Title)
			fmt.Printf("    Status: %s\n", req.Status)
			if showTokens {
				fmt.Printf("    Edit token: %s\n", rec.EditToken)
			}
			if manageBase != "" {
				fmt.Printf("    Manage link: %s\n", manageLink(manageBase, rec))
			}
			fmt.Println()
		}
		return nil
	})
}

// manageLink composes the shareable-to-self URL the web frontend accepts.
func manageLink(origin string, rec reliefhub.OwnedRequest) string {
	q := url.Values{}
	q.Set("public_id", rec.ID)
	q.Set("edit_token", rec.EditToken)
	return origin + "/manage?" + q.Encode()
}
