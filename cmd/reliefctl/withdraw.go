package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

func newWithdrawCmd() *cobra.Command {
	var (
		editToken string
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "withdraw <public_id>",
		Short: "Withdraw a help request you own",
		Long: "Withdraws a request using the edit token from the local ownership ledger, " +
			"or an explicit --token for requests managed from another device.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithdraw(cmd, args[0], editToken, yes)
		},
	}

	cmd.Flags().StringVarP(&editToken, "token", "t", "", "Edit token (defaults to the ledger entry)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runWithdraw(cmd *cobra.Command, publicID, editToken string, yes bool) error {
	ctx := cmd.Context()

	return withClient(func(cfg *Config, client *reliefhub.Client) error {
		if !yes && !confirmWithdraw(publicID) {
			fmt.Println("Aborted.")
			return nil
		}

		var err error
		if editToken != "" {
			err = client.WithdrawWith(ctx, publicID, editToken)
		} else {
			err = client.Withdraw(ctx, publicID)
		}
		if err != nil {
			if apiErr, ok := reliefhub.AsAPIError(err); ok {
				return fmt.Errorf("withdraw failed: %s", apiErr.Error())
			}
			return fmt.Errorf("withdraw failed: %w", err)
		}

		fmt.Printf("Request %s withdrawn and removed from your saved requests.\n", publicID)
		time.Sleep(1500 * time.Millisecond)
		return nil
	})
}

func confirmWithdraw(publicID string) bool {
	fmt.Printf("Withdraw request %s? This cannot be undone. [y/N]: ", publicID)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
