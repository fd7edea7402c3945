package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// NewRewardCommand creates the reward command group.
func NewRewardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reward",
		Short: "Manage reward points",
		Long:  "Apply reward points to the API session and query the point limits",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add POINTS",
		Short: "Apply reward points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid points %q: %w", args[0], err)
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Reward().Add(cmd.Context(), points)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "maximum",
		Short: "Show the most points the cart can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Reward().Maximum(cmd.Context())
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "available",
		Short: "Show the customer's available points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Reward().Available(cmd.Context())
			})
		},
	})

	return cmd
}
