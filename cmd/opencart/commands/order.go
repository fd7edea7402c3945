package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// NewOrderCommand creates the order command group.
func NewOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
		Long:  "Create an order from the API session, edit or delete one, and add history entries",
	}

	cmd.AddCommand(newOrderAddCommand())
	cmd.AddCommand(newOrderEditCommand())
	cmd.AddCommand(newOrderDeleteCommand())
	cmd.AddCommand(newOrderHistoryCommand())

	return cmd
}

// addOrderRequestFlags binds the order body flags to request.
func addOrderRequestFlags(cmd *cobra.Command, request *opencart.OrderRequest) {
	cmd.Flags().StringVar(&request.ShippingMethod, "shipping-method", "", "shipping method code")
	cmd.Flags().StringVar(&request.Comment, "comment", "", "order comment")
	cmd.Flags().IntVar(&request.AffiliateID, "affiliate-id", 0, "affiliate ID")
	cmd.Flags().IntVar(&request.OrderStatusID, "order-status-id", 0, "order status ID")
}

func parseOrderID(arg string) (int, error) {
	orderID, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid order ID %q: %w", arg, err)
	}

	return orderID, nil
}

func newOrderAddCommand() *cobra.Command {
	var request opencart.OrderRequest

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an order from the session cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Order().Add(cmd.Context(), request)
			})
		},
	}

	addOrderRequestFlags(cmd, &request)

	return cmd
}

func newOrderEditCommand() *cobra.Command {
	var request opencart.OrderRequest

	cmd := &cobra.Command{
		Use:   "edit ORDER_ID",
		Short: "Replace an order with the session cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Order().Edit(cmd.Context(), orderID, request)
			})
		},
	}

	addOrderRequestFlags(cmd, &request)

	return cmd
}

func newOrderDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ORDER_ID",
		Short: "Delete an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Order().Delete(cmd.Context(), orderID)
			})
		},
	}
}

func newOrderHistoryCommand() *cobra.Command {
	var request opencart.OrderHistoryRequest

	cmd := &cobra.Command{
		Use:   "history ORDER_ID",
		Short: "Add an order history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseOrderID(args[0])
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Order().History(cmd.Context(), orderID, request)
			})
		},
	}

	cmd.Flags().IntVar(&request.OrderStatusID, "order-status-id", 0, "new order status ID")
	cmd.Flags().BoolVar(&request.Notify, "notify", false, "notify the customer")
	cmd.Flags().BoolVar(&request.Append, "append", false, "append the comment to the notification")
	cmd.Flags().StringVar(&request.Comment, "comment", "", "history comment")

	return cmd
}
