package commands

import (
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// NewCouponCommand creates the coupon command.
func NewCouponCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "coupon CODE",
		Short: "Apply a coupon code to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Coupon(cmd.Context(), args[0])
			})
		},
	}
}

// NewCustomerCommand creates the customer command.
func NewCustomerCommand() *cobra.Command {
	var (
		request opencart.CustomerRequest
		extra   []string
	)

	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Set the customer of the API session",
		Long: `Set the customer the API session orders for. Fields without a flag, such as
custom_field[1], can be sent with --extra; they never replace the named fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := parseKeyValues(extra)
			if err != nil {
				return err
			}

			if len(fields) > 0 {
				request.Extra = fields
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Customer(cmd.Context(), request)
			})
		},
	}

	cmd.Flags().IntVar(&request.CustomerID, "customer-id", 0, "customer ID, 0 for a guest")
	cmd.Flags().IntVar(&request.CustomerGroupID, "customer-group-id", 0, "customer group ID")
	cmd.Flags().StringVar(&request.Firstname, "firstname", "", "first name")
	cmd.Flags().StringVar(&request.Lastname, "lastname", "", "last name")
	cmd.Flags().StringVar(&request.Email, "email", "", "email address")
	cmd.Flags().StringVar(&request.Telephone, "telephone", "", "telephone")
	cmd.Flags().StringVar(&request.Fax, "fax", "", "fax")
	cmd.Flags().StringArrayVar(&extra, "extra", nil, "additional field as KEY=VALUE (repeatable)")

	return cmd
}
