package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// addressClient is what payment and shipping have in common.
type addressClient interface {
	Address(ctx context.Context, address opencart.Address) (*opencart.Response, error)
	Methods(ctx context.Context) (*opencart.Response, error)
	Method(ctx context.Context, method string) (*opencart.Response, error)
}

// NewPaymentCommand creates the payment command group.
func NewPaymentCommand() *cobra.Command {
	return newAddressCommand("payment", func(client opencart.Client) addressClient {
		return client.Payment()
	})
}

// NewShippingCommand creates the shipping command group.
func NewShippingCommand() *cobra.Command {
	return newAddressCommand("shipping", func(client opencart.Client) addressClient {
		return client.Shipping()
	})
}

func newAddressCommand(kind string, pick func(opencart.Client) addressClient) *cobra.Command {
	title := cases.Title(language.English).String(kind)

	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Manage the %s address and method", kind),
		Long:  fmt.Sprintf("%s address, available %s methods and the selected %s method of the API session", title, kind, kind),
	}

	var address opencart.Address

	addressCmd := &cobra.Command{
		Use:   "address",
		Short: fmt.Sprintf("Set the %s address", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return pick(client).Address(cmd.Context(), address)
			})
		},
	}

	addressCmd.Flags().StringVar(&address.Firstname, "firstname", "", "first name")
	addressCmd.Flags().StringVar(&address.Lastname, "lastname", "", "last name")
	addressCmd.Flags().StringVar(&address.Company, "company", "", "company")
	addressCmd.Flags().StringVar(&address.Address1, "address-1", "", "first address line")
	addressCmd.Flags().StringVar(&address.Address2, "address-2", "", "second address line")
	addressCmd.Flags().StringVar(&address.Postcode, "postcode", "", "postcode")
	addressCmd.Flags().StringVar(&address.City, "city", "", "city")
	addressCmd.Flags().IntVar(&address.ZoneID, "zone-id", 0, "zone ID")
	addressCmd.Flags().IntVar(&address.CountryID, "country-id", 0, "country ID")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: fmt.Sprintf("List the available %s methods", kind),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return pick(client).Methods(cmd.Context())
			})
		},
	}

	methodCmd := &cobra.Command{
		Use:   "method CODE",
		Short: fmt.Sprintf("Select a %s method", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return pick(client).Method(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(addressCmd, methodsCmd, methodCmd)

	return cmd
}
