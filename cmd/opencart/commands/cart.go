package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// NewCartCommand creates the cart command group.
func NewCartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the API session cart",
		Long:  "Add, edit, remove and list the products in the cart of the API session",
	}

	cmd.AddCommand(newCartAddCommand())
	cmd.AddCommand(newCartEditCommand())
	cmd.AddCommand(newCartRemoveCommand())
	cmd.AddCommand(newCartProductsCommand())

	return cmd
}

func newCartAddCommand() *cobra.Command {
	var (
		quantity     int
		options      []string
		productsJSON string
	)

	cmd := &cobra.Command{
		Use:   "add [PRODUCT_ID]",
		Short: "Add a product to the cart",
		Long: `Add one product by ID, with a quantity and product options, or a list of
products given as JSON with --products-json.`,
		Example: `  opencart cart add 42 --quantity 2 --option 226=15
  opencart cart add --products-json '[{"product_id":42,"quantity":1}]'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var product interface{}

			switch {
			case productsJSON != "":
				var products interface{}

				err := json.Unmarshal([]byte(productsJSON), &products)
				if err != nil {
					return fmt.Errorf("failed to parse --products-json: %w", err)
				}

				product = products
			case len(args) == 1:
				product = args[0]
			default:
				return opencart.NewArgumentError("cart add", "product")
			}

			option, err := parseKeyValues(options)
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Cart().Add(cmd.Context(), product, quantity, option)
			})
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "quantity to add")
	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "product option as OPTION_ID=VALUE (repeatable)")
	cmd.Flags().StringVar(&productsJSON, "products-json", "", "JSON list or object of products to add")

	return cmd
}

func newCartEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit KEY QUANTITY",
		Short: "Change the quantity of a cart line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Cart().Edit(cmd.Context(), args[0], quantity)
			})
		},
	}
}

func newCartRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove KEY",
		Aliases: []string{"rm"},
		Short:   "Remove a cart line",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Cart().Remove(cmd.Context(), args[0])
			})
		},
	}
}

func newCartProductsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "products",
		Aliases: []string{"list", "ls"},
		Short:   "List the products in the cart",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Cart().Products(cmd.Context())
			})
		},
	}
}
