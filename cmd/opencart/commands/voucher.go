package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// NewVoucherCommand creates the voucher command group.
func NewVoucherCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voucher",
		Short: "Apply and sell gift vouchers",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply CODE",
		Short: "Apply a gift voucher code to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Voucher().Apply(cmd.Context(), args[0])
			})
		},
	})

	cmd.AddCommand(newVoucherAddCommand())

	return cmd
}

func newVoucherAddCommand() *cobra.Command {
	var (
		voucher  opencart.GiftVoucher
		fromFile string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a gift voucher to the cart",
		Long: `Add one gift voucher from flags, or several from a YAML or JSON file
holding a list of vouchers with the keys from_name, from_email, to_name,
to_email, voucher_theme_id, message and amount.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile == "" {
				return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
					return client.Voucher().Add(cmd.Context(), voucher)
				})
			}

			vouchers, err := readVoucherFile(fromFile)
			if err != nil {
				return err
			}

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Voucher().AddBulk(cmd.Context(), vouchers)
			})
		},
	}

	cmd.Flags().StringVar(&voucher.FromName, "from-name", "", "sender name")
	cmd.Flags().StringVar(&voucher.FromEmail, "from-email", "", "sender email")
	cmd.Flags().StringVar(&voucher.ToName, "to-name", "", "recipient name")
	cmd.Flags().StringVar(&voucher.ToEmail, "to-email", "", "recipient email")
	cmd.Flags().IntVar(&voucher.VoucherThemeID, "theme-id", 0, "voucher theme ID")
	cmd.Flags().StringVar(&voucher.Message, "message", "", "voucher message")
	cmd.Flags().Float64Var(&voucher.Amount, "amount", 0, "voucher amount")
	cmd.Flags().StringVarP(&fromFile, "from-file", "f", "", "YAML or JSON file with a list of vouchers")

	return cmd
}

// readVoucherFile parses a voucher list. JSON is valid YAML, so one decoder
// reads both.
func readVoucherFile(path string) ([]map[string]interface{}, error) {
	// path is given by the user on the command line
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read voucher file: %w", err)
	}

	var vouchers []map[string]interface{}

	err = yaml.Unmarshal(data, &vouchers)
	if err != nil {
		return nil, fmt.Errorf("failed to parse voucher file: %w", err)
	}

	return vouchers, nil
}
