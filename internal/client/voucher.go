package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// VoucherClient implements opencart.VoucherClient.
type VoucherClient struct {
	Dispatcher
}

// NewVoucherClient creates a new voucher client.
func NewVoucherClient(client *Client) *VoucherClient {
	return &VoucherClient{
		Dispatcher: newDispatcher(client, "voucher"),
	}
}

// Apply implements opencart.VoucherClient.Apply.
func (c *VoucherClient) Apply(ctx context.Context, code string) (*opencart.Response, error) {
	if code == "" {
		return nil, opencart.NewArgumentError("voucher apply", "voucher")
	}

	resp, err := c.client.post(ctx, "voucher", opencart.Payload{"voucher": code})
	if err != nil {
		return nil, fmt.Errorf("applying voucher: %w", err)
	}

	return resp, nil
}

// Add implements opencart.VoucherClient.Add.
func (c *VoucherClient) Add(ctx context.Context, voucher opencart.GiftVoucher) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "voucher/add", opencart.Payload{
		"from_name":        voucher.FromName,
		"from_email":       voucher.FromEmail,
		"to_name":          voucher.ToName,
		"to_email":         voucher.ToEmail,
		"voucher_theme_id": voucher.VoucherThemeID,
		"message":          voucher.Message,
		"amount":           voucher.Amount,
	})
	if err != nil {
		return nil, fmt.Errorf("adding gift voucher: %w", err)
	}

	return resp, nil
}

// AddBulk implements opencart.VoucherClient.AddBulk.
func (c *VoucherClient) AddBulk(ctx context.Context, vouchers interface{}) (*opencart.Response, error) {
	if !isCollection(vouchers) {
		return nil, &opencart.ArgumentError{
			Op:     "voucher add",
			Param:  "voucher",
			Reason: fmt.Sprintf("must be a map or a slice, got %T", vouchers),
		}
	}

	resp, err := c.client.post(ctx, "voucher/add", opencart.Payload{"voucher": vouchers})
	if err != nil {
		return nil, fmt.Errorf("adding gift vouchers: %w", err)
	}

	return resp, nil
}
