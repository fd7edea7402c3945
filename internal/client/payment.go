package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// PaymentClient implements opencart.PaymentClient.
type PaymentClient struct {
	Dispatcher
}

// NewPaymentClient creates a new payment client.
func NewPaymentClient(client *Client) *PaymentClient {
	return &PaymentClient{
		Dispatcher: newDispatcher(client, "payment"),
	}
}

// Address implements opencart.PaymentClient.Address.
func (c *PaymentClient) Address(ctx context.Context, address opencart.Address) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "payment/address", addressPayload(address))
	if err != nil {
		return nil, fmt.Errorf("setting payment address: %w", err)
	}

	return resp, nil
}

// Methods implements opencart.PaymentClient.Methods.
func (c *PaymentClient) Methods(ctx context.Context) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "payment/methods", nil)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}

	return resp, nil
}

// Method implements opencart.PaymentClient.Method.
func (c *PaymentClient) Method(ctx context.Context, method string) (*opencart.Response, error) {
	if method == "" {
		return nil, opencart.NewArgumentError("payment method", "payment_method")
	}

	resp, err := c.client.post(ctx, "payment/method", opencart.Payload{"payment_method": method})
	if err != nil {
		return nil, fmt.Errorf("setting payment method: %w", err)
	}

	return resp, nil
}
