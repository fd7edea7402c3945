package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// ShippingClient implements opencart.ShippingClient.
type ShippingClient struct {
	Dispatcher
}

// NewShippingClient creates a new shipping client.
func NewShippingClient(client *Client) *ShippingClient {
	return &ShippingClient{
		Dispatcher: newDispatcher(client, "shipping"),
	}
}

// Address implements opencart.ShippingClient.Address.
func (c *ShippingClient) Address(ctx context.Context, address opencart.Address) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "shipping/address", addressPayload(address))
	if err != nil {
		return nil, fmt.Errorf("setting shipping address: %w", err)
	}

	return resp, nil
}

// Methods implements opencart.ShippingClient.Methods.
func (c *ShippingClient) Methods(ctx context.Context) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "shipping/methods", nil)
	if err != nil {
		return nil, fmt.Errorf("listing shipping methods: %w", err)
	}

	return resp, nil
}

// Method implements opencart.ShippingClient.Method.
func (c *ShippingClient) Method(ctx context.Context, method string) (*opencart.Response, error) {
	if method == "" {
		return nil, opencart.NewArgumentError("shipping method", "shipping_method")
	}

	resp, err := c.client.post(ctx, "shipping/method", opencart.Payload{"shipping_method": method})
	if err != nil {
		return nil, fmt.Errorf("setting shipping method: %w", err)
	}

	return resp, nil
}
