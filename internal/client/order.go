package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// OrderClient implements opencart.OrderClient.
type OrderClient struct {
	Dispatcher
}

// NewOrderClient creates a new order client.
func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{
		Dispatcher: newDispatcher(client, "order"),
	}
}

// Add implements opencart.OrderClient.Add.
func (c *OrderClient) Add(ctx context.Context, request opencart.OrderRequest) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "order/add", orderPayload(request))
	if err != nil {
		return nil, fmt.Errorf("adding order: %w", err)
	}

	return resp, nil
}

// Edit implements opencart.OrderClient.Edit.
func (c *OrderClient) Edit(ctx context.Context, orderID int, request opencart.OrderRequest) (*opencart.Response, error) {
	if orderID <= 0 {
		return nil, invalidOrderID("order edit")
	}

	resp, err := c.client.post(ctx, orderRoute("order/edit", orderID), orderPayload(request))
	if err != nil {
		return nil, fmt.Errorf("editing order %d: %w", orderID, err)
	}

	return resp, nil
}

// Delete implements opencart.OrderClient.Delete.
func (c *OrderClient) Delete(ctx context.Context, orderID int) (*opencart.Response, error) {
	if orderID <= 0 {
		return nil, invalidOrderID("order delete")
	}

	resp, err := c.client.post(ctx, orderRoute("order/delete", orderID), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting order %d: %w", orderID, err)
	}

	return resp, nil
}

// History implements opencart.OrderClient.History.
func (c *OrderClient) History(ctx context.Context, orderID int, request opencart.OrderHistoryRequest) (*opencart.Response, error) {
	if orderID <= 0 {
		return nil, invalidOrderID("order history")
	}

	resp, err := c.client.post(ctx, orderRoute("order/history", orderID), opencart.Payload{
		"order_status_id": request.OrderStatusID,
		"notify":          request.Notify,
		"append":          request.Append,
		"comment":         request.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("adding history to order %d: %w", orderID, err)
	}

	return resp, nil
}

func orderPayload(request opencart.OrderRequest) opencart.Payload {
	return opencart.Payload{
		"shipping_method": request.ShippingMethod,
		"comment":         request.Comment,
		"affiliate_id":    request.AffiliateID,
		"order_status_id": request.OrderStatusID,
	}
}

// orderRoute appends the order ID as an extra query parameter.
func orderRoute(route string, orderID int) string {
	return route + "&order_id=" + strconv.Itoa(orderID)
}

func invalidOrderID(op string) error {
	return &opencart.ArgumentError{Op: op, Param: "order_id", Reason: "must be positive"}
}
