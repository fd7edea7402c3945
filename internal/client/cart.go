package client

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// CartClient implements opencart.CartClient.
type CartClient struct {
	Dispatcher
}

// NewCartClient creates a new cart client.
func NewCartClient(client *Client) *CartClient {
	return &CartClient{
		Dispatcher: newDispatcher(client, "cart"),
	}
}

// Add implements opencart.CartClient.Add.
//
// A map or slice product is sent verbatim under "product" and quantity and
// option are ignored. A numeric product is sent as product_id with quantity
// (zero means one) and option.
func (c *CartClient) Add(ctx context.Context, product interface{}, quantity int, option opencart.Payload) (*opencart.Response, error) {
	var payload opencart.Payload

	switch {
	case isCollection(product):
		payload = opencart.Payload{"product": product}
	case isNumeric(product):
		if quantity == 0 {
			quantity = 1
		}

		if option == nil {
			option = opencart.Payload{}
		}

		payload = opencart.Payload{
			"product_id": product,
			"quantity":   quantity,
			"option":     option,
		}
	default:
		return nil, &opencart.ArgumentError{
			Op:     "cart add",
			Param:  "product",
			Reason: fmt.Sprintf("must be a product ID or a product list, got %T", product),
		}
	}

	resp, err := c.client.post(ctx, "cart/add", payload)
	if err != nil {
		return nil, fmt.Errorf("adding to cart: %w", err)
	}

	return resp, nil
}

// Edit implements opencart.CartClient.Edit.
func (c *CartClient) Edit(ctx context.Context, key string, quantity int) (*opencart.Response, error) {
	if key == "" {
		return nil, opencart.NewArgumentError("cart edit", "key")
	}

	if quantity == 0 {
		return nil, opencart.NewArgumentError("cart edit", "quantity")
	}

	resp, err := c.client.post(ctx, "cart/edit", opencart.Payload{
		"key":      key,
		"quantity": quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("editing cart: %w", err)
	}

	return resp, nil
}

// Remove implements opencart.CartClient.Remove.
func (c *CartClient) Remove(ctx context.Context, key string) (*opencart.Response, error) {
	if key == "" {
		return nil, opencart.NewArgumentError("cart remove", "key")
	}

	resp, err := c.client.post(ctx, "cart/remove", opencart.Payload{"key": key})
	if err != nil {
		return nil, fmt.Errorf("removing from cart: %w", err)
	}

	return resp, nil
}

// Products implements opencart.CartClient.Products.
func (c *CartClient) Products(ctx context.Context) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "cart/products", nil)
	if err != nil {
		return nil, fmt.Errorf("listing cart products: %w", err)
	}

	return resp, nil
}

// isCollection reports whether v is a non-nil map, slice or array.
func isCollection(v interface{}) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return !rv.IsNil()
	case reflect.Array:
		return true
	default:
		return false
	}
}

// isNumeric accepts Go numbers, json.Number and numeric strings such as
// "42", " 7", "1.5" or "1e3".
func isNumeric(v interface{}) bool {
	switch typed := v.(type) {
	case json.Number:
		return isNumericString(typed.String())
	case string:
		return isNumericString(typed)
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isNumericString(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.Trim(trimmed, "0123456789+-.eE") != "" {
		return false
	}

	_, err := strconv.ParseFloat(trimmed, 64)

	return err == nil
}
