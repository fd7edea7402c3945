package client_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/opencart-client/internal/client"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

func newStoreClient(t *testing.T) (*FakeStore, *Client) {
	t.Helper()

	store := NewFakeStore()
	t.Cleanup(store.Close)

	return store, NewTestClient(store.URL(), opencart.APIVersion3, "X")
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestCartClient_Add(t *testing.T) {
	t.Parallel()

	t.Run("numeric product", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Cart().Add(context.Background(), 42, 3, nil)
		require.NoError(t, err)

		last := store.Last()
		assert.Equal(t, "cart/add", last.Route)
		assert.Equal(t, "42", last.Form.Get("product_id"))
		assert.Equal(t, "3", last.Form.Get("quantity"))
		assert.Len(t, last.Form, 2, "an empty option sends no fields")
	})

	t.Run("zero quantity means one", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Cart().Add(context.Background(), 42, 0, opencart.Payload{"226": "15"})
		require.NoError(t, err)

		form := store.Last().Form
		assert.Equal(t, "1", form.Get("quantity"))
		assert.Equal(t, "15", form.Get("option[226]"))
	})

	t.Run("numeric strings and json numbers", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		for _, product := range []interface{}{"42", " 42", json.Number("42"), uint8(42), 42.0} {
			_, err := client.Cart().Add(context.Background(), product, 1, nil)
			require.NoError(t, err, "%#v", product)
		}

		assert.Len(t, store.Requests(), 5)
	})

	t.Run("product list is sent verbatim", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		products := []opencart.Payload{
			{"product_id": 1, "quantity": 2},
			{"product_id": 7, "quantity": 1, "option": opencart.Payload{"5": "blue"}},
		}

		_, err := client.Cart().Add(context.Background(), products, 99, opencart.Payload{"ignored": "x"})
		require.NoError(t, err)

		form := store.Last().Form
		assert.Equal(t, "1", form.Get("product[0][product_id]"))
		assert.Equal(t, "2", form.Get("product[0][quantity]"))
		assert.Equal(t, "blue", form.Get("product[1][option][5]"))
		assert.NotContains(t, form, "quantity")
		assert.NotContains(t, form, "option[ignored]")
	})

	t.Run("invalid products send nothing", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		for _, product := range []interface{}{nil, "abc", "", "0x1A", true, struct{}{}, []string(nil)} {
			_, err := client.Cart().Add(context.Background(), product, 1, nil)
			require.Error(t, err, "%#v", product)
			assert.True(t, opencart.IsInvalidArgument(err))
			assert.Equal(t, "product", opencart.Param(err))
		}

		assert.Empty(t, store.Requests())
	})
}

func TestCartClient(t *testing.T) {
	t.Parallel()

	store, client := newStoreClient(t)
	ctx := context.Background()

	_, err := client.Cart().Edit(ctx, "", 1)
	assert.Equal(t, "key", opencart.Param(err))

	_, err = client.Cart().Edit(ctx, "k1", 0)
	assert.Equal(t, "quantity", opencart.Param(err))

	_, err = client.Cart().Remove(ctx, "")
	assert.Equal(t, "key", opencart.Param(err))
	assert.Empty(t, store.Requests())

	_, err = client.Cart().Edit(ctx, "k1", 4)
	require.NoError(t, err)
	assert.Equal(t, "cart/edit", store.Last().Route)
	assert.Equal(t, "k1", store.Last().Form.Get("key"))
	assert.Equal(t, "4", store.Last().Form.Get("quantity"))

	_, err = client.Cart().Remove(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "cart/remove", store.Last().Route)

	store.Respond("cart/products", FakeResponse{Body: `{"products":[{"name":"iPhone","quantity":"1"}],"totals":[]}`})

	resp, err := client.Cart().Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, "iPhone", resp.String("products.0.name"))
	assert.Empty(t, store.Last().Form)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestOrderClient(t *testing.T) {
	t.Parallel()

	request := opencart.OrderRequest{
		ShippingMethod: "flat.flat",
		Comment:        "leave at door",
		AffiliateID:    0,
		OrderStatusID:  1,
	}

	t.Run("add", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Order().Add(context.Background(), request)
		require.NoError(t, err)

		last := store.Last()
		assert.Equal(t, "order/add", last.Route)
		assert.Equal(t, "flat.flat", last.Form.Get("shipping_method"))
		assert.Equal(t, "leave at door", last.Form.Get("comment"))
		assert.Equal(t, "0", last.Form.Get("affiliate_id"))
		assert.Equal(t, "1", last.Form.Get("order_status_id"))
	})

	t.Run("edit appends the order ID", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Order().Edit(context.Background(), 5, request)
		require.NoError(t, err)

		last := store.Last()
		assert.Equal(t, "order/edit", last.Route)
		assert.Equal(t, "5", last.Query.Get("order_id"))
		assert.Equal(t, "X", last.Query.Get("api_token"))
		assert.Equal(t, "flat.flat", last.Form.Get("shipping_method"))

		url, err := client.URL("order/edit&order_id=5")
		require.NoError(t, err)
		assert.Contains(t, url, "api_token=X&route=api/order/edit&order_id=5")
	})

	t.Run("delete and history", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Order().Delete(context.Background(), 9)
		require.NoError(t, err)
		assert.Equal(t, "order/delete", store.Last().Route)
		assert.Equal(t, "9", store.Last().Query.Get("order_id"))

		_, err = client.Order().History(context.Background(), 9, opencart.OrderHistoryRequest{
			OrderStatusID: 5,
			Notify:        true,
			Comment:       "shipped",
		})
		require.NoError(t, err)

		last := store.Last()
		assert.Equal(t, "order/history", last.Route)
		assert.Equal(t, "5", last.Form.Get("order_status_id"))
		assert.Equal(t, "1", last.Form.Get("notify"))
		assert.Equal(t, "0", last.Form.Get("append"))
		assert.Equal(t, "shipped", last.Form.Get("comment"))
	})

	t.Run("order ID must be positive", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)
		ctx := context.Background()

		_, err := client.Order().Edit(ctx, 0, request)
		assert.Equal(t, "order_id", opencart.Param(err))

		_, err = client.Order().Delete(ctx, -1)
		assert.Equal(t, "order_id", opencart.Param(err))

		_, err = client.Order().History(ctx, 0, opencart.OrderHistoryRequest{})
		assert.True(t, opencart.IsInvalidArgument(err))

		assert.Empty(t, store.Requests())
	})
}

func TestAddressClients(t *testing.T) {
	t.Parallel()

	address := opencart.Address{
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Address1:  "12 St James's Square",
		Postcode:  "SW1Y 4JH",
		City:      "London",
		ZoneID:    3563,
		CountryID: 222,
	}

	tests := []struct {
		name     string
		address  func(*Client) func(context.Context, opencart.Address) (*opencart.Response, error)
		methods  func(*Client) func(context.Context) (*opencart.Response, error)
		method   func(*Client) func(context.Context, string) (*opencart.Response, error)
		resource string
	}{
		{
			name:     "payment",
			address:  func(c *Client) func(context.Context, opencart.Address) (*opencart.Response, error) { return c.Payment().Address },
			methods:  func(c *Client) func(context.Context) (*opencart.Response, error) { return c.Payment().Methods },
			method:   func(c *Client) func(context.Context, string) (*opencart.Response, error) { return c.Payment().Method },
			resource: "payment",
		},
		{
			name:     "shipping",
			address:  func(c *Client) func(context.Context, opencart.Address) (*opencart.Response, error) { return c.Shipping().Address },
			methods:  func(c *Client) func(context.Context) (*opencart.Response, error) { return c.Shipping().Methods },
			method:   func(c *Client) func(context.Context, string) (*opencart.Response, error) { return c.Shipping().Method },
			resource: "shipping",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			store, client := newStoreClient(t)
			ctx := context.Background()

			_, err := testCase.address(client)(ctx, address)
			require.NoError(t, err)

			last := store.Last()
			assert.Equal(t, testCase.resource+"/address", last.Route)
			assert.Equal(t, "Ada", last.Form.Get("firstname"))
			assert.Equal(t, "12 St James's Square", last.Form.Get("address_1"))
			assert.Equal(t, "", last.Form.Get("address_2"))
			assert.Contains(t, last.Form, "company")
			assert.Equal(t, "3563", last.Form.Get("zone_id"))
			assert.Equal(t, "222", last.Form.Get("country_id"))

			_, err = testCase.methods(client)(ctx)
			require.NoError(t, err)
			assert.Equal(t, testCase.resource+"/methods", store.Last().Route)

			_, err = testCase.method(client)(ctx, "")
			require.Error(t, err)
			assert.Equal(t, testCase.resource+"_method", opencart.Param(err))

			_, err = testCase.method(client)(ctx, "flat.flat")
			require.NoError(t, err)
			assert.Equal(t, testCase.resource+"/method", store.Last().Route)
			assert.Equal(t, "flat.flat", store.Last().Form.Get(testCase.resource+"_method"))
		})
	}
}

func TestRewardClient(t *testing.T) {
	t.Parallel()

	store, client := newStoreClient(t)
	ctx := context.Background()

	_, err := client.Reward().Add(ctx, 0)
	assert.Equal(t, "reward", opencart.Param(err))
	assert.Empty(t, store.Requests())

	_, err = client.Reward().Add(ctx, 150)
	require.NoError(t, err)
	assert.Equal(t, "reward", store.Last().Route)
	assert.Equal(t, "150", store.Last().Form.Get("reward"))

	_, err = client.Reward().Add(ctx, -20)
	require.NoError(t, err)
	assert.Equal(t, "-20", store.Last().Form.Get("reward"))

	_, err = client.Reward().Maximum(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reward/maximum", store.Last().Route)

	_, err = client.Reward().Available(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reward/available", store.Last().Route)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestVoucherClient(t *testing.T) {
	t.Parallel()

	t.Run("apply", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Voucher().Apply(context.Background(), "")
		assert.Equal(t, "voucher", opencart.Param(err))
		assert.Empty(t, store.Requests())

		_, err = client.Voucher().Apply(context.Background(), "GIFT-1")
		require.NoError(t, err)
		assert.Equal(t, "voucher", store.Last().Route)
		assert.Equal(t, "GIFT-1", store.Last().Form.Get("voucher"))
	})

	t.Run("add one", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Voucher().Add(context.Background(), opencart.GiftVoucher{
			FromName:       "Ada",
			FromEmail:      "ada@example.com",
			ToName:         "Charles",
			ToEmail:        "charles@example.com",
			VoucherThemeID: 8,
			Message:        "Happy birthday",
			Amount:         25.5,
		})
		require.NoError(t, err)

		form := store.Last().Form
		assert.Equal(t, "voucher/add", store.Last().Route)
		assert.Equal(t, "Ada", form.Get("from_name"))
		assert.Equal(t, "charles@example.com", form.Get("to_email"))
		assert.Equal(t, "8", form.Get("voucher_theme_id"))
		assert.Equal(t, "25.5", form.Get("amount"))
		assert.Len(t, form, 7)
	})

	t.Run("add bulk", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Voucher().AddBulk(context.Background(), []opencart.Payload{
			{"from_name": "Ada", "amount": 10},
			{"from_name": "Grace", "amount": 20},
		})
		require.NoError(t, err)

		form := store.Last().Form
		assert.Equal(t, "voucher/add", store.Last().Route)
		assert.Equal(t, "Grace", form.Get("voucher[1][from_name]"))
		assert.Equal(t, "10", form.Get("voucher[0][amount]"))
	})

	t.Run("add bulk rejects scalars", func(t *testing.T) {
		t.Parallel()

		store, client := newStoreClient(t)

		_, err := client.Voucher().AddBulk(context.Background(), "Ada")
		require.Error(t, err)
		assert.True(t, opencart.IsInvalidArgument(err))
		assert.Empty(t, store.Requests())
	})
}
