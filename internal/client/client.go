package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/internal/http"
	"github.com/fivetwenty-io/opencart-client/internal/session"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// Client implements the opencart.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     opencart.Logger

	// Session state established by Login.
	version   opencart.APIVersion
	token     string
	cookie    string
	lastError string

	// Resource clients
	cart     opencart.CartClient
	order    opencart.OrderClient
	payment  opencart.PaymentClient
	shipping opencart.ShippingClient
	reward   opencart.RewardClient
	voucher  opencart.VoucherClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *opencart.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	return httpOpts
}

// New creates a client posting to config.BaseURL, which must already end in
// the entry script ("http://shop/index.php?").
func New(config *opencart.Config) (*Client, error) {
	if config == nil {
		return nil, opencart.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, opencart.ErrBaseURLRequired
	}

	if config.APIVersion < opencart.APIVersionAuto || config.APIVersion > opencart.APIVersion3 {
		return nil, fmt.Errorf("creating client: %w: %d", opencart.ErrUnknownVersion, config.APIVersion)
	}

	jar, err := session.Load(config.SessionFile)
	if err != nil && config.Logger != nil {
		config.Logger.Warn("ignoring unreadable session file", map[string]interface{}{
			"path":  config.SessionFile,
			"error": err.Error(),
		})
	}

	httpClient := http.NewClient(config.BaseURL, jar, createHTTPClientOptions(config)...)

	return newWithHTTPClient(httpClient, config), nil
}

func newWithHTTPClient(httpClient *http.Client, config *opencart.Config) *Client {
	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
		logger:     config.Logger,
		version:    config.APIVersion,
		token:      config.Token,
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.cart = NewCartClient(c)
	c.order = NewOrderClient(c)
	c.payment = NewPaymentClient(c)
	c.shipping = NewShippingClient(c)
	c.reward = NewRewardClient(c)
	c.voucher = NewVoucherClient(c)
}

// URL implements opencart.Client.URL.
func (c *Client) URL(route string) (string, error) {
	query, err := c.query(route)
	if err != nil {
		return "", err
	}

	return c.baseURL + query, nil
}

// query renders the part of the URL after the entry script.
func (c *Client) query(route string) (string, error) {
	switch c.version {
	case opencart.APIVersionAuto, opencart.APIVersion3:
		return constants.TokenParamV3 + "=" + c.token + "&route=" + constants.RoutePrefix + route, nil
	case opencart.APIVersion2:
		return constants.TokenParamV2 + "=" + c.token + "&route=" + constants.RoutePrefix + route, nil
	case opencart.APIVersion1:
		return "route=" + constants.RoutePrefix + route, nil
	default:
		return "", fmt.Errorf("%w: %d", opencart.ErrUnknownVersion, c.version)
	}
}

// post sends payload to route under the current version.
func (c *Client) post(ctx context.Context, route string, payload opencart.Payload) (*opencart.Response, error) {
	query, err := c.query(route)
	if err != nil {
		return nil, fmt.Errorf("building URL for %s: %w", route, err)
	}

	if payload == nil {
		payload = opencart.Payload{}
	}

	resp, err := c.httpClient.Post(ctx, query, payload)
	if err != nil {
		return nil, fmt.Errorf("calling %s: %w", route, err)
	}

	return resp, nil
}

// Route implements opencart.Client.Route.
func (c *Client) Route(segments ...string) opencart.Dispatcher {
	return newDispatcher(c, segments...)
}

// Coupon implements opencart.Client.Coupon.
func (c *Client) Coupon(ctx context.Context, code string) (*opencart.Response, error) {
	if code == "" {
		return nil, opencart.NewArgumentError("coupon", "code")
	}

	resp, err := c.post(ctx, "coupon", opencart.Payload{"coupon": code})
	if err != nil {
		return nil, fmt.Errorf("applying coupon: %w", err)
	}

	return resp, nil
}

// Customer implements opencart.Client.Customer. Extra fields never replace
// the base fields.
func (c *Client) Customer(ctx context.Context, request opencart.CustomerRequest) (*opencart.Response, error) {
	payload := opencart.Payload{
		"customer_id":       request.CustomerID,
		"customer_group_id": request.CustomerGroupID,
		"firstname":         request.Firstname,
		"lastname":          request.Lastname,
		"email":             request.Email,
		"telephone":         request.Telephone,
		"fax":               request.Fax,
	}

	for key, value := range request.Extra {
		if _, exists := payload[key]; exists {
			continue
		}

		payload[key] = value
	}

	resp, err := c.post(ctx, "customer", payload)
	if err != nil {
		return nil, fmt.Errorf("setting customer: %w", err)
	}

	return resp, nil
}

// Session state accessors

// Cookie implements opencart.SessionState.Cookie.
func (c *Client) Cookie() string {
	return c.cookie
}

// Token implements opencart.SessionState.Token.
func (c *Client) Token() string {
	return c.token
}

// LastError implements opencart.SessionState.LastError.
func (c *Client) LastError() string {
	return c.lastError
}

// APIVersion implements opencart.SessionState.APIVersion.
func (c *Client) APIVersion() opencart.APIVersion {
	return c.version
}

// SessionCookies implements opencart.SessionState.SessionCookies.
func (c *Client) SessionCookies() map[string]string {
	return c.httpClient.Cookies()
}

// Resource client accessors

// Cart implements opencart.Client.Cart.
func (c *Client) Cart() opencart.CartClient {
	return c.cart
}

// Order implements opencart.Client.Order.
func (c *Client) Order() opencart.OrderClient {
	return c.order
}

// Payment implements opencart.Client.Payment.
func (c *Client) Payment() opencart.PaymentClient {
	return c.payment
}

// Shipping implements opencart.Client.Shipping.
func (c *Client) Shipping() opencart.ShippingClient {
	return c.shipping
}

// Reward implements opencart.Client.Reward.
func (c *Client) Reward() opencart.RewardClient {
	return c.reward
}

// Voucher implements opencart.Client.Voucher.
func (c *Client) Voucher() opencart.VoucherClient {
	return c.voucher
}
