package opencart

import (
	"context"
	"time"
)

// Dispatcher addresses routes the typed clients do not cover. It is an
// immutable value: Segment returns a new Dispatcher and leaves the receiver
// untouched.
type Dispatcher interface {
	// Segment returns a Dispatcher with name appended to the path.
	Segment(name string) Dispatcher
	// Segments returns a copy of the accumulated path segments.
	Segments() []string
	// Call appends method as the final segment and posts payload to the
	// resulting route. A nil payload is sent as an empty body.
	Call(ctx context.Context, method string, payload Payload) (*Response, error)
}

// CartClient wraps the api/cart/* routes.
type CartClient interface {
	Dispatcher

	// Add accepts a product ID (any Go number, a numeric string or a
	// json.Number) or a product map/slice sent verbatim as "product".
	Add(ctx context.Context, product interface{}, quantity int, option Payload) (*Response, error)
	Edit(ctx context.Context, key string, quantity int) (*Response, error)
	Remove(ctx context.Context, key string) (*Response, error)
	Products(ctx context.Context) (*Response, error)
}

// OrderClient wraps the api/order/* routes.
type OrderClient interface {
	Dispatcher

	Add(ctx context.Context, request OrderRequest) (*Response, error)
	Edit(ctx context.Context, orderID int, request OrderRequest) (*Response, error)
	Delete(ctx context.Context, orderID int) (*Response, error)
	History(ctx context.Context, orderID int, request OrderHistoryRequest) (*Response, error)
}

// PaymentClient wraps the api/payment/* routes.
type PaymentClient interface {
	Dispatcher

	Address(ctx context.Context, address Address) (*Response, error)
	Methods(ctx context.Context) (*Response, error)
	Method(ctx context.Context, method string) (*Response, error)
}

// ShippingClient wraps the api/shipping/* routes.
type ShippingClient interface {
	Dispatcher

	Address(ctx context.Context, address Address) (*Response, error)
	Methods(ctx context.Context) (*Response, error)
	Method(ctx context.Context, method string) (*Response, error)
}

// RewardClient wraps the api/reward* routes.
type RewardClient interface {
	Dispatcher

	Add(ctx context.Context, points int) (*Response, error)
	Maximum(ctx context.Context) (*Response, error)
	Available(ctx context.Context) (*Response, error)
}

// VoucherClient wraps the api/voucher* routes.
type VoucherClient interface {
	Dispatcher

	Apply(ctx context.Context, code string) (*Response, error)
	Add(ctx context.Context, voucher GiftVoucher) (*Response, error)
	// AddBulk sends a map or slice of vouchers under the single "voucher" key.
	AddBulk(ctx context.Context, vouchers interface{}) (*Response, error)
}

// ResourceClients provides access to the typed resource clients.
type ResourceClients interface {
	Cart() CartClient
	Order() OrderClient
	Payment() PaymentClient
	Shipping() ShippingClient
	Reward() RewardClient
	Voucher() VoucherClient
}

// SessionState exposes what login established.
type SessionState interface {
	Cookie() string
	Token() string
	LastError() string
	APIVersion() APIVersion
	// SessionCookies returns a copy of the cookie jar.
	SessionCookies() map[string]string
}

// Client is an OpenCart API client.
type Client interface {
	ResourceClients
	SessionState

	Login(ctx context.Context, credentials Credentials) (*LoginResult, error)
	// LoginArgs takes an API key, or a username and password.
	LoginArgs(ctx context.Context, args ...string) (bool, error)
	Coupon(ctx context.Context, code string) (*Response, error)
	Customer(ctx context.Context, request CustomerRequest) (*Response, error)

	// Route starts a Dispatcher at the API root.
	Route(segments ...string) Dispatcher
	// URL returns the full request URL for route under the current version.
	URL(route string) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// # Base URL
//
// BaseURL is the storefront root ("shop.example.com", "https://shop.example.com/").
// occlient.New prepends "http://" when no scheme is present, strips a trailing
// slash and appends "/index.php?".
//
// # Sessions
//
// SessionFile, when set, is a JSON file mapping cookie names to values. It is
// read on construction (a missing or malformed file means an empty session)
// and rewritten atomically after every request.
//
// Token and APIVersion resume a session established by an earlier Login, for
// example by a CLI that stores them between invocations. Leave both empty to
// start in auto-detection mode.
type Config struct {
	// BaseURL: storefront root. Required.
	BaseURL string
	// SessionFile: optional path of the persisted cookie jar.
	SessionFile string

	// Token: optional API token from an earlier login.
	Token string
	// APIVersion: optional version from an earlier login.
	APIVersion APIVersion

	// HTTPTimeout: transport-level timeout for one round trip. Zero uses
	// the default of 30 seconds. Per-call deadlines belong on the context.
	HTTPTimeout time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: logs every request and response when a Logger is provided.
	Debug bool
	// Logger: optional structured logger.
	Logger Logger
}
