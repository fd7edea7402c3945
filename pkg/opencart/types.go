package opencart

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Payload is a request body. Nested maps and slices are form encoded with
// bracketed keys (a[b]=1, a[0]=1).
type Payload map[string]interface{}

// Response is the result of one API call.
type Response struct {
	StatusCode int
	Headers    http.Header
	// Raw is the unparsed response body.
	Raw []byte
	// Data is the decoded JSON object, or nil when the body is not one.
	Data map[string]interface{}
}

// OK reports whether Data holds a decoded JSON object.
func (r *Response) OK() bool {
	return r != nil && r.Data != nil
}

// Get looks up a value by gjson path ("success", "error.key", "products.0.name").
// A body that did not decode to a JSON object has no fields.
func (r *Response) Get(path string) gjson.Result {
	if !r.OK() {
		return gjson.Result{}
	}

	return gjson.GetBytes(r.Raw, path)
}

// Has reports whether path is present and not null.
func (r *Response) Has(path string) bool {
	result := r.Get(path)

	return result.Exists() && result.Type != gjson.Null
}

// String returns the value at path as a string.
func (r *Response) String(path string) string {
	return r.Get(path).String()
}

// Message flattens the value at path: strings are returned as is, objects and
// arrays have their values joined with "; " in document order.
func (r *Response) Message(path string) string {
	result := r.Get(path)
	if !result.IsObject() && !result.IsArray() {
		return result.String()
	}

	var parts []string

	result.ForEach(func(_, value gjson.Result) bool {
		if text := value.String(); text != "" {
			parts = append(parts, text)
		}

		return true
	})

	return strings.Join(parts, "; ")
}

// APIVersion identifies an OpenCart authentication scheme.
type APIVersion int

// Known API versions. APIVersionAuto is replaced by Login.
const (
	APIVersionAuto APIVersion = iota
	APIVersion1
	APIVersion2
	APIVersion3
)

// String returns the config/CLI name of the version.
func (v APIVersion) String() string {
	switch v {
	case APIVersionAuto:
		return "auto"
	case APIVersion1:
		return "v1"
	case APIVersion2:
		return "v2"
	case APIVersion3:
		return "v3"
	default:
		return "unknown"
	}
}

// ParseAPIVersion is the inverse of APIVersion.String. Empty means auto.
func ParseAPIVersion(s string) (APIVersion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto", "0":
		return APIVersionAuto, nil
	case "v1", "1":
		return APIVersion1, nil
	case "v2", "2":
		return APIVersion2, nil
	case "v3", "3":
		return APIVersion3, nil
	default:
		return APIVersionAuto, ErrUnknownVersion
	}
}

// LoginOutcome classifies a login response.
type LoginOutcome int

const (
	// LoginRejected means the server did not report success.
	LoginRejected LoginOutcome = iota
	// LoginAuthenticated means the version was detected and the session is usable.
	LoginAuthenticated
	// LoginUnresolved means the server reported success without a cookie or
	// token field, so the version is unchanged.
	LoginUnresolved
)

func (o LoginOutcome) String() string {
	switch o {
	case LoginAuthenticated:
		return "authenticated"
	case LoginUnresolved:
		return "unresolved"
	default:
		return "rejected"
	}
}

// LoginResult describes what a login call did to the client state.
type LoginResult struct {
	Outcome  LoginOutcome
	Version  APIVersion
	Error    string
	Response *Response
}

// Success mirrors the historical boolean: true unless the server rejected
// the credentials.
func (r *LoginResult) Success() bool {
	return r != nil && r.Outcome != LoginRejected
}

// Address is the body of payment/address and shipping/address.
type Address struct {
	Firstname string `json:"firstname"  yaml:"firstname"`
	Lastname  string `json:"lastname"   yaml:"lastname"`
	Company   string `json:"company"    yaml:"company"`
	Address1  string `json:"address_1"  yaml:"address_1"`
	Address2  string `json:"address_2"  yaml:"address_2"`
	Postcode  string `json:"postcode"   yaml:"postcode"`
	City      string `json:"city"       yaml:"city"`
	ZoneID    int    `json:"zone_id"    yaml:"zone_id"`
	CountryID int    `json:"country_id" yaml:"country_id"`
}

// OrderRequest is the body of order/add and order/edit.
type OrderRequest struct {
	ShippingMethod string `json:"shipping_method" yaml:"shipping_method"`
	Comment        string `json:"comment"         yaml:"comment"`
	AffiliateID    int    `json:"affiliate_id"    yaml:"affiliate_id"`
	OrderStatusID  int    `json:"order_status_id" yaml:"order_status_id"`
}

// OrderHistoryRequest is the body of order/history.
type OrderHistoryRequest struct {
	OrderStatusID int    `json:"order_status_id" yaml:"order_status_id"`
	Notify        bool   `json:"notify"          yaml:"notify"`
	Append        bool   `json:"append"          yaml:"append"`
	Comment       string `json:"comment"         yaml:"comment"`
}

// GiftVoucher is the single-voucher body of voucher/add.
type GiftVoucher struct {
	FromName       string  `json:"from_name"        yaml:"from_name"`
	FromEmail      string  `json:"from_email"       yaml:"from_email"`
	ToName         string  `json:"to_name"          yaml:"to_name"`
	ToEmail        string  `json:"to_email"         yaml:"to_email"`
	VoucherThemeID int     `json:"voucher_theme_id" yaml:"voucher_theme_id"`
	Message        string  `json:"message"          yaml:"message"`
	Amount         float64 `json:"amount"           yaml:"amount"`
}

// CustomerRequest is the body of the customer route. Extra fields are added
// after the base fields and never replace them.
type CustomerRequest struct {
	CustomerID      int     `json:"customer_id"       yaml:"customer_id"`
	CustomerGroupID int     `json:"customer_group_id" yaml:"customer_group_id"`
	Firstname       string  `json:"firstname"         yaml:"firstname"`
	Lastname        string  `json:"lastname"          yaml:"lastname"`
	Email           string  `json:"email"             yaml:"email"`
	Telephone       string  `json:"telephone"         yaml:"telephone"`
	Fax             string  `json:"fax"               yaml:"fax"`
	Extra           Payload `json:"extra,omitempty"   yaml:"extra,omitempty"`
}
