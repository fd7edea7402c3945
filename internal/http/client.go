// Package http is the transport of the OpenCart client: one form encoded POST
// per call, with the session cookie jar attached and updated.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/internal/session"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// Client posts API requests relative to a base URL.
type Client struct {
	baseURL    string
	jar        *session.Jar
	httpClient *retryablehttp.Client
	logger     opencart.Logger
	debug      bool
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger opencart.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout sets the round trip timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient uses a copy of httpClient as the underlying client. Redirects
// are still not followed; the caller's client is left untouched.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			copied := *httpClient
			c.httpClient.HTTPClient = &copied
		}
	}
}

// NewClient creates a transport posting to baseURL + query. A nil jar is
// replaced by an in-memory one.
func NewClient(baseURL string, jar *session.Jar, opts ...Option) *Client {
	if jar == nil {
		jar = session.New("")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.CheckRetry = neverRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout

	client := &Client{
		baseURL:    baseURL,
		jar:        jar,
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	// Set-Cookie headers of a redirect response would be lost if the
	// redirect were followed.
	retryClient.HTTPClient.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	if client.logger != nil && client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the URL every query is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Jar returns the session cookie jar.
func (c *Client) Jar() *session.Jar {
	return c.jar
}

// Cookies returns a copy of the session cookies.
func (c *Client) Cookies() map[string]string {
	return c.jar.Snapshot()
}

// Post sends payload to baseURL + query and returns the parsed response.
// Cookies set by the response are merged into the jar and the jar is
// persisted before Post returns.
func (c *Client) Post(ctx context.Context, query string, payload opencart.Payload) (*opencart.Response, error) {
	target := c.baseURL + query

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, target, []byte(EncodeForm(payload)))
	if err != nil {
		return nil, &opencart.TransportError{Op: http.MethodPost, URL: RedactURL(target), Err: err}
	}

	req.Header.Set("Content-Type", constants.FormContentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if cookie := c.jar.Header(); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	c.logDebug("HTTP Request", map[string]interface{}{
		"method":  http.MethodPost,
		"url":     RedactURL(target),
		"fields":  len(payload),
		"cookies": c.jar.Len(),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &opencart.TransportError{Op: http.MethodPost, URL: RedactURL(target), Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &opencart.TransportError{Op: "reading response", URL: RedactURL(target), Err: err}
	}

	cookies := ParseSetCookies(resp.Header)
	c.jar.Merge(cookies)

	err = c.jar.Save()
	if err != nil && c.logger != nil {
		c.logger.Warn("failed to persist session", map[string]interface{}{
			"path":  c.jar.Path(),
			"error": err.Error(),
		})
	}

	response := &opencart.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
		Data:       decodeObject(raw),
	}

	c.logDebug("HTTP Response", map[string]interface{}{
		"url":         RedactURL(target),
		"status_code": resp.StatusCode,
		"bytes":       len(raw),
		"set_cookies": len(cookies),
		"json":        response.Data != nil,
	})

	return response, nil
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil && c.debug {
		c.logger.Debug(msg, fields)
	}
}

// decodeObject returns the body as a JSON object, or nil when it is not
// exactly one JSON object.
func decodeObject(raw []byte) map[string]interface{} {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var object map[string]interface{}

	err := decoder.Decode(&object)
	if err != nil {
		return nil
	}

	_, err = decoder.Token()
	if !errors.Is(err, io.EOF) {
		return nil
	}

	return object
}

// neverRetry keeps every call to a single round trip.
func neverRetry(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, fmt.Errorf("request context: %w", ctx.Err())
	}

	return false, nil
}

// RedactURL hides token query parameters.
func RedactURL(rawURL string) string {
	base, query, found := strings.Cut(rawURL, "?")
	if !found {
		return rawURL
	}

	params := strings.Split(query, "&")
	for i, param := range params {
		name, _, hasValue := strings.Cut(param, "=")
		if hasValue && (name == constants.TokenParamV2 || name == constants.TokenParamV3) {
			params[i] = name + "=" + constants.RedactedValue
		}
	}

	return base + "?" + strings.Join(params, "&")
}

// leveledLogger adapts opencart.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger opencart.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, fieldsFromKeysAndValues(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, fieldsFromKeysAndValues(keysAndValues))
}

func fieldsFromKeysAndValues(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2) //nolint:mnd // pairs

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		value := keysAndValues[i+1]

		if key == "url" {
			value = RedactURL(fmt.Sprint(value))
		}

		fields[key] = value
	}

	return fields
}
