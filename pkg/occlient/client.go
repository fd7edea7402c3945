// Package occlient provides the main entry point for creating OpenCart API clients
package occlient

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/opencart-client/internal/client"
	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// New creates a new OpenCart API client. The config is not modified.
func New(config *opencart.Config) (opencart.Client, error) {
	if config == nil {
		return nil, opencart.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, opencart.ErrBaseURLRequired
	}

	normalized := *config
	normalized.BaseURL = NormalizeBaseURL(config.BaseURL)

	// Use the internal client implementation
	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeBaseURL turns a storefront root into the URL every request query
// is appended to: "shop.example.com/" becomes
// "http://shop.example.com/index.php?".
func NormalizeBaseURL(rawURL string) string {
	baseURL := strings.TrimRight(rawURL, "/")

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		baseURL = "http://" + baseURL
	}

	return baseURL + constants.EntryScript
}

// NewWithURL creates a client without session persistence.
func NewWithURL(baseURL string) (opencart.Client, error) {
	return New(&opencart.Config{BaseURL: baseURL})
}

// NewWithSession creates a client whose cookies are kept in sessionFile.
func NewWithSession(baseURL, sessionFile string) (opencart.Client, error) {
	return New(&opencart.Config{BaseURL: baseURL, SessionFile: sessionFile})
}

// NewWithKey creates a client and logs in with an API key. A rejected login
// is returned as an error wrapping opencart.ErrLoginRejected.
func NewWithKey(ctx context.Context, config *opencart.Config, key string) (opencart.Client, error) {
	credentials, err := opencart.NewAPIKey(key)
	if err != nil {
		return nil, err
	}

	return newAndLogin(ctx, config, credentials)
}

// NewWithPassword creates a client and logs in with a username and password,
// for stores older than 2.0.3.1.
func NewWithPassword(ctx context.Context, config *opencart.Config, username, password string) (opencart.Client, error) {
	credentials, err := opencart.NewUsernamePassword(username, password)
	if err != nil {
		return nil, err
	}

	return newAndLogin(ctx, config, credentials)
}

func newAndLogin(ctx context.Context, config *opencart.Config, credentials opencart.Credentials) (opencart.Client, error) {
	c, err := New(config)
	if err != nil {
		return nil, err
	}

	result, err := c.Login(ctx, credentials)
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	if !result.Success() {
		return nil, fmt.Errorf("%w: %s", opencart.ErrLoginRejected, result.Error)
	}

	return c, nil
}
