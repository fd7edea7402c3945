package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// Login implements opencart.Client.Login.
//
// The first successful login detects the API version from the field the
// server answers with: "cookie" for 1.x, "token" for 2.1 to 2.3 and
// "api_token" for 3.x. Once detected the version is kept, and later logins
// only refresh the token from the field belonging to that version.
//
// A response without "success" is a rejection. It is reported through the
// result and LastError, not as an error.
func (c *Client) Login(ctx context.Context, credentials opencart.Credentials) (*opencart.LoginResult, error) {
	if credentials == nil {
		return nil, fmt.Errorf("%w: no credentials given", opencart.ErrInvalidCredentials)
	}

	err := credentials.Validate()
	if err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, "login", credentials.Form())
	if err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}

	result := &opencart.LoginResult{Response: resp}

	if !resp.Has(constants.LoginFieldSuccess) {
		if resp.Has(constants.LoginFieldError) {
			c.lastError = resp.Message(constants.LoginFieldError)
		}

		result.Outcome = opencart.LoginRejected
		result.Version = c.version
		result.Error = c.lastError

		c.logInfo("login rejected", map[string]interface{}{"error": c.lastError})

		return result, nil
	}

	if c.version == opencart.APIVersionAuto {
		c.detectVersion(resp)
	} else {
		c.refreshSession(resp)
	}

	result.Version = c.version
	if c.version == opencart.APIVersionAuto {
		result.Outcome = opencart.LoginUnresolved
	} else {
		result.Outcome = opencart.LoginAuthenticated
	}

	c.logInfo("login succeeded", map[string]interface{}{
		"outcome": result.Outcome.String(),
		"version": c.version.String(),
	})

	return result, nil
}

// LoginArgs implements opencart.Client.LoginArgs.
func (c *Client) LoginArgs(ctx context.Context, args ...string) (bool, error) {
	credentials, err := opencart.CredentialsFromArgs(args...)
	if err != nil {
		return false, err
	}

	result, err := c.Login(ctx, credentials)
	if err != nil {
		return false, err
	}

	return result.Success(), nil
}

func (c *Client) detectVersion(resp *opencart.Response) {
	switch {
	case resp.Has(constants.LoginFieldCookie):
		c.version = opencart.APIVersion1
		c.cookie = resp.String(constants.LoginFieldCookie)
	case resp.Has(constants.LoginFieldToken):
		c.version = opencart.APIVersion2
		c.token = resp.String(constants.LoginFieldToken)
	case resp.Has(constants.LoginFieldAPIToken):
		c.version = opencart.APIVersion3
		c.token = resp.String(constants.LoginFieldAPIToken)
	}
}

func (c *Client) refreshSession(resp *opencart.Response) {
	switch c.version {
	case opencart.APIVersion1:
		if resp.Has(constants.LoginFieldCookie) {
			c.cookie = resp.String(constants.LoginFieldCookie)
		}
	case opencart.APIVersion2:
		if resp.Has(constants.LoginFieldToken) {
			c.token = resp.String(constants.LoginFieldToken)
		}
	case opencart.APIVersion3:
		if resp.Has(constants.LoginFieldAPIToken) {
			c.token = resp.String(constants.LoginFieldAPIToken)
		}
	case opencart.APIVersionAuto:
	}
}

func (c *Client) logInfo(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, fields)
	}
}
