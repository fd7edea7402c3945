package opencart

import "fmt"

// Credentials is either an APIKey or a UsernamePassword.
type Credentials interface {
	// Validate reports ErrInvalidCredentials for empty fields.
	Validate() error
	// Form returns the login request body.
	Form() Payload
}

// APIKey authenticates with an API key (OpenCart 2.0.3.1 and later).
type APIKey struct {
	Key string
}

// NewAPIKey returns validated API key credentials.
func NewAPIKey(key string) (APIKey, error) {
	creds := APIKey{Key: key}

	return creds, creds.Validate()
}

// Validate implements Credentials.
func (k APIKey) Validate() error {
	if k.Key == "" {
		return fmt.Errorf("%w: API key cannot be empty", ErrInvalidCredentials)
	}

	return nil
}

// Form implements Credentials.
func (k APIKey) Form() Payload {
	return Payload{"key": k.Key}
}

// UsernamePassword authenticates against servers older than 2.0.3.1.
type UsernamePassword struct {
	Username string
	Password string
}

// NewUsernamePassword returns validated username/password credentials.
func NewUsernamePassword(username, password string) (UsernamePassword, error) {
	creds := UsernamePassword{Username: username, Password: password}

	return creds, creds.Validate()
}

// Validate implements Credentials.
func (u UsernamePassword) Validate() error {
	if u.Username == "" || u.Password == "" {
		return fmt.Errorf("%w: username and password cannot be empty", ErrInvalidCredentials)
	}

	return nil
}

// Form implements Credentials. The password is repeated under "key" so that
// servers expecting an API key accept the same request.
func (u UsernamePassword) Form() Payload {
	return Payload{
		"username": u.Username,
		"password": u.Password,
		"key":      u.Password,
	}
}

// CredentialsFromArgs maps a positional argument list onto a Credentials
// value: one argument is an API key, two are a username and password.
func CredentialsFromArgs(args ...string) (Credentials, error) {
	switch len(args) {
	case 0:
		return nil, fmt.Errorf("%w: login called with no parameters, provide an API key or a username and password", ErrInvalidCredentials)
	case 1:
		creds, err := NewAPIKey(args[0])
		if err != nil {
			return nil, err
		}

		return creds, nil
	case 2: //nolint:mnd // username and password
		creds, err := NewUsernamePassword(args[0], args[1])
		if err != nil {
			return nil, err
		}

		return creds, nil
	default:
		return nil, fmt.Errorf("%w: login called with %d parameters, provide an API key or a username and password", ErrInvalidCredentials, len(args))
	}
}
