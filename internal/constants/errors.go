package constants

import "errors"

// Store configuration errors.
var (
	ErrNoStoresConfigured = errors.New("no stores configured, use 'opencart login --url <url>' to add one")
	ErrStoreNotFound      = errors.New("store configuration not found")
	ErrStoreURLRequired   = errors.New("store URL is required")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
)

// Validation errors.
var (
	ErrInvalidKeyValue   = errors.New("invalid key=value argument")
	ErrRouteRequired     = errors.New("a route is required")
	ErrCredentialsNeeded = errors.New("provide --key, or --username and --password")
)

// Response errors.
var (
	ErrStoreReportedError = errors.New("store reported an error")
)
