package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/occlient"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// storeTarget is the store a command talks to.
type storeTarget struct {
	Name  string
	Store *StoreConfig
	// Saved is false for a --url store that is not in the config yet.
	Saved bool
}

// resolveStore picks the store from --url, --store or current_store, in
// that order. A non-empty name takes the place of --store. --session
// overrides the store's session file.
func resolveStore(config *Config, name string) (*storeTarget, error) {
	target := &storeTarget{}

	rawURL := viper.GetString("url")

	storeName := name
	if storeName == "" {
		storeName = viper.GetString("store")
	}

	storeName = strings.ToLower(storeName)

	switch {
	case rawURL != "":
		if storeName == "" {
			storeName = extractStoreName(rawURL)
		}

		target.Name = storeName
		target.Store = &StoreConfig{URL: rawURL}

		if existing, exists := config.Stores[storeName]; exists {
			copied := *existing
			copied.URL = rawURL
			target.Store = &copied
			target.Saved = true
		}
	default:
		if storeName == "" {
			storeName = config.CurrentStore
		}

		if storeName == "" {
			return nil, constants.ErrNoStoresConfigured
		}

		store, err := findStore(config, storeName)
		if err != nil {
			return nil, err
		}

		copied := *store
		target.Name = storeName
		target.Store = &copied
		target.Saved = true
	}

	if session := viper.GetString("session"); session != "" {
		target.Store.SessionFile = session
	}

	if target.Store.SessionFile == "" {
		path, err := defaultSessionFile(target.Name)
		if err != nil {
			return nil, err
		}

		target.Store.SessionFile = path
	}

	return target, nil
}

// extractStoreName derives a config name from a store URL:
// "https://www.Shop.example.com:8080/oc" becomes "shop-example-com".
func extractStoreName(rawURL string) string {
	host := strings.ToLower(rawURL)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")

	if idx := strings.IndexAny(host, "/?"); idx != -1 {
		host = host[:idx]
	}

	if idx := strings.Index(host, ":"); idx != -1 {
		host = host[:idx]
	}

	host = strings.TrimPrefix(host, "www.")

	// viper splits keys on dots
	return strings.ReplaceAll(host, ".", "-")
}

// defaultSessionFile returns <config dir>/sessions/<name>.json.
func defaultSessionFile(name string) (string, error) {
	configFile, err := configFilePath()
	if err != nil {
		return "", err
	}

	return filepath.Join(filepath.Dir(configFile), constants.SessionDirName, name+constants.SessionFileExt), nil
}

// createClient builds a client for the resolved store, resuming the token
// and version saved by the last login. The cleanup closes the log file.
func createClient(cmd *cobra.Command) (opencart.Client, func() error, error) {
	target, err := resolveStore(loadConfig(), "")
	if err != nil {
		return nil, nil, err
	}

	return newStoreClient(cmd, target.Store, true)
}

func newStoreClient(cmd *cobra.Command, store *StoreConfig, resume bool) (opencart.Client, func() error, error) {
	logger, cleanup, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	config := &opencart.Config{
		BaseURL:     store.URL,
		SessionFile: store.SessionFile,
		Logger:      logger,
		Debug:       viper.GetBool("verbose"),
	}

	if resume {
		version, err := opencart.ParseAPIVersion(store.APIVersion)
		if err != nil {
			_ = cleanup()

			return nil, nil, fmt.Errorf("invalid api_version %q in config: %w", store.APIVersion, err)
		}

		config.Token = store.Token
		config.APIVersion = version
	}

	err = os.MkdirAll(filepath.Dir(store.SessionFile), constants.SessionDirPerm)
	if err != nil {
		_ = cleanup()

		return nil, nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	client, err := occlient.New(config)
	if err != nil {
		_ = cleanup()

		return nil, nil, err
	}

	return client, cleanup, nil
}

// runWithClient creates a client, runs fn and renders its response.
func runWithClient(cmd *cobra.Command, fn func(client opencart.Client) (*opencart.Response, error)) error {
	client, cleanup, err := createClient(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = cleanup() }()

	resp, err := fn(client)
	if err != nil {
		return err
	}

	return renderResponse(cmd.OutOrStdout(), resp)
}
