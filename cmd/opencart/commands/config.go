package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// Config represents the CLI configuration.
type Config struct {
	Stores       map[string]*StoreConfig `json:"stores,omitempty"        yaml:"stores,omitempty"`
	CurrentStore string                  `json:"current_store,omitempty" yaml:"current_store,omitempty"`

	// Global settings
	Output  string `json:"output"             yaml:"output"`
	LogFile string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// StoreConfig represents one OpenCart store.
type StoreConfig struct {
	URL         string     `json:"url"                    yaml:"url"`
	SessionFile string     `json:"session_file,omitempty" yaml:"session_file,omitempty"`
	Token       string     `json:"token,omitempty"        yaml:"token,omitempty"`
	APIVersion  string     `json:"api_version,omitempty"  yaml:"api_version,omitempty"`
	Username    string     `json:"username,omitempty"     yaml:"username,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"   yaml:"last_login,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage OpenCart CLI configuration including stores and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. Tokens are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskedConfig(loadConfig())

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return StandardJSONRenderer(cmd.OutOrStdout(), config)
			case constants.FormatYAML:
				return StandardYAMLRenderer(cmd.OutOrStdout(), config)
			default:
				return displayConfigTable(cmd.OutOrStdout(), config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long: `Set a configuration value. Global keys: output, current_store, log_file.
With --store, store keys: url, session_file, token, api_version, username.`,
		Args: cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			storeName := viper.GetString("store")
			if storeName != "" {
				err := setStoreConfig(config, storeName, key, value)
				if err != nil {
					return err
				}
			} else {
				err := setGlobalConfig(config, key, value)
				if err != nil {
					return err
				}
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Set", key, value, storeName)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value (global, or store-specific with --store)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			storeName := viper.GetString("store")
			if storeName != "" {
				err := setStoreConfig(config, storeName, key, "")
				if err != nil {
					return err
				}
			} else {
				err := setGlobalConfig(config, key, "")
				if err != nil {
					return err
				}
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			return outputConfigUpdateResult(cmd.OutOrStdout(), "Unset", key, "", storeName)
		},
	}
}

func loadConfig() *Config {
	config := &Config{
		Stores:       make(map[string]*StoreConfig),
		CurrentStore: viper.GetString("current_store"),
		Output:       viper.GetString("output"),
		LogFile:      viper.GetString("log_file"),
	}

	storesRaw := viper.GetStringMap("stores")
	for name, storeRaw := range storesRaw {
		if storeMap, ok := storeRaw.(map[string]interface{}); ok {
			config.Stores[name] = parseStoreConfig(storeMap)
		}
	}

	return config
}

// parseStoreConfig parses store configuration from a map.
func parseStoreConfig(storeMap map[string]interface{}) *StoreConfig {
	store := &StoreConfig{}

	if v, ok := storeMap["url"].(string); ok {
		store.URL = v
	}

	if v, ok := storeMap["session_file"].(string); ok {
		store.SessionFile = v
	}

	if v, ok := storeMap["token"].(string); ok {
		store.Token = v
	}

	if v, ok := storeMap["api_version"].(string); ok {
		store.APIVersion = v
	}

	if v, ok := storeMap["username"].(string); ok {
		store.Username = v
	}

	switch v := storeMap["last_login"].(type) {
	case time.Time:
		store.LastLogin = &v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			store.LastLogin = &t
		}
	}

	return store
}

// configFilePath returns the file the config is read from, or the default
// location when none was found.
func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = writeFileAtomic(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Later reads in this process see what was written.
	viper.SetConfigFile(configFile)

	err = viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("failed to reload config file: %w", err)
	}

	return nil
}

// writeFileAtomic replaces path with data through a temp file in the same
// directory, so a crash never leaves a truncated config behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Chmod(tmpPath, perm)
	}

	if err == nil {
		err = os.Rename(tmpPath, path)
	}

	if err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

func setGlobalConfig(config *Config, key, value string) error {
	switch key {
	case "output":
		config.Output = value
	case "log_file":
		config.LogFile = value
	case "current_store":
		if value != "" {
			_, err := findStore(config, value)
			if err != nil {
				return err
			}
		}

		config.CurrentStore = strings.ToLower(value)
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func setStoreConfig(config *Config, storeName, key, value string) error {
	store, err := findStore(config, storeName)
	if err != nil {
		return err
	}

	switch key {
	case "url":
		if value == "" {
			return constants.ErrStoreURLRequired
		}

		store.URL = value
	case "session_file":
		store.SessionFile = value
	case "token":
		store.Token = value
	case "api_version":
		version, err := opencart.ParseAPIVersion(value)
		if err != nil {
			return fmt.Errorf("invalid api_version %q: %w", value, err)
		}

		store.APIVersion = version.String()
	case "username":
		store.Username = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// findStore looks up a store by name. Names are case-insensitive because
// viper lowercases map keys.
func findStore(config *Config, name string) (*StoreConfig, error) {
	store, exists := config.Stores[strings.ToLower(name)]
	if !exists {
		return nil, fmt.Errorf("store '%s': %w", name, constants.ErrStoreNotFound)
	}

	return store, nil
}

func maskedConfig(config *Config) *Config {
	masked := *config
	masked.Stores = make(map[string]*StoreConfig, len(config.Stores))

	for name, store := range config.Stores {
		copied := *store
		if copied.Token != "" {
			copied.Token = Masked
		}

		masked.Stores[name] = &copied
	}

	return &masked
}

func sortedStoreNames(config *Config) []string {
	names := make([]string, 0, len(config.Stores))
	for name := range config.Stores {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// displayConfigTable displays configuration in a table format.
func displayConfigTable(w io.Writer, config *Config) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Output", formatConfigValue(config.Output)})
	_ = table.Append([]string{"Log File", formatConfigValue(config.LogFile)})
	_ = table.Append([]string{"Current Store", formatConfigValue(config.CurrentStore)})

	_, _ = io.WriteString(w, "Global Configuration:\n")

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return displayStoresTable(w, config)
}

func displayStoresTable(w io.Writer, config *Config) error {
	if len(config.Stores) == 0 {
		_, _ = io.WriteString(w, "\nNo stores configured. Use 'opencart login --url <url>' to add one.\n")

		return nil
	}

	_, _ = io.WriteString(w, "\nConfigured Stores:\n")

	table := tablewriter.NewWriter(w)
	table.Header("Name", "URL", "Version", "Username", "Session File", "Current")

	for _, name := range sortedStoreNames(config) {
		store := config.Stores[name]
		_ = table.Append([]string{
			name,
			store.URL,
			formatConfigValue(store.APIVersion),
			formatConfigValue(store.Username),
			formatConfigValue(store.SessionFile),
			formatCurrentIndicator(name == config.CurrentStore),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render stores table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

func formatCurrentIndicator(isCurrent bool) string {
	if isCurrent {
		return Yes
	}

	return ""
}

// outputConfigUpdateResult outputs configuration update results in the requested format.
func outputConfigUpdateResult(w io.Writer, action, key, value, storeName string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	if storeName != "" {
		result["store"] = storeName
	}

	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(result)
		if err != nil {
			return fmt.Errorf("failed to encode config result as JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, result)
	default:
		table := tablewriter.NewWriter(w)
		table.Header("Property", "Value")

		_ = table.Append([]string{"Action", action})
		_ = table.Append([]string{"Key", key})

		if value != "" {
			_ = table.Append([]string{"Value", value})
		}

		if storeName != "" {
			_ = table.Append([]string{"Store", storeName})
		}

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render update results table: %w", err)
		}

		return nil
	}
}
