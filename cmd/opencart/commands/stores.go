package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/internal/session"
)

// StoreInfo is one row of the stores listing.
type StoreInfo struct {
	Name       string `json:"name"                 yaml:"name"`
	URL        string `json:"url"                  yaml:"url"`
	APIVersion string `json:"api_version"          yaml:"api_version"`
	Username   string `json:"username,omitempty"   yaml:"username,omitempty"`
	LastLogin  string `json:"last_login,omitempty" yaml:"last_login,omitempty"`
	Current    bool   `json:"current"              yaml:"current"`
}

// NewStoresCommand creates the stores command group.
func NewStoresCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stores",
		Aliases: []string{"store"},
		Short:   "Manage configured stores",
		Long:    "List, select and remove the OpenCart stores saved by login",
	}

	cmd.AddCommand(newStoresListCommand())
	cmd.AddCommand(newStoresUseCommand())
	cmd.AddCommand(newStoresRemoveCommand())

	return cmd
}

func newStoresListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List configured stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			stores := make([]StoreInfo, 0, len(config.Stores))
			for _, name := range sortedStoreNames(config) {
				store := config.Stores[name]

				info := StoreInfo{
					Name:       name,
					URL:        store.URL,
					APIVersion: formatConfigValue(store.APIVersion),
					Username:   store.Username,
					Current:    name == config.CurrentStore,
				}

				if store.LastLogin != nil {
					info.LastLogin = store.LastLogin.Format(time.RFC3339)
				}

				stores = append(stores, info)
			}

			switch viper.GetString("output") {
			case constants.FormatJSON:
				return StandardJSONRenderer(cmd.OutOrStdout(), stores)
			case constants.FormatYAML:
				return StandardYAMLRenderer(cmd.OutOrStdout(), stores)
			}

			if len(stores) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No stores configured. Use 'opencart login --url <url>' to add one.")

				return nil
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Name", "URL", "Version", "Username", "Last Login", "Current")

			for _, store := range stores {
				_ = table.Append([]string{
					store.Name,
					store.URL,
					store.APIVersion,
					formatConfigValue(store.Username),
					formatConfigValue(store.LastLogin),
					formatCurrentIndicator(store.Current),
				})
			}

			err := table.Render()
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}

			return nil
		},
	}
}

func newStoresUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use NAME",
		Short: "Select the current store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setGlobalConfig(config, "current_store", args[0])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Current store is now '%s'\n", config.CurrentStore)

			return nil
		},
	}
}

func newStoresRemoveCommand() *cobra.Command {
	var keepSession bool

	cmd := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a store and its session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			name := strings.ToLower(args[0])

			store, err := findStore(config, name)
			if err != nil {
				return err
			}

			if !keepSession {
				sessionFile := store.SessionFile
				if sessionFile == "" {
					sessionFile, err = defaultSessionFile(name)
					if err != nil {
						return err
					}
				}

				err = session.New(sessionFile).Clear()
				if err != nil {
					return err
				}
			}

			delete(config.Stores, name)

			if config.CurrentStore == name {
				config.CurrentStore = ""
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed store '%s'\n", name)

			return nil
		},
	}

	cmd.Flags().BoolVar(&keepSession, "keep-session", false, "keep the session file")

	return cmd
}
