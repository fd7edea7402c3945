package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/internal/session"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		key      string
		username string
		password string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an OpenCart store",
		Long: `Authenticate with an OpenCart store using an API key (OpenCart 3) or an
API username and password (OpenCart 1.x and 2.x). The API version is detected
from the response and saved with the store together with the session.

Use --url to add a new store. Its name defaults to the host name.`,
		Example: `  opencart login --url shop.example.com --key 0123abcd
  opencart login --url https://shop.example.com --username api --password secret
  opencart login --store shop-example-com --key 0123abcd`,
		RunE: func(cmd *cobra.Command, args []string) error {
			credentials, err := loginCredentials(cmd, key, username, password)
			if err != nil {
				return err
			}

			target, err := resolveStore(loadConfig(), name)
			if err != nil {
				return err
			}

			client, cleanup, err := newStoreClient(cmd, target.Store, false)
			if err != nil {
				return err
			}

			defer func() { _ = cleanup() }()

			result, err := client.Login(cmd.Context(), credentials)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if !result.Success() {
				return fmt.Errorf("%w: %s", opencart.ErrLoginRejected, result.Error)
			}

			if result.Outcome == opencart.LoginUnresolved {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(),
					"Warning: the store accepted the login but returned no session token; the API version is still undetected")
			}

			err = NewConfigPersister().SaveLogin(target.Name, target.Store, client, username)
			if err != nil {
				return err
			}

			return renderProperties(cmd.OutOrStdout(), map[string]string{
				"store":        target.Name,
				"url":          target.Store.URL,
				"outcome":      result.Outcome.String(),
				"api_version":  client.APIVersion().String(),
				"session_file": target.Store.SessionFile,
			})
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "API key (OpenCart 3)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "API username (OpenCart 1.x and 2.x)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "API password, prompted for when omitted")
	cmd.Flags().StringVar(&name, "name", "", "name to save the store under")

	return cmd
}

// loginCredentials builds credentials from the flags, prompting for the
// password when only a username was given.
func loginCredentials(cmd *cobra.Command, key, username, password string) (opencart.Credentials, error) {
	if key != "" {
		return opencart.NewAPIKey(key)
	}

	if username == "" {
		return nil, constants.ErrCredentialsNeeded
	}

	if password == "" {
		prompted, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}

		password = prompted
	}

	return opencart.NewUsernamePassword(username, password)
}

func promptPassword(in io.Reader, out io.Writer) (string, error) {
	_, _ = fmt.Fprint(out, "Password: ")

	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		bytePassword, err := term.ReadPassword(int(file.Fd()))
		_, _ = fmt.Fprintln(out)

		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}

		return string(bytePassword), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of an OpenCart store",
		Long:  "Forget the saved token and API version of a store and remove its session file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := resolveStore(loadConfig(), "")
			if err != nil {
				return err
			}

			err = session.New(target.Store.SessionFile).Clear()
			if err != nil {
				return err
			}

			if target.Saved {
				err = NewConfigPersister().ClearLogin(target.Name)
				if err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged out of store '%s'\n", target.Name)

			return nil
		},
	}
}
