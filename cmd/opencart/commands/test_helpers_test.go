package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/opencart-client/internal/client"
	"github.com/fivetwenty-io/opencart-client/internal/constants"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// setupCLI points viper at a fresh config file in a temp dir and selects
// JSON output. Tests using it must not run in parallel.
func setupCLI(t *testing.T) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	viper.SetConfigFile(filepath.Join(dir, constants.ConfigFileName))
	viper.Set("output", constants.FormatJSON)

	return dir
}

// runCommand executes cmd with args and returns stdout and stderr.
func runCommand(cmd *cobra.Command, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

// storeRoot returns the storefront root of a fake store, before
// normalization adds the entry script.
func storeRoot(store *client.FakeStore) string {
	return strings.TrimSuffix(store.URL(), constants.EntryScript)
}
