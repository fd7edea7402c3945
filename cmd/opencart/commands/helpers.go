package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// Common string constants used throughout the commands package.
const (
	NotAvailable = "N/A"
	Yes          = "yes"
	Masked       = "***"

	defaultYAMLIndent = 2
)

// StandardJSONRenderer writes data as indented JSON.
func StandardJSONRenderer[T any](w io.Writer, data T) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer writes data as YAML.
func StandardYAMLRenderer[T any](w io.Writer, data T) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(defaultYAMLIndent)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return encoder.Close()
}

// renderResponse writes an API response in the configured output format and
// turns an "error" field in the body into a command error.
func renderResponse(w io.Writer, resp *opencart.Response) error {
	err := renderResponseBody(w, resp, viper.GetString("output"))
	if err != nil {
		return err
	}

	if resp.Has(constants.LoginFieldError) {
		return fmt.Errorf("%w: %s", constants.ErrStoreReportedError, resp.Message(constants.LoginFieldError))
	}

	return nil
}

func renderResponseBody(w io.Writer, resp *opencart.Response, format string) error {
	if resp == nil {
		return nil
	}

	if !resp.OK() {
		_, err := w.Write(append(resp.Raw, '\n'))
		if err != nil {
			return fmt.Errorf("writing response: %w", err)
		}

		return nil
	}

	switch format {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, resp.Data)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, resp.Data)
	default:
		return renderResponseTable(w, resp)
	}
}

// renderResponseTable lists top-level fields. Nested values are shown as
// compact JSON.
func renderResponseTable(w io.Writer, resp *opencart.Response) error {
	table := tablewriter.NewWriter(w)
	table.Header("Key", "Value")

	gjson.ParseBytes(resp.Raw).ForEach(func(key, value gjson.Result) bool {
		text := value.String()
		if value.IsObject() || value.IsArray() {
			text = value.Raw
		}

		_ = table.Append([]string{key.String(), text})

		return true
	})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// parseKeyValues turns key=value arguments into a payload. Bracketed keys
// such as option[226] are kept as flat form keys.
func parseKeyValues(pairs []string) (opencart.Payload, error) {
	payload := opencart.Payload{}

	for _, pair := range pairs {
		parts := strings.SplitN(pair, "=", constants.KeyValueParts)
		if len(parts) != constants.KeyValueParts || parts[0] == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidKeyValue, pair)
		}

		payload[parts[0]] = parts[1]
	}

	return payload, nil
}

// renderProperties writes a two column property table, or the map itself for
// json and yaml.
func renderProperties(w io.Writer, properties map[string]string) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		return StandardJSONRenderer(w, properties)
	case constants.FormatYAML:
		return StandardYAMLRenderer(w, properties)
	}

	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, key := range keys {
		_ = table.Append([]string{key, properties[key]})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
