package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/opencart-client/internal/constants"
	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// NewCallCommand creates the call command for routes without a dedicated
// command.
func NewCallCommand() *cobra.Command {
	var data []string

	cmd := &cobra.Command{
		Use:   "call ROUTE...",
		Short: "Call any API route",
		Long: `Post to an arbitrary route under api/. The route may be given as one
argument with slashes or as separate segments; the last segment is the method.`,
		Example: `  opencart call cart/products
  opencart call sale order info -d order_id=7`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments := splitRoute(args)
			if len(segments) == 0 {
				return constants.ErrRouteRequired
			}

			payload, err := parseKeyValues(data)
			if err != nil {
				return err
			}

			parents := segments[:len(segments)-1]
			method := segments[len(segments)-1]

			return runWithClient(cmd, func(client opencart.Client) (*opencart.Response, error) {
				return client.Route(parents...).Call(cmd.Context(), method, payload)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&data, "data", "d", nil, "form field as KEY=VALUE (repeatable)")

	return cmd
}

// splitRoute joins the arguments with "/" and splits them into non-empty
// segments.
func splitRoute(args []string) []string {
	var segments []string

	for _, segment := range strings.Split(strings.Join(args, "/"), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}
