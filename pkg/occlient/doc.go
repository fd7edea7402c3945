// Package occlient provides the primary entry point for constructing an
// OpenCart REST API client that implements the opencart.Client interface.
//
// It layers base URL normalization, the session cookie jar and the HTTP
// transport on top of the interfaces and types defined in the opencart
// package.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/opencart-client/pkg/occlient"
//	  "github.com/fivetwenty-io/opencart-client/pkg/opencart"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := occlient.New(&opencart.Config{
//	    BaseURL:     "shop.example.com",
//	    SessionFile: "/var/lib/shop/session.json",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  ok, err := cli.LoginArgs(ctx, "api-key")
//	  if err != nil { log.Fatal(err) }
//	  if !ok { log.Fatal(cli.LastError()) }
//
//	  resp, err := cli.Cart().Add(ctx, 42, 1, nil)
//	  if err != nil { log.Fatal(err) }
//	  log.Println(resp.String("success"))
//	}
//
// # Helpers
//
// NewWithURL and NewWithSession wrap New for the common configurations.
// NewWithKey and NewWithPassword also log in and fail with
// opencart.ErrLoginRejected when the store refuses the credentials.
package occlient
