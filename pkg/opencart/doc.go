// Package opencart provides types, interfaces, and helpers for working with
// the OpenCart storefront API (index.php?route=api/...).
//
// # Overview
//
// The opencart package defines the request and response types and the
// interfaces of the resource clients (Cart, Order, Payment, Shipping, Reward,
// Voucher). A concrete implementation is provided by the occlient package,
// which wires configuration, the session cookie jar and the transport.
//
// Getting a client
//
//	cli, err := occlient.New(&opencart.Config{
//	  BaseURL:     "shop.example.com",
//	  SessionFile: "/var/lib/shop/session.json",
//	})
//	if err != nil { log.Fatal(err) }
//
//	result, err := cli.Login(ctx, opencart.APIKey{Key: apiKey})
//	if err != nil { log.Fatal(err) }
//	if !result.Success() { log.Fatal(result.Error) }
//
//	resp, err := cli.Cart().Add(ctx, 42, 3, nil)
//
// # Versions
//
// OpenCart shipped three incompatible API authentication schemes. Login
// inspects the response to pick one: a "cookie" field means V1 (session
// cookie only), "token" means V2 (token= in the query string) and
// "api_token" means V3 (api_token= in the query string). The detected
// version never changes afterwards.
//
// # Custom routes
//
// Routes the typed clients do not cover are reached through a Dispatcher:
//
//	resp, err := cli.Route("custom").Call(ctx, "endpoint", opencart.Payload{"x": 1})
//
// posts {x: 1} to route=api/custom/endpoint. Every typed client is also a
// Dispatcher rooted at its own name, so cli.Cart().Call(ctx, "clear", nil)
// posts to cart/clear.
//
// # Errors
//
// Validation failures wrap ErrInvalidArgument or ErrInvalidCredentials and
// are returned before any request is sent. Network failures wrap
// ErrTransport. A rejected login is not an error: it is reported through
// LoginResult and Client.LastError.
package opencart
