package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// Dispatcher implements opencart.Dispatcher. It is a value: every Segment
// call returns a new Dispatcher sharing nothing mutable with its parent.
type Dispatcher struct {
	client   *Client
	segments []string
}

func newDispatcher(client *Client, segments ...string) Dispatcher {
	return Dispatcher{
		client:   client,
		segments: append([]string(nil), segments...),
	}
}

// Segment implements opencart.Dispatcher.Segment.
func (d Dispatcher) Segment(name string) opencart.Dispatcher {
	return d.with(name)
}

func (d Dispatcher) with(name string) Dispatcher {
	segments := make([]string, len(d.segments), len(d.segments)+1)
	copy(segments, d.segments)

	return Dispatcher{
		client:   d.client,
		segments: append(segments, name),
	}
}

// Segments implements opencart.Dispatcher.Segments.
func (d Dispatcher) Segments() []string {
	return append([]string(nil), d.segments...)
}

// Path joins the accumulated segments with "/".
func (d Dispatcher) Path() string {
	return strings.Join(d.segments, "/")
}

// Call implements opencart.Dispatcher.Call.
func (d Dispatcher) Call(ctx context.Context, method string, payload opencart.Payload) (*opencart.Response, error) {
	if method == "" {
		return nil, opencart.NewArgumentError("call", "method")
	}

	for i, segment := range d.segments {
		if segment == "" {
			return nil, &opencart.ArgumentError{
				Op:     "call",
				Param:  fmt.Sprintf("segment %d", i),
				Reason: "cannot be empty",
			}
		}
	}

	route := d.with(method).Path()

	resp, err := d.client.post(ctx, route, payload)
	if err != nil {
		return nil, fmt.Errorf("calling route %s: %w", route, err)
	}

	return resp, nil
}
