package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/opencart-client/pkg/opencart"
)

// RewardClient implements opencart.RewardClient.
type RewardClient struct {
	Dispatcher
}

// NewRewardClient creates a new reward client.
func NewRewardClient(client *Client) *RewardClient {
	return &RewardClient{
		Dispatcher: newDispatcher(client, "reward"),
	}
}

// Add implements opencart.RewardClient.Add. Points are posted to the bare
// "reward" route.
func (c *RewardClient) Add(ctx context.Context, points int) (*opencart.Response, error) {
	if points == 0 {
		return nil, &opencart.ArgumentError{Op: "reward add", Param: "reward", Reason: "cannot be zero"}
	}

	resp, err := c.client.post(ctx, "reward", opencart.Payload{"reward": points})
	if err != nil {
		return nil, fmt.Errorf("applying reward points: %w", err)
	}

	return resp, nil
}

// Maximum implements opencart.RewardClient.Maximum.
func (c *RewardClient) Maximum(ctx context.Context) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "reward/maximum", nil)
	if err != nil {
		return nil, fmt.Errorf("getting maximum reward points: %w", err)
	}

	return resp, nil
}

// Available implements opencart.RewardClient.Available.
func (c *RewardClient) Available(ctx context.Context) (*opencart.Response, error) {
	resp, err := c.client.post(ctx, "reward/available", nil)
	if err != nil {
		return nil, fmt.Errorf("getting available reward points: %w", err)
	}

	return resp, nil
}
