package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"socialportal/internal/common"
)

const twitterAPIBase = "https://api.x.com"

// Twitter is the client for the X (Twitter) v2 API.
type Twitter struct {
	*restClient
}

// NewTwitter creates a Twitter client.
func NewTwitter(logger *common.Logger, opts ...ClientOption) *Twitter {
	return &Twitter{restClient: newRESTClient(twitterAPIBase, logger, opts...)}
}

// GetMe returns the authenticated user.
func (c *Twitter) GetMe(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	body, err := c.get(ctx, "/2/users/me", accessToken)
	if err != nil {
		return nil, fmt.Errorf("twitter user: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("twitter user: failed to parse response: %w", err)
	}
	return result, nil
}

// PostTweet publishes a tweet on behalf of the authenticated user.
func (c *Twitter) PostTweet(ctx context.Context, accessToken, text string) (map[string]interface{}, error) {
	body, err := c.postJSON(ctx, "/2/tweets", accessToken, map[string]interface{}{
		"text": text,
	})
	if err != nil {
		return nil, fmt.Errorf("twitter post: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("twitter post: failed to parse response: %w", err)
	}
	return result, nil
}
