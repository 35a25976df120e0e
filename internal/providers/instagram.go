package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"socialportal/internal/common"
)

const instagramAPIBase = "https://graph.instagram.com"

// Instagram is the client for the Instagram Graph API.
type Instagram struct {
	*restClient
}

// NewInstagram creates an Instagram client.
func NewInstagram(logger *common.Logger, opts ...ClientOption) *Instagram {
	return &Instagram{restClient: newRESTClient(instagramAPIBase, logger, opts...)}
}

// GetAccount returns the authenticated account's id and username.
func (c *Instagram) GetAccount(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	body, err := c.get(ctx, "/me?fields=id,username,account_type", accessToken)
	if err != nil {
		return nil, fmt.Errorf("instagram account: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("instagram account: failed to parse response: %w", err)
	}
	return result, nil
}

// CreateMediaPost publishes an image post in the two-step media container
// flow: create the container, then publish it.
func (c *Instagram) CreateMediaPost(ctx context.Context, accessToken, accountID, imageURL, caption string) (map[string]interface{}, error) {
	containerPath := fmt.Sprintf("/%s/media", url.PathEscape(accountID))
	containerBody, err := c.postJSON(ctx, containerPath, accessToken, map[string]interface{}{
		"image_url": imageURL,
		"caption":   caption,
	})
	if err != nil {
		return nil, fmt.Errorf("instagram media container: %w", err)
	}

	var container struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(containerBody, &container); err != nil || container.ID == "" {
		return nil, fmt.Errorf("instagram media container: response missing container id")
	}

	publishPath := fmt.Sprintf("/%s/media_publish", url.PathEscape(accountID))
	publishBody, err := c.postJSON(ctx, publishPath, accessToken, map[string]interface{}{
		"creation_id": container.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("instagram media publish: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(publishBody, &result); err != nil {
		return nil, fmt.Errorf("instagram media publish: failed to parse response: %w", err)
	}
	return result, nil
}
