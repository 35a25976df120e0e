package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"socialportal/internal/common"
)

const facebookAPIBase = "https://graph.facebook.com/v21.0"

// Facebook is the client for the Facebook Graph API.
type Facebook struct {
	*restClient
}

// NewFacebook creates a Facebook client.
func NewFacebook(logger *common.Logger, opts ...ClientOption) *Facebook {
	return &Facebook{restClient: newRESTClient(facebookAPIBase, logger, opts...)}
}

// GetPages lists the pages the authenticated user manages, including the
// page access tokens needed to post.
func (c *Facebook) GetPages(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	body, err := c.get(ctx, "/me/accounts", accessToken)
	if err != nil {
		return nil, fmt.Errorf("facebook pages: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("facebook pages: failed to parse response: %w", err)
	}
	return result, nil
}

// PostToPage publishes a message to a page feed. The access token must be a
// page token (see GetPages), not the user token.
func (c *Facebook) PostToPage(ctx context.Context, accessToken, pageID, message string) (map[string]interface{}, error) {
	path := fmt.Sprintf("/%s/feed", url.PathEscape(pageID))
	body, err := c.postJSON(ctx, path, accessToken, map[string]interface{}{
		"message": message,
	})
	if err != nil {
		return nil, fmt.Errorf("facebook post: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("facebook post: failed to parse response: %w", err)
	}
	return result, nil
}
