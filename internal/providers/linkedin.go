package providers

import (
	"context"
	"encoding/json"
	"fmt"

	"socialportal/internal/common"
)

const linkedinAPIBase = "https://api.linkedin.com"

// LinkedIn is the client for the LinkedIn REST API.
type LinkedIn struct {
	*restClient
}

// NewLinkedIn creates a LinkedIn client.
func NewLinkedIn(logger *common.Logger, opts ...ClientOption) *LinkedIn {
	return &LinkedIn{restClient: newRESTClient(linkedinAPIBase, logger, opts...)}
}

// GetProfile returns the authenticated member's OpenID profile.
func (c *LinkedIn) GetProfile(ctx context.Context, accessToken string) (map[string]interface{}, error) {
	body, err := c.get(ctx, "/v2/userinfo", accessToken)
	if err != nil {
		return nil, fmt.Errorf("linkedin profile: %w", err)
	}

	var profile map[string]interface{}
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, fmt.Errorf("linkedin profile: failed to parse response: %w", err)
	}
	return profile, nil
}

// CreatePost publishes a text share on the authenticated member's feed.
// LinkedIn requires the author URN, so the profile is fetched first.
func (c *LinkedIn) CreatePost(ctx context.Context, accessToken, text string) (map[string]interface{}, error) {
	profile, err := c.GetProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	sub, _ := profile["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("linkedin post: profile response missing member id")
	}

	payload := map[string]interface{}{
		"author":         "urn:li:person:" + sub,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": map[string]interface{}{
				"shareCommentary": map[string]interface{}{
					"text": text,
				},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]interface{}{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := c.postJSON(ctx, "/v2/ugcPosts", accessToken, payload)
	if err != nil {
		return nil, fmt.Errorf("linkedin post: %w", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		// ugcPosts responds 201 with an X-RestLi-Id header and may have an
		// empty body; treat an unparseable body as a bare success.
		result = map[string]interface{}{}
	}
	result["posted"] = true
	return result, nil
}
