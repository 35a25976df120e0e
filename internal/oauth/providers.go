package oauth

import (
	"golang.org/x/oauth2/endpoints"

	"socialportal/internal/common"
	"socialportal/internal/config"
)

// Default scopes requested when the caller supplies none. Each platform
// grants only what its app review has approved, so callers can narrow these
// per request.
const (
	linkedinScope  = "openid profile email w_member_social"
	twitterScope   = "tweet.read tweet.write users.read offline.access"
	facebookScope  = "public_profile pages_manage_posts pages_read_engagement"
	instagramScope = "instagram_basic instagram_content_publish"
)

// NewLinkedIn creates the LinkedIn authorization-code provider.
func NewLinkedIn(creds config.ProviderConfig, logger *common.Logger, opts ...Option) *Provider {
	opts = append([]Option{WithDefaultScope(linkedinScope)}, opts...)
	return New("linkedin", endpoints.LinkedIn, creds, logger, opts...)
}

// NewTwitter creates the Twitter provider. Twitter mandates PKCE on the
// authorization-code flow and is the only provider here with refresh
// support (via the offline.access scope).
func NewTwitter(creds config.ProviderConfig, logger *common.Logger, opts ...Option) *Provider {
	opts = append([]Option{WithDefaultScope(twitterScope), WithPKCE()}, opts...)
	return New("twitter", endpoints.X, creds, logger, opts...)
}

// NewFacebook creates the Facebook authorization-code provider.
func NewFacebook(creds config.ProviderConfig, logger *common.Logger, opts ...Option) *Provider {
	opts = append([]Option{WithDefaultScope(facebookScope)}, opts...)
	return New("facebook", endpoints.Facebook, creds, logger, opts...)
}

// NewInstagram creates the Instagram authorization-code provider.
func NewInstagram(creds config.ProviderConfig, logger *common.Logger, opts ...Option) *Provider {
	opts = append([]Option{WithDefaultScope(instagramScope)}, opts...)
	return New("instagram", endpoints.Instagram, creds, logger, opts...)
}
