package app

import (
	"context"

	"socialportal/internal/config"
	"socialportal/internal/oauth"
	"socialportal/internal/registry"
)

// registerOperations populates the registry with every tool and resource the
// portal exposes. Called once during New; the registry is read-only afterward.
func (a *App) registerOperations(c *catalogue) {
	a.registerOAuthTools(c)
	a.registerPlatformTools(c)
	a.registerAuthURLResources(c)
	a.registerAccountResources(c)
	a.registerServerInfo()
}

func (a *App) registerOAuthTools(c *catalogue) {
	a.Registry.RegisterTool(&registry.Operation{
		Name:        "linkedin_exchange_code",
		Description: "Exchange a LinkedIn authorization code for an access token",
		Params: []registry.Param{
			{Name: "code", Type: "string", Description: "Authorization code returned to the callback URL", Required: true},
			{Name: "redirect_url", Type: "string", Description: "Callback URL the code was issued for", Required: true},
		},
		Handler: exchangeExecutor(c.linkedinOAuth, false),
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "twitter_exchange_code",
		Description: "Exchange a Twitter authorization code for an access token (PKCE)",
		Params: []registry.Param{
			{Name: "code", Type: "string", Description: "Authorization code returned to the callback URL", Required: true},
			{Name: "redirect_url", Type: "string", Description: "Callback URL the code was issued for", Required: true},
			{Name: "code_verifier", Type: "string", Description: "PKCE code verifier from the authorize step", Required: true},
		},
		Handler: exchangeExecutor(c.twitterOAuth, true),
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "twitter_refresh_token",
		Description: "Refresh a Twitter access token",
		Params: []registry.Param{
			{Name: "refresh_token", Type: "string", Description: "Refresh token from a previous exchange", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.twitterOAuth.Refresh(ctx, argString(args, "refresh_token"))
		},
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "facebook_exchange_code",
		Description: "Exchange a Facebook authorization code for an access token",
		Params: []registry.Param{
			{Name: "code", Type: "string", Description: "Authorization code returned to the callback URL", Required: true},
			{Name: "redirect_url", Type: "string", Description: "Callback URL the code was issued for", Required: true},
		},
		Handler: exchangeExecutor(c.facebookOAuth, false),
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "instagram_exchange_code",
		Description: "Exchange an Instagram authorization code for an access token",
		Params: []registry.Param{
			{Name: "code", Type: "string", Description: "Authorization code returned to the callback URL", Required: true},
			{Name: "redirect_url", Type: "string", Description: "Callback URL the code was issued for", Required: true},
		},
		Handler: exchangeExecutor(c.instagramOAuth, false),
	})
}

func (a *App) registerPlatformTools(c *catalogue) {
	a.Registry.RegisterTool(&registry.Operation{
		Name:        "linkedin_create_post",
		Description: "Publish a text post to the authenticated LinkedIn profile",
		Params: []registry.Param{
			{Name: "access_token", Type: "string", Description: "LinkedIn access token", Required: true},
			{Name: "text", Type: "string", Description: "Post body", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.linkedin.CreatePost(ctx, argString(args, "access_token"), argString(args, "text"))
		},
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "twitter_post_tweet",
		Description: "Post a tweet as the authenticated Twitter user",
		Params: []registry.Param{
			{Name: "access_token", Type: "string", Description: "Twitter access token", Required: true},
			{Name: "text", Type: "string", Description: "Tweet text", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.twitter.PostTweet(ctx, argString(args, "access_token"), argString(args, "text"))
		},
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "facebook_post_to_page",
		Description: "Publish a message to a Facebook page feed",
		Params: []registry.Param{
			{Name: "access_token", Type: "string", Description: "Page access token", Required: true},
			{Name: "page_id", Type: "string", Description: "Target page identifier", Required: true},
			{Name: "message", Type: "string", Description: "Message body", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.facebook.PostToPage(ctx,
				argString(args, "access_token"),
				argString(args, "page_id"),
				argString(args, "message"))
		},
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "instagram_create_post",
		Description: "Publish an image post to an Instagram business account",
		Params: []registry.Param{
			{Name: "access_token", Type: "string", Description: "Instagram access token", Required: true},
			{Name: "account_id", Type: "string", Description: "Instagram business account identifier", Required: true},
			{Name: "image_url", Type: "string", Description: "Publicly reachable image URL", Required: true},
			{Name: "caption", Type: "string", Description: "Optional caption", Required: false},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.instagram.CreateMediaPost(ctx,
				argString(args, "access_token"),
				argString(args, "account_id"),
				argString(args, "image_url"),
				argString(args, "caption"))
		},
	})

	a.Registry.RegisterTool(&registry.Operation{
		Name:        "generate_post",
		Description: "Generate social media post copy for a topic",
		Params: []registry.Param{
			{Name: "topic", Type: "string", Description: "Subject of the post", Required: true},
			{Name: "platform", Type: "string", Description: "Target platform, e.g. linkedin or twitter", Required: false},
			{Name: "tone", Type: "string", Description: "Desired tone, e.g. professional or casual", Required: false},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.ai.GenerateContent(ctx,
				argString(args, "topic"),
				argString(args, "platform"),
				argString(args, "tone"))
		},
	})
}

func (a *App) registerAuthURLResources(c *catalogue) {
	for _, p := range []*oauth.Provider{c.linkedinOAuth, c.twitterOAuth, c.facebookOAuth, c.instagramOAuth} {
		a.Registry.RegisterResource(&registry.Operation{
			Name:        p.Name + "_auth_url",
			Description: "Build the " + p.Name + " OAuth authorization URL",
			Params: []registry.Param{
				{Name: "redirect_url", Type: "string", Description: "Callback URL registered with the provider", Required: true},
				{Name: "state", Type: "string", Description: "Opaque state value, generated when omitted", Required: false},
				{Name: "scope", Type: "string", Description: "Space-separated scopes, provider default when omitted", Required: false},
			},
			Handler: authURLExecutor(p),
		})
	}
}

func (a *App) registerAccountResources(c *catalogue) {
	tokenParam := []registry.Param{
		{Name: "access_token", Type: "string", Description: "Provider access token", Required: true},
	}

	a.Registry.RegisterResource(&registry.Operation{
		Name:        "linkedin_profile",
		Description: "Fetch the authenticated LinkedIn profile",
		Params:      tokenParam,
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.linkedin.GetProfile(ctx, argString(args, "access_token"))
		},
	})

	a.Registry.RegisterResource(&registry.Operation{
		Name:        "twitter_user",
		Description: "Fetch the authenticated Twitter user",
		Params:      tokenParam,
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.twitter.GetMe(ctx, argString(args, "access_token"))
		},
	})

	a.Registry.RegisterResource(&registry.Operation{
		Name:        "facebook_pages",
		Description: "List Facebook pages the authenticated user manages",
		Params:      tokenParam,
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.facebook.GetPages(ctx, argString(args, "access_token"))
		},
	})

	a.Registry.RegisterResource(&registry.Operation{
		Name:        "instagram_account",
		Description: "Fetch the connected Instagram account",
		Params:      tokenParam,
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return c.instagram.GetAccount(ctx, argString(args, "access_token"))
		},
	})
}

func (a *App) registerServerInfo() {
	providerNames := make([]string, 0, len(a.Config.Providers))
	for name := range a.Config.Providers {
		providerNames = append(providerNames, name)
	}

	a.Registry.RegisterResource(&registry.Operation{
		Name:        "server_info",
		Description: "Server name, version, and configured providers",
		Params:      nil,
		Handler: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return map[string]interface{}{
				"name":      "social-portal",
				"version":   config.GetVersion(),
				"build":     config.GetBuild(),
				"providers": providerNames,
			}, nil
		},
	})
}

func exchangeExecutor(p *oauth.Provider, pkce bool) registry.Handler {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		verifier := ""
		if pkce {
			verifier = argString(args, "code_verifier")
		}
		return p.Exchange(ctx, argString(args, "code"), argString(args, "redirect_url"), verifier)
	}
}

func authURLExecutor(p *oauth.Provider) registry.Handler {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return p.BuildAuthorizeURL(
			argString(args, "redirect_url"),
			argString(args, "state"),
			argString(args, "scope"))
	}
}

// argString reads a string argument, tolerating absent or non-string values.
func argString(args map[string]interface{}, key string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
