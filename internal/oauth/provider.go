// Package oauth implements the authorization-code exchange helpers for the
// social platforms the gateway fronts. The server never stores state or
// verifiers: both are generated here and returned to the caller, who replays
// them on the later exchange call.
package oauth

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"socialportal/internal/common"
	"socialportal/internal/config"
)

// DefaultHTTPTimeout bounds every token-endpoint request.
const DefaultHTTPTimeout = 30 * time.Second

// Provider holds the endpoints and client credentials for one platform.
type Provider struct {
	Name         string
	Endpoint     oauth2.Endpoint
	DefaultScope string

	// UsePKCE marks providers requiring a verifier/challenge pair
	// (Twitter in this system).
	UsePKCE bool

	creds      config.ProviderConfig
	httpClient *http.Client
	logger     *common.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithHTTPClient sets a custom HTTP client for token requests.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Provider) { p.httpClient = c }
}

// WithPKCE enables the verifier/challenge pair on authorization and exchange.
func WithPKCE() Option {
	return func(p *Provider) { p.UsePKCE = true }
}

// WithDefaultScope sets the scope used when the caller supplies none.
func WithDefaultScope(scope string) Option {
	return func(p *Provider) { p.DefaultScope = scope }
}

// New creates a provider with the given endpoints and credentials.
func New(name string, endpoint oauth2.Endpoint, creds config.ProviderConfig, logger *common.Logger, opts ...Option) *Provider {
	p := &Provider{
		Name:       name,
		Endpoint:   endpoint,
		creds:      creds,
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthorizeURL is the result of building an authorization URL. The state and,
// for PKCE providers, the code verifier are returned to the caller; the
// server keeps no copy.
type AuthorizeURL struct {
	URL           string `json:"url"`
	State         string `json:"state"`
	CodeVerifier  string `json:"code_verifier,omitempty"`
	CodeChallenge string `json:"code_challenge,omitempty"`
}

// BuildAuthorizeURL builds the provider's authorization URL. No network call
// is made. An empty state yields a freshly generated random one; an empty
// scope falls back to the provider default.
func (p *Provider) BuildAuthorizeURL(redirectURL, state, scope string) (*AuthorizeURL, error) {
	if p.creds.ClientID == "" {
		return nil, fmt.Errorf("%s is not configured: missing client_id", p.Name)
	}
	if redirectURL == "" {
		return nil, fmt.Errorf("redirect URL must not be empty")
	}

	if state == "" {
		var err error
		state, err = GenerateState()
		if err != nil {
			return nil, fmt.Errorf("failed to generate state: %w", err)
		}
	}
	if scope == "" {
		scope = p.DefaultScope
	}

	authURL, err := url.Parse(p.Endpoint.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("invalid authorization endpoint: %w", err)
	}

	query := authURL.Query()
	query.Set("response_type", "code")
	query.Set("client_id", p.creds.ClientID)
	query.Set("redirect_uri", redirectURL)
	query.Set("state", state)
	if scope != "" {
		query.Set("scope", scope)
	}

	result := &AuthorizeURL{State: state}

	if p.UsePKCE {
		verifier := oauth2.GenerateVerifier()
		challenge := oauth2.S256ChallengeFromVerifier(verifier)
		query.Set("code_challenge", challenge)
		query.Set("code_challenge_method", "S256")
		result.CodeVerifier = verifier
		result.CodeChallenge = challenge
	}

	authURL.RawQuery = query.Encode()
	result.URL = authURL.String()
	return result, nil
}
