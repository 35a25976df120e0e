package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"socialportal/internal/common"
)

// stateBytes is the number of random bytes for the anti-forgery state
// parameter. 32 bytes encodes to 43 base64url characters.
const stateBytes = 32

// maxTokenResponseSize caps token endpoint response bodies.
const maxTokenResponseSize = 1 << 20

// Token is a successful token-endpoint response. Access and refresh tokens
// are caller-held; this system never persists or logs them.
type Token struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// tokenError is the error shape providers return from the token endpoint.
type tokenError struct {
	Error       string `json:"error"`
	Description string `json:"error_description"`
}

// GenerateState generates a random anti-forgery state parameter,
// base64url-encoded without padding.
func GenerateState() (string, error) {
	buf := make([]byte, stateBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Exchange swaps an authorization code for an access token. The redirect URL
// must match the one used to build the authorization URL; PKCE providers also
// require the code verifier returned by BuildAuthorizeURL. Failures are never
// retried; the caller must restart the authorization flow.
func (p *Provider) Exchange(ctx context.Context, code, redirectURL, codeVerifier string) (*Token, error) {
	if p.creds.ClientID == "" {
		return nil, fmt.Errorf("%s is not configured: missing client_id", p.Name)
	}
	if code == "" {
		return nil, fmt.Errorf("authorization code must not be empty")
	}
	if p.UsePKCE && codeVerifier == "" {
		return nil, fmt.Errorf("%s requires a code_verifier for the exchange", p.Name)
	}

	data := url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {redirectURL},
		"client_id":    {p.creds.ClientID},
	}
	if p.creds.ClientSecret != "" {
		data.Set("client_secret", p.creds.ClientSecret)
	}
	if p.UsePKCE {
		data.Set("code_verifier", codeVerifier)
	}

	p.logger.Info().
		Str("provider", p.Name).
		Str("code", common.TruncateSecret(code)).
		Msg("token exchange started")

	stop := common.StartTimer()
	token, err := p.doTokenRequest(ctx, data)
	elapsed := stop()

	if err != nil {
		p.logger.Warn().
			Str("provider", p.Name).
			Str("code", common.TruncateSecret(code)).
			Int64("duration_ms", elapsed.Milliseconds()).
			Str("error", err.Error()).
			Msg("token exchange failed")
		return nil, err
	}

	p.logger.Info().
		Str("provider", p.Name).
		Int("expires_in", token.ExpiresIn).
		Int64("duration_ms", elapsed.Milliseconds()).
		Msg("token exchange complete")

	return token, nil
}

// Refresh obtains a new access token from a refresh token. Providers that
// rotate refresh tokens return the replacement; the old one is invalid once
// a new one is issued.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*Token, error) {
	if p.creds.ClientID == "" {
		return nil, fmt.Errorf("%s is not configured: missing client_id", p.Name)
	}
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token must not be empty")
	}

	data := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
		"client_id":     {p.creds.ClientID},
	}
	if p.creds.ClientSecret != "" {
		data.Set("client_secret", p.creds.ClientSecret)
	}

	p.logger.Info().Str("provider", p.Name).Msg("token refresh started")

	token, err := p.doTokenRequest(ctx, data)
	if err != nil {
		p.logger.Warn().
			Str("provider", p.Name).
			Str("error", err.Error()).
			Msg("token refresh failed")
		return nil, err
	}

	p.logger.Info().
		Str("provider", p.Name).
		Int("expires_in", token.ExpiresIn).
		Msg("token refresh complete")

	return token, nil
}

// doTokenRequest performs a token endpoint request and maps provider errors
// to human-readable messages.
func (p *Provider) doTokenRequest(ctx context.Context, data url.Values) (*Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint.TokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, p.mapTokenError(resp.StatusCode, body)
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token response contained no access_token")
	}

	return &token, nil
}

// mapTokenError converts a non-200 token response to the failure taxonomy:
// 400 means a bad code or redirect mismatch, 401 means bad client
// credentials, anything else is a generic failure with the body attached.
func (p *Provider) mapTokenError(status int, body []byte) error {
	var te tokenError
	_ = json.Unmarshal(body, &te)

	switch status {
	case http.StatusBadRequest:
		if te.Description != "" {
			return fmt.Errorf("%s: invalid authorization code or callback URL mismatch: %s", p.Name, te.Description)
		}
		return fmt.Errorf("%s: invalid authorization code or callback URL mismatch", p.Name)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: invalid client credentials", p.Name)
	default:
		if te.Description != "" {
			return fmt.Errorf("%s: token endpoint returned %d: %s", p.Name, status, te.Description)
		}
		return fmt.Errorf("%s: token endpoint returned %d: %s", p.Name, status, strings.TrimSpace(string(body)))
	}
}
