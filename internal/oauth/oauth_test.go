package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"socialportal/internal/common"
	"socialportal/internal/config"
)

func testProvider(t *testing.T, tokenURL string, opts ...Option) *Provider {
	t.Helper()
	creds := config.ProviderConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
	endpoint := oauth2.Endpoint{
		AuthURL:  "https://provider.example/authorize",
		TokenURL: tokenURL,
	}
	return New("testprov", endpoint, creds, common.NewSilentLogger(), opts...)
}

func TestBuildAuthorizeURL_GeneratesState(t *testing.T) {
	p := testProvider(t, "https://provider.example/token")

	first, err := p.BuildAuthorizeURL("http://cb", "", "")
	if err != nil {
		t.Fatalf("BuildAuthorizeURL failed: %v", err)
	}
	second, err := p.BuildAuthorizeURL("http://cb", "", "")
	if err != nil {
		t.Fatalf("BuildAuthorizeURL failed: %v", err)
	}

	if !strings.Contains(first.URL, "redirect_uri=http%3A%2F%2Fcb") {
		t.Errorf("expected escaped redirect_uri in URL, got %s", first.URL)
	}
	if first.State == "" {
		t.Error("expected a generated state")
	}
	if first.State == second.State {
		t.Error("expected distinct states across calls")
	}
	if !strings.Contains(first.URL, "state="+url.QueryEscape(first.State)) {
		t.Error("expected state embedded in URL")
	}
}

func TestBuildAuthorizeURL_CallerState(t *testing.T) {
	p := testProvider(t, "https://provider.example/token")

	got, err := p.BuildAuthorizeURL("http://cb", "caller-state", "custom.scope")
	if err != nil {
		t.Fatalf("BuildAuthorizeURL failed: %v", err)
	}
	if got.State != "caller-state" {
		t.Errorf("expected caller state preserved, got %s", got.State)
	}
	if !strings.Contains(got.URL, "scope=custom.scope") {
		t.Errorf("expected scope override in URL, got %s", got.URL)
	}
}

func TestBuildAuthorizeURL_PKCE(t *testing.T) {
	p := testProvider(t, "https://provider.example/token", WithPKCE())

	got, err := p.BuildAuthorizeURL("http://cb", "", "")
	if err != nil {
		t.Fatalf("BuildAuthorizeURL failed: %v", err)
	}

	if got.CodeVerifier == "" || got.CodeChallenge == "" {
		t.Fatal("expected verifier and challenge for PKCE provider")
	}
	// S256 is a pure function of the verifier.
	if oauth2.S256ChallengeFromVerifier(got.CodeVerifier) != got.CodeChallenge {
		t.Error("challenge does not match SHA-256 of verifier")
	}
	if !strings.Contains(got.URL, "code_challenge_method=S256") {
		t.Errorf("expected S256 method in URL, got %s", got.URL)
	}
	if !strings.Contains(got.URL, "code_challenge="+got.CodeChallenge) {
		t.Error("expected challenge embedded in URL")
	}
	if strings.Contains(got.URL, got.CodeVerifier) {
		t.Error("verifier must never appear in the authorization URL")
	}

	other, _ := p.BuildAuthorizeURL("http://cb", "", "")
	if other.CodeVerifier == got.CodeVerifier {
		t.Error("expected independently generated verifiers to differ")
	}
}

func TestBuildAuthorizeURL_NotConfigured(t *testing.T) {
	p := New("bare", oauth2.Endpoint{AuthURL: "https://x/a", TokenURL: "https://x/t"},
		config.ProviderConfig{}, common.NewSilentLogger())

	_, err := p.BuildAuthorizeURL("http://cb", "", "")
	if err == nil || !strings.Contains(err.Error(), "missing client_id") {
		t.Errorf("expected missing client_id error, got %v", err)
	}
}

func TestExchange_Success(t *testing.T) {
	var gotForm url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":7200,"refresh_token":"ref-456","scope":"a b"}`))
	}))
	defer ts.Close()

	p := testProvider(t, ts.URL)
	token, err := p.Exchange(context.Background(), "auth-code", "http://cb", "")
	if err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}

	if token.AccessToken != "tok-123" {
		t.Errorf("unexpected access token %s", token.AccessToken)
	}
	if token.ExpiresIn != 7200 {
		t.Errorf("unexpected expires_in %d", token.ExpiresIn)
	}
	if token.RefreshToken != "ref-456" {
		t.Errorf("unexpected refresh token %s", token.RefreshToken)
	}
	if token.Scope != "a b" {
		t.Errorf("unexpected scope %s", token.Scope)
	}

	if gotForm.Get("grant_type") != "authorization_code" {
		t.Errorf("unexpected grant_type %s", gotForm.Get("grant_type"))
	}
	if gotForm.Get("code") != "auth-code" {
		t.Errorf("unexpected code %s", gotForm.Get("code"))
	}
	if gotForm.Get("redirect_uri") != "http://cb" {
		t.Errorf("unexpected redirect_uri %s", gotForm.Get("redirect_uri"))
	}
	if gotForm.Get("client_secret") != "client-secret" {
		t.Error("expected client_secret on confidential client exchange")
	}
}

func TestExchange_PKCESendsVerifier(t *testing.T) {
	var gotVerifier string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotVerifier = r.PostForm.Get("code_verifier")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","expires_in":3600}`))
	}))
	defer ts.Close()

	p := testProvider(t, ts.URL, WithPKCE())

	if _, err := p.Exchange(context.Background(), "code", "http://cb", ""); err == nil {
		t.Error("expected error when PKCE verifier is missing")
	}

	if _, err := p.Exchange(context.Background(), "code", "http://cb", "the-verifier"); err != nil {
		t.Fatalf("Exchange failed: %v", err)
	}
	if gotVerifier != "the-verifier" {
		t.Errorf("expected verifier forwarded, got %q", gotVerifier)
	}
}

func TestExchange_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantPart string
	}{
		{
			name:     "bad code",
			status:   http.StatusBadRequest,
			body:     `{}`,
			wantPart: "invalid authorization code or callback URL mismatch",
		},
		{
			name:     "bad code with provider description",
			status:   http.StatusBadRequest,
			body:     `{"error":"invalid_grant","error_description":"code expired"}`,
			wantPart: "code expired",
		},
		{
			name:     "bad credentials",
			status:   http.StatusUnauthorized,
			body:     `{"error":"invalid_client"}`,
			wantPart: "invalid client credentials",
		},
		{
			name:     "server error",
			status:   http.StatusBadGateway,
			body:     `upstream broke`,
			wantPart: "token endpoint returned 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			p := testProvider(t, ts.URL)
			_, err := p.Exchange(context.Background(), "some-code", "http://cb", "")
			if err == nil {
				t.Fatal("expected exchange to fail")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("expected %q in error, got %q", tt.wantPart, err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if r.PostForm.Get("grant_type") != "refresh_token" {
			t.Errorf("unexpected grant_type %s", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("refresh_token") != "old-refresh" {
			t.Errorf("unexpected refresh_token %s", r.PostForm.Get("refresh_token"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-tok","expires_in":7200,"refresh_token":"rotated"}`))
	}))
	defer ts.Close()

	p := testProvider(t, ts.URL, WithPKCE())
	token, err := p.Refresh(context.Background(), "old-refresh")
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if token.AccessToken != "new-tok" {
		t.Errorf("unexpected access token %s", token.AccessToken)
	}
	if token.RefreshToken != "rotated" {
		t.Errorf("expected rotated refresh token, got %s", token.RefreshToken)
	}
}

func TestGenerateState_Distinct(t *testing.T) {
	a, err := GenerateState()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateState()
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("expected distinct states")
	}
	if len(a) < 32 {
		t.Errorf("expected at least 32 characters of state, got %d", len(a))
	}
}

func TestDefaultProviders(t *testing.T) {
	logger := common.NewSilentLogger()
	creds := config.ProviderConfig{ClientID: "id"}

	li := NewLinkedIn(creds, logger)
	if li.UsePKCE {
		t.Error("linkedin must not use PKCE")
	}
	tw := NewTwitter(creds, logger)
	if !tw.UsePKCE {
		t.Error("twitter must use PKCE")
	}
	fb := NewFacebook(creds, logger)
	if fb.DefaultScope == "" {
		t.Error("facebook needs a default scope")
	}
	ig := NewInstagram(creds, logger)
	if ig.Endpoint.TokenURL == "" {
		t.Error("instagram needs a token endpoint")
	}
}
