package keycloak

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrUpstreamRejected is returned when the identity provider answers with a
// non-2xx status, i.e. the credentials or token were refused.
var ErrUpstreamRejected = fmt.Errorf("identity provider rejected the request")

// Config holds the connection parameters for a Keycloak realm.
type Config struct {
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string
}

// Client is a minimal HTTP client for the Keycloak token endpoints. It is a
// pure proxy: no token inspection or caching is performed.
type Client struct {
	httpClient *http.Client
	cfg        Config
	debug      bool
}

// NewClient constructs a new Keycloak client with sane defaults.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		cfg:        cfg,
		debug:      os.Getenv("ENV") == "development",
	}
}

// Login exchanges username/password for tokens via the password grant.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type": {"password"},
		"username":   {username},
		"password":   {password},
	}
	return c.tokenRequest(ctx, form)
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	return c.tokenRequest(ctx, form)
}

// Logout revokes a refresh token.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	form := url.Values{"refresh_token": {refreshToken}}
	c.withClientCredentials(form)

	resp, err := c.postForm(ctx, c.endpoint("logout"), form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ErrUpstreamRejected
	}
	return nil
}

// endpoint builds an openid-connect endpoint URL for the configured realm.
func (c *Client) endpoint(name string) string {
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/%s", base, c.cfg.Realm, name)
}

func (c *Client) withClientCredentials(form url.Values) {
	form.Set("client_id", c.cfg.ClientID)
	if c.cfg.ClientSecret != "" {
		form.Set("client_secret", c.cfg.ClientSecret)
	}
}

// tokenRequest performs a form POST to the token endpoint and decodes the
// grant response.
func (c *Client) tokenRequest(ctx context.Context, form url.Values) (*TokenResponse, error) {
	c.withClientCredentials(form)

	resp, err := c.postForm(ctx, c.endpoint("token"), form)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Int("status_code", resp.StatusCode).
			Msg("[KEYCLOAK] Token endpoint response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var kcErr ErrorResponse
		if json.Unmarshal(body, &kcErr) == nil && kcErr.Error != "" {
			log.Warn().
				Str("error", kcErr.Error).
				Str("description", kcErr.ErrorDescription).
				Msg("[KEYCLOAK] Grant rejected")
		}
		return nil, ErrUpstreamRejected
	}

	var token TokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &token, nil
}

func (c *Client) postForm(ctx context.Context, endpoint string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
