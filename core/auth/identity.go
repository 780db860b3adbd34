package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mintverde/config"
)

// ErrSessionRejected is returned when the identity provider does not
// recognize the presented session token.
var ErrSessionRejected = errors.New("session rejected by identity provider")

// Identity is the verified identity returned by the external provider.
type Identity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nombre   string `json:"name"`
	Imagen   string `json:"picture,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// IdentityService is the external OAuth/session provider, consumed as a
// black box. Every request re-validates the token; nothing is cached.
type IdentityService interface {
	RedirectURL(ctx context.Context) (string, error)
	ExchangeCode(ctx context.Context, code string) (string, error)
	CurrentUser(ctx context.Context, token string) (*Identity, error)
	DeleteSession(ctx context.Context, token string) error
}

type identityClient struct {
	cfg    config.IdentityConfig
	client *http.Client
}

func NewIdentityClient(cfg config.IdentityConfig) IdentityService {
	return &identityClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout()},
	}
}

func (c *identityClient) RedirectURL(ctx context.Context) (string, error) {
	var out struct {
		RedirectURL string `json:"redirectUrl"`
	}
	url := fmt.Sprintf("%s/oauth/%s/redirect_url", strings.TrimRight(c.cfg.APIURL, "/"), c.cfg.Provider)
	if err := c.do(ctx, http.MethodGet, url, "", nil, &out); err != nil {
		return "", err
	}
	if out.RedirectURL == "" {
		return "", errors.New("identity provider returned empty redirect url")
	}
	return out.RedirectURL, nil
}

func (c *identityClient) ExchangeCode(ctx context.Context, code string) (string, error) {
	var out struct {
		SessionToken string `json:"sessionToken"`
	}
	url := strings.TrimRight(c.cfg.APIURL, "/") + "/sessions"
	body := map[string]string{"code": code}
	if err := c.do(ctx, http.MethodPost, url, "", body, &out); err != nil {
		return "", err
	}
	if out.SessionToken == "" {
		return "", errors.New("identity provider returned empty session token")
	}
	return out.SessionToken, nil
}

func (c *identityClient) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	var out Identity
	url := strings.TrimRight(c.cfg.APIURL, "/") + "/users/me"
	if err := c.do(ctx, http.MethodGet, url, token, nil, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Email) == "" {
		return nil, ErrSessionRejected
	}
	return &out, nil
}

func (c *identityClient) DeleteSession(ctx context.Context, token string) error {
	url := strings.TrimRight(c.cfg.APIURL, "/") + "/sessions/current"
	return c.do(ctx, http.MethodDelete, url, token, nil, nil)
}

func (c *identityClient) do(ctx context.Context, method, url, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrSessionRejected
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("identity provider: %s: %s", resp.Status, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
