package odin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/platform/httpclient"
	"pet-care-tracker/internal/ports/auth"
)

var (
	ErrOdinNotConfigured = errors.New("odin client not configured")
	ErrOdinUnauthorized  = errors.New("odin unauthorized")
	ErrOdinUpstream      = errors.New("odin upstream error")
	ErrTokenEmpty        = errors.New("token is empty")
)

var _ auth.AuthVerifier = (*Client)(nil)

const verifyPath = "/v1/tokens/verify"

// Config del cliente Odin (viene de auth.odin.* en la config del servicio).
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// Opcional: latencia de cada llamada (métricas).
	Observer httpclient.Observer
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc, err := httpclient.New(cfg.BaseURL, httpclient.WithTimeout(timeout), httpclient.WithObserver(cfg.Observer))
	if err != nil {
		return nil, fmt.Errorf("odin: %w", err)
	}
	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

// Verify pide a Odin las claims del token. main lo usa como auth.AuthVerifier.
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrOdinNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	headers := map[string]string{
		c.apiKeyHeader: c.apiKey,
		// Algunos IAM esperan el token en Authorization, aunque también vaya en body.
		"Authorization": "Bearer " + token,
	}

	var out verifyResponse
	err := c.http.DoJSON(ctx, http.MethodPost, verifyPath, headers, map[string]string{"token": token}, &out)
	if err != nil {
		if st := httpclient.StatusOf(err); st == http.StatusUnauthorized || st == http.StatusForbidden {
			return auth.Claims{}, ErrOdinUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrOdinUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrOdinUpstream)
	}

	return auth.Claims{
		UserID:   out.UserID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
	}, nil
}
