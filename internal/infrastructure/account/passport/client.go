// Package passport verifies access tokens against the account service's
// introspection endpoint.
package passport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/gridironhq/gridiron/internal/domain/user"
	"github.com/gridironhq/gridiron/internal/platform/logging"
	"github.com/gridironhq/gridiron/internal/platform/resilience"
	"github.com/gridironhq/gridiron/internal/usecase"
)

const (
	defaultTimeout   = 5 * time.Second
	maxResponseBytes = 1 << 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	ServiceToken   string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient   *http.Client
	baseURL      string
	serviceToken string
	logger       *logging.Logger
	breaker      *resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("passport base url is required")
	}
	if cfg.ServiceToken == "" {
		return nil, fmt.Errorf("passport service token is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      cfg.BaseURL,
		serviceToken: cfg.ServiceToken,
		logger:       cfg.Logger,
		breaker:      resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Plan   string `json:"plan"`
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: empty access token", usecase.ErrUnauthorized)
	}
	if err := c.breaker.Allow(); err != nil {
		return user.Principal{}, fmt.Errorf("%w: %s", usecase.ErrDependencyUnavailable, err)
	}

	principal, err := c.introspect(ctx, token)
	if err != nil {
		// Rejected tokens are the caller's problem, not the dependency's.
		if errors.Is(err, usecase.ErrDependencyUnavailable) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
		return user.Principal{}, err
	}
	c.breaker.RecordSuccess()
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	payload, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("encode introspect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/tokens/introspect", bytes.NewReader(payload))
	if err != nil {
		return user.Principal{}, fmt.Errorf("build introspect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.serviceToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: introspect request: %s", usecase.ErrDependencyUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: read introspect response: %s", usecase.ErrDependencyUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError:
		return user.Principal{}, fmt.Errorf("%w: introspect status %d", usecase.ErrDependencyUnavailable, resp.StatusCode)
	default:
		return user.Principal{}, fmt.Errorf("%w: introspect status %d", usecase.ErrUnauthorized, resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: decode introspect response: %s", usecase.ErrDependencyUnavailable, err)
	}
	if !decoded.Active || decoded.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: token is not active", usecase.ErrUnauthorized)
	}

	return user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Plan:   decoded.Plan,
	}, nil
}
