// Package upstream implements the typed HTTP client for the external
// BingePlan API, the sole owner of persistence, credentials and the
// Google Calendar integration.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mpadjest/bingeplan-web/internal/models"
	"github.com/mpadjest/bingeplan-web/pkg/config"
	appErrors "github.com/mpadjest/bingeplan-web/pkg/errors"
)

// Client talks to the upstream API. All methods are single round-trips:
// no retries, no backoff, no request cancellation beyond the context.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client with a tuned transport and the configured
// per-request timeout.
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  logger,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	var res struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", "", req, &res); err != nil {
		if appErrors.Is(err, appErrors.ErrSessionExpired) {
			return "", appErrors.ErrInvalidCredentials
		}
		return "", err
	}
	if res.AccessToken == "" {
		return "", appErrors.Clone(appErrors.ErrUpstream, "login response missing access token")
	}
	return res.AccessToken, nil
}

// Register creates a new upstream account.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/register", "", req, nil)
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListEvents returns all events for the authenticated user.
func (c *Client) ListEvents(ctx context.Context, token string) ([]models.Event, error) {
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", token, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvents submits a batch of event payloads in one request.
func (c *Client) CreateEvents(ctx context.Context, token string, payloads []models.EventPayload) error {
	wire := make([]models.EventPayload, len(payloads))
	for i, p := range payloads {
		wire[i] = p.UTC()
	}
	return c.do(ctx, http.MethodPost, "/events/batch", token, wire, nil)
}

// UpdateEvent replaces a single event keyed by its upstream id.
func (c *Client) UpdateEvent(ctx context.Context, token string, id int64, payload models.EventPayload) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), token, payload.UTC(), nil)
}

// DeleteEvent removes a single event keyed by its upstream id.
func (c *Client) DeleteEvent(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), token, nil, nil)
}

// UpdateProfile saves the editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, token string, req models.ProfileUpdateRequest) error {
	return c.do(ctx, http.MethodPut, "/users/me", token, req, nil)
}

// GoogleAuthURL fetches the external authorization URL to redirect to.
func (c *Client) GoogleAuthURL(ctx context.Context, token string) (string, error) {
	var res struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/google/url", token, nil, &res); err != nil {
		return "", err
	}
	return res.URL, nil
}

// GoogleCallback exchanges the one-time authorization code.
func (c *Client) GoogleCallback(ctx context.Context, token, code string) error {
	return c.do(ctx, http.MethodPost, "/auth/google/callback?code="+url.QueryEscape(code), token, nil, nil)
}

// GoogleDisconnect detaches the linked Google account.
func (c *Client) GoogleDisconnect(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/auth/google/disconnect", token, nil, nil)
}

// SyncGoogle pushes the schedule to the connected Google Calendar and
// returns the upstream status message.
func (c *Client) SyncGoogle(ctx context.Context, token string) (string, error) {
	var res struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/events/sync-google", token, nil, &res); err != nil {
		return "", err
	}
	return res.Message, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrUpstreamDown.Code, appErrors.ErrUpstreamDown.Status, appErrors.ErrUpstreamDown.Message)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		return appErrors.ErrSessionExpired
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return upstreamError(res)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode upstream response")
		}
	}
	return nil
}

// upstreamError reads the conventional {"detail": "..."} error body and
// falls back to the generic message.
func upstreamError(res *http.Response) error {
	message := appErrors.ErrUpstream.Message
	raw, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err == nil && len(raw) > 0 {
		var body struct {
			Detail  string `json:"detail"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &body) == nil {
			if body.Detail != "" {
				message = body.Detail
			} else if body.Message != "" {
				message = body.Message
			}
		}
	}
	status := appErrors.ErrUpstream.Status
	if res.StatusCode >= 400 && res.StatusCode < 500 {
		status = res.StatusCode
	}
	return appErrors.New(appErrors.ErrUpstream.Code, status, message)
}
