package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/config"
)

// DefaultTimeout for upstream HTTP requests
const DefaultTimeout = 30 * time.Second

// Client talks to the upstream API that owns business logic, persistence and
// payment integration. Calls are single request-response round trips; retries
// are off unless MaxRetries is configured (transient transport and 5xx
// failures only).
type Client struct {
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// Result carries a 2xx upstream response
type Result struct {
	Status int
	Body   []byte
}

// NewClient creates a new upstream API client
func NewClient(cfg config.UpstreamConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// AuthenticateTelegram exchanges a Telegram-signed init payload for a token
func (c *Client) AuthenticateTelegram(ctx context.Context, initData string) (*Result, error) {
	body := map[string]string{"initData": initData}
	return c.do(ctx, http.MethodPost, "/auth/telegram", "", body)
}

// ListPackages fetches the subscription plan catalog
func (c *Client) ListPackages(ctx context.Context) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/package", "", nil)
}

// CancelSubscription cancels the caller's active subscription
func (c *Client) CancelSubscription(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodPost, "/subscription/cancel", token, nil)
}

// CurrentSubscription fetches the caller's active subscription. A 404 means
// no active subscription and surfaces as a StatusError the caller translates.
func (c *Client) CurrentSubscription(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/subscription/current", token, nil)
}

// PayhereLink asks the upstream to generate a PayHere checkout link
func (c *Client) PayhereLink(ctx context.Context, token, packageID string) (*Result, error) {
	body := map[string]string{"package_id": packageID}
	return c.do(ctx, http.MethodPost, "/subscription/payhere-link", token, body)
}

// DCASummary fetches the aggregated savings view
func (c *Client) DCASummary(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/transaction/dca-summary", token, nil)
}

// LatestTransactions fetches the most recent transaction(s)
func (c *Client) LatestTransactions(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/transaction/latest", token, nil)
}

// ListTransactions fetches a page of the caller's transaction history
func (c *Client) ListTransactions(ctx context.Context, token, page, limit string) (*Result, error) {
	path := "/transaction/list"
	params := url.Values{}
	if page != "" {
		params.Set("page", page)
	}
	if limit != "" {
		params.Set("limit", limit)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, token, nil)
}

// UserExists checks whether a Telegram user is already registered
func (c *Client) UserExists(ctx context.Context, telegramID string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/user/exists/"+url.PathEscape(telegramID), "", nil)
}

// CreateUser registers a new user. The registration fields are forwarded
// verbatim; the upstream owns validation.
func (c *Client) CreateUser(ctx context.Context, token string, body json.RawMessage) (*Result, error) {
	return c.do(ctx, http.MethodPost, "/user", token, body)
}

// InitiateKYC starts a verification session for the caller
func (c *Client) InitiateKYC(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodPost, "/user/kyc/initiate", token, nil)
}

// KYCStatus fetches the caller's verification state
func (c *Client) KYCStatus(ctx context.Context, token string) (*Result, error) {
	return c.do(ctx, http.MethodGet, "/user/kyc/status", token, nil)
}

// do performs one upstream round trip. The bearer token, when present, is
// re-attached as "Bearer <token>". Non-2xx responses become StatusError with
// a best-effort message; failures to reach the upstream become
// TransportError once retries (if any) are exhausted.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) (*Result, error) {
	var reqBody []byte
	if body != nil {
		var err error
		if raw, ok := body.(json.RawMessage); ok {
			reqBody = raw
		} else if reqBody, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var lastErr error
	attempts := c.maxRetries + 1

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &TransportError{Err: ctx.Err()}
			case <-time.After(c.retryDelay * time.Duration(attempt)):
			}
		}

		var reader io.Reader
		if reqBody != nil {
			reader = bytes.NewReader(reqBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &TransportError{Err: err}
			c.logger.Warn("upstream request failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = &TransportError{Err: readErr}
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return &Result{Status: resp.StatusCode, Body: respBody}, nil
		}

		statusErr := &StatusError{
			Status:  resp.StatusCode,
			Message: bestEffortMessage(resp.StatusCode, respBody),
		}
		// Only server-side failures are worth retrying.
		if resp.StatusCode < 500 {
			return nil, statusErr
		}
		lastErr = statusErr
		c.logger.Warn("upstream returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Int("attempt", attempt+1),
		)
	}

	return nil, lastErr
}

// Close closes idle upstream connections
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
