package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, e.Body)
}

// HTTPTransport issues read-only JSON queries against the operations API.
type HTTPTransport struct {
	baseURL *url.URL
	token   string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPTransport validates baseURL and builds a client with the given
// timeout. token may be empty.
func NewHTTPTransport(baseURL, token string, timeout time.Duration, logger *zap.Logger) (*HTTPTransport, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPTransport{
		baseURL: u,
		token:   token,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

func (t *HTTPTransport) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := t.baseURL.JoinPath(path)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Path, err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("read %s: response exceeds %d bytes", u.Path, maxResponseBytes)
	}

	t.logger.Debug("backend request",
		zap.String("requestId", requestID),
		zap.String("path", u.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
