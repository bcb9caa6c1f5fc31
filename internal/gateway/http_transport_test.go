package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Get(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		status     int
		body       string
		wantAuth   string
		wantStatus int
	}{
		{
			name:     "ok with token",
			token:    "secret",
			status:   http.StatusOK,
			body:     `{"data": []}`,
			wantAuth: "Bearer secret",
		},
		{
			name:   "ok without token",
			status: http.StatusOK,
			body:   `{"data": []}`,
		},
		{
			name:       "backend error",
			status:     http.StatusBadGateway,
			body:       `{"message": "upstream down"}`,
			wantStatus: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/api/v1/payroll/transactions", r.URL.Path)
				assert.Equal(t, "2", r.URL.Query().Get("page"))
				assert.Equal(t, "ada bello", r.URL.Query().Get("search"))
				assert.Equal(t, tt.wantAuth, r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))
				_, err := uuid.Parse(r.Header.Get("X-Request-ID"))
				assert.NoError(t, err)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			transport, err := NewHTTPTransport(server.URL+"/api/v1/", tt.token, time.Second, nil)
			require.NoError(t, err)

			body, err := transport.Get(context.Background(), "/payroll/transactions", url.Values{"page": {"2"}, "search": {"ada bello"}})
			if tt.wantStatus != 0 {
				var serr *StatusError
				require.True(t, errors.As(err, &serr))
				assert.Equal(t, tt.wantStatus, serr.StatusCode)
				assert.Contains(t, serr.Body, "upstream down")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}

func TestHTTPTransport_RespectsContext(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	transport, err := NewHTTPTransport(server.URL, "", 5*time.Second, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = transport.Get(ctx, "/transactions", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewHTTPTransport_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "://nope"} {
		_, err := NewHTTPTransport(raw, "", time.Second, nil)
		assert.Error(t, err, raw)
	}
}
