package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/config"
	"github.com/bitcoindeepa/miniapp-gateway/internal/infrastructure/upstream"
)

func newTestClient(baseURL string, maxRetries int) *upstream.Client {
	return upstream.NewClient(config.UpstreamConfig{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		RetryDelay: time.Millisecond,
	}, zap.NewNop())
}

func TestClientForwardsBearer(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		w.Write([]byte(`{"subscription":{"id":"s1","status":"active"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	res, err := client.CurrentSubscription(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Bearer tok-123", gotAuth.Load())
}

func TestClientOmitsAuthOnPublicOps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "/package", r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.ListPackages(context.Background())
	require.NoError(t, err)
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no subscription"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.CurrentSubscription(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, upstream.IsNotFound(err))
	assert.Equal(t, http.StatusNotFound, upstream.ErrorStatus(err))
	assert.Equal(t, "no subscription", upstream.ErrorMessage(err))
}

func TestClientErrorMessages(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"json message field", http.StatusBadRequest, `{"message":"bad package"}`, "bad package"},
		{"json error field", http.StatusConflict, `{"error":"already subscribed"}`, "already subscribed"},
		{"raw text body", http.StatusForbidden, "kyc required", "kyc required"},
		{"empty body falls back", http.StatusBadGateway, "", "HTTP 502: Bad Gateway"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL, 0)
			_, err := client.PayhereLink(context.Background(), "tok", "p1")
			require.Error(t, err)
			assert.Equal(t, tc.status, upstream.ErrorStatus(err))
			assert.Equal(t, tc.message, upstream.ErrorMessage(err))
		})
	}
}

func TestClientTransportFailure(t *testing.T) {
	// A server that is already closed is guaranteed unreachable.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.DCASummary(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, upstream.IsTransport(err))
	assert.Equal(t, http.StatusInternalServerError, upstream.ErrorStatus(err))
}

func TestClientRetryPolicy(t *testing.T) {
	t.Run("fail fast by default", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 0)
		_, err := client.CancelSubscription(context.Background(), "tok")
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("retries transient failures when configured", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"link":"https://pay.example/x"}`))
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 2)
		res, err := client.PayhereLink(context.Background(), "tok", "p1")
		require.NoError(t, err)
		assert.Equal(t, int32(3), calls.Load())
		assert.Contains(t, string(res.Body), "pay.example")
	})

	t.Run("client errors are not retried", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL, 3)
		_, err := client.PayhereLink(context.Background(), "tok", "p1")
		require.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestClientQueryPassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/list", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.ListTransactions(context.Background(), "tok", "2", "25")
	require.NoError(t, err)
}
