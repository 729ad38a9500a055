package observability

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBetterStackEndpoint(t *testing.T) {
	assert.Equal(t, "", normalizeBetterStackEndpoint("  "))
	assert.Equal(t, "https://in.logs.betterstack.com", normalizeBetterStackEndpoint("in.logs.betterstack.com"))
	assert.Equal(t, "http://localhost:8080", normalizeBetterStackEndpoint("http://localhost:8080"))
	assert.Equal(t, "https://ingest.example.com", normalizeBetterStackEndpoint("https://ingest.example.com"))
}

func TestBetterStackShipperDelivers(t *testing.T) {
	var (
		mu     sync.Mutex
		bodies []string
		auths  []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		auths = append(auths, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	shipper := newBetterStackShipper(srv.URL, "tok-123", time.Second)

	_, err := shipper.Write([]byte(`{"msg":"hello"}` + "\n"))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, shipper.Close(ctx))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	assert.Equal(t, `{"msg":"hello"}`, bodies[0])
	assert.Equal(t, "Bearer tok-123", auths[0])
}

func TestBetterStackShipperIgnoresWritesAfterClose(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	shipper := newBetterStackShipper(srv.URL, "", time.Second)
	require.NoError(t, shipper.Close(context.Background()))

	n, err := shipper.Write([]byte(`{"msg":"late"}`))
	assert.NoError(t, err)
	assert.Equal(t, len(`{"msg":"late"}`), n)
}
