package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/questx-lab/questkit/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func TestClient_FallbackOnServerError(t *testing.T) {
	var broken atomic.Int32
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		broken.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer failing.Close()

	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-type"))
		require.Equal(t, "a=1&b=x%20y", r.URL.RawQuery)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"id":7}`, string(body))

		w.Write([]byte(`{"id":7,"nested":{"ok":true},"items":[{"n":1},{"n":2}]}`))
	}))
	defer healthy.Close()

	generator := NewGenerator([]string{failing.URL, healthy.URL}, OAuth2("Bearer", "token"))

	// Domains are shuffled, so repeat until the failing one was tried first.
	for i := 0; i < 20; i++ {
		resp, err := generator.New("/items/%d", 7).
			Query(Parameter{"b": "x y", "a": "1"}).
			Body(JSON{"id": 7}).
			POST(context.Background())
		require.NoError(t, err)
		require.True(t, resp.IsSuccess())

		body, ok := resp.Body.(JSON)
		require.True(t, ok)

		id, err := body.GetInt("id")
		require.NoError(t, err)
		require.Equal(t, 7, id)

		nested, err := body.GetBool("nested.ok")
		require.NoError(t, err)
		require.True(t, nested)

		items, err := body.GetArray("items")
		require.NoError(t, err)
		require.Len(t, items, 2)
	}

	require.Positive(t, broken.Load())
}

func TestClient_ClientErrorIsReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"already linked"}`))
	}))
	defer server.Close()

	resp, err := NewGenerator([]string{server.URL}).New("/wallets").POST(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, resp.Code)
	require.False(t, resp.IsSuccess())
}

func TestClient_AllEndpointsDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewGenerator([]string{url}).New("/quests").GET(context.Background())
	require.True(t, errorx.Is(err, errorx.Unavailable))
}

func TestClient_LastServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	resp, err := NewGenerator([]string{server.URL}).New("/quests").GET(context.Background())
	require.NoError(t, err)
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
}

func TestClient_OptsAndQuery(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantAuth  string
		wantQuery string
	}{
		{
			name:      "authenticated",
			token:     "abc",
			wantAuth:  "Bearer abc",
			wantQuery: "address=0x1&token%20id=a%20b",
		},
		{
			name:      "anonymous",
			wantQuery: "address=0x1&token%20id=a%20b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, tt.wantAuth, r.Header.Get("Authorization"))
				require.Equal(t, "questkit", r.Header.Get("User-Agent"))
				require.Equal(t, tt.wantQuery, r.URL.RawQuery)
			}))
			defer server.Close()

			generator := NewGenerator([]string{server.URL}, OAuth2("Bearer", tt.token), UserAgent("questkit"))
			resp, err := generator.New("/rewards/%d/signature", 1).
				Query(Parameter{"address": "0x1", "token id": "a b"}).
				GET(context.Background())
			require.NoError(t, err)
			require.True(t, resp.IsSuccess())
		})
	}
}
