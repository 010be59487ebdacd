package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("authorization header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer the-token", r.Header.Get("Authorization"))
			assert.Empty(t, r.URL.Query().Get("access_token"))
			w.Write([]byte(`{"id":123}`))
		}))
		defer srv.Close()

		client := NewClient(Config{UseAuthorizationHeader: true})
		got, err := client.Get(ctx, srv.URL, "the-token")
		require.NoError(t, err)
		assert.Equal(t, `{"id":123}`, string(got))
	})

	t.Run("query parameter", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "the-token", r.URL.Query().Get("access_token"))
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`ok`))
		}))
		defer srv.Close()

		client := NewClient(Config{})
		got, err := client.Get(ctx, srv.URL, "the-token")
		require.NoError(t, err)
		assert.Equal(t, "ok", string(got))
	})

	t.Run("non-2xx response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"errors":[{"error_message":"401 - invalid token"}]}`, http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient(Config{UseAuthorizationHeader: true})
		got, err := client.Get(ctx, srv.URL, "bad-token")
		assert.Nil(t, got)

		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusUnauthorized, respErr.StatusCode)
		assert.Contains(t, string(respErr.Body), "invalid token")
	})
}
