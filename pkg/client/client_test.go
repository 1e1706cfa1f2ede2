package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSendsBearerTokenAndJSON(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret-token", Options{VerifyTLS: true})
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(t, c.Post(context.Background(), "/api/records", map[string]any{"title": "t"}, &out))

	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, map[string]any{"title": "t"}, gotBody)
	assert.Equal(t, "abc", out.ID)
}

func TestAuthErrorOnUnauthorized(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"message":"permission denied"}`))
		}))

		c := New(srv.URL, "bad-token", Options{VerifyTLS: true})
		err := c.Get(context.Background(), "/api/records", nil)

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr, "status %d", status)
		assert.Equal(t, status, authErr.Status)
		assert.Contains(t, authErr.Error(), "API token")
		srv.Close()
	}
}

func TestHTTPErrorKeepsStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"validation error"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "token", Options{VerifyTLS: true})
	err := c.Post(context.Background(), "/api/records", map[string]any{}, nil)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Contains(t, httpErr.Body, "validation error")
	assert.Contains(t, httpErr.URL, "/api/records")
}

func TestProtocolErrorOnUnparseableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, "token", Options{VerifyTLS: true})
	var out map[string]any
	err := c.Get(context.Background(), "/api/records", &out)

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Contains(t, protoErr.Body, "gateway error")
}

func TestEmptyBodyIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, "token", Options{VerifyTLS: true})
	var out map[string]any
	assert.NoError(t, c.Post(context.Background(), "/api/records/x/draft/files/a/commit", nil, &out))
}

func TestPutPresignedHeaders(t *testing.T) {
	var gotMD5, gotAuth string
	var gotLen int64
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMD5 = r.Header.Get("Content-MD5")
		gotAuth = r.Header.Get("Authorization")
		gotLen = r.ContentLength
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	c := New(srv.URL, "token", Options{VerifyTLS: true})
	status, _, err := c.PutPresigned(context.Background(), srv.URL+"/part/1", []byte("hello"), "XUFAKrxLKna5cZ2REBfFkg==")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "XUFAKrxLKna5cZ2REBfFkg==", gotMD5)
	assert.Equal(t, int64(5), gotLen)
	assert.Equal(t, []byte("hello"), gotBody)
	// presigned URLs carry their own authorization
	assert.Empty(t, gotAuth)
}

func TestPutPresignedReturnsStatusWithoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream storage down"))
	}))
	defer srv.Close()

	c := New(srv.URL, "token", Options{VerifyTLS: true})
	status, body, err := c.PutPresigned(context.Background(), srv.URL+"/part/1", []byte("x"), "md5")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "upstream storage down", body)
}
