package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxchat/internal/utils"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, utils.NewLogger("error", io.Discard))
}

func TestCallNotConfigured(t *testing.T) {
	c := testClient("")
	_, err := c.Call(context.Background(), http.MethodGet, "/conversations", nil)
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestCallHeaders(t *testing.T) {
	var gotAuth, gotAccept, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.SetToken("tok-123")
	_, err := c.Call(context.Background(), http.MethodPost, "/ask", map[string]string{"question": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/json", gotContentType)
}

func TestCallNoAuthHeaderWhenGuest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Call(context.Background(), http.MethodGet, "/conversations", nil)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestCallJoinsURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// Trailing slash on the base and missing slash on the endpoint
	// both normalize to a single separator.
	c := testClient(srv.URL + "/")
	_, err := c.Call(context.Background(), http.MethodGet, "conversations", nil)
	require.NoError(t, err)
	assert.Equal(t, "/conversations", gotPath)
}

func TestCallAPIErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid credentials"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Call(context.Background(), http.MethodPost, "/login", map[string]string{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Detail)
}

func TestCallAPIErrorNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream exploded</html>"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Call(context.Background(), http.MethodGet, "/conversations", nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Contains(t, apiErr.Detail, "502")
}

func TestCallTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := testClient(srv.URL)
	_, err := c.Call(context.Background(), http.MethodGet, "/conversations", nil)
	require.ErrorIs(t, err, ErrTransport)
}

func TestAskEncodesConversationID(t *testing.T) {
	var body map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Write([]byte(`{"answer":"ok","conversation_id":"c1"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	_, err := c.Ask(context.Background(), "Apa itu PPN?", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(body["conversation_id"]))

	id := "c1"
	_, err = c.Ask(context.Background(), "lanjut", &id)
	require.NoError(t, err)
	assert.JSONEq(t, `"c1"`, string(body["conversation_id"]))
}

func TestLoginDecodesToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.c", creds.Email)
		w.Write([]byte(`{"access_token":"tok-1"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	tok, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok.AccessToken)
	// Login must not adopt the token on its own.
	assert.False(t, c.Authenticated())
}

func TestNotice(t *testing.T) {
	assert.Empty(t, Notice(nil))
	assert.Contains(t, Notice(ErrNotConfigured), "/backend")
	assert.Equal(t, "quota exceeded", Notice(&APIError{Status: 429, Detail: "quota exceeded"}))
	assert.Contains(t, Notice(errors.New("boom")), "boom")
}
