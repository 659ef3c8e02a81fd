package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelintrips/registration-api/pkg/config"
)

func newTestClient(serverURL string) *Client {
	return New(config.GatewayConfig{URL: serverURL, AnonKey: "anon-key", Timeout: 2 * time.Second}, nil)
}

func TestCreateAccountParsesNestedUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/signup", r.URL.Path)
		require.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"acc-1","email":"user@example.com","user_metadata":{"role":"Customer"}}}`))
	}))
	defer server.Close()

	account, err := newTestClient(server.URL).CreateAccount(context.Background(), "user@example.com", "secret123", map[string]interface{}{"role": "Customer"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "Customer", account.Metadata["role"])
}

func TestCreateAccountParsesTopLevelUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"acc-2","email":"user@example.com"}`))
	}))
	defer server.Close()

	account, err := newTestClient(server.URL).CreateAccount(context.Background(), "user@example.com", "secret123", nil)
	require.NoError(t, err)
	assert.Equal(t, "acc-2", account.ID)
}

func TestCreateAccountSurfacesRawErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"msg":"User already registered"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).CreateAccount(context.Background(), "user@example.com", "secret123", nil)
	require.Error(t, err)
	assert.Equal(t, "User already registered", err.Error())
}

func TestTransportFailureCarriesNetworkPrefix(t *testing.T) {
	// nothing listens on this address
	client := newTestClient("http://127.0.0.1:1")

	_, err := client.CreateAccount(context.Background(), "user@example.com", "secret123", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "network error")
}

func TestSignInParsesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","token_type":"bearer","expires_in":3600,"user":{"id":"acc-1","email":"user@example.com"}}`))
	}))
	defer server.Close()

	session, err := newTestClient(server.URL).SignIn(context.Background(), "user@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, int64(3600), session.ExpiresIn)
	assert.Equal(t, "acc-1", session.Account.ID)
}

func TestUploadBuildsPublicURL(t *testing.T) {
	var gotPath, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"user-documents/selfies/a.jpg"}`))
	}))
	defer server.Close()

	url, err := newTestClient(server.URL).Upload(context.Background(), "user-documents", "selfies/a.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "/storage/v1/object/user-documents/selfies/a.jpg", gotPath)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, server.URL+"/storage/v1/object/public/user-documents/selfies/a.jpg", url)
}
