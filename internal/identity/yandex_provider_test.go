package identity

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"scanlens-api/internal/common"
	"scanlens-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newOAuthTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.FormValue("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error": "invalid_grant", "error_description": "Code has expired"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "test-token", "token_type": "bearer", "expires_in": 3600}`)
	})
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "OAuth test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id": "123456", "default_email": "user@yandex.ru", "first_name": "Ivan", "last_name": "Petrov"}`)
	})
	return httptest.NewServer(mux)
}

func newTestYandexProvider(t *testing.T, serverURL string) *YandexProvider {
	return NewYandexProvider(config.YandexConfig{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		AuthURL:      serverURL + "/authorize",
		TokenURL:     serverURL + "/token",
		ProfileURL:   serverURL + "/info",
		Timeout:      5,
	}, zaptest.NewLogger(t))
}

func TestYandexAuthURL(t *testing.T) {
	provider := newTestYandexProvider(t, "https://oauth.example")

	url, err := provider.AuthURL()
	require.NoError(t, err)
	assert.Equal(t, "https://oauth.example/authorize?response_type=code&client_id=test-client", url)
}

func TestYandexAuthURL_MissingClientID(t *testing.T) {
	provider := NewYandexProvider(config.YandexConfig{}, zaptest.NewLogger(t))

	_, err := provider.AuthURL()

	var configErr common.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "yandex.client_id", configErr.Setting)
}

func TestYandexExchange_ReturnsProfile(t *testing.T) {
	server := newOAuthTestServer(t)
	defer server.Close()

	provider := newTestYandexProvider(t, server.URL)

	profile, err := provider.Exchange(context.Background(), "good-code")
	require.NoError(t, err)

	assert.Equal(t, "123456", profile.ID)
	assert.Equal(t, "user@yandex.ru", profile.Email)
	assert.Equal(t, "Ivan", profile.FirstName)
	assert.Equal(t, "Petrov", profile.LastName)
}

func TestYandexExchange_RejectedCode(t *testing.T) {
	server := newOAuthTestServer(t)
	defer server.Close()

	provider := newTestYandexProvider(t, server.URL)

	_, err := provider.Exchange(context.Background(), "expired-code")

	var authErr common.ExternalAuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "yandex", authErr.Provider)
}

func TestYandexExchange_EmptyAccessToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "", "token_type": "bearer"}`)
	}))
	defer server.Close()

	provider := newTestYandexProvider(t, server.URL)

	_, err := provider.Exchange(context.Background(), "good-code")

	var authErr common.ExternalAuthError
	require.ErrorAs(t, err, &authErr)
}

func TestYandexExchange_NotConfigured(t *testing.T) {
	provider := NewYandexProvider(config.YandexConfig{}, zaptest.NewLogger(t))

	_, err := provider.Exchange(context.Background(), "good-code")

	var configErr common.ConfigurationError
	assert.ErrorAs(t, err, &configErr)
}

func TestYandexExchange_ProfileEndpointFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token": "test-token", "token_type": "bearer"}`)
	})
	mux.HandleFunc("/info", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	provider := newTestYandexProvider(t, server.URL)

	_, err := provider.Exchange(context.Background(), "good-code")

	var internalErr common.InternalError
	assert.ErrorAs(t, err, &internalErr)
}
