package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"scanlens-api/internal/common"
	"scanlens-api/internal/config"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// YandexProvider implements Provider against Yandex ID OAuth.
type YandexProvider struct {
	config     config.YandexConfig
	logger     *zap.Logger
	oauth      *oauth2.Config
	httpClient *http.Client
}

func NewYandexProvider(cfg config.YandexConfig, logger *zap.Logger) *YandexProvider {
	return &YandexProvider{
		config: cfg,
		logger: logger,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// AuthURL returns the authorization endpoint URL. The redirect URI is
// registered on the Yandex OAuth application, so only response_type and
// client_id are carried here.
func (p *YandexProvider) AuthURL() (string, error) {
	if p.config.ClientID == "" {
		return "", common.ConfigurationError{Setting: "yandex.client_id", Message: "Yandex OAuth is not configured"}
	}
	return fmt.Sprintf("%s?response_type=code&client_id=%s", p.config.AuthURL, url.QueryEscape(p.config.ClientID)), nil
}

// Exchange trades the authorization code for an access token, then fetches
// the profile from the provider's info endpoint.
func (p *YandexProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	if p.config.ClientID == "" || p.config.ClientSecret == "" {
		return nil, common.ConfigurationError{Setting: "yandex.client_id", Message: "Yandex OAuth is not configured"}
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			p.logger.Warn("Yandex token exchange rejected",
				zap.Int("status", retrieveErr.Response.StatusCode))
			return nil, common.ExternalAuthError{Provider: "yandex", Message: "failed to obtain access token", Cause: err}
		}
		return nil, common.ExternalAuthError{Provider: "yandex", Message: "token exchange failed", Cause: err}
	}
	if token.AccessToken == "" {
		return nil, common.ExternalAuthError{Provider: "yandex", Message: "no access token returned"}
	}

	return p.fetchProfile(ctx, token.AccessToken)
}

func (p *YandexProvider) fetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.ProfileURL, nil)
	if err != nil {
		return nil, common.InternalError{Message: "failed to create profile request", Cause: err}
	}
	// Yandex expects its own OAuth scheme here rather than Bearer.
	req.Header.Set("Authorization", "OAuth "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, common.InternalError{Message: "profile request failed", Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.InternalError{Message: "failed to read profile response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, common.InternalError{Message: fmt.Sprintf("profile endpoint returned status %d", resp.StatusCode)}
	}

	var payload struct {
		ID           string `json:"id"`
		DefaultEmail string `json:"default_email"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, common.InternalError{Message: "malformed profile response", Cause: err}
	}

	return &Profile{
		ID:        payload.ID,
		Email:     payload.DefaultEmail,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}, nil
}
