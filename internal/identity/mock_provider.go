package identity

import (
	"context"
	"sync"
)

// MockProvider is a canned Provider for tests.
type MockProvider struct {
	mu          sync.Mutex
	Profile     *Profile
	ExchangeErr error
	URL         string
	URLErr      error
	Codes       []string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		URL: "https://oauth.example/authorize?response_type=code&client_id=test",
		Profile: &Profile{
			ID:        "yandex-user-1",
			Email:     "user@example.com",
			FirstName: "Test",
			LastName:  "User",
		},
	}
}

func (m *MockProvider) AuthURL() (string, error) {
	if m.URLErr != nil {
		return "", m.URLErr
	}
	return m.URL, nil
}

func (m *MockProvider) Exchange(ctx context.Context, code string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Codes = append(m.Codes, code)

	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	copied := *m.Profile
	return &copied, nil
}
