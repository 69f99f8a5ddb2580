package vision

import (
	"context"
	"sync"
)

// MockCall records one Classify invocation.
type MockCall struct {
	ImageBase64     string
	WithDescription bool
}

// MockProvider is a canned Provider for tests.
type MockProvider struct {
	mu       sync.Mutex
	Analysis *Analysis
	Err      error
	Calls    []MockCall
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Classify(ctx context.Context, imageBase64 string, withDescription bool) (*Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{ImageBase64: imageBase64, WithDescription: withDescription})

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Analysis != nil {
		copied := *m.Analysis
		return &copied, nil
	}

	title := "Mock object"
	category := "Other"
	confidence := 75
	return &Analysis{Title: &title, Category: &category, Confidence: &confidence}, nil
}
