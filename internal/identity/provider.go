package identity

import (
	"context"
)

// Provider is the external OAuth identity provider boundary.
type Provider interface {
	// AuthURL builds the provider's authorization endpoint URL for the
	// configured client.
	AuthURL() (string, error)
	// Exchange trades an authorization code for the external profile.
	Exchange(ctx context.Context, code string) (*Profile, error)
}

// Profile is the verified identity returned by the provider.
type Profile struct {
	ID        string
	Email     string
	FirstName string
	LastName  string
}
