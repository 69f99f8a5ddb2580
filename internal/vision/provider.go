package vision

import (
	"context"
)

// Provider classifies an image through an external vision model.
type Provider interface {
	// Classify sends the base64-encoded image to the model and returns the
	// structured classification. When withDescription is set the model is
	// additionally asked for a free-text description of the object.
	Classify(ctx context.Context, imageBase64 string, withDescription bool) (*Analysis, error)
}

// Analysis is the classifier's parsed verdict. Pointer fields are nil when
// the model omitted them; defaults are applied at persist time.
type Analysis struct {
	Title       *string `json:"title"`
	Category    *string `json:"category"`
	Confidence  *int    `json:"confidence"`
	Description *string `json:"description,omitempty"`
}
