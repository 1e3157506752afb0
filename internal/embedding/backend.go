package embedding

import "context"

// Backend is an abstraction over external embedding services.
// Any non-success outcome is treated uniformly by the provider as a
// failure to degrade from; the backend never needs to classify errors.
type Backend interface {
	// Generate produces a raw embedding vector for the text
	Generate(ctx context.Context, text string) ([]float64, error)
	// Close releases any resources held by the backend
	Close() error
}
