package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when no API key is configured for a provider.
var ErrMissingCredential = errors.New("llm: missing API credential")

// TextProvider defines the interface for text generation backends.
type TextProvider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// ImageProvider defines the interface for image generation backends.
type ImageProvider interface {
	// GenerateImage requests one image for the prompt.
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error)
	// Name returns the name of this provider.
	Name() string
}

// Unavailable returns a provider whose every call fails with cause. It lets the
// service start without credentials; callers see the failure per request.
func Unavailable(name string, cause error) *UnavailableProvider {
	return &UnavailableProvider{name: name, cause: cause}
}

// UnavailableProvider implements TextProvider and ImageProvider by failing.
type UnavailableProvider struct {
	name  string
	cause error
}

func (p *UnavailableProvider) Name() string { return p.name }

func (p *UnavailableProvider) Complete(context.Context, CompletionRequest) (*CompletionResponse, error) {
	return nil, fmt.Errorf("%s unavailable: %w", p.name, p.cause)
}

func (p *UnavailableProvider) GenerateImage(context.Context, ImageRequest) (*ImageResponse, error) {
	return nil, fmt.Errorf("%s unavailable: %w", p.name, p.cause)
}
