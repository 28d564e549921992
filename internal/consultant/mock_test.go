package consultant

import (
	"context"
	"sync"

	"github.com/jeet-integrated/elvproposal/internal/llm"
)

// mockText is a scripted TextProvider that records every request.
type mockText struct {
	mu       sync.Mutex
	requests []llm.CompletionRequest

	content string
	err     error
	// empty makes Complete return neither a response nor an error.
	empty bool

	// release, when set, blocks Complete until it is closed; started is
	// closed once the call is underway.
	started chan struct{}
	release chan struct{}
}

func (m *mockText) Name() string { return "mock" }

func (m *mockText) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	if m.empty {
		return nil, nil
	}
	return &llm.CompletionResponse{Content: m.content, Model: req.Model}, nil
}

func (m *mockText) calls() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.CompletionRequest(nil), m.requests...)
}

// mockImage is a scripted ImageProvider.
type mockImage struct {
	mu       sync.Mutex
	requests []llm.ImageRequest

	images []llm.Image
	err    error

	started chan struct{}
	release chan struct{}
}

func (m *mockImage) Name() string { return "mock-image" }

func (m *mockImage) GenerateImage(_ context.Context, req llm.ImageRequest) (*llm.ImageResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.started != nil {
		close(m.started)
	}
	if m.release != nil {
		<-m.release
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llm.ImageResponse{Images: m.images, Model: req.Model}, nil
}

func (m *mockImage) calls() []llm.ImageRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.ImageRequest(nil), m.requests...)
}
