package consultant

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/llm"
	"github.com/jeet-integrated/elvproposal/internal/logging"
	"github.com/jeet-integrated/elvproposal/internal/telemetry"
)

const (
	// StyleSuffix is appended to every diagram prompt.
	StyleSuffix = ". Technical engineering blueprint style, clean schematic linework, dark navy background, cyan and emerald annotations, isometric ELV infrastructure layout, high detail."
	// AspectRatio of every generated diagram.
	AspectRatio = "16:9"
	// DefaultImageModel is the image model used when none is configured.
	DefaultImageModel = "gemini-2.5-flash-image"
)

// Synthesizer turns a free-text description into one diagram image and keeps
// the most recent success. It has its own busy flag, independent of the
// consultant's.
type Synthesizer struct {
	provider llm.ImageProvider
	model    string
	logger   *zap.Logger

	busy atomic.Bool

	mu   sync.RWMutex
	last *llm.Image
}

// NewSynthesizer creates a synthesizer. An empty model selects DefaultImageModel.
func NewSynthesizer(provider llm.ImageProvider, model string, logger *zap.Logger) *Synthesizer {
	if model == "" {
		model = DefaultImageModel
	}
	return &Synthesizer{
		provider: provider,
		model:    model,
		logger:   logging.OrNop(logger).Named("diagram"),
	}
}

// InFlight reports whether a diagram request is outstanding.
func (s *Synthesizer) InFlight() bool {
	return s.busy.Load()
}

// Synthesize sends prompt plus StyleSuffix as one image request. The prompt is
// not validated. On success the first image becomes the last image and is
// returned. When the response has no image or the call fails, it returns nil
// and the last image is left as it was. ErrBusy is the only error.
func (s *Synthesizer) Synthesize(ctx context.Context, prompt string) (*llm.Image, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	ctx = context.WithoutCancel(ctx)
	resp, err := s.provider.GenerateImage(ctx, llm.ImageRequest{
		Model:       s.model,
		Prompt:      prompt + StyleSuffix,
		AspectRatio: AspectRatio,
	})
	if err != nil {
		s.logger.Error("diagram generation failed",
			zap.String("provider", s.provider.Name()),
			zap.String("model", s.model),
			zap.Error(err))
		telemetry.CaptureError(ctx, fmt.Errorf("diagram generation: %w", err))
		return nil, nil
	}

	img := resp.First()
	if img == nil {
		s.logger.Warn("diagram response carried no image", zap.String("model", s.model))
		return nil, nil
	}

	s.SetLastImage(img)
	s.logger.Debug("diagram generated", zap.String("mime_type", img.MIMEType), zap.Int("bytes", len(img.Data)))
	return img, nil
}

// LastImage returns the most recent generated image, or nil.
func (s *Synthesizer) LastImage() *llm.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// SetLastImage replaces the last image.
func (s *Synthesizer) SetLastImage(img *llm.Image) {
	s.mu.Lock()
	s.last = img
	s.mu.Unlock()
}
