// Package consultant answers questions about the proposal and synthesizes
// diagrams, one conversation per session.
package consultant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/llm"
	"github.com/jeet-integrated/elvproposal/internal/logging"
	"github.com/jeet-integrated/elvproposal/internal/telemetry"
)

var (
	// ErrEmptyQuestion means the question was blank and nothing happened.
	ErrEmptyQuestion = errors.New("consultant: empty question")
	// ErrBusy means a call was already in flight and this one was dropped.
	ErrBusy = errors.New("consultant: request already in flight")
)

const (
	// FallbackNoAnswer is recorded when the model answers with blank text.
	FallbackNoAnswer = "I'm sorry, I couldn't process that request."
	// FallbackUnavailable is recorded when the model call fails.
	FallbackUnavailable = "The AI consultant is currently unavailable. Please check the proposal details manually."

	// SystemInstruction frames every consultant call.
	SystemInstruction = "You are an expert in SIRA (Security Industry Regulatory Agency) Dubai standards and ELV systems. Be concise, professional, and helpful."

	// DefaultModel is the text model used when none is configured.
	DefaultModel = "gemini-3-flash-preview"
	// DefaultTemperature is the sampling temperature used when none is configured.
	DefaultTemperature = 0.7
)

const promptPreamble = "You are a world-class security consultant and ELV engineer. The following is a proposal for The Sustainable City (TSC) in Dubai. Answer questions based strictly on this proposal data."

// ContextSource produces the serialized proposal the answer is grounded on.
type ContextSource func() string

// Options configures a Consultant.
type Options struct {
	Model string
	// Temperature is the sampling temperature; nil selects DefaultTemperature.
	Temperature *float64
	Logger      *zap.Logger
}

// Consultant runs the question pipeline against one conversation. At most one
// call is in flight; further questions are dropped until it settles.
type Consultant struct {
	provider     llm.TextProvider
	conversation *Conversation
	context      ContextSource
	model        string
	temperature  float64
	logger       *zap.Logger

	busy atomic.Bool
}

// New creates a consultant appending to conv and grounding on source.
func New(provider llm.TextProvider, conv *Conversation, source ContextSource, opts Options) *Consultant {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	temperature := DefaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}
	return &Consultant{
		provider:     provider,
		conversation: conv,
		context:      source,
		model:        opts.Model,
		temperature:  temperature,
		logger:       logging.OrNop(opts.Logger).Named("consultant"),
	}
}

// Conversation returns the conversation this consultant appends to.
func (c *Consultant) Conversation() *Conversation {
	return c.conversation
}

// InFlight reports whether a question is awaiting its answer.
func (c *Consultant) InFlight() bool {
	return c.busy.Load()
}

// Ask records question, asks the model and records exactly one assistant
// answer. Upstream failures never surface as errors: they become one of the
// fallback texts. The only errors are ErrEmptyQuestion and ErrBusy, and in
// both cases the conversation is untouched.
//
// The model call is not cancelled with ctx; once sent it runs to completion.
func (c *Consultant) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	if !c.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer c.busy.Store(false)

	c.conversation.AppendMessage(ChatMessage{Role: RoleUser, Content: question})

	answer := c.answer(context.WithoutCancel(ctx), question)

	c.conversation.AppendMessage(ChatMessage{Role: RoleAssistant, Content: answer})
	return answer, nil
}

func (c *Consultant) answer(ctx context.Context, question string) string {
	var proposal string
	if c.context != nil {
		proposal = c.context()
	}

	telemetry.AddBreadcrumb(ctx, "consultant", "asking model")
	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: SystemInstruction},
			{Role: llm.RoleUser, Content: BuildPrompt(proposal, question)},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		c.logger.Error("consultant call failed",
			zap.String("provider", c.provider.Name()),
			zap.String("model", c.model),
			zap.Error(err))
		telemetry.CaptureError(ctx, fmt.Errorf("consultant call: %w", err))
		return FallbackUnavailable
	}

	if resp == nil {
		c.logger.Warn("consultant returned no response")
		return FallbackNoAnswer
	}
	if strings.TrimSpace(resp.Content) == "" {
		c.logger.Warn("consultant returned no text", zap.String("finish_reason", resp.FinishReason))
		return FallbackNoAnswer
	}

	c.logger.Debug("consultant answered",
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens))
	return resp.Content
}

// BuildPrompt assembles the grounded prompt: preamble, proposal data and the
// question verbatim.
func BuildPrompt(proposal, question string) string {
	var b strings.Builder
	b.WriteString(promptPreamble)
	b.WriteString("\n\nPROPOSAL DATA:\n")
	b.WriteString(proposal)
	b.WriteString("\n\nUSER QUESTION:\n")
	b.WriteString(question)
	return b.String()
}
