// Package dashboard serves the proposal page and its live channel: chat with
// the consultant, diagram requests and scroll tracking over one websocket.
package dashboard

import (
	"fmt"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jeet-integrated/elvproposal/internal/consultant"
	"github.com/jeet-integrated/elvproposal/internal/logging"
	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

// Dashboard provides the proposal page and the websocket channel behind it.
type Dashboard struct {
	doc      *proposal.Document
	sessions *consultant.Registry
	markdown *Markdown
	index    []byte
	logger   *zap.Logger
}

// New creates a new Dashboard and renders its page once.
func New(doc *proposal.Document, sessions *consultant.Registry, logger *zap.Logger) (*Dashboard, error) {
	index, err := renderIndex(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering dashboard page: %w", err)
	}
	return &Dashboard{
		doc:      doc,
		sessions: sessions,
		markdown: NewMarkdown(),
		index:    index,
		logger:   logging.OrNop(logger).Named("ws"),
	}, nil
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/api/dashboard/stats", d.handleStats)
	r.Get("/ws", d.handleWebSocket)
}
