package consultant

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the session, ask and diagram endpoints.
func RegisterRoutes(r chi.Router, reg *Registry) {
	h := &routeHandler{reg: reg}
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Get("/{id}", h.getSession)
		r.Delete("/{id}", h.deleteSession)
		r.Get("/{id}/messages", h.listMessages)
		r.Post("/{id}/ask", h.ask)
		r.Post("/{id}/diagram", h.diagram)
		r.Get("/{id}/diagram", h.lastDiagram)
	})
}

type routeHandler struct {
	reg *Registry
}

type sessionResponse struct {
	ID             string        `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	ActiveSection  string        `json:"active_section,omitempty"`
	ConsultantBusy bool          `json:"consultant_busy"`
	DiagramBusy    bool          `json:"diagram_busy"`
	HasDiagram     bool          `json:"has_diagram"`
	Messages       []ChatMessage `json:"messages"`
}

func newSessionResponse(s *Session) sessionResponse {
	active, _ := s.Navigator.Active()
	return sessionResponse{
		ID:             s.ID,
		CreatedAt:      s.CreatedAt,
		ActiveSection:  active,
		ConsultantBusy: s.Consultant.InFlight(),
		DiagramBusy:    s.Synthesizer.InFlight(),
		HasDiagram:     s.Synthesizer.LastImage() != nil,
		Messages:       s.Conversation.Messages(),
	}
}

func (h *routeHandler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	sess, err := h.reg.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil, false
	}
	return sess, true
}

func (h *routeHandler) createSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, newSessionResponse(h.reg.Create()))
}

func (h *routeHandler) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (h *routeHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	h.reg.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *routeHandler) listMessages(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.Conversation.Messages())
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer   string        `json:"answer"`
	Messages []ChatMessage `json:"messages"`
}

func (h *routeHandler) ask(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	answer, err := sess.Consultant.Ask(r.Context(), req.Question)
	switch {
	case errors.Is(err, ErrEmptyQuestion):
		w.WriteHeader(http.StatusNoContent)
		return
	case errors.Is(err, ErrBusy):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a question is already being answered"})
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Answer:   answer,
		Messages: sess.Conversation.Messages(),
	})
}

type diagramRequest struct {
	Prompt string `json:"prompt"`
}

func (h *routeHandler) diagram(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req diagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	img, err := sess.Synthesizer.Synthesize(r.Context(), req.Prompt)
	if errors.Is(err, ErrBusy) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a diagram is already being generated"})
		return
	}
	if img == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, img)
}

func (h *routeHandler) lastDiagram(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	img := sess.Synthesizer.LastImage()
	if img == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no diagram generated yet"})
		return
	}
	w.Header().Set("Content-Type", img.MIMEType)
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
