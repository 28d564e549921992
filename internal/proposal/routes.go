package proposal

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the read-only proposal, BOQ and drawing endpoints.
func RegisterRoutes(r chi.Router, doc *Document) {
	h := &routeHandler{doc: doc, context: Serialize(doc), digest: Digest(doc)}
	r.Route("/api/proposal", func(r chi.Router) {
		r.Get("/", h.getProposal)
		r.Get("/context", h.getContext)
		r.Get("/sections", h.listSections)
	})
	r.Route("/api/boq", func(r chi.Router) {
		r.Get("/", h.filterBOQ)
		r.Get("/categories", h.listCategories)
	})
	r.Get("/api/documents", h.listDocuments)
}

type routeHandler struct {
	doc     *Document
	context string
	digest  string
}

func (h *routeHandler) getProposal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.doc)
}

type contextResponse struct {
	Context string `json:"context"`
	Digest  string `json:"digest"`
}

func (h *routeHandler) getContext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contextResponse{Context: h.context, Digest: h.digest})
}

func (h *routeHandler) listSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.doc.Sections)
}

type boqResponse struct {
	Filter     BOQFilter `json:"filter"`
	Items      []BOQItem `json:"items"`
	Total      int       `json:"total"`
	EmptyState string    `json:"empty_state,omitempty"`
}

func (h *routeHandler) filterBOQ(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := BOQFilter{SearchText: q.Get("q"), Category: q.Get("category")}.Normalize(h.doc.BOQ)

	items := filter.Apply(h.doc.BOQ)
	resp := boqResponse{Filter: filter, Items: items, Total: len(h.doc.BOQ)}
	if len(items) == 0 {
		resp.EmptyState = EmptyStateMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *routeHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Categories(h.doc.BOQ))
}

func (h *routeHandler) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := MatchDocuments(h.doc.Documents, r.URL.Query().Get("match"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid match pattern"})
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
