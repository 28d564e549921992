package dashboard

import (
	"encoding/json"
	"net/http"
)

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	Title          string `json:"title"`
	Version        string `json:"version"`
	Sections       int    `json:"sections"`
	BOQItems       int    `json:"boq_items"`
	Documents      int    `json:"documents"`
	ActiveSessions int    `json:"active_sessions"`
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		Title:          d.doc.Metadata.Title,
		Version:        d.doc.Metadata.Version,
		Sections:       len(d.doc.Sections),
		BOQItems:       len(d.doc.BOQ),
		Documents:      len(d.doc.Documents),
		ActiveSessions: d.sessions.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
