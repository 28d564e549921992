package dashboard

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/jeet-integrated/elvproposal/internal/proposal"
)

//go:embed index.html
var indexTemplate string

var pageTemplate = template.Must(template.New("index").Parse(indexTemplate))

type pageData struct {
	*proposal.Document
	Categories []string
	EmptyState string
}

func renderIndex(doc *proposal.Document) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Document:   doc,
		Categories: proposal.Categories(doc.BOQ),
		EmptyState: proposal.EmptyStateMessage,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ServeIndex serves the rendered proposal page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(d.index)
}
