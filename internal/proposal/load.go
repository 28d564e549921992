package proposal

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed tsc_proposal.yaml
var defaultProposal []byte

var (
	defaultOnce sync.Once
	defaultDoc  *Document
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the built-in proposal. It panics if the embedded file is
// invalid, which can only happen at development time.
func Default() *Document {
	defaultOnce.Do(func() {
		doc, err := Parse(defaultProposal)
		if err != nil {
			panic(fmt.Sprintf("proposal: embedded document: %v", err))
		}
		defaultDoc = doc
	})
	return defaultDoc
}

// Load reads a proposal from a YAML file. An empty path yields the built-in proposal.
func Load(path string) (*Document, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading proposal %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("proposal %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a YAML proposal.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("validating: %w", err)
	}
	if err := checkSections(doc.Sections); err != nil {
		return nil, err
	}
	return &doc, nil
}

func checkSections(sections []Section) error {
	seen := make(map[string]bool, len(sections))
	for _, s := range sections {
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
