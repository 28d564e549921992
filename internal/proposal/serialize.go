package proposal

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/gowebpki/jcs"
)

// groundingEnvelope is what the consultant sees of the proposal. Sections,
// Standards and Benefits are left out: they are navigation and marketing copy,
// so questions about them cannot be answered from the context.
type groundingEnvelope struct {
	Metadata   Metadata            `json:"PROPOSAL_METADATA"`
	Findings   []AssessmentItem    `json:"DETAILED_CCTV_ASSESSMENT"`
	Issues     []Issue             `json:"KNOWN_ISSUES"`
	Risks      []Risk              `json:"CRITICAL_RISKS"`
	Compliance []ComplianceRow     `json:"COMPLIANCE_GAPS"`
	Solution   []SolutionItem      `json:"SOLUTION_OVERVIEW"`
	Phases     []Phase             `json:"PHASES"`
	BOQ        []BOQItem           `json:"BILL_OF_QUANTITIES"`
	Documents  []ReferenceDocument `json:"REFERENCE_DOCUMENTS"`
}

// Serialize flattens the document into the grounding text sent with every
// consultant question. The output is RFC 8785 canonical JSON, so equal
// documents always produce identical text.
func Serialize(d *Document) string {
	if d == nil {
		return "{}"
	}
	raw, err := json.Marshal(groundingEnvelope{
		Metadata:   d.Metadata,
		Findings:   d.Findings,
		Issues:     d.Issues,
		Risks:      d.Risks,
		Compliance: d.Compliance,
		Solution:   d.Solution,
		Phases:     d.Phases,
		BOQ:        d.BOQ,
		Documents:  d.Documents,
	})
	if err != nil {
		// Plain structs of strings and ints always marshal.
		return "{}"
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return string(raw)
	}
	return string(canonical)
}

// Digest returns the sha256 hex digest of the serialized document.
func Digest(d *Document) string {
	sum := sha256.Sum256([]byte(Serialize(d)))
	return hex.EncodeToString(sum[:])
}
