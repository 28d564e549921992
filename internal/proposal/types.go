package proposal

// Document is the proposal content shared by every component. It is built once
// at startup and must be treated as read-only after that.
type Document struct {
	Metadata   Metadata            `yaml:"metadata" json:"metadata" validate:"required"`
	Findings   []AssessmentItem    `yaml:"findings" json:"findings" validate:"dive"`
	Issues     []Issue             `yaml:"issues" json:"issues" validate:"dive"`
	Risks      []Risk              `yaml:"risks" json:"risks" validate:"dive"`
	Compliance []ComplianceRow     `yaml:"compliance" json:"compliance" validate:"dive"`
	Standards  []Standard          `yaml:"standards" json:"standards" validate:"dive"`
	Solution   []SolutionItem      `yaml:"solution" json:"solution" validate:"dive"`
	BOQ        []BOQItem           `yaml:"boq" json:"boq" validate:"dive"`
	Phases     []Phase             `yaml:"phases" json:"phases" validate:"dive"`
	Documents  []ReferenceDocument `yaml:"documents" json:"documents" validate:"dive"`
	Sections   []Section           `yaml:"sections" json:"sections" validate:"required,min=1,dive"`
	Benefits   []string            `yaml:"benefits" json:"benefits"`
}

// Metadata identifies the proposal.
type Metadata struct {
	Title       string `yaml:"title" json:"title" validate:"required"`
	Client      string `yaml:"client" json:"client" validate:"required"`
	PreparedFor string `yaml:"prepared_for" json:"prepared_for"`
	PreparedBy  string `yaml:"prepared_by" json:"prepared_by"`
	Company     string `yaml:"company" json:"company"`
	Date        string `yaml:"date" json:"date"`
	Version     string `yaml:"version" json:"version" validate:"required"`
}

// AssessmentItem is one site survey finding.
type AssessmentItem struct {
	Area       string `yaml:"area" json:"area" validate:"required"`
	Status     string `yaml:"status" json:"status"`
	Remarks    string `yaml:"remarks" json:"remarks"`
	Compliance string `yaml:"compliance" json:"compliance"`
}

// RiskLevel grades issues and risks.
type RiskLevel string

const (
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Issue is a problem observed on site.
type Issue struct {
	Area   string    `yaml:"area" json:"area" validate:"required"`
	Issue  string    `yaml:"issue" json:"issue"`
	Status string    `yaml:"status" json:"status"`
	Risk   RiskLevel `yaml:"risk" json:"risk" validate:"omitempty,oneof=Medium High Critical"`
}

// Risk is a business consequence of leaving an issue unresolved.
type Risk struct {
	Category string    `yaml:"category" json:"category" validate:"required"`
	Effect   string    `yaml:"effect" json:"effect"`
	Priority RiskLevel `yaml:"priority" json:"priority" validate:"omitempty,oneof=Medium High Critical"`
}

// ComplianceRow maps a system component to its regulatory gap.
type ComplianceRow struct {
	System        string `yaml:"system" json:"system" validate:"required"`
	Component     string `yaml:"component" json:"component"`
	CurrentStatus string `yaml:"current_status" json:"current_status"`
	Gap           string `yaml:"gap" json:"gap"`
	Action        string `yaml:"action" json:"action"`
	Compliance    string `yaml:"compliance" json:"compliance"`
}

// Standard is a regulation the proposal is aligned with.
type Standard struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// SolutionItem summarises one proposed sub-system.
type SolutionItem struct {
	SubSystem  string `yaml:"sub_system" json:"sub_system" validate:"required"`
	Location   string `yaml:"location" json:"location"`
	Specs      string `yaml:"specs" json:"specs"`
	Compliance string `yaml:"compliance" json:"compliance"`
}

// BOQItem is a bill-of-quantities line.
type BOQItem struct {
	Category    string   `yaml:"category" json:"category" validate:"required"`
	Description string   `yaml:"description" json:"description" validate:"required"`
	Unit        string   `yaml:"unit" json:"unit" validate:"required"`
	Quantity    int      `yaml:"quantity" json:"quantity" validate:"gte=0"`
	PartNumber  string   `yaml:"part_number,omitempty" json:"part_number,omitempty"`
	Warranty    string   `yaml:"warranty,omitempty" json:"warranty,omitempty"`
	Specs       []string `yaml:"specs,omitempty" json:"specs,omitempty"`
}

// Phase is an implementation stage.
type Phase struct {
	Name     string `yaml:"name" json:"name" validate:"required"`
	Duration string `yaml:"duration" json:"duration"`
	Tasks    []Task `yaml:"tasks" json:"tasks" validate:"dive"`
}

// Task is an ordered step within a phase.
type Task struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Name        string `yaml:"name" json:"name" validate:"required"`
	Duration    string `yaml:"duration" json:"duration"`
	Description string `yaml:"description" json:"description"`
}

// ReferenceDocument describes a drawing or annex attached to the proposal.
type ReferenceDocument struct {
	Title         string `yaml:"title" json:"title" validate:"required"`
	Type          string `yaml:"type" json:"type"`
	DrawingNumber string `yaml:"drawing_number" json:"drawing_number"`
	Description   string `yaml:"description" json:"description"`
	Locator       string `yaml:"locator" json:"locator"`
}

// Section is a navigable part of the proposal page, in document order.
type Section struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Label string `yaml:"label" json:"label"`
}

// SectionIDs returns the section identifiers in document order.
func (d *Document) SectionIDs() []string {
	ids := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		ids[i] = s.ID
	}
	return ids
}
