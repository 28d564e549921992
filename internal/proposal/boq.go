package proposal

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// AllCategories selects every BOQ category.
const AllCategories = "All"

// EmptyStateMessage is shown when a filter matches nothing.
const EmptyStateMessage = "No items match your search criteria."

// BOQFilter is the user-controlled BOQ filter state.
type BOQFilter struct {
	SearchText string `json:"search_text"`
	Category   string `json:"category"`
}

// Normalize resets a category that does not occur in items to AllCategories.
func (f BOQFilter) Normalize(items []BOQItem) BOQFilter {
	if f.Category == "" {
		f.Category = AllCategories
		return f
	}
	for _, c := range Categories(items) {
		if c == f.Category {
			return f
		}
	}
	f.Category = AllCategories
	return f
}

// Apply runs FilterBOQ with the filter's state.
func (f BOQFilter) Apply(items []BOQItem) []BOQItem {
	return FilterBOQ(items, f.SearchText, f.Category)
}

// Categories lists AllCategories followed by each distinct item category in
// first-seen order.
func Categories(items []BOQItem) []string {
	seen := make(map[string]bool)
	out := []string{AllCategories}
	for _, it := range items {
		if !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// FilterBOQ keeps the items whose description contains searchText
// (case-insensitive) and whose category equals category, unless category is
// AllCategories. Relative order is preserved. The result is never nil.
func FilterBOQ(items []BOQItem, searchText, category string) []BOQItem {
	needle := strings.ToLower(searchText)
	out := make([]BOQItem, 0, len(items))
	for _, it := range items {
		if !strings.Contains(strings.ToLower(it.Description), needle) {
			continue
		}
		if category != AllCategories && it.Category != category {
			continue
		}
		out = append(out, it)
	}
	return out
}

// MatchDocuments returns the reference documents whose locator or drawing
// number matches the glob pattern. An empty pattern matches everything.
func MatchDocuments(docs []ReferenceDocument, pattern string) ([]ReferenceDocument, error) {
	if pattern == "" {
		return append([]ReferenceDocument{}, docs...), nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, doublestar.ErrBadPattern
	}
	out := make([]ReferenceDocument, 0, len(docs))
	for _, d := range docs {
		if ok, _ := doublestar.Match(pattern, d.Locator); ok {
			out = append(out, d)
			continue
		}
		if ok, _ := doublestar.Match(pattern, d.DrawingNumber); ok {
			out = append(out, d)
		}
	}
	return out, nil
}
