// Package taxonomy holds the fixed two-level complaint classification tree
// and the lookups the intake and classifier layers run against it. The tree
// is hand-curated, loaded once at init, and never mutated afterwards, so it
// is safe to share across requests without locking.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is exported so callers elsewhere can compare errors using
	// errors.Is; Go encourages sentinel errors for simple cases.
	ErrNotFound = errors.New("category not found")
)

// SubCategory is one leaf under a main category.
type SubCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Category is one main category. AIDetectable marks categories whose issues
// are visible in a photo; RequiresImage marks categories that reject
// submissions without one.
type Category struct {
	ID            string        `json:"id"`
	Label         string        `json:"label"`
	AIDetectable  bool          `json:"aiDetectable"`
	RequiresImage bool          `json:"requiresImage"`
	SubCategories []SubCategory `json:"subCategories"`
}

// VisualMatch maps a coarse visual label (the kind a vision model emits) to
// its canonical taxonomy ids.
type VisualMatch struct {
	MainCategory string
	SubCategory  string
	Confidence   float64
}

var index map[string]*Category

func init() {
	index = make(map[string]*Category, len(categories))
	for i := range categories {
		index[categories[i].ID] = &categories[i]
	}
}

// MainCategories returns the ordered main-category list for client dropdowns.
func MainCategories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Get returns the main category for id.
func Get(mainID string) (*Category, error) {
	cat, ok := index[mainID]
	if !ok {
		return nil, fmt.Errorf("main category %q: %w", mainID, ErrNotFound)
	}
	return cat, nil
}

// SubCategories returns the ordered sub-category list for a main category.
func SubCategories(mainID string) ([]SubCategory, error) {
	cat, err := Get(mainID)
	if err != nil {
		return nil, err
	}
	out := make([]SubCategory, len(cat.SubCategories))
	copy(out, cat.SubCategories)
	return out, nil
}

// Resolve checks that subID belongs to mainID. It returns the main category
// so callers can read its flags without a second lookup.
func Resolve(mainID, subID string) (*Category, error) {
	cat, err := Get(mainID)
	if err != nil {
		return nil, err
	}
	for _, sub := range cat.SubCategories {
		if sub.ID == subID {
			return cat, nil
		}
	}
	return nil, fmt.Errorf("sub category %q under %q: %w", subID, mainID, ErrNotFound)
}

// MapVisualLabel translates a coarse visual label into taxonomy ids, or nil
// when the label is unknown.
func MapVisualLabel(label string) *VisualMatch {
	if m, ok := visualLabelMap[label]; ok {
		match := m
		return &match
	}
	return nil
}

// Prompt builds the classifier prompt. Only aiDetectable categories are
// enumerated, which keeps the model's answer space bounded to ids the
// taxonomy can actually resolve.
func Prompt() string {
	var b strings.Builder
	b.WriteString("You are an assistant helping citizens report civic issues to the municipal corporation.\n\n")
	b.WriteString("Analyze the uploaded image and classify the civic issue into ONE main category and ONE sub-category from the following list:\n")
	for _, cat := range categories {
		if !cat.AIDetectable {
			continue
		}
		fmt.Fprintf(&b, "\n**%s** (mainCategory: %q)\nSub-categories:\n", cat.Label, cat.ID)
		for _, sub := range cat.SubCategories {
			fmt.Fprintf(&b, "  - %s (subCategory: %q)\n", sub.Label, sub.ID)
		}
	}
	b.WriteString(`
Respond ONLY with JSON, no markdown and no extra text, in this exact format:
{
  "mainCategory": "category-id-from-list",
  "subCategory": "subcategory-id-from-list",
  "description": "Professional description of the issue in 2-3 sentences",
  "confidence": 0.0-1.0
}

Pick the MOST appropriate pair from the list above. Describe the issue the
way a municipal official would expect to read it, including severity and any
visible details.
`)
	return b.String()
}
