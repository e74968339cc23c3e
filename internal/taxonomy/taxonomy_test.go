package taxonomy

import (
	"errors"
	"strings"
	"testing"
)

func TestResolveValidPairs(t *testing.T) {
	// Every (main, sub) pair in the tree must resolve.
	for _, cat := range MainCategories() {
		for _, sub := range cat.SubCategories {
			resolved, err := Resolve(cat.ID, sub.ID)
			if err != nil {
				t.Fatalf("Resolve(%s, %s): %v", cat.ID, sub.ID, err)
			}
			if resolved.ID != cat.ID {
				t.Fatalf("Resolve(%s, %s) returned category %s", cat.ID, sub.ID, resolved.ID)
			}
		}
	}
}

func TestResolveRejectsForeignSub(t *testing.T) {
	// "pothole" belongs to road, not drainage.
	if _, err := Resolve("drainage", "pothole"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := Resolve("no-such-category", "pothole"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown main, got %v", err)
	}
}

func TestSubCategories(t *testing.T) {
	subs, err := SubCategories("road")
	if err != nil {
		t.Fatalf("SubCategories(road): %v", err)
	}
	if len(subs) == 0 || subs[0].ID != "pothole" {
		t.Fatalf("unexpected road sub-categories: %+v", subs)
	}
	if _, err := SubCategories("bogus"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUniqueIDs(t *testing.T) {
	seenMain := map[string]bool{}
	for _, cat := range MainCategories() {
		if seenMain[cat.ID] {
			t.Fatalf("duplicate main category id %s", cat.ID)
		}
		seenMain[cat.ID] = true
		seenSub := map[string]bool{}
		for _, sub := range cat.SubCategories {
			if seenSub[sub.ID] {
				t.Fatalf("duplicate sub id %s under %s", sub.ID, cat.ID)
			}
			seenSub[sub.ID] = true
		}
	}
}

func TestImageRequirementTracksDetectability(t *testing.T) {
	// In the current tree every photo-detectable category also demands a
	// photo; the flags are independent but the data keeps them in sync.
	for _, cat := range MainCategories() {
		if cat.AIDetectable && !cat.RequiresImage {
			t.Fatalf("category %s is aiDetectable but does not require an image", cat.ID)
		}
	}
}

func TestPromptEnumeratesOnlyDetectable(t *testing.T) {
	prompt := Prompt()
	if !strings.Contains(prompt, `"road"`) {
		t.Fatalf("prompt missing road category")
	}
	if strings.Contains(prompt, `"property-tax"`) {
		t.Fatalf("prompt leaked non-detectable category property-tax")
	}
	if !strings.Contains(prompt, `"pothole"`) {
		t.Fatalf("prompt missing pothole sub-category")
	}
}

func TestMapVisualLabel(t *testing.T) {
	match := MapVisualLabel("fallen-tree")
	if match == nil {
		t.Fatalf("expected mapping for fallen-tree")
	}
	// Mapped targets must resolve against the tree itself.
	if _, err := Resolve(match.MainCategory, match.SubCategory); err != nil {
		t.Fatalf("visual mapping does not resolve: %v", err)
	}
	if MapVisualLabel("kraken") != nil {
		t.Fatalf("expected nil for unknown label")
	}
}
