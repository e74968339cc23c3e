// Package classifier wraps an external vision model and reconciles its
// answers against the complaint taxonomy. Classification is advisory: the
// adapter degrades unrecognized answers instead of failing, and callers
// decide whether a hard failure matters.
package classifier

import (
	"context"
	"errors"

	"github.com/civicpulse/civicpulse/internal/model"
)

// ErrClassification wraps every failure mode of the external model: network
// errors, empty input, and unparseable responses.
var ErrClassification = errors.New("classification failed")

// Classifier produces a taxonomy-aligned suggestion for an image.
type Classifier interface {
	// Classify analyses the image bytes and returns a suggestion. A nil
	// MainCategory in the result means the model saw something the taxonomy
	// cannot name; that is a valid, degraded answer, not an error.
	Classify(ctx context.Context, image []byte, contentType string) (*model.ClassificationSuggestion, error)

	// Provider identifies the backing model for the analysis metadata.
	Provider() string
}
