// Package worker consumes classification jobs from the asynq queue and
// attaches the resulting analysis to stored complaints.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/civicpulse/civicpulse/internal/classifier"
	"github.com/civicpulse/civicpulse/internal/imagestore"
	"github.com/civicpulse/civicpulse/internal/intake"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/queue"
	"github.com/civicpulse/civicpulse/internal/store"
)

// Processor is plugged into the asynq worker loop.
type Processor struct {
	store      store.Store
	images     imagestore.ImageStore
	classifier classifier.Classifier
}

// NewProcessor constructs a worker processor.
func NewProcessor(st store.Store, images imagestore.ImageStore, cls classifier.Classifier) *Processor {
	return &Processor{store: st, images: images, classifier: cls}
}

// Handler registers the classify job handler.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.ClassifyComplaintTask, p.handleClassify)
	return mux
}

func (p *Processor) handleClassify(ctx context.Context, task *asynq.Task) error {
	var job intake.Job
	if err := json.Unmarshal(task.Payload(), &job); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	failure := func(err error) error {
		log.Printf("classify failed for %s: %v", job.ComplaintID, err)
		return err
	}
	data, err := p.images.Load(ctx, job.FileName)
	if err != nil {
		return failure(err)
	}
	suggestion, err := p.classifier.Classify(ctx, data, job.ContentType)
	if err != nil {
		return failure(err)
	}
	analysis := model.AnalysisFromSuggestion(p.classifier.Provider(), suggestion)
	if err := p.store.SetAnalysis(ctx, job.ComplaintID, analysis); err != nil {
		return failure(err)
	}
	log.Printf("complaint %s classified (confidence %.2f)", job.ComplaintID, suggestion.Confidence)
	return nil
}
