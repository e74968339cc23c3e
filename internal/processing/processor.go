// Package processing is the in-process classification pipeline used when no
// Redis queue is configured. Goroutines consume jobs from a buffered channel
// and attach advisory analyses to stored complaints.
package processing

import (
	"context"
	"log"

	"github.com/civicpulse/civicpulse/internal/classifier"
	"github.com/civicpulse/civicpulse/internal/imagestore"
	"github.com/civicpulse/civicpulse/internal/intake"
	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/store"
)

// Processor consumes classification jobs and updates stored complaints.
type Processor struct {
	store      store.Store
	images     imagestore.ImageStore
	classifier classifier.Classifier
	queue      chan intake.Job
	workers    int
}

// New builds a Processor with queue capacity tied to worker count.
func New(st store.Store, images imagestore.ImageStore, cls classifier.Classifier, workers int) *Processor {
	if workers <= 0 {
		workers = 1
	}
	return &Processor{
		store:      st,
		images:     images,
		classifier: cls,
		queue:      make(chan intake.Job, workers*4),
		workers:    workers,
	}
}

// Start launches worker goroutines that run until the context is cancelled.
func (p *Processor) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.worker(ctx)
	}
}

// Submit queues a job. When the buffer is full the job is dropped with a log
// line; enrichment is advisory and must never block a submission.
func (p *Processor) Submit(ctx context.Context, job intake.Job) error {
	select {
	case p.queue <- job:
	default:
		log.Printf("classification queue full, dropping job for %s", job.ComplaintID)
	}
	return nil
}

func (p *Processor) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.queue:
			p.process(ctx, job)
		}
	}
}

func (p *Processor) process(ctx context.Context, job intake.Job) {
	data, err := p.images.Load(ctx, job.FileName)
	if err != nil {
		log.Printf("load image for %s: %v", job.ComplaintID, err)
		return
	}
	suggestion, err := p.classifier.Classify(ctx, data, job.ContentType)
	if err != nil {
		log.Printf("classify %s: %v", job.ComplaintID, err)
		return
	}
	analysis := model.AnalysisFromSuggestion(p.classifier.Provider(), suggestion)
	if err := p.store.SetAnalysis(ctx, job.ComplaintID, analysis); err != nil {
		log.Printf("attach analysis to %s: %v", job.ComplaintID, err)
	}
}
