// Package queue defines the asynq task used to classify complaint photos
// after submission.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/civicpulse/civicpulse/internal/intake"
)

const (
	// ClassifyComplaintTask is scheduled for complaints submitted with an
	// image but no classification suggestion.
	ClassifyComplaintTask = "complaint:classify"
)

// EnqueueClassify enqueues a classification job.
func EnqueueClassify(ctx context.Context, client *asynq.Client, job intake.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(ClassifyComplaintTask, data)
	if _, err := client.EnqueueContext(ctx, task, asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("enqueue classify task: %w", err)
	}
	return nil
}

// Enqueuer adapts an asynq client to the intake enricher contract.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer wraps the client.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// Submit enqueues the job; the caller treats failures as advisory.
func (e *Enqueuer) Submit(ctx context.Context, job intake.Job) error {
	return EnqueueClassify(ctx, e.client, job)
}
