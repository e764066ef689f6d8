package queue

import (
	"encoding/json"
	"fmt"
)

// Item represents a single unit of work submitted to a worker's queue.
type Item struct {
	// JobID correlates all items in a batch (typically a UUID).
	JobID string `json:"job_id"`

	// Index is the position of this item in the batch (0-based).
	Index int `json:"index"`

	// Total is the total number of items in the batch.
	Total int `json:"total"`

	// Worker is the name of the worker queue this item was submitted to.
	Worker string `json:"worker"`

	// Payload is the opaque JSON input handed to the work function.
	Payload json.RawMessage `json:"payload,omitempty"`

	// SubmittedAt is the Unix timestamp in milliseconds when the item was
	// submitted.
	SubmittedAt int64 `json:"submitted_at"`
}

// Result represents the outcome of processing an Item. It is published to
// a job-specific pub/sub channel for the submitter to collect.
type Result struct {
	// JobID correlates this result with the original item.
	JobID string `json:"job_id"`

	// Index is the position of the originating item in the batch.
	Index int `json:"index"`

	// Payload is the work function's result serialized as JSON.
	// Empty if Error is set.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Error is the error message if processing failed.
	Error string `json:"error,omitempty"`

	// WorkerID is the unique identifier of the worker instance that
	// processed the item.
	WorkerID string `json:"worker_id"`

	// StartedAt is the Unix timestamp in milliseconds when processing
	// started.
	StartedAt int64 `json:"started_at"`

	// CompletedAt is the Unix timestamp in milliseconds when processing
	// completed.
	CompletedAt int64 `json:"completed_at"`
}

// Name returns the queue key for a worker name.
func Name(worker string) string {
	return fmt.Sprintf("worker:%s:queue", worker)
}

// ResultChannel returns the pub/sub channel for a job's results.
func ResultChannel(jobID string) string {
	return fmt.Sprintf("results:%s", jobID)
}

// heartbeatKey returns the health key for a worker name.
func heartbeatKey(worker string) string {
	return fmt.Sprintf("worker:%s:health", worker)
}
