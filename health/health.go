// Package health provides a small health status model for workers and
// their collaborators, plus aggregation across checks. A supervisor can
// poll Worker.Health (and the health of item sources, signals, and other
// dependencies) and combine the results into one fleet-level status.
package health

import "fmt"

const (
	// StatusHealthy indicates the component is fully operational.
	StatusHealthy = "healthy"

	// StatusDegraded indicates the component is operational with reduced
	// functionality.
	StatusDegraded = "degraded"

	// StatusUnhealthy indicates the component is not operational.
	StatusUnhealthy = "unhealthy"
)

// Status represents the health state of a worker or collaborator.
type Status struct {
	// Status is the current health state (healthy, degraded, or unhealthy).
	Status string `json:"status"`

	// Message provides a human-readable description of the health status.
	Message string `json:"message,omitempty"`

	// Details contains additional context and diagnostic information,
	// such as iteration counts or terminal errors.
	Details map[string]any `json:"details,omitempty"`
}

// IsHealthy returns true if the status is StatusHealthy.
func (s Status) IsHealthy() bool {
	return s.Status == StatusHealthy
}

// IsDegraded returns true if the status is StatusDegraded.
func (s Status) IsDegraded() bool {
	return s.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is StatusUnhealthy.
func (s Status) IsUnhealthy() bool {
	return s.Status == StatusUnhealthy
}

// NewHealthyStatus creates a new healthy status with an optional message.
func NewHealthyStatus(message string) Status {
	return Status{
		Status:  StatusHealthy,
		Message: message,
	}
}

// NewDegradedStatus creates a new degraded status with a message and
// optional details.
func NewDegradedStatus(message string, details map[string]any) Status {
	return Status{
		Status:  StatusDegraded,
		Message: message,
		Details: details,
	}
}

// NewUnhealthyStatus creates a new unhealthy status with a message and
// optional details.
func NewUnhealthyStatus(message string, details map[string]any) Status {
	return Status{
		Status:  StatusUnhealthy,
		Message: message,
		Details: details,
	}
}

// Combine aggregates multiple statuses into a single one.
// The result follows this priority:
//   - If any status is unhealthy, the result is unhealthy
//   - If any status is degraded (and none unhealthy), the result is degraded
//   - If all statuses are healthy, the result is healthy
func Combine(statuses ...Status) Status {
	if len(statuses) == 0 {
		return NewHealthyStatus("no statuses provided")
	}

	var unhealthy []string
	var degraded []string
	var healthyCount int

	for _, s := range statuses {
		switch s.Status {
		case StatusUnhealthy:
			msg := s.Message
			if msg == "" {
				msg = "unnamed check"
			}
			unhealthy = append(unhealthy, msg)
		case StatusDegraded:
			msg := s.Message
			if msg == "" {
				msg = "unnamed check"
			}
			degraded = append(degraded, msg)
		case StatusHealthy:
			healthyCount++
		}
	}

	if len(unhealthy) > 0 {
		return NewUnhealthyStatus(
			fmt.Sprintf("%d check(s) failed", len(unhealthy)),
			map[string]any{
				"total":         len(statuses),
				"unhealthy":     len(unhealthy),
				"degraded":      len(degraded),
				"healthy":       healthyCount,
				"failed_checks": unhealthy,
			},
		)
	}

	if len(degraded) > 0 {
		return NewDegradedStatus(
			fmt.Sprintf("%d check(s) degraded", len(degraded)),
			map[string]any{
				"total":           len(statuses),
				"degraded":        len(degraded),
				"healthy":         healthyCount,
				"degraded_checks": degraded,
			},
		)
	}

	return NewHealthyStatus(
		fmt.Sprintf("all %d check(s) passed", len(statuses)),
	)
}
