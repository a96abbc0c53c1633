package model

import "github.com/m-mizutani/xlrbot/pkg/domain/types"

// Notification is the envelope posted to the bot. Field order is part of
// the wire format.
type Notification struct {
	ID      string             `json:"id"`
	Type    types.ActivityType `json:"type"`
	Message string             `json:"message"`
	TaskID  types.TaskID       `json:"taskId"`
}

// Outcome describes what happened to a single CI of an event
type Outcome string

const (
	OutcomeNotified          Outcome = "notified"
	OutcomeIgnoredCIType     Outcome = "ignored_ci_type"
	OutcomeIgnoredActivity   Outcome = "ignored_activity_type"
	OutcomeCorrelationFailed Outcome = "correlation_failed"
	OutcomeDeliveryFailed    Outcome = "delivery_failed"
)

// ItemResult is the outcome for one CI
type ItemResult struct {
	ID      string       `json:"id"`
	Type    string       `json:"type"`
	Outcome Outcome      `json:"outcome"`
	TaskID  types.TaskID `json:"task_id,omitempty"`
}

// EventReport summarizes the handling of one host event
type EventReport struct {
	Kind     EventKind    `json:"kind"`
	Items    int          `json:"items"`
	Notified int          `json:"notified"`
	Results  []ItemResult `json:"results"`
}

// Add records the result of one CI
func (x *EventReport) Add(r ItemResult) {
	x.Results = append(x.Results, r)
	if r.Outcome == OutcomeNotified {
		x.Notified++
	}
}
