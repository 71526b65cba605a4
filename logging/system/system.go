package system

import (
	"context"

	"monkey-rumble/server/logging"
)

const (
	// EventPollFailed is emitted when a funding poll attempt fails after retries.
	EventPollFailed logging.EventType = "system.poll_failed"
	// EventPayloadRejected is emitted when a polled payload fails schema validation.
	EventPayloadRejected logging.EventType = "system.payload_rejected"
)

// PollFailedPayload describes a failed fetch against the transaction API.
type PollFailedPayload struct {
	URL      string `json:"url"`
	Attempts int    `json:"attempts"`
	Error    string `json:"error"`
}

// PayloadRejectedPayload describes a schema violation in a polled payload.
type PayloadRejectedPayload struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// PollFailed publishes a fetch failure.
func PollFailed(ctx context.Context, pub logging.Publisher, payload PollFailedPayload) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventPollFailed,
		Actor:    logging.EntityRef{ID: "funding-poller", Kind: logging.EntityKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySystem,
		Payload:  payload,
	}
	pub.Publish(ctx, event)
}

// PayloadRejected publishes a schema validation failure.
func PayloadRejected(ctx context.Context, pub logging.Publisher, payload PayloadRejectedPayload) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventPayloadRejected,
		Actor:    logging.EntityRef{ID: "funding-poller", Kind: logging.EntityKindWorld},
		Severity: logging.SeverityWarn,
		Category: logging.CategorySystem,
		Payload:  payload,
	}
	pub.Publish(ctx, event)
}
