package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Lifecycle event kinds produced by the core and persisted by the audit
// consumer.
const (
	EventSubmitted = "submitted"
	EventApproved  = "approved"
	EventRejected  = "rejected"
	EventDeleted   = "deleted"
)

// JobEvent is one audited lifecycle event as stored in job_events.
type JobEvent struct {
	ID         int64           `json:"id"`
	MessageID  uuid.UUID       `json:"message_id"`
	Kind       string          `json:"kind"`
	JobID      int64           `json:"job_id"`
	Topic      string          `json:"topic"`
	Partition  int             `json:"partition"`
	Offset     int64           `json:"offset"`
	Payload    json.RawMessage `json:"payload"`
	ReceivedAt string          `json:"received_at"`
}

// JobDLQ is an undecodable message parked in job_dlq. Payload is the raw
// message body, not necessarily valid json.
type JobDLQ struct {
	ID         int64  `json:"id"`
	Topic      string `json:"topic"`
	Key        string `json:"key"`
	Payload    string `json:"payload"`
	Error      string `json:"error"`
	ReceivedAt string `json:"received_at"`
}
