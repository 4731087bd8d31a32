package producer

import (
	"time"

	"github.com/google/uuid"

	"github.com/volkante/student-job-market/internal/dto"
)

// Envelope wraps every lifecycle event on the wire.
type Envelope[T any] struct {
	Kind      string    `json:"kind"` // submitted | approved | rejected | deleted
	MessageID uuid.UUID `json:"message_id"`
	JobID     int64     `json:"job_id"`
	Payload   T         `json:"payload"`
	Actor     dto.Role  `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"` // producing service
}

// SubmittedPayload carries the public shape of a freshly submitted posting.
type SubmittedPayload struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	EmploymentType string `json:"employment_type"`
	Field          string `json:"field"`
}

// TransitionPayload carries a moderation status change.
type TransitionPayload struct {
	From dto.Status `json:"from"`
	To   dto.Status `json:"to"`
}

// DeletedPayload records what was removed.
type DeletedPayload struct {
	Title  string     `json:"title"`
	Status dto.Status `json:"status"`
}
