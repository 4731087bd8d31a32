package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/volkante/student-job-market/internal/dto"
)

type EventsRepository interface {
	ExistsMessage(ctx context.Context, messageID uuid.UUID) (bool, error)
	InsertEvent(ctx context.Context, ev dto.JobEvent) error
	InsertDLQ(ctx context.Context, dlq dto.JobDLQ) error
}

// envelope is the minimal wire shape the audit consumer needs; the payload
// stays raw and lands in jsonb as-is.
type envelope struct {
	Kind      string          `json:"kind"`
	MessageID uuid.UUID       `json:"message_id"`
	JobID     int64           `json:"job_id"`
	Payload   json.RawMessage `json:"payload"`
	Actor     dto.Role        `json:"actor"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
}

type handler struct {
	events EventsRepository
	log    zerolog.Logger
}

func (h *handler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *handler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

func (h *handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var env envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			h.toDLQ(sess.Context(), msg, fmt.Sprintf("invalid_json: %v", err))
			sess.MarkMessage(msg, "")
			continue
		}

		if env.MessageID == uuid.Nil {
			h.toDLQ(sess.Context(), msg, "missing message_id")
			sess.MarkMessage(msg, "")
			continue
		}

		if ok := h.process(sess, msg, env); ok {
			sess.MarkMessage(msg, "")
		}
	}
	return nil
}

// process records one lifecycle event, skipping duplicates by message id.
// Returns false when the message must be redelivered.
func (h *handler) process(sess sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage, env envelope) bool {
	ctx := sess.Context()

	exists, err := h.events.ExistsMessage(ctx, env.MessageID)
	if err != nil {
		h.log.Error().Err(err).Str("message_id", env.MessageID.String()).Msg("dedup check failed")
		return false
	}
	if exists {
		h.log.Info().Str("message_id", env.MessageID.String()).Msg("duplicate event skipped")
		return true
	}

	ev := dto.JobEvent{
		MessageID: env.MessageID,
		Kind:      env.Kind,
		JobID:     env.JobID,
		Topic:     msg.Topic,
		Partition: int(msg.Partition),
		Offset:    msg.Offset,
		Payload:   append([]byte(nil), msg.Value...),
	}

	if err := h.events.InsertEvent(ctx, ev); err != nil {
		h.log.Error().Err(err).Str("message_id", env.MessageID.String()).Msg("insert event failed")
		return false
	}

	return true
}

func (h *handler) toDLQ(ctx context.Context, msg *sarama.ConsumerMessage, reason string) {
	_ = h.events.InsertDLQ(ctx, dto.JobDLQ{
		Topic:   msg.Topic,
		Key:     string(msg.Key),
		Payload: string(msg.Value),
		Error:   reason,
	})

	h.log.Warn().
		Str("topic", msg.Topic).
		Int32("partition", msg.Partition).
		Int64("offset", msg.Offset).
		Str("reason", reason).
		Msg("message sent to DLQ")
}
