package producer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/volkante/student-job-market/internal/dto"
)

// JobEventProducer publishes posting lifecycle events to the job-events
// topic. Events are an audit stream, not a delivery guarantee for callers:
// the API succeeds even when the broker is down.
type JobEventProducer struct {
	sp     sarama.SyncProducer
	topic  string
	source string
	log    zerolog.Logger
}

type Config struct {
	Topic  string
	Source string
}

func NewJobEventProducer(sp sarama.SyncProducer, cfg Config, log zerolog.Logger) *JobEventProducer {
	return &JobEventProducer{
		sp:     sp,
		topic:  cfg.Topic,
		source: cfg.Source,
		log:    log.With().Str("component", "JobEventProducer").Logger(),
	}
}

func (p *JobEventProducer) Close() error {
	if p == nil || p.sp == nil {
		return nil
	}
	return p.sp.Close()
}

func (p *JobEventProducer) ProduceSubmitted(ctx context.Context, messageID uuid.UUID, job dto.JobPosting, actor dto.Role) error {
	env := Envelope[SubmittedPayload]{
		Kind:      dto.EventSubmitted,
		MessageID: messageID,
		JobID:     job.ID,
		Payload: SubmittedPayload{
			Title:          job.Title,
			Company:        job.Company,
			Location:       job.Location,
			EmploymentType: job.EmploymentType,
			Field:          job.Field,
		},
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Source:    p.source,
	}

	return p.produce(ctx, env.Kind, messageID, env)
}

func (p *JobEventProducer) ProduceTransition(ctx context.Context, messageID uuid.UUID, jobID int64, from, to dto.Status, actor dto.Role) error {
	kind := dto.EventApproved
	if to == dto.StatusRejected {
		kind = dto.EventRejected
	}

	env := Envelope[TransitionPayload]{
		Kind:      kind,
		MessageID: messageID,
		JobID:     jobID,
		Payload:   TransitionPayload{From: from, To: to},
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Source:    p.source,
	}

	return p.produce(ctx, kind, messageID, env)
}

func (p *JobEventProducer) ProduceDeleted(ctx context.Context, messageID uuid.UUID, job dto.JobPosting, actor dto.Role) error {
	env := Envelope[DeletedPayload]{
		Kind:      dto.EventDeleted,
		MessageID: messageID,
		JobID:     job.ID,
		Payload:   DeletedPayload{Title: job.Title, Status: job.Status},
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Source:    p.source,
	}

	return p.produce(ctx, env.Kind, messageID, env)
}

func (p *JobEventProducer) produce(ctx context.Context, kind string, messageID uuid.UUID, env any) error {
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	return p.send(ctx, messageID.String(), body, map[string]string{
		"event-kind":   kind,
		"source":       p.source,
		"content-type": "application/json",
	})
}

func (p *JobEventProducer) send(_ context.Context, key string, value []byte, headers map[string]string) error {
	if p == nil || p.sp == nil {
		return errors.New("sync producer is not initialized")
	}

	var hs []sarama.RecordHeader
	for k, v := range headers {
		hs = append(hs, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   p.topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(value),
		Headers: hs,
	}

	part, off, err := p.sp.SendMessage(msg)
	if err != nil {
		p.log.Error().
			Err(err).
			Str("topic", p.topic).
			Str("key", key).
			Int("bytes", len(value)).
			Msg("failed to send kafka message")
		return fmt.Errorf("send kafka message: %w", err)
	}

	p.log.Info().
		Str("topic", p.topic).
		Str("key", key).
		Int32("partition", part).
		Int64("offset", off).
		Int("bytes", len(value)).
		Msg("kafka message sent")
	return nil
}
