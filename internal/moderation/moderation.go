package moderation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/volkante/student-job-market/internal/dto"
)

// StatusStore is the slice of the job store the state machine needs. Status
// writes must be single-statement updates so concurrent transitions on the
// same id serialize at the row.
type StatusStore interface {
	GetByID(ctx context.Context, id int64) (*dto.JobPosting, error)
	UpdateStatus(ctx context.Context, id int64, status dto.Status) error
	Delete(ctx context.Context, id int64) error
}

// Outcome reports what a transition did. Already means the posting was in
// the target state before the call; repeated admin clicks are safe.
type Outcome struct {
	JobID   int64      `json:"job_id"`
	Title   string     `json:"title"`
	From    dto.Status `json:"-"`
	Status  dto.Status `json:"status"`
	Already bool       `json:"already"`
}

// Machine applies the moderation transitions. Every entry point takes the
// caller role explicitly; there is no ambient authentication state.
type Machine struct {
	store StatusStore
	log   zerolog.Logger
}

func NewMachine(store StatusStore, log zerolog.Logger) *Machine {
	return &Machine{
		store: store,
		log:   log.With().Str("component", "moderation").Logger(),
	}
}

// Approve moves a posting to approved. Already-approved is an idempotent
// no-op; any other status transitions. Admin only.
func (m *Machine) Approve(ctx context.Context, id int64, role dto.Role) (Outcome, error) {
	return m.transition(ctx, id, role, dto.StatusApproved)
}

// Reject moves a posting to rejected. Already-rejected is an idempotent
// no-op; any other status transitions. Admin only.
func (m *Machine) Reject(ctx context.Context, id int64, role dto.Role) (Outcome, error) {
	return m.transition(ctx, id, role, dto.StatusRejected)
}

func (m *Machine) transition(ctx context.Context, id int64, role dto.Role, target dto.Status) (Outcome, error) {
	if !role.Admin() {
		return Outcome{}, dto.ErrForbidden
	}

	job, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("store.GetByID: %w", err)
	}

	out := Outcome{
		JobID:  job.ID,
		Title:  job.Title,
		From:   job.Status,
		Status: target,
	}

	if job.Status == target {
		out.Already = true
		return out, nil
	}

	if err := m.store.UpdateStatus(ctx, id, target); err != nil {
		return Outcome{}, fmt.Errorf("store.UpdateStatus: %w", err)
	}

	m.log.Info().
		Int64("job_id", id).
		Str("from", string(job.Status)).
		Str("to", string(target)).
		Msg("status transition")

	return out, nil
}

// Delete removes a posting regardless of status. Irreversible. Admin only.
// The removed posting is returned so callers can record what was deleted.
func (m *Machine) Delete(ctx context.Context, id int64, role dto.Role) (*dto.JobPosting, error) {
	if !role.Admin() {
		return nil, dto.ErrForbidden
	}

	job, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store.GetByID: %w", err)
	}

	if err := m.store.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("store.Delete: %w", err)
	}

	m.log.Info().Int64("job_id", id).Str("status", string(job.Status)).Msg("posting deleted")

	return job, nil
}
