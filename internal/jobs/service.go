package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/volkante/student-job-market/internal/cache"
	"github.com/volkante/student-job-market/internal/dto"
	"github.com/volkante/student-job-market/internal/listing"
	"github.com/volkante/student-job-market/internal/moderation"
	"github.com/volkante/student-job-market/internal/submission"
)

// approvedSnapshotKey caches the full approved set; every moderation write
// invalidates it.
const approvedSnapshotKey = "jobs:approved:v1"

const snapshotTTL = 2 * time.Minute

type JobRepository interface {
	Create(ctx context.Context, p dto.JobPosting) (int64, error)
	GetByID(ctx context.Context, id int64) (*dto.JobPosting, error)
	ListByStatus(ctx context.Context, status dto.Status) ([]dto.JobPosting, error)
	ListAll(ctx context.Context) ([]dto.JobPosting, error)
	UpdateStatus(ctx context.Context, id int64, status dto.Status) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context) (dto.Stats, error)
}

type EventProducer interface {
	ProduceSubmitted(ctx context.Context, messageID uuid.UUID, job dto.JobPosting, actor dto.Role) error
	ProduceTransition(ctx context.Context, messageID uuid.UUID, jobID int64, from, to dto.Status, actor dto.Role) error
	ProduceDeleted(ctx context.Context, messageID uuid.UUID, job dto.JobPosting, actor dto.Role) error
}

// Service is the marketplace core: the public discovery pipeline, the
// submission path and the moderation transitions, stitched over the store.
// Listing requests work on an immutable snapshot fetched once per request;
// moderation operations are the only writers.
type Service struct {
	repo      JobRepository
	machine   *moderation.Machine
	producer  EventProducer
	snapshots cache.Cache
	log       zerolog.Logger
}

type Deps struct {
	Repo     JobRepository
	Producer EventProducer

	// Snapshots is optional; nil disables the approved-set cache.
	Snapshots cache.Cache

	Log zerolog.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		repo:      d.Repo,
		machine:   moderation.NewMachine(d.Repo, d.Log),
		producer:  d.Producer,
		snapshots: d.Snapshots,
		log:       d.Log.With().Str("component", "jobs").Logger(),
	}
}

// ListApproved runs the discovery pipeline: approved snapshot → filter →
// sort → paginate. An empty page is a valid result, never an error.
func (s *Service) ListApproved(ctx context.Context, q dto.ListingQuery) ([]dto.JobSummary, dto.PageMeta, error) {
	snapshot, err := s.approvedSnapshot(ctx)
	if err != nil {
		return nil, dto.PageMeta{}, fmt.Errorf("approvedSnapshot: %w", err)
	}

	filtered := listing.Filter(snapshot, q)
	sorted := listing.Sort(filtered, q.Sort)
	pageItems, meta := listing.Paginate(sorted, q.Page, q.PageSize)

	out := make([]dto.JobSummary, 0, len(pageItems))
	for _, job := range pageItems {
		out = append(out, dto.JobSummary{
			ID:             job.ID,
			Title:          job.Title,
			Company:        job.Company,
			Location:       job.Location,
			Salary:         job.Salary,
			EmploymentType: job.EmploymentType,
			Field:          job.Field,
			Description:    job.Description,
			CreatedAt:      job.CreatedAt.Format(time.RFC3339),
			StartDate:      job.StartDate,
		})
	}

	return out, meta, nil
}

// GetApprovedDetail returns the public detail view. A posting that exists
// but is not approved is indistinguishable from a missing one.
func (s *Service) GetApprovedDetail(ctx context.Context, id int64) (*dto.JobDetail, error) {
	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.Status != dto.StatusApproved {
		return nil, dto.ErrNotFound
	}

	return &dto.JobDetail{
		ID:             job.ID,
		Title:          job.Title,
		Company:        job.Company,
		Location:       job.Location,
		Salary:         job.Salary,
		EmploymentType: job.EmploymentType,
		Field:          job.Field,
		ContactEmail:   job.ContactEmail,
		Description:    job.Description,
		Requirements:   job.Requirements,
		Benefits:       job.Benefits,
		StartDate:      job.StartDate,
		CreatedAt:      job.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Submit validates and stores a new posting as pending. Requires an
// authenticated caller; returns every validation violation at once.
func (s *Service) Submit(ctx context.Context, raw dto.RawSubmission, role dto.Role) (int64, error) {
	if !role.Authenticated() {
		return 0, dto.ErrForbidden
	}

	if violations := submission.Validate(raw); len(violations) > 0 {
		return 0, violations
	}

	job := submission.Build(raw)

	id, err := s.repo.Create(ctx, job)
	if err != nil {
		return 0, fmt.Errorf("repo.Create: %w", err)
	}

	job.ID = id
	s.emitSubmitted(ctx, job, role)

	return id, nil
}

// Approve transitions a posting to approved; repeated calls are idempotent.
func (s *Service) Approve(ctx context.Context, id int64, role dto.Role) (moderation.Outcome, error) {
	out, err := s.machine.Approve(ctx, id, role)
	if err != nil {
		return moderation.Outcome{}, err
	}

	if !out.Already {
		s.emitTransition(ctx, out, role)
		s.invalidateSnapshot(ctx)
	}

	return out, nil
}

// Reject transitions a posting to rejected; repeated calls are idempotent.
func (s *Service) Reject(ctx context.Context, id int64, role dto.Role) (moderation.Outcome, error) {
	out, err := s.machine.Reject(ctx, id, role)
	if err != nil {
		return moderation.Outcome{}, err
	}

	if !out.Already {
		s.emitTransition(ctx, out, role)
		s.invalidateSnapshot(ctx)
	}

	return out, nil
}

// Delete hard-deletes a posting regardless of status.
func (s *Service) Delete(ctx context.Context, id int64, role dto.Role) error {
	job, err := s.machine.Delete(ctx, id, role)
	if err != nil {
		return err
	}

	s.emitDeleted(ctx, *job, role)
	s.invalidateSnapshot(ctx)

	return nil
}

// AdminList is the moderation queue: all statuses or one, newest first.
func (s *Service) AdminList(ctx context.Context, q dto.AdminQuery, role dto.Role) ([]dto.AdminJobRow, dto.PageMeta, error) {
	if !role.Admin() {
		return nil, dto.PageMeta{}, dto.ErrForbidden
	}

	var (
		snapshot []dto.JobPosting
		err      error
	)

	if q.StatusFilter != "" {
		snapshot, err = s.repo.ListByStatus(ctx, q.StatusFilter)
	} else {
		snapshot, err = s.repo.ListAll(ctx)
	}
	if err != nil {
		return nil, dto.PageMeta{}, fmt.Errorf("repo list: %w", err)
	}

	sorted := listing.Sort(snapshot, dto.SortNewest)
	pageItems, meta := listing.Paginate(sorted, q.Page, q.PageSize)

	out := make([]dto.AdminJobRow, 0, len(pageItems))
	for _, job := range pageItems {
		out = append(out, dto.AdminJobRow{
			ID:             job.ID,
			Title:          job.Title,
			Company:        job.Company,
			Location:       job.Location,
			EmploymentType: job.EmploymentType,
			Field:          job.Field,
			Status:         job.Status,
			CreatedAt:      job.CreatedAt.Format(time.RFC3339),
			StartDate:      job.StartDate,
		})
	}

	return out, meta, nil
}

// Stats returns the admin dashboard counters.
func (s *Service) Stats(ctx context.Context, role dto.Role) (dto.Stats, error) {
	if !role.Admin() {
		return dto.Stats{}, dto.ErrForbidden
	}

	return s.repo.CountByStatus(ctx)
}

// approvedSnapshot fetches the approved set, via the cache when configured.
// Cache failures fall through to the store.
func (s *Service) approvedSnapshot(ctx context.Context) ([]dto.JobPosting, error) {
	if s.snapshots != nil {
		if body, err := s.snapshots.Get(ctx, approvedSnapshotKey); err == nil {
			var snapshot []dto.JobPosting
			if err := json.Unmarshal(body, &snapshot); err == nil {
				return snapshot, nil
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			s.log.Warn().Err(err).Msg("snapshot cache read failed")
		}
	}

	snapshot, err := s.repo.ListByStatus(ctx, dto.StatusApproved)
	if err != nil {
		return nil, err
	}

	if s.snapshots != nil {
		if body, err := json.Marshal(snapshot); err == nil {
			if err := s.snapshots.Set(ctx, approvedSnapshotKey, body, snapshotTTL); err != nil {
				s.log.Warn().Err(err).Msg("snapshot cache write failed")
			}
		}
	}

	return snapshot, nil
}

func (s *Service) invalidateSnapshot(ctx context.Context) {
	if s.snapshots == nil {
		return
	}

	if err := s.snapshots.Delete(ctx, approvedSnapshotKey); err != nil {
		s.log.Warn().Err(err).Msg("snapshot cache invalidation failed")
	}
}

// Event emission is best effort: the operation already succeeded, a broker
// outage must not turn it into a failure.
func (s *Service) emitSubmitted(ctx context.Context, job dto.JobPosting, actor dto.Role) {
	if s.producer == nil {
		return
	}

	if err := s.producer.ProduceSubmitted(ctx, uuid.New(), job, actor); err != nil {
		s.log.Error().Err(err).Int64("job_id", job.ID).Msg("submitted event not published")
	}
}

func (s *Service) emitTransition(ctx context.Context, out moderation.Outcome, actor dto.Role) {
	if s.producer == nil {
		return
	}

	if err := s.producer.ProduceTransition(ctx, uuid.New(), out.JobID, out.From, out.Status, actor); err != nil {
		s.log.Error().Err(err).Int64("job_id", out.JobID).Msg("transition event not published")
	}
}

func (s *Service) emitDeleted(ctx context.Context, job dto.JobPosting, actor dto.Role) {
	if s.producer == nil {
		return
	}

	if err := s.producer.ProduceDeleted(ctx, uuid.New(), job, actor); err != nil {
		s.log.Error().Err(err).Int64("job_id", job.ID).Msg("deleted event not published")
	}
}
