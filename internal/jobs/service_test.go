package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/volkante/student-job-market/internal/cache"
	"github.com/volkante/student-job-market/internal/dto"
)

type fakeRepo struct {
	jobs   map[int64]*dto.JobPosting
	nextID int64

	listCalls int
}

func newFakeRepo(jobs ...dto.JobPosting) *fakeRepo {
	r := &fakeRepo{jobs: make(map[int64]*dto.JobPosting)}
	for i := range jobs {
		job := jobs[i]
		r.jobs[job.ID] = &job
		if job.ID > r.nextID {
			r.nextID = job.ID
		}
	}
	return r
}

func (r *fakeRepo) Create(_ context.Context, p dto.JobPosting) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	r.jobs[p.ID] = &p
	return p.ID, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*dto.JobPosting, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, dto.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (r *fakeRepo) ListByStatus(_ context.Context, status dto.Status) ([]dto.JobPosting, error) {
	r.listCalls++
	out := make([]dto.JobPosting, 0, len(r.jobs))
	for _, job := range r.jobs {
		if job.Status == status {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAll(_ context.Context) ([]dto.JobPosting, error) {
	out := make([]dto.JobPosting, 0, len(r.jobs))
	for _, job := range r.jobs {
		out = append(out, *job)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status dto.Status) error {
	job, ok := r.jobs[id]
	if !ok {
		return dto.ErrNotFound
	}
	job.Status = status
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.jobs[id]; !ok {
		return dto.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *fakeRepo) CountByStatus(_ context.Context) (dto.Stats, error) {
	var s dto.Stats
	for _, job := range r.jobs {
		s.Total++
		switch job.Status {
		case dto.StatusPending:
			s.Pending++
		case dto.StatusApproved:
			s.Approved++
		case dto.StatusRejected:
			s.Rejected++
		}
	}
	return s, nil
}

type producedEvent struct {
	kind  string
	jobID int64
}

type fakeProducer struct {
	events []producedEvent
}

func (p *fakeProducer) ProduceSubmitted(_ context.Context, _ uuid.UUID, job dto.JobPosting, _ dto.Role) error {
	p.events = append(p.events, producedEvent{kind: dto.EventSubmitted, jobID: job.ID})
	return nil
}

func (p *fakeProducer) ProduceTransition(_ context.Context, _ uuid.UUID, jobID int64, _, to dto.Status, _ dto.Role) error {
	kind := dto.EventApproved
	if to == dto.StatusRejected {
		kind = dto.EventRejected
	}
	p.events = append(p.events, producedEvent{kind: kind, jobID: jobID})
	return nil
}

func (p *fakeProducer) ProduceDeleted(_ context.Context, _ uuid.UUID, job dto.JobPosting, _ dto.Role) error {
	p.events = append(p.events, producedEvent{kind: dto.EventDeleted, jobID: job.ID})
	return nil
}

type memCache struct {
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Set(_ context.Context, key string, body []byte, _ time.Duration) error {
	c.data[key] = body
	return nil
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	body, ok := c.data[key]
	if !ok {
		return nil, cache.ErrNotFound
	}
	return body, nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.data, key)
		c.deletes = append(c.deletes, key)
	}
	return nil
}

func (c *memCache) Close() error { return nil }

func newTestService(repo *fakeRepo, producer *fakeProducer, snapshots cache.Cache) *Service {
	return NewService(Deps{
		Repo:      repo,
		Producer:  producer,
		Snapshots: snapshots,
		Log:       zerolog.Nop(),
	})
}

func posting(id int64, status dto.Status, createdAt time.Time) dto.JobPosting {
	return dto.JobPosting{
		ID:             id,
		Title:          "Backend Intern",
		Company:        "TechCorp",
		Location:       "Istanbul",
		EmploymentType: dto.EmploymentPartTime,
		Field:          "Software",
		ContactEmail:   "jobs@techcorp.example",
		Description:    "Ship backend features with the platform team.",
		Status:         status,
		CreatedAt:      createdAt,
	}
}

func defaultQuery() dto.ListingQuery {
	return dto.ListingQuery{Sort: dto.SortNewest, Page: 1, PageSize: 12}
}

func TestListApprovedHidesOtherStatuses(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo(
		posting(1, dto.StatusApproved, now.Add(-3*time.Hour)),
		posting(2, dto.StatusPending, now.Add(-2*time.Hour)),
		posting(3, dto.StatusRejected, now.Add(-1*time.Hour)),
		posting(4, dto.StatusApproved, now),
	)
	svc := newTestService(repo, &fakeProducer{}, nil)

	out, meta, err := svc.ListApproved(context.Background(), defaultQuery())
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if meta.Total != 2 {
		t.Errorf("want total 2, got %d", meta.Total)
	}
	if len(out) != 2 || out[0].ID != 4 || out[1].ID != 1 {
		t.Errorf("want approved postings [4 1] newest first, got %+v", out)
	}
}

func TestListApprovedEmptyPageIsNotAnError(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeProducer{}, nil)

	out, meta, err := svc.ListApproved(context.Background(), defaultQuery())
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if out == nil {
		t.Error("empty listing must be an empty slice, not nil")
	}
	if meta.Pages != 0 || meta.Total != 0 {
		t.Errorf("unexpected meta %+v", meta)
	}
}

func TestListApprovedUsesSnapshotCache(t *testing.T) {
	repo := newFakeRepo(posting(1, dto.StatusApproved, time.Now()))
	snapshots := newMemCache()
	svc := newTestService(repo, &fakeProducer{}, snapshots)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.ListApproved(context.Background(), defaultQuery()); err != nil {
			t.Fatalf("ListApproved #%d: %v", i+1, err)
		}
	}

	if repo.listCalls != 1 {
		t.Errorf("want a single store read behind the cache, got %d", repo.listCalls)
	}
}

func TestGetApprovedDetailHidesNonApproved(t *testing.T) {
	repo := newFakeRepo(
		posting(1, dto.StatusPending, time.Now()),
		posting(2, dto.StatusApproved, time.Now()),
	)
	svc := newTestService(repo, &fakeProducer{}, nil)

	if _, err := svc.GetApprovedDetail(context.Background(), 1); !errors.Is(err, dto.ErrNotFound) {
		t.Errorf("pending posting: want ErrNotFound, got %v", err)
	}

	detail, err := svc.GetApprovedDetail(context.Background(), 2)
	if err != nil {
		t.Fatalf("approved posting: %v", err)
	}
	if detail.ContactEmail != "jobs@techcorp.example" {
		t.Errorf("detail view must expose the contact email, got %q", detail.ContactEmail)
	}
}

func TestSubmitRequiresAuthenticatedCaller(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeProducer{}, nil)

	_, err := svc.Submit(context.Background(), validSubmission(), dto.RoleAnonymous)
	if !errors.Is(err, dto.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if len(repo.jobs) != 0 {
		t.Error("rejected submission must not be stored")
	}
}

func TestSubmitStoresPendingAndEmitsEvent(t *testing.T) {
	repo := newFakeRepo()
	producer := &fakeProducer{}
	svc := newTestService(repo, producer, nil)

	id, err := svc.Submit(context.Background(), validSubmission(), dto.RoleUser)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stored := repo.jobs[id]
	if stored == nil {
		t.Fatalf("posting %d not stored", id)
	}
	if stored.Status != dto.StatusPending {
		t.Errorf("want pending, got %q", stored.Status)
	}

	if len(producer.events) != 1 || producer.events[0].kind != dto.EventSubmitted {
		t.Errorf("want one submitted event, got %+v", producer.events)
	}
}

func TestSubmitReturnsAllViolations(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeProducer{}, nil)

	raw := validSubmission()
	raw.Title = ""
	raw.ContactEmail = "not-an-email"

	_, err := svc.Submit(context.Background(), raw, dto.RoleUser)

	var violations dto.ValidationErrors
	if !errors.As(err, &violations) {
		t.Fatalf("want ValidationErrors, got %v", err)
	}
	if len(violations) != 2 {
		t.Errorf("want 2 violations, got %d: %v", len(violations), violations)
	}
}

func TestApproveEmitsOnceAndInvalidatesCache(t *testing.T) {
	repo := newFakeRepo(posting(1, dto.StatusPending, time.Now()))
	producer := &fakeProducer{}
	snapshots := newMemCache()
	svc := newTestService(repo, producer, snapshots)

	// warm the snapshot so the transition has something to invalidate
	if _, _, err := svc.ListApproved(context.Background(), defaultQuery()); err != nil {
		t.Fatalf("ListApproved: %v", err)
	}

	out, err := svc.Approve(context.Background(), 1, dto.RoleAdmin)
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if out.Already {
		t.Error("first approval must not report already")
	}
	if len(snapshots.deletes) != 1 {
		t.Errorf("want one snapshot invalidation, got %d", len(snapshots.deletes))
	}

	out, err = svc.Approve(context.Background(), 1, dto.RoleAdmin)
	if err != nil {
		t.Fatalf("second Approve: %v", err)
	}
	if !out.Already {
		t.Error("second approval must report already")
	}
	if len(producer.events) != 1 || producer.events[0].kind != dto.EventApproved {
		t.Errorf("idempotent repeat must not emit again, got %+v", producer.events)
	}
	if len(snapshots.deletes) != 1 {
		t.Errorf("idempotent repeat must not invalidate again, got %d", len(snapshots.deletes))
	}
}

func TestRejectEmitsTransition(t *testing.T) {
	repo := newFakeRepo(posting(1, dto.StatusApproved, time.Now()))
	producer := &fakeProducer{}
	svc := newTestService(repo, producer, nil)

	out, err := svc.Reject(context.Background(), 1, dto.RoleAdmin)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if out.Status != dto.StatusRejected {
		t.Errorf("want rejected, got %q", out.Status)
	}
	if len(producer.events) != 1 || producer.events[0].kind != dto.EventRejected {
		t.Errorf("want one rejected event, got %+v", producer.events)
	}
}

func TestDeleteEmitsWithPostingPayload(t *testing.T) {
	repo := newFakeRepo(posting(7, dto.StatusApproved, time.Now()))
	producer := &fakeProducer{}
	svc := newTestService(repo, producer, nil)

	if err := svc.Delete(context.Background(), 7, dto.RoleAdmin); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := repo.jobs[7]; ok {
		t.Error("posting must be gone from the store")
	}
	if len(producer.events) != 1 || producer.events[0] != (producedEvent{kind: dto.EventDeleted, jobID: 7}) {
		t.Errorf("want one deleted event for posting 7, got %+v", producer.events)
	}
}

func TestAdminListRequiresAdmin(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeProducer{}, nil)

	q := dto.AdminQuery{Page: 1, PageSize: 20}
	if _, _, err := svc.AdminList(context.Background(), q, dto.RoleUser); !errors.Is(err, dto.ErrForbidden) {
		t.Errorf("want ErrForbidden, got %v", err)
	}
}

func TestAdminListFiltersByStatus(t *testing.T) {
	now := time.Now()
	repo := newFakeRepo(
		posting(1, dto.StatusPending, now.Add(-2*time.Hour)),
		posting(2, dto.StatusApproved, now.Add(-1*time.Hour)),
		posting(3, dto.StatusPending, now),
	)
	svc := newTestService(repo, &fakeProducer{}, nil)

	q := dto.AdminQuery{StatusFilter: dto.StatusPending, Page: 1, PageSize: 20}
	out, meta, err := svc.AdminList(context.Background(), q, dto.RoleAdmin)
	if err != nil {
		t.Fatalf("AdminList: %v", err)
	}
	if meta.Total != 2 {
		t.Errorf("want total 2, got %d", meta.Total)
	}
	if len(out) != 2 || out[0].ID != 3 || out[1].ID != 1 {
		t.Errorf("want pending postings [3 1] newest first, got %+v", out)
	}

	q.StatusFilter = ""
	_, meta, err = svc.AdminList(context.Background(), q, dto.RoleAdmin)
	if err != nil {
		t.Fatalf("AdminList all: %v", err)
	}
	if meta.Total != 3 {
		t.Errorf("want total 3 without filter, got %d", meta.Total)
	}
}

func TestStats(t *testing.T) {
	repo := newFakeRepo(
		posting(1, dto.StatusPending, time.Now()),
		posting(2, dto.StatusApproved, time.Now()),
		posting(3, dto.StatusApproved, time.Now()),
		posting(4, dto.StatusRejected, time.Now()),
	)
	svc := newTestService(repo, &fakeProducer{}, nil)

	if _, err := svc.Stats(context.Background(), dto.RoleUser); !errors.Is(err, dto.ErrForbidden) {
		t.Errorf("non-admin stats: want ErrForbidden, got %v", err)
	}

	stats, err := svc.Stats(context.Background(), dto.RoleAdmin)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	want := dto.Stats{Total: 4, Pending: 1, Approved: 2, Rejected: 1}
	if stats != want {
		t.Errorf("want %+v, got %+v", want, stats)
	}
}

func validSubmission() dto.RawSubmission {
	return dto.RawSubmission{
		Title:          "Frontend Intern",
		Company:        "StartupLab",
		Location:       "Ankara",
		EmploymentType: dto.EmploymentInternship,
		Field:          "Web Development",
		ContactEmail:   "hiring@startuplab.example",
		Description:    "Build UI components alongside the product team.",
	}
}
