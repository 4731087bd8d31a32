package api

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/volkante/student-job-market/internal/dto"
	"github.com/volkante/student-job-market/internal/moderation"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
)

// @title           Student Job Market API
// @version         1.0
// @description     Job-listing marketplace: companies submit postings, admins approve or reject them, visitors browse the approved listing.
//
// @BasePath  /
// @schemes   http
// @accept    json
// @produce   json

type JobsService interface {
	ListApproved(ctx context.Context, q dto.ListingQuery) ([]dto.JobSummary, dto.PageMeta, error)
	GetApprovedDetail(ctx context.Context, id int64) (*dto.JobDetail, error)
	Submit(ctx context.Context, raw dto.RawSubmission, role dto.Role) (int64, error)

	Approve(ctx context.Context, id int64, role dto.Role) (moderation.Outcome, error)
	Reject(ctx context.Context, id int64, role dto.Role) (moderation.Outcome, error)
	Delete(ctx context.Context, id int64, role dto.Role) error

	AdminList(ctx context.Context, q dto.AdminQuery, role dto.Role) ([]dto.AdminJobRow, dto.PageMeta, error)
	Stats(ctx context.Context, role dto.Role) (dto.Stats, error)
}

type EventsRepository interface {
	ListEvents(ctx context.Context) ([]dto.JobEvent, error)
	ListDLQ(ctx context.Context) ([]dto.JobDLQ, error)
	ResetAll(ctx context.Context) error
}

type ServiceDeps struct {
	Port int

	Jobs       JobsService
	EventsRepo EventsRepository
}

type Service struct {
	r      *router.Router
	server *fasthttp.Server
	port   int

	jobs   JobsService
	events EventsRepository
}

func NewService(d ServiceDeps) *Service {
	rt := router.New()

	s := &Service{
		r:      rt,
		port:   d.Port,
		jobs:   d.Jobs,
		events: d.EventsRepo,
	}

	s.mountRoutes()

	s.server = &fasthttp.Server{
		Handler:            RecoveryMiddleware(LoggingMiddleware(CORS(s.r.Handler))),
		Name:               "student-job-market",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       15 * time.Second,
		MaxRequestBodySize: 2 << 20, // 2 MiB
	}

	return s
}

func (s *Service) Start(ctx context.Context) error {
	log.Info().Int("port", s.port).Msg("Starting job market API")

	emergencyShutdown := make(chan error)
	go func() {
		err := s.server.ListenAndServe(fmt.Sprintf(":%d", s.port))
		emergencyShutdown <- err
	}()

	select {
	case <-ctx.Done():
		return s.server.Shutdown()
	case e := <-emergencyShutdown:
		return e
	}
}

func (s *Service) mountRoutes() {
	// Public listing
	s.r.GET("/api/jobs", s.listJobs)
	s.r.GET("/api/jobs/{id}", s.getJob)
	s.r.POST("/api/jobs", s.createJob)

	// Moderation
	s.r.GET("/api/admin/jobs", s.adminListJobs)
	s.r.POST("/api/admin/jobs/{id}/approve", s.approveJob)
	s.r.POST("/api/admin/jobs/{id}/reject", s.rejectJob)
	s.r.DELETE("/api/admin/jobs/{id}", s.deleteJob)
	s.r.GET("/api/admin/stats", s.statsHandler)

	// Audit
	s.r.GET("/api/admin/events", s.listEvents)
	s.r.GET("/api/admin/dlq", s.listDLQ)
	s.r.POST("/api/admin/audit/reset", s.resetAuditHandler)

	// Health
	s.r.GET("/health", s.healthHandler)
}
