package api

import (
	"fmt"

	"github.com/valyala/fasthttp"

	"github.com/volkante/student-job-market/internal/dto"
	"github.com/volkante/student-job-market/internal/listing"
	"github.com/volkante/student-job-market/internal/moderation"
)

type adminListResponse struct {
	Jobs       []dto.AdminJobRow `json:"jobs"`
	Pagination dto.PageMeta      `json:"pagination"`
}

type moderationResponse struct {
	Message string `json:"message" example:"Job approved successfully"`
	Job     struct {
		ID     int64      `json:"id"`
		Title  string     `json:"title"`
		Status dto.Status `json:"status"`
	} `json:"job"`
}

// @Summary Moderation queue across all statuses
// @Tags    Admin
// @Produce json
// @Param   status query string false "pending | approved | rejected | all"
// @Param   page query int false "Page, default 1"
// @Param   limit query int false "Page size, default 20"
// @Success 200 {object} adminListResponse
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/jobs [get]
func (s *Service) adminListJobs(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	q := listing.NewAdminQuery(
		string(args.Peek("status")),
		string(args.Peek("page")),
		string(args.Peek("limit")),
	)

	rows, meta, err := s.jobs.AdminList(ctx, q, callerRole(ctx))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, adminListResponse{Jobs: rows, Pagination: meta})
}

// @Summary Approve a posting
// @Tags    Admin
// @Produce json
// @Param   id path int true "Job id"
// @Success 200 {object} moderationResponse
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 404 {object} errorResponse "job not found"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/jobs/{id}/approve [post]
func (s *Service) approveJob(ctx *fasthttp.RequestCtx) {
	s.transition(ctx, "approve")
}

// @Summary Reject a posting
// @Tags    Admin
// @Produce json
// @Param   id path int true "Job id"
// @Success 200 {object} moderationResponse
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 404 {object} errorResponse "job not found"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/jobs/{id}/reject [post]
func (s *Service) rejectJob(ctx *fasthttp.RequestCtx) {
	s.transition(ctx, "reject")
}

func (s *Service) transition(ctx *fasthttp.RequestCtx, action string) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, ErrJobIDRequired)
		return
	}

	role := callerRole(ctx)

	var out moderation.Outcome

	if action == "approve" {
		out, err = s.jobs.Approve(ctx, id, role)
	} else {
		out, err = s.jobs.Reject(ctx, id, role)
	}
	if err != nil {
		writeDomainError(ctx, err)
		return
	}

	resp := moderationResponse{}
	resp.Job.ID = out.JobID
	resp.Job.Title = out.Title
	resp.Job.Status = out.Status

	if out.Already {
		resp.Message = fmt.Sprintf("Job already %s", out.Status)
	} else {
		resp.Message = fmt.Sprintf("Job %s successfully", out.Status)
	}

	writeJSON(ctx, fasthttp.StatusOK, resp)
}

// @Summary Delete a posting (any status, irreversible)
// @Tags    Admin
// @Produce json
// @Param   id path int true "Job id"
// @Success 200 {object} okResponse
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 404 {object} errorResponse "job not found"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/jobs/{id} [delete]
func (s *Service) deleteJob(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, ErrJobIDRequired)
		return
	}

	if err := s.jobs.Delete(ctx, id, callerRole(ctx)); err != nil {
		writeDomainError(ctx, err)
		return
	}

	ok(ctx, "Job deleted successfully")
}

// @Summary Moderation counters
// @Tags    Admin
// @Produce json
// @Success 200 {object} dto.Stats
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/stats [get]
func (s *Service) statsHandler(ctx *fasthttp.RequestCtx) {
	stats, err := s.jobs.Stats(ctx, callerRole(ctx))
	if err != nil {
		writeDomainError(ctx, err)
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, stats)
}

// @Summary Audited lifecycle events
// @Tags    Admin
// @Produce json
// @Success 200 {array} dto.JobEvent
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/events [get]
func (s *Service) listEvents(ctx *fasthttp.RequestCtx) {
	if !callerRole(ctx).Admin() {
		writeError(ctx, fasthttp.StatusForbidden, ErrAdminOnly)
		return
	}

	rows, err := s.events.ListEvents(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("eventsRepository.ListEvents: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Audit dead letters
// @Tags    Admin
// @Produce json
// @Success 200 {array} dto.JobDLQ
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/dlq [get]
func (s *Service) listDLQ(ctx *fasthttp.RequestCtx) {
	if !callerRole(ctx).Admin() {
		writeError(ctx, fasthttp.StatusForbidden, ErrAdminOnly)
		return
	}

	rows, err := s.events.ListDLQ(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("eventsRepository.ListDLQ: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, rows)
}

// @Summary Truncate the audit tables
// @Tags    Admin
// @Success 200 {object} okResponse
// @Failure 403 {object} errorResponse "admin role required"
// @Failure 500 {object} errorResponse
// @Router  /api/admin/audit/reset [post]
func (s *Service) resetAuditHandler(ctx *fasthttp.RequestCtx) {
	if !callerRole(ctx).Admin() {
		writeError(ctx, fasthttp.StatusForbidden, ErrAdminOnly)
		return
	}

	if err := s.events.ResetAll(ctx); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("eventsRepository.ResetAll: %w", err))
		return
	}

	ok(ctx, "Audit data cleared")
}

// @Summary Service health
// @Tags    Admin
// @Success 200 {object} okResponse
// @Router  /health [get]
func (s *Service) healthHandler(ctx *fasthttp.RequestCtx) {
	ok(ctx, "OK")
}
