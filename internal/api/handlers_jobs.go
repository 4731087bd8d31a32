package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"

	"github.com/volkante/student-job-market/internal/dto"
	"github.com/volkante/student-job-market/internal/listing"
)

type listJobsResponse struct {
	Jobs       []dto.JobSummary `json:"jobs"`
	Pagination dto.PageMeta     `json:"pagination"`
}

type createJobResponse struct {
	ID      int64  `json:"id"`
	Status  string `json:"status" example:"pending"`
	Message string `json:"message" example:"Job submitted for approval"`
}

// @Summary Public listing of approved jobs
// @Tags    Jobs
// @Produce json
// @Param   q query string false "Free-text search over title/company/location/field"
// @Param   location query string false "Location substring filter"
// @Param   field query string false "Field substring filter"
// @Param   employment_type query string false "Employment type substring filter"
// @Param   sort query string false "newest | oldest | company | title"
// @Param   page query int false "Page, default 1"
// @Param   limit query int false "Page size, default 12, max 50"
// @Success 200 {object} listJobsResponse
// @Failure 500 {object} errorResponse
// @Router  /api/jobs [get]
func (s *Service) listJobs(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()

	search := string(args.Peek("q"))
	if search == "" {
		search = string(args.Peek("search"))
	}

	// The frontend sends camelCase employmentType; keep both spellings.
	employmentType := string(args.Peek("employment_type"))
	if employmentType == "" {
		employmentType = string(args.Peek("employmentType"))
	}

	q := listing.NewQuery(listing.QueryParams{
		Search:         search,
		Location:       string(args.Peek("location")),
		Field:          string(args.Peek("field")),
		EmploymentType: employmentType,
		Sort:           string(args.Peek("sort")),
		Page:           string(args.Peek("page")),
		PageSize:       string(args.Peek("limit")),
	})

	items, meta, err := s.jobs.ListApproved(ctx, q)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("jobs.ListApproved: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, listJobsResponse{Jobs: items, Pagination: meta})
}

// @Summary Public detail of an approved job
// @Tags    Jobs
// @Produce json
// @Param   id path int true "Job id"
// @Success 200 {object} dto.JobDetail
// @Failure 404 {object} errorResponse "job not found"
// @Failure 500 {object} errorResponse
// @Router  /api/jobs/{id} [get]
func (s *Service) getJob(ctx *fasthttp.RequestCtx) {
	id, err := pathID(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, ErrJobIDRequired)
		return
	}

	detail, err := s.jobs.GetApprovedDetail(ctx, id)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			writeError(ctx, fasthttp.StatusNotFound, ErrJobNotFound)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("jobs.GetApprovedDetail: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusOK, detail)
}

// @Summary Submit a job posting for moderation
// @Tags    Jobs
// @Accept  json
// @Produce json
// @Param   request body dto.RawSubmission true "Posting"
// @Success 201 {object} createJobResponse
// @Failure 400 {object} validationResponse "per-field violations"
// @Failure 401 {object} errorResponse "authenticated caller required"
// @Failure 500 {object} errorResponse
// @Router  /api/jobs [post]
func (s *Service) createJob(ctx *fasthttp.RequestCtx) {
	var raw dto.RawSubmission

	if err := json.Unmarshal(ctx.PostBody(), &raw); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Errorf("json.Unmarshal: %w", err))
		return
	}

	id, err := s.jobs.Submit(ctx, raw, callerRole(ctx))
	if err != nil {
		if errors.Is(err, dto.ErrForbidden) {
			writeError(ctx, fasthttp.StatusUnauthorized, ErrAuthRequired)
			return
		}

		var violations dto.ValidationErrors
		if errors.As(err, &violations) {
			writeDomainError(ctx, err)
			return
		}

		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("jobs.Submit: %w", err))
		return
	}

	writeJSON(ctx, fasthttp.StatusCreated, createJobResponse{
		ID:      id,
		Status:  string(dto.StatusPending),
		Message: "Job submitted for approval",
	})
}

func pathID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrJobIDRequired
	}

	return id, nil
}
