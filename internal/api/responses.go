package api

import (
	"encoding/json"
	"errors"

	"github.com/valyala/fasthttp"

	"github.com/volkante/student-job-market/internal/dto"
)

var (
	ErrJobIDRequired = errors.New("path parameter 'id' must be a positive integer")
	ErrJobNotFound   = errors.New("job not found")
	ErrAdminOnly     = errors.New("admin role required")
	ErrAuthRequired  = errors.New("authenticated caller required")
)

type okResponse struct {
	Status string `json:"status" example:"ok"`
	Msg    string `json:"msg" example:"Done"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type validationResponse struct {
	Code   string                `json:"code"`
	Errors []dto.ValidationError `json:"errors"`
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.SetStatusCode(statusCode)

	_ = json.NewEncoder(ctx).Encode(body)
}

func ok(ctx *fasthttp.RequestCtx, msg string) {
	writeJSON(ctx, fasthttp.StatusOK, okResponse{Status: "ok", Msg: msg})
}

func writeError(ctx *fasthttp.RequestCtx, httpStatus int, err error) {
	writeJSON(ctx, httpStatus, errorResponse{Code: fasthttp.StatusMessage(httpStatus), Message: err.Error()})
}

// writeDomainError maps core error values onto HTTP statuses. Validation
// violations keep their per-field structure.
func writeDomainError(ctx *fasthttp.RequestCtx, err error) {
	var violations dto.ValidationErrors
	if errors.As(err, &violations) {
		writeJSON(ctx, fasthttp.StatusBadRequest, validationResponse{
			Code:   "VALIDATION_ERROR",
			Errors: violations,
		})
		return
	}

	switch {
	case errors.Is(err, dto.ErrForbidden):
		writeError(ctx, fasthttp.StatusForbidden, ErrAdminOnly)
	case errors.Is(err, dto.ErrNotFound):
		writeError(ctx, fasthttp.StatusNotFound, ErrJobNotFound)
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, err)
	}
}

// callerRole reads the trusted role header set by the auth proxy in front
// of this service. Absent or unknown values are anonymous.
func callerRole(ctx *fasthttp.RequestCtx) dto.Role {
	return dto.ParseRole(string(ctx.Request.Header.Peek("X-Caller-Role")))
}
