// Package handler implements the REST endpoints on top of the business services.
package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pintwise/pintwise/internal/engine"
	"github.com/pintwise/pintwise/internal/rest/middleware/logging"
	"github.com/pintwise/pintwise/internal/rest/render"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

const (
	// maxBodyBytes bounds a request body.
	maxBodyBytes = 64 << 10

	defaultPageSize = 50
	maxPageSize     = 200
)

// Clock supplies the current time to the handlers.
type Clock func() time.Time

// errorStatus maps an error kind to its status code and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		return http.StatusBadRequest, "validation_failed"
	case errors.Is(err, engine.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, engine.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, engine.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, engine.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	case errors.Is(err, engine.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, engine.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, "dependency_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeError renders a service error. Unexpected errors are logged and hidden from the client.
func writeError(w http.ResponseWriter, req bunrouter.Request, logger *zap.Logger, err error) error {
	status, code := errorStatus(err)

	body := render.ErrorResponse{Error: code, Message: err.Error()}
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		body.Field = verr.Field
		body.Message = verr.Error()
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.Error(err),
			zap.String("route", req.Route()),
			zap.String("requestID", logging.RequestIDFromContext(req.Context())))
		body.Message = "Internal server error"
	}

	return render.JSON(w, status, body)
}

// decode reads a JSON request body into v.
func decode(req bunrouter.Request, v any) error {
	return decodeBody(req, v, true)
}

// decodeOptional is decode for endpoints whose body may be omitted.
func decodeOptional(req bunrouter.Request, v any) error {
	return decodeBody(req, v, false)
}

func decodeBody(req bunrouter.Request, v any, required bool) error {
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBodyBytes+1))
	if err != nil {
		return engine.Invalid("body", "unreadable request body")
	}
	if len(data) > maxBodyBytes {
		return engine.Invalid("body", "request body too large")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if required {
			return engine.Invalid("body", "required")
		}
		return nil
	}
	if err := sonic.Unmarshal(data, v); err != nil {
		return engine.Invalid("body", "malformed JSON")
	}
	return nil
}

// pathID parses a positive integer path parameter.
func pathID(req bunrouter.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(req.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, engine.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// page reads the after_id and limit query parameters.
func page(req bunrouter.Request) (int64, int, error) {
	query := req.URL.Query()

	var afterID int64
	if raw := query.Get("after_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 0 {
			return 0, 0, engine.Invalid("after_id", "must be a non-negative integer")
		}
		afterID = id
	}

	limit := defaultPageSize
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPageSize {
			return 0, 0, engine.Invalid("limit", "must be between 1 and "+strconv.Itoa(maxPageSize))
		}
		limit = n
	}

	return afterID, limit, nil
}

// parseEnum converts a snake case name with a generated enum parser.
func parseEnum[T any](field, raw string, parse func(string) (T, error)) (T, error) {
	value, err := parse(raw)
	if err != nil {
		var zero T
		return zero, engine.Invalid(field, "unknown value "+strconv.Quote(raw))
	}
	return value, nil
}
