// Package logging logs and traces every REST request.
package logging

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pintwise/pintwise/internal/rest/middleware/ip"
	"github.com/uptrace/bunrouter"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

type requestIDCtxKey struct{}

// RequestIDFromContext returns the id assigned to the request, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDCtxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware assigns request ids, opens a span per request and logs the result.
type Middleware struct {
	tracer trace.Tracer
	logger *zap.Logger
}

// New creates a new request logging middleware.
func New(logger *zap.Logger) *Middleware {
	return &Middleware{
		tracer: otel.Tracer("pintwise/rest"),
		logger: logger.Named("http"),
	}
}

// AsRESTMiddleware returns a bunrouter middleware handler for request logging.
func (m *Middleware) AsRESTMiddleware(next bunrouter.HandlerFunc) bunrouter.HandlerFunc {
	return func(w http.ResponseWriter, req bunrouter.Request) error {
		requestID := req.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx, span := m.tracer.Start(req.Context(), req.Method+" "+req.Route(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("http.route", req.Route()),
				attribute.String("request.id", requestID),
			))
		defer span.End()

		ctx = context.WithValue(ctx, requestIDCtxKey{}, requestID)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		err := next(rec, req.WithContext(ctx))

		span.SetAttributes(attribute.Int("http.response.status_code", rec.status))
		fields := []zap.Field{
			zap.String("requestID", requestID),
			zap.String("method", req.Method),
			zap.String("route", req.Route()),
			zap.String("path", req.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", ip.FromContext(ctx)),
		}

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			m.logger.Error("Request failed", append(fields, zap.Error(err))...)
		case rec.status >= http.StatusInternalServerError:
			span.SetStatus(codes.Error, http.StatusText(rec.status))
			m.logger.Warn("Request completed with server error", fields...)
		default:
			m.logger.Debug("Request completed", fields...)
		}

		return err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
