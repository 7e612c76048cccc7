package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

// Core implements zapcore.Core and records error logs as OpenTelemetry spans.
type Core struct {
	zapcore.LevelEnabler
	tracer trace.Tracer
	fields []zapcore.Field
}

// NewCore creates a new core that forwards logs to OpenTelemetry.
func NewCore(enab zapcore.LevelEnabler) zapcore.Core {
	return &Core{
		LevelEnabler: enab,
		tracer:       otel.Tracer("pintwise/logs"),
	}
}

func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	if ent.Level < zapcore.ErrorLevel {
		return nil
	}

	_, span := c.tracer.Start(context.Background(), "error."+errorCategory(ent))
	defer span.End()

	enc := zapcore.NewMapObjectEncoder()
	for _, field := range c.fields {
		field.AddTo(enc)
	}
	for _, field := range fields {
		field.AddTo(enc)
	}

	attrs := make([]attribute.KeyValue, 0, len(enc.Fields)+3)
	attrs = append(attrs,
		attribute.String("log.logger", ent.LoggerName),
		attribute.String("log.level", ent.Level.String()),
		attribute.String("code.caller", ent.Caller.String()),
	)
	for key, value := range enc.Fields {
		attrs = append(attrs, attribute.String("log."+key, fmt.Sprint(value)))
	}

	span.SetAttributes(attrs...)
	span.SetStatus(codes.Error, ent.Message)
	return nil
}

func (c *Core) Sync() error {
	return nil
}

// errorCategory names the component that logged the entry. Named loggers such as
// "api.price_handler" or "database" take precedence over the caller package.
func errorCategory(ent zapcore.Entry) string {
	if ent.LoggerName != "" {
		name, _, _ := strings.Cut(ent.LoggerName, ".")
		return name
	}

	function := ent.Caller.Function
	switch {
	case strings.Contains(function, "/internal/database"):
		return "database"
	case strings.Contains(function, "/internal/redis"), strings.Contains(function, "/internal/cache"):
		return "cache"
	case strings.Contains(function, "/internal/rest"):
		return "rest"
	case strings.Contains(function, "/internal/export"):
		return "export"
	default:
		return "application"
	}
}
