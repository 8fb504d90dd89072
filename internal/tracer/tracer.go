// Package tracer provides the tracing abstraction used when statements are
// executed, with an OpenTelemetry adapter.
package tracer

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName is the tracer name registered with OpenTelemetry.
const InstrumentationName = "github.com/coregx/qbuild"

// Tracer starts spans around statement execution.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, Span)
}

// Span is the subset of an OpenTelemetry span the executor needs.
type Span interface {
	SetAttributes(attrs ...attribute.KeyValue)
	RecordError(err error)
	SetStatus(code codes.Code, description string)
	End()
}

// NoopTracer does nothing. It is the default.
type NoopTracer struct{}

// StartSpan returns ctx unchanged and a span that ignores every call.
func (NoopTracer) StartSpan(ctx context.Context, _ string) (context.Context, Span) {
	return ctx, NoopSpan{}
}

// NoopSpan ignores every call.
type NoopSpan struct{}

// SetAttributes does nothing.
func (NoopSpan) SetAttributes(...attribute.KeyValue) {}

// RecordError does nothing.
func (NoopSpan) RecordError(error) {}

// SetStatus does nothing.
func (NoopSpan) SetStatus(codes.Code, string) {}

// End does nothing.
func (NoopSpan) End() {}

// OtelTracer adapts an OpenTelemetry tracer.
type OtelTracer struct {
	tracer trace.Tracer
}

// NewOtelTracer wraps t.
func NewOtelTracer(t trace.Tracer) *OtelTracer {
	return &OtelTracer{tracer: t}
}

// NewGlobalTracer uses the globally registered OpenTelemetry provider.
func NewGlobalTracer() *OtelTracer {
	return NewOtelTracer(otel.Tracer(InstrumentationName))
}

// StartSpan starts a client span.
func (t *OtelTracer) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	return ctx, otelSpan{span}
}

// otelSpan narrows trace.Span, whose RecordError and End take options, to Span.
type otelSpan struct {
	span trace.Span
}

// SetAttributes forwards to the OpenTelemetry span.
func (s otelSpan) SetAttributes(attrs ...attribute.KeyValue) { s.span.SetAttributes(attrs...) }

// RecordError records err as a span event.
func (s otelSpan) RecordError(err error) { s.span.RecordError(err) }

// SetStatus forwards to the OpenTelemetry span.
func (s otelSpan) SetStatus(code codes.Code, desc string) { s.span.SetStatus(code, desc) }

// End ends the OpenTelemetry span.
func (s otelSpan) End() { s.span.End() }

// Statement describes one executed statement for span annotation.
type Statement struct {
	System       string // postgres, mysql, sqlite
	SQL          string
	Table        string
	Operation    string
	Params       int
	Rows         int
	RowsAffected int64
	Duration     time.Duration
	Err          error
}

// Annotate records st on span using OpenTelemetry database conventions and
// sets the span status from st.Err.
func Annotate(span Span, st *Statement) {
	attrs := []attribute.KeyValue{
		attribute.String("db.system", st.System),
		attribute.String("db.statement", st.SQL),
		attribute.String("db.operation", st.Operation),
		attribute.Int("db.params", st.Params),
		attribute.Float64("db.duration_ms", float64(st.Duration.Microseconds())/1000.0),
	}
	if st.Table != "" {
		attrs = append(attrs, attribute.String("db.sql.table", st.Table))
	}
	if st.Rows > 0 {
		attrs = append(attrs, attribute.Int("db.rows", st.Rows))
	}
	if st.RowsAffected > 0 {
		attrs = append(attrs, attribute.Int64("db.rows_affected", st.RowsAffected))
	}
	span.SetAttributes(attrs...)

	if st.Err != nil {
		span.RecordError(st.Err)
		span.SetStatus(codes.Error, st.Err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

var operations = []string{"SELECT", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP"}

// DetectOperation returns the leading SQL verb (SELECT, INSERT, UPDATE,
// DELETE, CREATE, DROP) or UNKNOWN.
func DetectOperation(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	if strings.HasPrefix(sql, "WITH") {
		return "SELECT"
	}
	for _, op := range operations {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "UNKNOWN"
}
