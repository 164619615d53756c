package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"misoreports/internal/infrastructure"
)

// OTel instruments HTTP requests with a server span and request metrics.
type OTel struct {
	tracer   trace.Tracer
	requests metric.Int64Counter
	duration metric.Float64Histogram
	active   metric.Int64UpDownCounter
}

// NewOTel creates the HTTP instrumentation middleware from initialized
// providers.
func NewOTel(providers *infrastructure.OTelProviders) (*OTel, error) {
	m := &OTel{tracer: providers.Tracer}

	var err error
	if m.requests, err = providers.Meter.Int64Counter("http_requests_total",
		metric.WithDescription("HTTP requests served")); err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}
	if m.duration, err = providers.Meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}
	if m.active, err = providers.Meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("In-flight HTTP requests")); err != nil {
		return nil, fmt.Errorf("creating active gauge: %w", err)
	}
	return m, nil
}

// Handler wraps next with span creation and metric recording.
func (m *OTel) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := m.tracer.Start(ctx, r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(r.URL.Path),
				semconv.ServerAddressKey.String(r.Host),
				semconv.UserAgentOriginalKey.String(r.UserAgent()),
			),
		)
		defer span.End()

		ctx = infrastructure.WithTraceID(ctx, span.SpanContext().TraceID().String())
		r = r.WithContext(ctx)

		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		m.active.Add(ctx, 1)
		defer m.active.Add(ctx, -1)
		start := time.Now()

		next.ServeHTTP(ww, r)

		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", routePattern(r)),
			attribute.Int("status_code", ww.status),
		)
		m.requests.Add(ctx, 1, attrs)
		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)

		span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(ww.status))
		if ww.status >= 500 {
			span.SetStatus(codes.Error, http.StatusText(ww.status))
		}
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// routePattern prefers the chi route pattern over the raw path so metric
// cardinality stays bounded.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
